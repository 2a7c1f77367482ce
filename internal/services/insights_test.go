package services

import (
	"testing"
	"time"

	"github.com/yungbote/wellspring-backend/internal/config"
	"github.com/yungbote/wellspring-backend/internal/repos"
	"github.com/yungbote/wellspring-backend/internal/repos/testutil"
	"github.com/yungbote/wellspring-backend/internal/scoring"
	"github.com/yungbote/wellspring-backend/internal/types"
)

func f64(v float64) *float64 { return &v }

func TestWeeklyInsightsScoresPillars(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	logRepo := repos.NewCoreFiveLogRepo(db, log)

	targets := config.ScoringTargets{
		types.PillarSleep: {RangeMin: f64(7), RangeMax: f64(9), Curve: scoring.CurveLinearFalloff},
	}
	insights := NewInsightsService(db, log, logRepo, targets, 2, nil, 0)
	logService := NewCoreFiveLogService(db, log, logRepo, insights)

	user := testutil.SeedUser(t, db)
	ctx := userCtx(user.ID)
	weekStart := types.PlanWeekStart(time.Now().UTC())

	// Two in-range sleep samples meet the minimum; one movement sample has
	// no target and one stress sample is below the minimum.
	if _, err := logService.Log(ctx, "sleep", 7.5, "", weekStart.Add(8*time.Hour)); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if _, err := logService.Log(ctx, "sleep", 8.5, "", weekStart.Add(32*time.Hour)); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if _, err := logService.Log(ctx, "movement", 45, "", weekStart.Add(10*time.Hour)); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := insights.Weekly(ctx, weekStart)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}

	byPillar := map[types.Pillar]*PillarInsight{}
	for _, p := range got.Pillars {
		byPillar[p.Pillar] = p
	}

	sleep := byPillar[types.PillarSleep]
	if sleep == nil || sleep.Score == nil || *sleep.Score != 100 {
		t.Fatalf("expected sleep score 100, got %+v", sleep)
	}
	if sleep.Samples != 2 {
		t.Fatalf("expected 2 sleep samples, got %d", sleep.Samples)
	}

	movement := byPillar[types.PillarMovement]
	if movement == nil || movement.Score != nil {
		t.Fatalf("expected absent movement score without a target, got %+v", movement)
	}
	if movement.Samples != 1 {
		t.Fatalf("expected 1 movement sample, got %d", movement.Samples)
	}

	if got.Overall == nil || *got.Overall != 100 {
		t.Fatalf("expected overall 100 from the only scored pillar, got %+v", got.Overall)
	}
}

func TestWeeklyInsightsBelowMinimumSamples(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	logRepo := repos.NewCoreFiveLogRepo(db, log)

	targets := config.ScoringTargets{
		types.PillarSleep: {RangeMin: f64(7), RangeMax: f64(9), Curve: scoring.CurveLinearFalloff},
	}
	insights := NewInsightsService(db, log, logRepo, targets, 3, nil, 0)
	logService := NewCoreFiveLogService(db, log, logRepo, insights)

	user := testutil.SeedUser(t, db)
	ctx := userCtx(user.ID)
	weekStart := types.PlanWeekStart(time.Now().UTC())

	if _, err := logService.Log(ctx, "sleep", 8, "", weekStart.Add(8*time.Hour)); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := insights.Weekly(ctx, weekStart)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	for _, p := range got.Pillars {
		if p.Score != nil {
			t.Fatalf("expected no pillar to reach the minimum sample count, got %+v", p)
		}
	}
	if got.Overall != nil {
		t.Fatalf("expected absent overall score, got %v", *got.Overall)
	}
}
