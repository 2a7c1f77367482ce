package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/wellspring-backend/internal/apperr"
	"github.com/yungbote/wellspring-backend/internal/repos"
	"github.com/yungbote/wellspring-backend/internal/repos/testutil"
	"github.com/yungbote/wellspring-backend/internal/types"
)

func newGenerationServiceForTest(t *testing.T, skipOnboarding bool) (PlanGenerationService, repos.WeeklyPlanRepo, repos.PlanItemRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(db, log)
	weeklyPlanRepo := repos.NewWeeklyPlanRepo(db, log)
	planItemRepo := repos.NewPlanItemRepo(db, log)
	adaptationRepo := repos.NewAdaptationRepo(db, log)
	logRepo := repos.NewCoreFiveLogRepo(db, log)
	runRepo := repos.NewPlanGenerationRunRepo(db, log)
	author := NewTemplatePlanAuthor(log)
	svc := NewPlanGenerationService(db, log, userRepo, weeklyPlanRepo, planItemRepo, adaptationRepo, logRepo, runRepo, author, skipOnboarding)
	return svc, weeklyPlanRepo, planItemRepo
}

func TestEnqueueRequiresOnboarding(t *testing.T) {
	db := testutil.DB(t)
	svc, _, _ := newGenerationServiceForTest(t, false)

	user := testutil.SeedUser(t, db)
	_, err := svc.Enqueue(context.Background(), user.ID, time.Now().UTC())
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for un-onboarded user, got %v", err)
	}
}

func TestEnqueueIsIdempotentPerWeek(t *testing.T) {
	db := testutil.DB(t)
	svc, _, _ := newGenerationServiceForTest(t, true)

	user := testutil.SeedUser(t, db)
	weekStart := time.Now().UTC()

	first, err := svc.Enqueue(context.Background(), user.ID, weekStart)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if first.Status != "queued" {
		t.Fatalf("expected queued run, got %s", first.Status)
	}

	second, err := svc.Enqueue(context.Background(), user.ID, weekStart)
	if err != nil {
		t.Fatalf("Enqueue (repeat): %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("repeat enqueue created a new run: %s vs %s", second.ID, first.ID)
	}
}

func TestProcessRunAuthorsWholePlan(t *testing.T) {
	db := testutil.DB(t)
	svc, weeklyPlanRepo, planItemRepo := newGenerationServiceForTest(t, true)

	user := testutil.SeedUser(t, db)
	weekStart := types.PlanWeekStart(time.Now().UTC())

	run, err := svc.Enqueue(context.Background(), user.ID, weekStart)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	svc.(*planGenerationService).processRun(context.Background(), run)

	final, err := svc.GetRun(context.Background(), user.ID, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if final.Status != "succeeded" || final.PlanID == nil {
		t.Fatalf("expected succeeded run with plan id, got %+v", final)
	}

	plan, err := weeklyPlanRepo.GetByUserAndWeek(context.Background(), nil, user.ID, weekStart)
	if err != nil || plan == nil {
		t.Fatalf("expected plan for week: %v", err)
	}
	items, err := planItemRepo.GetByPlanIDs(context.Background(), nil, []uuid.UUID{plan.ID})
	if err != nil {
		t.Fatalf("GetByPlanIDs: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected authored items")
	}
	seen := map[types.Pillar]bool{}
	for _, item := range items {
		if item.Status != types.PlanItemStatusPending {
			t.Fatalf("authored item not pending: %+v", item)
		}
		if item.DayOfWeek < 0 || item.DayOfWeek > 6 {
			t.Fatalf("authored item has bad day: %+v", item)
		}
		seen[item.Pillar] = true
	}
	for _, pillar := range types.AllPillars {
		if !seen[pillar] {
			t.Fatalf("authored week missing pillar %s", pillar)
		}
	}
}

func TestProcessRunDuplicatePlanIsSuccess(t *testing.T) {
	db := testutil.DB(t)
	svc, _, _ := newGenerationServiceForTest(t, true)

	user := testutil.SeedUser(t, db)
	weekStart := types.PlanWeekStart(time.Now().UTC())
	existing := testutil.SeedPlan(t, db, user.ID, weekStart)

	// Force a queued run even though the plan exists, simulating a race
	// between two workers.
	run := &types.PlanGenerationRun{
		ID:        uuid.New(),
		UserID:    user.ID,
		WeekStart: weekStart,
		Status:    "queued",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(run).Error; err != nil {
		t.Fatalf("seed run: %v", err)
	}

	svc.(*planGenerationService).processRun(context.Background(), run)

	final, err := svc.GetRun(context.Background(), user.ID, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if final.Status != "succeeded" {
		t.Fatalf("expected succeeded run, got %+v", final)
	}
	if final.PlanID == nil || *final.PlanID != existing.ID {
		t.Fatalf("expected run to adopt existing plan %s, got %+v", existing.ID, final.PlanID)
	}
}

func TestGetRunOwnership(t *testing.T) {
	db := testutil.DB(t)
	svc, _, _ := newGenerationServiceForTest(t, true)

	owner := testutil.SeedUser(t, db)
	other := testutil.SeedUser(t, db)

	run, err := svc.Enqueue(context.Background(), owner.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if _, err := svc.GetRun(context.Background(), other.ID, run.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign run, got %v", err)
	}
}
