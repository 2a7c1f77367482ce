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

func newAdaptationServiceForTest(t *testing.T, threshold int) (AdaptationService, repos.AdaptationRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	adaptationRepo := repos.NewAdaptationRepo(db, log)
	weeklyPlanRepo := repos.NewWeeklyPlanRepo(db, log)
	planItemRepo := repos.NewPlanItemRepo(db, log)
	return NewAdaptationService(db, log, adaptationRepo, weeklyPlanRepo, planItemRepo, threshold), adaptationRepo
}

func TestRecordRejectsUnknownTrigger(t *testing.T) {
	db := testutil.DB(t)
	svc, _ := newAdaptationServiceForTest(t, 3)

	user := testutil.SeedUser(t, db)
	plan := testutil.SeedPlan(t, db, user.ID, time.Now().UTC())

	_, err := svc.Record(context.Background(), user.ID, plan.ID, types.AdaptationTrigger("vibes"), "", nil)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRecordRejectsForeignOrMissingPlan(t *testing.T) {
	db := testutil.DB(t)
	svc, repo := newAdaptationServiceForTest(t, 3)

	owner := testutil.SeedUser(t, db)
	ownerPlan := testutil.SeedPlan(t, db, owner.ID, time.Now().UTC())
	other := testutil.SeedUser(t, db)

	_, err := svc.Record(context.Background(), other.ID, ownerPlan.ID, types.AdaptationTriggerMissedItems, "external signal", nil)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user's plan, got %v", err)
	}
	_, err = svc.Record(context.Background(), other.ID, uuid.New(), types.AdaptationTriggerMissedItems, "external signal", nil)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown plan, got %v", err)
	}

	rows, err := repo.ListByPlanID(context.Background(), nil, ownerPlan.ID)
	if err != nil {
		t.Fatalf("ListByPlanID: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rejected records must not append rows, got %d", len(rows))
	}
}

func TestRecordAlwaysAppends(t *testing.T) {
	db := testutil.DB(t)
	svc, repo := newAdaptationServiceForTest(t, 3)

	user := testutil.SeedUser(t, db)
	plan := testutil.SeedPlan(t, db, user.ID, time.Now().UTC())
	itemID := uuid.New()
	change := &types.AdaptationChange{Pillar: types.PillarMovement, DayOfWeek: 1, ItemID: &itemID, Reason: "sore"}

	for i := 0; i < 2; i++ {
		if _, err := svc.Record(context.Background(), user.ID, plan.ID, types.AdaptationTriggerItemSkipped, "skip", change); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	rows, err := repo.ListByPlanID(context.Background(), nil, plan.ID)
	if err != nil {
		t.Fatalf("ListByPlanID: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected duplicate signals kept as 2 rows, got %d", len(rows))
	}
}

func TestDetectMissedItems(t *testing.T) {
	db := testutil.DB(t)
	svc, repo := newAdaptationServiceForTest(t, 2)

	// Use a week far in the past so asOf lands beyond every item's day and
	// other tests' plans in the shared db stay outside the sweep.
	weekStart := types.PlanWeekStart(time.Now().UTC().AddDate(-1, 0, 0))

	behind := testutil.SeedUser(t, db)
	behindPlan := testutil.SeedPlan(t, db, behind.ID, weekStart)
	testutil.SeedPlanItem(t, db, behindPlan.ID, types.PillarMovement, 0, types.PlanItemStatusPending)
	testutil.SeedPlanItem(t, db, behindPlan.ID, types.PillarSleep, 1, types.PlanItemStatusPending)
	testutil.SeedPlanItem(t, db, behindPlan.ID, types.PillarStress, 2, types.PlanItemStatusDone)

	onTrack := testutil.SeedUser(t, db)
	onTrackPlan := testutil.SeedPlan(t, db, onTrack.ID, weekStart)
	testutil.SeedPlanItem(t, db, onTrackPlan.ID, types.PillarMovement, 0, types.PlanItemStatusDone)
	testutil.SeedPlanItem(t, db, onTrackPlan.ID, types.PillarSleep, 1, types.PlanItemStatusPending)

	recorded, err := svc.DetectMissedItems(context.Background(), weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("DetectMissedItems: %v", err)
	}
	if recorded != 1 {
		t.Fatalf("expected 1 recorded adaptation, got %d", recorded)
	}

	rows, err := repo.ListByPlanID(context.Background(), nil, behindPlan.ID)
	if err != nil {
		t.Fatalf("ListByPlanID: %v", err)
	}
	if len(rows) != 1 || rows[0].Trigger != types.AdaptationTriggerMissedItems {
		t.Fatalf("expected one missed_items adaptation, got %+v", rows)
	}

	onTrackRows, err := repo.ListByPlanID(context.Background(), nil, onTrackPlan.ID)
	if err != nil {
		t.Fatalf("ListByPlanID (on track): %v", err)
	}
	if len(onTrackRows) != 0 {
		t.Fatalf("on-track user should record nothing, got %+v", onTrackRows)
	}
}
