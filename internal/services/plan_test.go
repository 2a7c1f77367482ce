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
	"github.com/yungbote/wellspring-backend/internal/requestdata"
	"github.com/yungbote/wellspring-backend/internal/types"
)

func newPlanServiceForTest(t *testing.T) (PlanService, repos.AdaptationRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	adaptationRepo := repos.NewAdaptationRepo(db, log)
	weeklyPlanRepo := repos.NewWeeklyPlanRepo(db, log)
	planItemRepo := repos.NewPlanItemRepo(db, log)
	adaptationService := NewAdaptationService(db, log, adaptationRepo, weeklyPlanRepo, planItemRepo, 3)
	return NewPlanService(db, log, weeklyPlanRepo, planItemRepo, adaptationService), adaptationRepo
}

func userCtx(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

func TestUpdateItemStatusRejectsUnknownStatus(t *testing.T) {
	db := testutil.DB(t)
	planService, _ := newPlanServiceForTest(t)

	user := testutil.SeedUser(t, db)
	plan := testutil.SeedPlan(t, db, user.ID, time.Now().UTC())
	item := testutil.SeedPlanItem(t, db, plan.ID, types.PillarMovement, 1, types.PlanItemStatusPending)

	_, err := planService.UpdateItemStatus(userCtx(user.ID), item.ID, "archived", "")
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	// Nothing mutated.
	var got types.PlanItem
	if err := db.First(&got, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if got.Status != types.PlanItemStatusPending {
		t.Fatalf("rejected status mutated the row: %+v", got)
	}
}

func TestUpdateItemStatusDoneSetsCompletedAt(t *testing.T) {
	db := testutil.DB(t)
	planService, adaptationRepo := newPlanServiceForTest(t)

	user := testutil.SeedUser(t, db)
	plan := testutil.SeedPlan(t, db, user.ID, time.Now().UTC())
	item := testutil.SeedPlanItem(t, db, plan.ID, types.PillarSleep, 2, types.PlanItemStatusPending)

	updated, err := planService.UpdateItemStatus(userCtx(user.ID), item.ID, "done", "")
	if err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}
	if updated.Status != types.PlanItemStatusDone || updated.CompletedAt == nil {
		t.Fatalf("expected done with completed_at, got %+v", updated)
	}

	// Completing an item records no adaptation.
	rows, err := adaptationRepo.ListByPlanID(context.Background(), nil, plan.ID)
	if err != nil {
		t.Fatalf("ListByPlanID: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("done transition recorded %d adaptations", len(rows))
	}
}

func TestUpdateItemStatusSkipRecordsAdaptation(t *testing.T) {
	db := testutil.DB(t)
	planService, adaptationRepo := newPlanServiceForTest(t)

	user := testutil.SeedUser(t, db)
	plan := testutil.SeedPlan(t, db, user.ID, time.Now().UTC())
	item := testutil.SeedPlanItem(t, db, plan.ID, types.PillarStress, 3, types.PlanItemStatusPending)

	updated, err := planService.UpdateItemStatus(userCtx(user.ID), item.ID, "skipped", "too tired")
	if err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}
	if updated.Status != types.PlanItemStatusSkipped || updated.CompletedAt != nil {
		t.Fatalf("expected skipped without completed_at, got %+v", updated)
	}

	rows, err := adaptationRepo.ListByPlanID(context.Background(), nil, plan.ID)
	if err != nil {
		t.Fatalf("ListByPlanID: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 adaptation, got %d", len(rows))
	}
	if rows[0].Trigger != types.AdaptationTriggerItemSkipped {
		t.Fatalf("expected item_skipped trigger, got %s", rows[0].Trigger)
	}
	if len(rows[0].ChangesMade) == 0 {
		t.Fatalf("expected structured change payload")
	}
}

func TestUpdateItemStatusMissingItem(t *testing.T) {
	db := testutil.DB(t)
	planService, _ := newPlanServiceForTest(t)

	user := testutil.SeedUser(t, db)
	_, err := planService.UpdateItemStatus(userCtx(user.ID), uuid.New(), "done", "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateItemStatusOtherUsersItem(t *testing.T) {
	db := testutil.DB(t)
	planService, _ := newPlanServiceForTest(t)

	owner := testutil.SeedUser(t, db)
	other := testutil.SeedUser(t, db)
	plan := testutil.SeedPlan(t, db, owner.ID, time.Now().UTC())
	item := testutil.SeedPlanItem(t, db, plan.ID, types.PillarConnection, 0, types.PlanItemStatusPending)

	_, err := planService.UpdateItemStatus(userCtx(other.ID), item.ID, "done", "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign item, got %v", err)
	}
}

func TestGetPlanForWeekWithoutPlan(t *testing.T) {
	db := testutil.DB(t)
	planService, _ := newPlanServiceForTest(t)

	user := testutil.SeedUser(t, db)
	view, err := planService.GetPlanForWeek(userCtx(user.ID), time.Now().UTC())
	if err != nil {
		t.Fatalf("GetPlanForWeek: %v", err)
	}
	if view.HasPlan || view.Plan != nil {
		t.Fatalf("expected empty view, got %+v", view)
	}
}
