package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/wellspring-backend/internal/apperr"
	"github.com/yungbote/wellspring-backend/internal/logger"
	"github.com/yungbote/wellspring-backend/internal/repos"
	"github.com/yungbote/wellspring-backend/internal/requestdata"
	"github.com/yungbote/wellspring-backend/internal/types"
)

// PlanView is what clients poll while deciding whether to request
// generation for a week.
type PlanView struct {
	HasPlan bool              `json:"has_plan"`
	Plan    *types.WeeklyPlan `json:"plan,omitempty"`
	Items   []*types.PlanItem `json:"items,omitempty"`
}

type PlanService interface {
	GetPlanForWeek(ctx context.Context, weekStart time.Time) (*PlanView, error)
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, requestedStatus string, skipReason string) (*types.PlanItem, error)
}

type planService struct {
	db                *gorm.DB
	log               *logger.Logger
	weeklyPlanRepo    repos.WeeklyPlanRepo
	planItemRepo      repos.PlanItemRepo
	adaptationService AdaptationService
}

func NewPlanService(
	db *gorm.DB,
	log *logger.Logger,
	weeklyPlanRepo repos.WeeklyPlanRepo,
	planItemRepo repos.PlanItemRepo,
	adaptationService AdaptationService,
) PlanService {
	serviceLog := log.With("service", "PlanService")
	return &planService{
		db:                db,
		log:               serviceLog,
		weeklyPlanRepo:    weeklyPlanRepo,
		planItemRepo:      planItemRepo,
		adaptationService: adaptationService,
	}
}

func (ps *planService) GetPlanForWeek(ctx context.Context, weekStart time.Time) (*PlanView, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id not set in request data", apperr.ErrUnauthorized)
	}
	weekStart = types.PlanWeekStart(weekStart)

	plan, err := ps.weeklyPlanRepo.GetByUserAndWeek(ctx, nil, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("error fetching weekly plan: %w", err)
	}
	if plan == nil {
		return &PlanView{HasPlan: false}, nil
	}
	items, err := ps.planItemRepo.GetByPlanIDs(ctx, nil, []uuid.UUID{plan.ID})
	if err != nil {
		return nil, fmt.Errorf("error fetching plan items: %w", err)
	}
	return &PlanView{HasPlan: true, Plan: plan, Items: items}, nil
}

// UpdateItemStatus is the single mutation path for plan items. The status
// write commits first; the adaptation record for a skip is attempted after
// commit and its failure never rolls back or fails the transition.
func (ps *planService) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, requestedStatus string, skipReason string) (*types.PlanItem, error) {
	status, err := types.ParsePlanItemStatus(requestedStatus)
	if err != nil {
		return nil, err
	}
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("%w: item id required", apperr.ErrInvalidArgument)
	}

	var updated *types.PlanItem
	var plan *types.WeeklyPlan
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, fErr := ps.planItemRepo.GetByIDs(ctx, tx, []uuid.UUID{itemID})
		if fErr != nil {
			return fmt.Errorf("error fetching plan item: %w", fErr)
		}
		if len(items) == 0 || items[0] == nil {
			return fmt.Errorf("%w: plan item does not exist", apperr.ErrNotFound)
		}
		item := items[0]

		plans, pErr := ps.weeklyPlanRepo.GetByIDs(ctx, tx, []uuid.UUID{item.PlanID})
		if pErr != nil {
			return fmt.Errorf("error fetching owning plan: %w", pErr)
		}
		if len(plans) == 0 || plans[0] == nil {
			return fmt.Errorf("%w: owning plan does not exist", apperr.ErrNotFound)
		}
		plan = plans[0]
		if requester := requestdata.UserID(ctx); requester != uuid.Nil && plan.UserID != requester {
			return fmt.Errorf("%w: plan item does not exist", apperr.ErrNotFound)
		}

		// completed_at is present iff the new status is done.
		var completedAt *time.Time
		if status == types.PlanItemStatusDone {
			now := time.Now().UTC()
			completedAt = &now
		}

		rows, uErr := ps.planItemRepo.UpdateStatus(ctx, tx, itemID, status, completedAt)
		if uErr != nil {
			return fmt.Errorf("error updating plan item status: %w", uErr)
		}
		if rows == 0 {
			return fmt.Errorf("%w: plan item does not exist", apperr.ErrNotFound)
		}

		item.Status = status
		item.CompletedAt = completedAt
		updated = item
		return nil
	}); err != nil {
		return nil, err
	}

	if status == types.PlanItemStatusSkipped {
		change := &types.AdaptationChange{
			Pillar:    updated.Pillar,
			DayOfWeek: updated.DayOfWeek,
			ItemID:    &updated.ID,
			Reason:    skipReason,
		}
		description := fmt.Sprintf("User skipped %q", updated.Title)
		if _, aErr := ps.adaptationService.Record(ctx, plan.UserID, plan.ID, types.AdaptationTriggerItemSkipped, description, change); aErr != nil {
			ps.log.Warn("Failed to record skip adaptation", "error", aErr, "item_id", updated.ID)
		}
	}

	return updated, nil
}
