package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/wellspring-backend/internal/apperr"
	"github.com/yungbote/wellspring-backend/internal/logger"
	"github.com/yungbote/wellspring-backend/internal/repos"
	"github.com/yungbote/wellspring-backend/internal/types"
)

const missedItemsSweepConcurrency = 8

type AdaptationService interface {
	Record(ctx context.Context, userID, planID uuid.UUID, trigger types.AdaptationTrigger, description string, change *types.AdaptationChange) (*types.Adaptation, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Adaptation, error)
	DetectMissedItems(ctx context.Context, weekStart time.Time, asOf time.Time) (int, error)
}

type adaptationService struct {
	db                   *gorm.DB
	log                  *logger.Logger
	adaptationRepo       repos.AdaptationRepo
	weeklyPlanRepo       repos.WeeklyPlanRepo
	planItemRepo         repos.PlanItemRepo
	missedItemsThreshold int
}

func NewAdaptationService(
	db *gorm.DB,
	log *logger.Logger,
	adaptationRepo repos.AdaptationRepo,
	weeklyPlanRepo repos.WeeklyPlanRepo,
	planItemRepo repos.PlanItemRepo,
	missedItemsThreshold int,
) AdaptationService {
	serviceLog := log.With("service", "AdaptationService")
	if missedItemsThreshold < 1 {
		missedItemsThreshold = 1
	}
	return &adaptationService{
		db:                   db,
		log:                  serviceLog,
		adaptationRepo:       adaptationRepo,
		weeklyPlanRepo:       weeklyPlanRepo,
		planItemRepo:         planItemRepo,
		missedItemsThreshold: missedItemsThreshold,
	}
}

// Record always appends. The log is a sequence of behavioral signals, so
// repeated skips of the same item are intentionally kept as separate rows.
func (ads *adaptationService) Record(ctx context.Context, userID, planID uuid.UUID, trigger types.AdaptationTrigger, description string, change *types.AdaptationChange) (*types.Adaptation, error) {
	if userID == uuid.Nil || planID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id and plan id required", apperr.ErrInvalidArgument)
	}
	if _, err := types.ParseAdaptationTrigger(string(trigger)); err != nil {
		return nil, err
	}
	plans, pErr := ads.weeklyPlanRepo.GetByIDs(ctx, nil, []uuid.UUID{planID})
	if pErr != nil {
		return nil, fmt.Errorf("failed to load plan for adaptation: %w", pErr)
	}
	// A missing plan and another user's plan look the same to the caller.
	if len(plans) == 0 || plans[0] == nil || plans[0].UserID != userID {
		return nil, fmt.Errorf("%w: plan not found", apperr.ErrNotFound)
	}

	var payload datatypes.JSON
	if change != nil {
		raw, mErr := json.Marshal(change)
		if mErr != nil {
			return nil, fmt.Errorf("failed to marshal adaptation change: %w", mErr)
		}
		payload = datatypes.JSON(raw)
	}

	row := &types.Adaptation{
		ID:          uuid.New(),
		UserID:      userID,
		PlanID:      planID,
		Trigger:     trigger,
		Description: description,
		ChangesMade: payload,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := ads.adaptationRepo.Create(ctx, nil, []*types.Adaptation{row})
	if err != nil {
		return nil, fmt.Errorf("failed to create adaptation record: %w", err)
	}
	return created[0], nil
}

func (ads *adaptationService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Adaptation, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", apperr.ErrInvalidArgument)
	}
	return ads.adaptationRepo.ListByUserID(ctx, nil, userID, limit)
}

// DetectMissedItems sweeps every plan for the week and records one
// missed_items adaptation per user whose pending count past asOf's weekday
// reaches the threshold. Users are processed concurrently; one user's
// failure does not abort the sweep.
func (ads *adaptationService) DetectMissedItems(ctx context.Context, weekStart time.Time, asOf time.Time) (int, error) {
	weekStart = types.PlanWeekStart(weekStart)
	day := int(asOf.UTC().Sub(weekStart).Hours() / 24)
	if day < 0 {
		return 0, nil
	}
	if day > 7 {
		day = 7
	}

	userIDs, err := ads.weeklyPlanRepo.ListUserIDsForWeek(ctx, nil, weekStart)
	if err != nil {
		return 0, fmt.Errorf("failed to list users with plans: %w", err)
	}

	var recorded atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(missedItemsSweepConcurrency)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			plan, pErr := ads.weeklyPlanRepo.GetByUserAndWeek(gctx, nil, userID, weekStart)
			if pErr != nil || plan == nil {
				if pErr != nil {
					ads.log.Warn("Missed-items sweep failed to load plan", "error", pErr, "user_id", userID)
				}
				return nil
			}
			count, cErr := ads.planItemRepo.CountPendingBeforeDay(gctx, nil, plan.ID, day)
			if cErr != nil {
				ads.log.Warn("Missed-items sweep failed to count pending items", "error", cErr, "user_id", userID)
				return nil
			}
			if count < int64(ads.missedItemsThreshold) {
				return nil
			}
			description := fmt.Sprintf("%d planned items not completed by their scheduled day", count)
			if _, rErr := ads.Record(gctx, userID, plan.ID, types.AdaptationTriggerMissedItems, description, nil); rErr != nil {
				ads.log.Warn("Missed-items sweep failed to record adaptation", "error", rErr, "user_id", userID)
				return nil
			}
			recorded.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(recorded.Load()), err
	}
	return int(recorded.Load()), nil
}
