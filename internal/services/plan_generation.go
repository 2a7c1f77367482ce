package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/wellspring-backend/internal/apperr"
	"github.com/yungbote/wellspring-backend/internal/logger"
	"github.com/yungbote/wellspring-backend/internal/repos"
	"github.com/yungbote/wellspring-backend/internal/types"
)

// PlanItemDraft is an authored item before it is persisted.
type PlanItemDraft struct {
	Pillar    types.Pillar
	DayOfWeek int
	Title     string
}

// PlanAuthor decides what a user's week should look like. Implementations
// must be deterministic for the same inputs so retried runs produce the
// same plan.
type PlanAuthor interface {
	AuthorWeek(ctx context.Context, user *types.User, weekStart time.Time, recentLogs []*types.CoreFiveLog, recentAdaptations []*types.Adaptation) ([]PlanItemDraft, error)
}

type PlanGenerationService interface {
	Enqueue(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*types.PlanGenerationRun, error)
	GetRun(ctx context.Context, userID uuid.UUID, runID uuid.UUID) (*types.PlanGenerationRun, error)
	StartWorker(ctx context.Context)
}

type planGenerationService struct {
	db  *gorm.DB
	log *logger.Logger

	userRepo       repos.UserRepo
	weeklyPlanRepo repos.WeeklyPlanRepo
	planItemRepo   repos.PlanItemRepo
	adaptationRepo repos.AdaptationRepo
	logRepo        repos.CoreFiveLogRepo
	runRepo        repos.PlanGenerationRunRepo

	author PlanAuthor

	// Deployments can disable this to generate plans for users who have
	// not finished onboarding.
	requireOnboarding bool
}

func NewPlanGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	weeklyPlanRepo repos.WeeklyPlanRepo,
	planItemRepo repos.PlanItemRepo,
	adaptationRepo repos.AdaptationRepo,
	logRepo repos.CoreFiveLogRepo,
	runRepo repos.PlanGenerationRunRepo,
	author PlanAuthor,
	skipOnboarding bool,
) PlanGenerationService {
	return &planGenerationService{
		db:             db,
		log:            baseLog.With("service", "PlanGenerationService"),
		userRepo:       userRepo,
		weeklyPlanRepo: weeklyPlanRepo,
		planItemRepo:   planItemRepo,
		adaptationRepo: adaptationRepo,
		logRepo:        logRepo,
		runRepo:           runRepo,
		author:            author,
		requireOnboarding: !skipOnboarding,
	}
}

// Enqueue is idempotent per (user, week). If a plan already exists the run
// comes back succeeded immediately; if a run is already queued or running
// the caller gets that run instead of a new one.
func (pgs *planGenerationService) Enqueue(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*types.PlanGenerationRun, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", apperr.ErrUnauthorized)
	}
	weekStart = types.PlanWeekStart(weekStart)

	if pgs.requireOnboarding {
		users, uErr := pgs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
		if uErr != nil {
			return nil, fmt.Errorf("load user: %w", uErr)
		}
		if len(users) == 0 || users[0] == nil {
			return nil, fmt.Errorf("%w: user does not exist", apperr.ErrNotFound)
		}
		if users[0].OnboardedAt == nil {
			return nil, fmt.Errorf("%w: onboarding not completed", apperr.ErrInvalidArgument)
		}
	}

	var run *types.PlanGenerationRun
	err := pgs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, rErr := pgs.runRepo.GetLatestByUserWeek(ctx, tx, userID, weekStart)
		if rErr != nil {
			return fmt.Errorf("load latest run: %w", rErr)
		}
		if existing != nil && (existing.Status == "queued" || existing.Status == "running" || existing.Status == "succeeded") {
			run = existing
			return nil
		}

		plan, pErr := pgs.weeklyPlanRepo.GetByUserAndWeek(ctx, tx, userID, weekStart)
		if pErr != nil {
			return fmt.Errorf("load existing plan: %w", pErr)
		}

		now := time.Now().UTC()
		run = &types.PlanGenerationRun{
			ID:        uuid.New(),
			UserID:    userID,
			WeekStart: weekStart,
			Status:    "queued",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if plan != nil {
			run.Status = "succeeded"
			run.PlanID = &plan.ID
		}
		if _, cErr := pgs.runRepo.Create(ctx, tx, []*types.PlanGenerationRun{run}); cErr != nil {
			return fmt.Errorf("create generation run: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (pgs *planGenerationService) GetRun(ctx context.Context, userID uuid.UUID, runID uuid.UUID) (*types.PlanGenerationRun, error) {
	runs, err := pgs.runRepo.GetByIDs(ctx, nil, []uuid.UUID{runID})
	if err != nil {
		return nil, fmt.Errorf("load generation run: %w", err)
	}
	if len(runs) == 0 || runs[0] == nil || runs[0].UserID != userID {
		return nil, fmt.Errorf("%w: generation run does not exist", apperr.ErrNotFound)
	}
	return runs[0], nil
}

func (pgs *planGenerationService) StartWorker(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		// Worker policy
		const maxAttempts = 5
		retryDelay := 30 * time.Second
		staleRunning := 2 * time.Minute

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run, err := pgs.runRepo.ClaimNextRunnable(ctx, pgs.db, maxAttempts, retryDelay, staleRunning)
				if err != nil {
					pgs.log.Warn("ClaimNextRunnable failed", "error", err)
					continue
				}
				if run == nil {
					continue
				}
				pgs.processRun(ctx, run)
			}
		}
	}()
}

func (pgs *planGenerationService) processRun(ctx context.Context, run *types.PlanGenerationRun) {
	runID := run.ID

	fail := func(err error) {
		now := time.Now()
		_ = pgs.runRepo.UpdateFields(ctx, nil, runID, map[string]interface{}{
			"status":        "failed",
			"error":         err.Error(),
			"last_error_at": now,
			"locked_at":     nil,
			"updated_at":    now,
		})
		pgs.log.Warn("Plan generation failed", "error", err, "run_id", runID)
	}

	succeed := func(planID uuid.UUID) {
		now := time.Now()
		_ = pgs.runRepo.UpdateFields(ctx, nil, runID, map[string]interface{}{
			"status":     "succeeded",
			"plan_id":    planID,
			"error":      "",
			"locked_at":  nil,
			"updated_at": now,
		})
	}

	users, err := pgs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{run.UserID})
	if err != nil {
		fail(fmt.Errorf("load user: %w", err))
		return
	}
	if len(users) == 0 || users[0] == nil {
		fail(fmt.Errorf("user %s not found", run.UserID))
		return
	}
	user := users[0]

	weekStart := types.PlanWeekStart(run.WeekStart)

	// Author inputs: the last four weeks of logs and the most recent
	// behavioral signals.
	recentLogs, err := pgs.logRepo.ListByUserSince(ctx, nil, run.UserID, weekStart.AddDate(0, 0, -28))
	if err != nil {
		fail(fmt.Errorf("load recent logs: %w", err))
		return
	}
	recentAdaptations, err := pgs.adaptationRepo.ListByUserID(ctx, nil, run.UserID, 20)
	if err != nil {
		fail(fmt.Errorf("load recent adaptations: %w", err))
		return
	}

	drafts, err := pgs.author.AuthorWeek(ctx, user, weekStart, recentLogs, recentAdaptations)
	if err != nil {
		fail(fmt.Errorf("author week: %w", err))
		return
	}
	if len(drafts) == 0 {
		fail(fmt.Errorf("author produced an empty week"))
		return
	}

	// Plan and items commit together; a failure anywhere leaves no partial
	// plan behind.
	plan := &types.WeeklyPlan{
		ID:        uuid.New(),
		UserID:    run.UserID,
		WeekStart: weekStart,
		CreatedAt: time.Now().UTC(),
	}
	items := make([]*types.PlanItem, 0, len(drafts))
	now := time.Now().UTC()
	for _, d := range drafts {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			fail(fmt.Errorf("author produced item with day_of_week %d", d.DayOfWeek))
			return
		}
		items = append(items, &types.PlanItem{
			ID:        uuid.New(),
			PlanID:    plan.ID,
			Pillar:    d.Pillar,
			DayOfWeek: d.DayOfWeek,
			Title:     d.Title,
			Status:    types.PlanItemStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	txErr := pgs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := pgs.weeklyPlanRepo.Create(ctx, tx, []*types.WeeklyPlan{plan}); err != nil {
			return err
		}
		if _, err := pgs.planItemRepo.Create(ctx, tx, items); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		// A duplicate on (user_id, week_start) means another run won the
		// race; the existing plan is the outcome, not an error.
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			existing, lErr := pgs.weeklyPlanRepo.GetByUserAndWeek(ctx, nil, run.UserID, weekStart)
			if lErr != nil || existing == nil {
				fail(fmt.Errorf("duplicate plan but reload failed: %v", lErr))
				return
			}
			succeed(existing.ID)
			return
		}
		fail(fmt.Errorf("persist plan: %w", txErr))
		return
	}

	succeed(plan.ID)
}
