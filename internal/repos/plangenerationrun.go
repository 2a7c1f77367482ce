package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/wellspring-backend/internal/logger"
	"github.com/yungbote/wellspring-backend/internal/types"
)

type PlanGenerationRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, runs []*types.PlanGenerationRun) ([]*types.PlanGenerationRun, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.PlanGenerationRun, error)

	// Latest run for a (user, week) pair; nil when the user never requested
	// generation for that week.
	GetLatestByUserWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (*types.PlanGenerationRun, error)

	// Claims the next run that is runnable:
	// - status=queued
	// - OR status=failed and attempts < maxAttempts and last_error_at older than retryDelay (or NULL)
	// - OR status=running but heartbeat is stale (crash recovery)
	ClaimNextRunnable(ctx context.Context, tx *gorm.DB, maxAttempts int, retryDelay time.Duration, staleRunning time.Duration) (*types.PlanGenerationRun, error)

	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type planGenerationRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanGenerationRunRepo(db *gorm.DB, baseLog *logger.Logger) PlanGenerationRunRepo {
	repoLog := baseLog.With("repo", "PlanGenerationRunRepo")
	return &planGenerationRunRepo{db: db, log: repoLog}
}

func (r *planGenerationRunRepo) Create(ctx context.Context, tx *gorm.DB, runs []*types.PlanGenerationRun) ([]*types.PlanGenerationRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(runs) == 0 {
		return []*types.PlanGenerationRun{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *planGenerationRunRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.PlanGenerationRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PlanGenerationRun
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *planGenerationRunRepo) GetLatestByUserWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (*types.PlanGenerationRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}

	var run types.PlanGenerationRun
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Order("created_at DESC").
		Limit(1).
		Find(&run).Error
	if err != nil {
		return nil, err
	}
	if run.ID == uuid.Nil {
		return nil, nil
	}
	return &run, nil
}

func (r *planGenerationRunRepo) ClaimNextRunnable(
	ctx context.Context,
	tx *gorm.DB,
	maxAttempts int,
	retryDelay time.Duration,
	staleRunning time.Duration,
) (*types.PlanGenerationRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := time.Now()
	retryCutoff := now.Add(-retryDelay)
	staleCutoff := now.Add(-staleRunning)

	var claimed *types.PlanGenerationRun

	err := transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		var run types.PlanGenerationRun

		q := txx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where(`
        (
          status = ?
          OR (
            status = ?
            AND attempts < ?
            AND (last_error_at IS NULL OR last_error_at < ?)
          )
          OR (
            status = ?
            AND heartbeat_at IS NOT NULL
            AND heartbeat_at < ?
          )
        )
      `, "queued", "failed", maxAttempts, retryCutoff, "running", staleCutoff).
			Order("created_at ASC")

		qErr := q.First(&run).Error
		if errors.Is(qErr, gorm.ErrRecordNotFound) {
			return nil
		}
		if qErr != nil {
			return qErr
		}

		// Claim it: mark running, increment attempts, set lock/heartbeat.
		uErr := txx.Model(&types.PlanGenerationRun{}).
			Where("id = ?", run.ID).
			Updates(map[string]interface{}{
				"status":       "running",
				"attempts":     gorm.Expr("attempts + 1"),
				"locked_at":    now,
				"heartbeat_at": now,
				"updated_at":   now,
			}).Error
		if uErr != nil {
			return uErr
		}

		claimed = &run
		return nil
	})

	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *planGenerationRunRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(ctx).
		Model(&types.PlanGenerationRun{}).
		Where("id = ?", id).
		Updates(updates).Error
}
