package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/wellspring-backend/internal/logger"
  "github.com/yungbote/wellspring-backend/internal/types"
)

type PlanItemRepo interface {
  Create(ctx context.Context, tx *gorm.DB, items []*types.PlanItem) ([]*types.PlanItem, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.PlanItem, error)
  GetByPlanIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.PlanItem, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, status types.PlanItemStatus, completedAt *time.Time) (int64, error)
  CountPendingBeforeDay(ctx context.Context, tx *gorm.DB, planID uuid.UUID, day int) (int64, error)
}

type planItemRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPlanItemRepo(db *gorm.DB, baseLog *logger.Logger) PlanItemRepo {
  repoLog := baseLog.With("repo", "PlanItemRepo")
  return &planItemRepo{db: db, log: repoLog}
}

func (pir *planItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.PlanItem) ([]*types.PlanItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = pir.db
  }

  if len(items) == 0 {
    return []*types.PlanItem{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
    return nil, err
  }
  return items, nil
}

func (pir *planItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.PlanItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = pir.db
  }

  var results []*types.PlanItem
  if len(itemIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", itemIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pir *planItemRepo) GetByPlanIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.PlanItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = pir.db
  }

  var results []*types.PlanItem
  if len(planIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("plan_id IN ?", planIDs).
    Order("day_of_week ASC, created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// UpdateStatus writes the status and completed_at columns together and
// reports how many rows matched, so a vanished item surfaces as not-found
// at the caller instead of being silently swallowed.
func (pir *planItemRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, status types.PlanItemStatus, completedAt *time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pir.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.PlanItem{}).
    Where("id = ?", itemID).
    Updates(map[string]interface{}{
      "status":       status,
      "completed_at": completedAt,
    })
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

func (pir *planItemRepo) CountPendingBeforeDay(ctx context.Context, tx *gorm.DB, planID uuid.UUID, day int) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pir.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.PlanItem{}).
    Where("plan_id = ? AND status = ? AND day_of_week < ?", planID, types.PlanItemStatusPending, day).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
