package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/wellspring-backend/internal/logger"
  "github.com/yungbote/wellspring-backend/internal/types"
)

// AdaptationRepo only ever inserts and reads; adaptation rows are immutable
// by contract, so there is no update or upsert here.
type AdaptationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.Adaptation) ([]*types.Adaptation, error)
  ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Adaptation, error)
  ListByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.Adaptation, error)
}

type adaptationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAdaptationRepo(db *gorm.DB, baseLog *logger.Logger) AdaptationRepo {
  repoLog := baseLog.With("repo", "AdaptationRepo")
  return &adaptationRepo{db: db, log: repoLog}
}

func (ar *adaptationRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Adaptation) ([]*types.Adaptation, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(rows) == 0 {
    return []*types.Adaptation{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (ar *adaptationRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Adaptation, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Adaptation
  if userID == uuid.Nil {
    return results, nil
  }

  query := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC, id DESC")
  if limit > 0 {
    query = query.Limit(limit)
  }
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *adaptationRepo) ListByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.Adaptation, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Adaptation
  if planID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("weekly_plan_id = ?", planID).
    Order("created_at DESC, id DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
