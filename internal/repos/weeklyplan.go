package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/wellspring-backend/internal/logger"
  "github.com/yungbote/wellspring-backend/internal/types"
)

type WeeklyPlanRepo interface {
  Create(ctx context.Context, tx *gorm.DB, plans []*types.WeeklyPlan) ([]*types.WeeklyPlan, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.WeeklyPlan, error)
  GetByUserAndWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (*types.WeeklyPlan, error)
  ListUserIDsForWeek(ctx context.Context, tx *gorm.DB, weekStart time.Time) ([]uuid.UUID, error)
  FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type weeklyPlanRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWeeklyPlanRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyPlanRepo {
  repoLog := baseLog.With("repo", "WeeklyPlanRepo")
  return &weeklyPlanRepo{db: db, log: repoLog}
}

func (wpr *weeklyPlanRepo) Create(ctx context.Context, tx *gorm.DB, plans []*types.WeeklyPlan) ([]*types.WeeklyPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = wpr.db
  }

  if len(plans) == 0 {
    return []*types.WeeklyPlan{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&plans).Error; err != nil {
    return nil, err
  }
  return plans, nil
}

func (wpr *weeklyPlanRepo) GetByIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.WeeklyPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = wpr.db
  }

  var results []*types.WeeklyPlan
  if len(planIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", planIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetByUserAndWeek returns nil when no plan exists for the pair; the unique
// index guarantees there is never more than one.
func (wpr *weeklyPlanRepo) GetByUserAndWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (*types.WeeklyPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = wpr.db
  }

  if userID == uuid.Nil {
    return nil, nil
  }

  var result types.WeeklyPlan
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND week_start = ?", userID, weekStart).
    First(&result).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (wpr *weeklyPlanRepo) ListUserIDsForWeek(ctx context.Context, tx *gorm.DB, weekStart time.Time) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = wpr.db
  }

  var results []uuid.UUID
  if err := transaction.WithContext(ctx).
    Model(&types.WeeklyPlan{}).
    Where("week_start = ?", weekStart).
    Pluck("user_id", &results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (wpr *weeklyPlanRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = wpr.db
  }

  if len(userIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Unscoped().
    Where("user_id IN ?", userIDs).
    Delete(&types.WeeklyPlan{}).Error
}
