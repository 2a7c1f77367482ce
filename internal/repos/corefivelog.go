package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/wellspring-backend/internal/logger"
  "github.com/yungbote/wellspring-backend/internal/types"
)

type CoreFiveLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.CoreFiveLog) ([]*types.CoreFiveLog, error)
  ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, earliestWeekStart time.Time) ([]*types.CoreFiveLog, error)
  ListByUserWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) ([]*types.CoreFiveLog, error)
}

type coreFiveLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCoreFiveLogRepo(db *gorm.DB, baseLog *logger.Logger) CoreFiveLogRepo {
  repoLog := baseLog.With("repo", "CoreFiveLogRepo")
  return &coreFiveLogRepo{db: db, log: repoLog}
}

func (clr *coreFiveLogRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.CoreFiveLog) ([]*types.CoreFiveLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }

  if len(rows) == 0 {
    return []*types.CoreFiveLog{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

// ListByUserSince orders newest week first, then newest log, with id as a
// deterministic tiebreaker.
func (clr *coreFiveLogRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, earliestWeekStart time.Time) ([]*types.CoreFiveLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }

  var results []*types.CoreFiveLog
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND week_start >= ?", userID, earliestWeekStart).
    Order("week_start DESC, logged_at DESC, id DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (clr *coreFiveLogRepo) ListByUserWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) ([]*types.CoreFiveLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }

  var results []*types.CoreFiveLog
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND week_start = ?", userID, weekStart).
    Order("logged_at ASC, id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
