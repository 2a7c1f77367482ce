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

const (
	historyMinWeeks = 1
	historyMaxWeeks = 52
)

type CoreFiveLogService interface {
	Log(ctx context.Context, pillar string, value float64, details string, loggedAt time.Time) (*types.CoreFiveLog, error)
	History(ctx context.Context, weeks int) ([]*types.CoreFiveLog, error)
}

type coreFiveLogService struct {
	db       *gorm.DB
	log      *logger.Logger
	logRepo  repos.CoreFiveLogRepo
	insights InsightsService
}

func NewCoreFiveLogService(
	db *gorm.DB,
	log *logger.Logger,
	logRepo repos.CoreFiveLogRepo,
	insights InsightsService,
) CoreFiveLogService {
	serviceLog := log.With("service", "CoreFiveLogService")
	return &coreFiveLogService{db: db, log: serviceLog, logRepo: logRepo, insights: insights}
}

func (cls *coreFiveLogService) Log(ctx context.Context, pillar string, value float64, details string, loggedAt time.Time) (*types.CoreFiveLog, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id not set in request data", apperr.ErrUnauthorized)
	}
	parsed, err := types.ParsePillar(pillar)
	if err != nil {
		return nil, err
	}
	if loggedAt.IsZero() {
		loggedAt = time.Now().UTC()
	}
	loggedAt = loggedAt.UTC()

	row := &types.CoreFiveLog{
		ID:        uuid.New(),
		UserID:    userID,
		Pillar:    parsed,
		Value:     value,
		Details:   details,
		LoggedAt:  loggedAt,
		WeekStart: types.PlanWeekStart(loggedAt),
		CreatedAt: time.Now().UTC(),
	}
	created, err := cls.logRepo.Create(ctx, nil, []*types.CoreFiveLog{row})
	if err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	// A new measurement makes that week's cached insights stale.
	if cls.insights != nil {
		cls.insights.Invalidate(ctx, userID, row.WeekStart)
	}
	return created[0], nil
}

func (cls *coreFiveLogService) History(ctx context.Context, weeks int) ([]*types.CoreFiveLog, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id not set in request data", apperr.ErrUnauthorized)
	}
	if weeks < historyMinWeeks {
		weeks = historyMinWeeks
	}
	if weeks > historyMaxWeeks {
		weeks = historyMaxWeeks
	}

	earliest := types.PlanWeekStart(time.Now().UTC()).AddDate(0, 0, -7*(weeks-1))
	return cls.logRepo.ListByUserSince(ctx, nil, userID, earliest)
}
