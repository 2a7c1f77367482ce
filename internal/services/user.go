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

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	CompleteOnboarding(ctx context.Context) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id not set in request data", apperr.ErrUnauthorized)
	}
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("%w: user does not exist", apperr.ErrNotFound)
	}
	return found[0], nil
}

func (us *userService) CompleteOnboarding(ctx context.Context) (*types.User, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id not set in request data", apperr.ErrUnauthorized)
	}

	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil || len(found) == 0 || found[0] == nil {
			return fmt.Errorf("%w: user not found", apperr.ErrNotFound)
		}
		u := found[0]
		if u.OnboardedAt == nil {
			now := time.Now().UTC()
			if mErr := us.userRepo.MarkOnboarded(ctx, tx, userID, now); mErr != nil {
				return fmt.Errorf("failed to mark user onboarded: %w", mErr)
			}
			u.OnboardedAt = &now
		}
		out = u
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
