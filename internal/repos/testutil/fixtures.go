package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/wellspring-backend/internal/types"
)

func SeedUser(tb testing.TB, tx *gorm.DB) *types.User {
	tb.Helper()
	user := &types.User{
		ID:        uuid.New(),
		Email:     fmt.Sprintf("%s@example.com", uuid.New()),
		Password:  "pw",
		FirstName: "Test",
		LastName:  "User",
	}
	if err := tx.Create(user).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return user
}

func SeedPlan(tb testing.TB, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) *types.WeeklyPlan {
	tb.Helper()
	plan := &types.WeeklyPlan{
		ID:        uuid.New(),
		UserID:    userID,
		WeekStart: types.PlanWeekStart(weekStart),
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.Create(plan).Error; err != nil {
		tb.Fatalf("seed plan: %v", err)
	}
	return plan
}

func SeedPlanItem(tb testing.TB, tx *gorm.DB, planID uuid.UUID, pillar types.Pillar, day int, status types.PlanItemStatus) *types.PlanItem {
	tb.Helper()
	now := time.Now().UTC()
	item := &types.PlanItem{
		ID:        uuid.New(),
		PlanID:    planID,
		Pillar:    pillar,
		DayOfWeek: day,
		Title:     fmt.Sprintf("%s item day %d", pillar, day),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == types.PlanItemStatusDone {
		item.CompletedAt = &now
	}
	if err := tx.Create(item).Error; err != nil {
		tb.Fatalf("seed plan item: %v", err)
	}
	return item
}
