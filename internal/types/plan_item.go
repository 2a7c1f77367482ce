package types

import (
	"time"

	"github.com/google/uuid"
)

// PlanItem is one scheduled activity inside a weekly plan. CompletedAt is
// present if and only if Status is done. DayOfWeek is Monday-based (0..6)
// to match the plan's week_start alignment.
type PlanItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"plan_id"`
	Plan        *WeeklyPlan    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"plan,omitempty"`
	Pillar      Pillar         `gorm:"column:pillar;not null" json:"pillar"`
	DayOfWeek   int            `gorm:"column:day_of_week;not null" json:"day_of_week"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Status      PlanItemStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	CompletedAt *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (PlanItem) TableName() string { return "plan_item" }
