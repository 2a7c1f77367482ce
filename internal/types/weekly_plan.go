package types

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyPlan is the canonical plan for one (user, week_start) pair. The
// composite unique index is what makes concurrent generation attempts
// collapse to a single row.
type WeeklyPlan struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_user_week,unique" json:"user_id"`
	User      *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	WeekStart time.Time   `gorm:"column:week_start;not null;index:idx_user_week,unique" json:"week_start"`
	Items     []*PlanItem `gorm:"foreignKey:PlanID" json:"items,omitempty"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
}

func (WeeklyPlan) TableName() string { return "weekly_plan" }
