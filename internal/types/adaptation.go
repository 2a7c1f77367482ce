package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Adaptation is an append-only record of why a user's plan should change.
// Rows are never updated or deduplicated; repeated skips of the same item
// intentionally produce repeated signals.
type Adaptation struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	PlanID      uuid.UUID         `gorm:"type:uuid;not null;index;column:weekly_plan_id" json:"weekly_plan_id"`
	Plan        *WeeklyPlan       `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"plan,omitempty"`
	Trigger     AdaptationTrigger `gorm:"column:trigger_type;not null" json:"trigger_type"`
	Description string            `gorm:"column:description" json:"description"`
	ChangesMade datatypes.JSON    `gorm:"type:jsonb;column:changes_made" json:"changes_made"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
}

func (Adaptation) TableName() string { return "adaptation" }

// AdaptationChange is the structured payload stored in ChangesMade.
type AdaptationChange struct {
	Pillar    Pillar     `json:"pillar"`
	DayOfWeek int        `json:"day_of_week"`
	ItemID    *uuid.UUID `json:"item_id,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}
