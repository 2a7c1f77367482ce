package types

import (
	"time"

	"github.com/google/uuid"
)

// CoreFiveLog is one logged measurement for a pillar. WeekStart is the
// derived Monday bucket used by history queries and weekly insights.
type CoreFiveLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_pillar_logged" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Pillar    Pillar    `gorm:"column:pillar;not null;index:idx_user_pillar_logged" json:"pillar"`
	Value     float64   `gorm:"column:value;not null" json:"value"`
	Details   string    `gorm:"column:details" json:"details"`
	LoggedAt  time.Time `gorm:"column:logged_at;not null;index:idx_user_pillar_logged" json:"logged_at"`
	WeekStart time.Time `gorm:"column:week_start;not null;index" json:"week_start"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (CoreFiveLog) TableName() string { return "core_five_log" }
