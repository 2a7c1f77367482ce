package types

import (
	"time"

	"github.com/google/uuid"
)

// PlanGenerationRun tracks one asynchronous generation request. Clients get
// a run id back immediately and poll it while the worker authors the plan.
type PlanGenerationRun struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	WeekStart   time.Time  `gorm:"column:week_start;not null" json:"week_start"`
	PlanID      *uuid.UUID `gorm:"type:uuid;column:plan_id;index" json:"plan_id,omitempty"`
	Status      string     `gorm:"column:status;not null;index" json:"status"` // queued|running|succeeded|failed
	Attempts    int        `gorm:"column:attempts;not null;default:0" json:"attempts"`
	Error       string     `gorm:"column:error" json:"error,omitempty"`
	LastErrorAt *time.Time `gorm:"column:last_error_at" json:"last_error_at,omitempty"`
	LockedAt    *time.Time `gorm:"column:locked_at;index" json:"locked_at,omitempty"`
	HeartbeatAt *time.Time `gorm:"column:heartbeat_at;index" json:"heartbeat_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (PlanGenerationRun) TableName() string { return "plan_generation_run" }
