package types

import (
	"fmt"
	"strings"

	"github.com/yungbote/wellspring-backend/internal/apperr"
)

// PlanItemStatus is the closed lifecycle of a scheduled plan item. There is
// no transition back to pending; a new week starts items fresh.
type PlanItemStatus string

const (
	PlanItemStatusPending PlanItemStatus = "pending"
	PlanItemStatusDone    PlanItemStatus = "done"
	PlanItemStatusSkipped PlanItemStatus = "skipped"
)

func ParsePlanItemStatus(raw string) (PlanItemStatus, error) {
	switch PlanItemStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case PlanItemStatusPending:
		return PlanItemStatusPending, nil
	case PlanItemStatusDone:
		return PlanItemStatusDone, nil
	case PlanItemStatusSkipped:
		return PlanItemStatusSkipped, nil
	default:
		return "", fmt.Errorf("%w: invalid plan item status %q", apperr.ErrInvalidArgument, raw)
	}
}

// AdaptationTrigger enumerates the behavioral signals that may append an
// adaptation record.
type AdaptationTrigger string

const (
	AdaptationTriggerMissedItems    AdaptationTrigger = "missed_items"
	AdaptationTriggerItemSkipped    AdaptationTrigger = "item_skipped"
	AdaptationTriggerConsistencyGap AdaptationTrigger = "consistency_gap"
)

func ParseAdaptationTrigger(raw string) (AdaptationTrigger, error) {
	switch AdaptationTrigger(strings.ToLower(strings.TrimSpace(raw))) {
	case AdaptationTriggerMissedItems:
		return AdaptationTriggerMissedItems, nil
	case AdaptationTriggerItemSkipped:
		return AdaptationTriggerItemSkipped, nil
	case AdaptationTriggerConsistencyGap:
		return AdaptationTriggerConsistencyGap, nil
	default:
		return "", fmt.Errorf("%w: invalid adaptation trigger %q", apperr.ErrInvalidArgument, raw)
	}
}

// Pillar is one of the core five wellness domains.
type Pillar string

const (
	PillarNutrition  Pillar = "nutrition"
	PillarMovement   Pillar = "movement"
	PillarSleep      Pillar = "sleep"
	PillarStress     Pillar = "stress"
	PillarConnection Pillar = "connection"
)

var AllPillars = []Pillar{
	PillarNutrition,
	PillarMovement,
	PillarSleep,
	PillarStress,
	PillarConnection,
}

func ParsePillar(raw string) (Pillar, error) {
	normalized := Pillar(strings.ToLower(strings.TrimSpace(raw)))
	for _, p := range AllPillars {
		if normalized == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: invalid pillar %q", apperr.ErrInvalidArgument, raw)
}
