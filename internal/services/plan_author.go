package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yungbote/wellspring-backend/internal/logger"
	"github.com/yungbote/wellspring-backend/internal/types"
)

// templateAuthor builds a week from a fixed per-pillar template and then
// eases off pillars the user has been skipping. It is fully deterministic
// for the same user history.
type templateAuthor struct {
	log *logger.Logger
}

func NewTemplatePlanAuthor(baseLog *logger.Logger) PlanAuthor {
	return &templateAuthor{log: baseLog.With("service", "TemplatePlanAuthor")}
}

type templateItem struct {
	dayOfWeek  int
	title      string
	lightTitle string
}

// Base week: a standard and a light variant per slot. Days are
// Monday-based to match plan alignment.
var weekTemplate = map[types.Pillar][]templateItem{
	types.PillarMovement: {
		{dayOfWeek: 0, title: "30 minute brisk walk", lightTitle: "10 minute walk"},
		{dayOfWeek: 2, title: "Strength session", lightTitle: "15 minute stretch"},
		{dayOfWeek: 5, title: "45 minute cardio", lightTitle: "20 minute walk"},
	},
	types.PillarNutrition: {
		{dayOfWeek: 0, title: "Prep vegetables for the week", lightTitle: "Add one vegetable to dinner"},
		{dayOfWeek: 3, title: "Cook a home meal", lightTitle: "Swap one snack for fruit"},
	},
	types.PillarSleep: {
		{dayOfWeek: 1, title: "Screens off an hour before bed", lightTitle: "Screens off 15 minutes before bed"},
		{dayOfWeek: 4, title: "In bed by 10:30pm", lightTitle: "In bed 15 minutes earlier than usual"},
	},
	types.PillarStress: {
		{dayOfWeek: 2, title: "10 minute breathing practice", lightTitle: "3 deep breaths before lunch"},
		{dayOfWeek: 6, title: "Unplugged afternoon", lightTitle: "One unplugged hour"},
	},
	types.PillarConnection: {
		{dayOfWeek: 3, title: "Call a friend or family member", lightTitle: "Send a check-in message"},
		{dayOfWeek: 6, title: "Shared meal with someone", lightTitle: "Coffee with a friend"},
	},
}

const skipEaseThreshold = 2

func (ta *templateAuthor) AuthorWeek(ctx context.Context, user *types.User, weekStart time.Time, recentLogs []*types.CoreFiveLog, recentAdaptations []*types.Adaptation) ([]PlanItemDraft, error) {
	skipsByPillar := map[types.Pillar]int{}
	missedWeeks := 0
	for _, a := range recentAdaptations {
		if a == nil {
			continue
		}
		switch a.Trigger {
		case types.AdaptationTriggerItemSkipped:
			var change types.AdaptationChange
			if len(a.ChangesMade) > 0 {
				if err := json.Unmarshal(a.ChangesMade, &change); err != nil {
					ta.log.Warn("Unreadable adaptation payload", "error", err, "adaptation_id", a.ID)
					continue
				}
				skipsByPillar[change.Pillar]++
			}
		case types.AdaptationTriggerMissedItems:
			missedWeeks++
		}
	}

	drafts := make([]PlanItemDraft, 0, 12)
	for _, pillar := range types.AllPillars {
		slots := weekTemplate[pillar]
		eased := skipsByPillar[pillar] >= skipEaseThreshold
		for i, slot := range slots {
			// Users who missed whole batches of items get a shorter week:
			// keep only the first slot per pillar.
			if missedWeeks > 0 && i > 0 {
				continue
			}
			title := slot.title
			if eased {
				title = slot.lightTitle
			}
			drafts = append(drafts, PlanItemDraft{
				Pillar:    pillar,
				DayOfWeek: slot.dayOfWeek,
				Title:     title,
			})
		}
	}
	return drafts, nil
}
