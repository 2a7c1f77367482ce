package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/wellspring-backend/internal/apperr"
	redisclient "github.com/yungbote/wellspring-backend/internal/clients/redis"
	"github.com/yungbote/wellspring-backend/internal/config"
	"github.com/yungbote/wellspring-backend/internal/logger"
	"github.com/yungbote/wellspring-backend/internal/repos"
	"github.com/yungbote/wellspring-backend/internal/requestdata"
	"github.com/yungbote/wellspring-backend/internal/scoring"
	"github.com/yungbote/wellspring-backend/internal/types"
)

// PillarInsight is the scored summary of one pillar for one week. Score is
// absent when the pillar has no scoring target or too few samples.
type PillarInsight struct {
	Pillar  types.Pillar `json:"pillar"`
	Samples int          `json:"samples"`
	Score   *float64     `json:"score,omitempty"`
}

type WeeklyInsights struct {
	WeekStart time.Time        `json:"week_start"`
	Pillars   []*PillarInsight `json:"pillars"`
	Overall   *float64         `json:"overall,omitempty"`
}

type InsightsService interface {
	Weekly(ctx context.Context, weekStart time.Time) (*WeeklyInsights, error)
	Invalidate(ctx context.Context, userID uuid.UUID, weekStart time.Time)
}

type insightsService struct {
	db             *gorm.DB
	log            *logger.Logger
	logRepo        repos.CoreFiveLogRepo
	targets        config.ScoringTargets
	minimumSamples int
	cache          redisclient.Cache
	cacheTTL       time.Duration
}

func NewInsightsService(
	db *gorm.DB,
	log *logger.Logger,
	logRepo repos.CoreFiveLogRepo,
	targets config.ScoringTargets,
	minimumSamples int,
	cache redisclient.Cache,
	cacheTTL time.Duration,
) InsightsService {
	serviceLog := log.With("service", "InsightsService")
	if minimumSamples < 1 {
		minimumSamples = 1
	}
	return &insightsService{
		db:             db,
		log:            serviceLog,
		logRepo:        logRepo,
		targets:        targets,
		minimumSamples: minimumSamples,
		cache:          cache,
		cacheTTL:       cacheTTL,
	}
}

func insightsCacheKey(userID uuid.UUID, weekStart time.Time) string {
	return fmt.Sprintf("insights:weekly:%s:%s", userID, weekStart.Format("2006-01-02"))
}

func (is *insightsService) Weekly(ctx context.Context, weekStart time.Time) (*WeeklyInsights, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id not set in request data", apperr.ErrUnauthorized)
	}
	weekStart = types.PlanWeekStart(weekStart)

	key := insightsCacheKey(userID, weekStart)
	if is.cache != nil {
		var cached WeeklyInsights
		hit, err := is.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			is.log.Warn("Insights cache read failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	logs, err := is.logRepo.ListByUserWeek(ctx, nil, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs for week: %w", err)
	}

	byPillar := map[types.Pillar][]float64{}
	sampleCount := map[types.Pillar]int{}
	for _, row := range logs {
		if row == nil {
			continue
		}
		sampleCount[row.Pillar]++
		if s := scoring.Score(row.Value, is.targets[row.Pillar]); s != nil {
			byPillar[row.Pillar] = append(byPillar[row.Pillar], *s)
		}
	}

	out := &WeeklyInsights{WeekStart: weekStart, Pillars: make([]*PillarInsight, 0, len(types.AllPillars))}
	var pillarScores []float64
	for _, pillar := range types.AllPillars {
		insight := &PillarInsight{
			Pillar:  pillar,
			Samples: sampleCount[pillar],
			Score:   scoring.Average(byPillar[pillar], is.minimumSamples),
		}
		if insight.Score != nil {
			pillarScores = append(pillarScores, *insight.Score)
		}
		out.Pillars = append(out.Pillars, insight)
	}
	out.Overall = scoring.Average(pillarScores, 1)

	if is.cache != nil && is.cacheTTL > 0 {
		if err := is.cache.SetJSON(ctx, key, out, is.cacheTTL); err != nil {
			is.log.Warn("Insights cache write failed", "error", err)
		}
	}
	return out, nil
}

func (is *insightsService) Invalidate(ctx context.Context, userID uuid.UUID, weekStart time.Time) {
	if is.cache == nil || userID == uuid.Nil {
		return
	}
	key := insightsCacheKey(userID, types.PlanWeekStart(weekStart))
	if err := is.cache.Delete(ctx, key); err != nil {
		is.log.Warn("Insights cache invalidation failed", "error", err, "key", key)
	}
}
