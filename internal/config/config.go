package config

import (
	"time"

	"github.com/yungbote/wellspring-backend/internal/logger"
	"github.com/yungbote/wellspring-backend/internal/utils"
)

// Config is loaded once in main and injected explicitly. Behavior toggles
// (like SkipOnboarding) live here rather than being read from the process
// environment at call sites, so services stay testable.
type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// SkipOnboarding lets a deployment generate plans for users that have
	// not completed onboarding yet.
	SkipOnboarding bool

	ScoringTargetsPath     string
	InsightsMinimumSamples int
	InsightsCacheTTL       time.Duration

	RedisAddr string

	MissedItemsThreshold int
}

func Load(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	insightsCacheTTLSeconds := utils.GetEnvAsInt("INSIGHTS_CACHE_TTL", 900, log)
	return Config{
		Port:            utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,

		SkipOnboarding: utils.GetEnvAsBool("SKIP_ONBOARDING", false, log),

		ScoringTargetsPath:     utils.GetEnv("SCORING_TARGETS_PATH", "configs/targets.yaml", log),
		InsightsMinimumSamples: utils.GetEnvAsInt("INSIGHTS_MINIMUM_SAMPLES", 3, log),
		InsightsCacheTTL:       time.Duration(insightsCacheTTLSeconds) * time.Second,

		RedisAddr: utils.GetEnv("REDIS_ADDR", "", log),

		MissedItemsThreshold: utils.GetEnvAsInt("MISSED_ITEMS_THRESHOLD", 3, log),
	}
}
