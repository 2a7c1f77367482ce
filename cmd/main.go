package main

import (
  "context"
  "fmt"
  "os"
  "github.com/yungbote/wellspring-backend/internal/clients/redis"
  "github.com/yungbote/wellspring-backend/internal/config"
  "github.com/yungbote/wellspring-backend/internal/db"
  "github.com/yungbote/wellspring-backend/internal/handlers"
  "github.com/yungbote/wellspring-backend/internal/logger"
  "github.com/yungbote/wellspring-backend/internal/middleware"
  "github.com/yungbote/wellspring-backend/internal/observability"
  "github.com/yungbote/wellspring-backend/internal/repos"
  "github.com/yungbote/wellspring-backend/internal/server"
  "github.com/yungbote/wellspring-backend/internal/services"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  cfg := config.Load(log)

  // Tracing
  otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "wellspring",
    Environment: os.Getenv("ENVIRONMENT"),
    Version:     os.Getenv("SERVICE_VERSION"),
  })
  if otelShutdown != nil {
    defer otelShutdown(context.Background())
  }

  // Scoring targets
  targets, err := config.LoadScoringTargets(cfg.ScoringTargetsPath, log)
  if err != nil {
    log.Warn("Scoring targets load failed", "error", err)
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis (optional; insights fall back to recomputation without it)
  var insightsCache redis.Cache
  if cfg.RedisAddr != "" {
    cache, cErr := redis.NewCache(log)
    if cErr != nil {
      log.Warn("Redis init failed, insights caching disabled", "error", cErr)
    } else {
      insightsCache = cache
      defer cache.Close()
    }
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  weeklyPlanRepo := repos.NewWeeklyPlanRepo(thePG, log)
  planItemRepo := repos.NewPlanItemRepo(thePG, log)
  adaptationRepo := repos.NewAdaptationRepo(thePG, log)
  coreFiveLogRepo := repos.NewCoreFiveLogRepo(thePG, log)
  planGenRunRepo := repos.NewPlanGenerationRunRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
  userService := services.NewUserService(thePG, log, userRepo)
  adaptationService := services.NewAdaptationService(thePG, log, adaptationRepo, weeklyPlanRepo, planItemRepo, cfg.MissedItemsThreshold)
  planService := services.NewPlanService(thePG, log, weeklyPlanRepo, planItemRepo, adaptationService)
  planAuthor := services.NewTemplatePlanAuthor(log)
  planGenService := services.NewPlanGenerationService(thePG, log, userRepo, weeklyPlanRepo, planItemRepo, adaptationRepo, coreFiveLogRepo, planGenRunRepo, planAuthor, cfg.SkipOnboarding)
  planGenService.StartWorker(context.Background())
  insightsService := services.NewInsightsService(thePG, log, coreFiveLogRepo, targets, cfg.InsightsMinimumSamples, insightsCache, cfg.InsightsCacheTTL)
  coreFiveLogService := services.NewCoreFiveLogService(thePG, log, coreFiveLogRepo, insightsService)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  planHandler := handlers.NewPlanHandler(planService, planGenService)
  logHandler := handlers.NewLogHandler(coreFiveLogService)
  insightsHandler := handlers.NewInsightsHandler(insightsService)
  adaptationHandler := handlers.NewAdaptationHandler(adaptationService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:          authHandler,
    AuthMiddleware:       authMiddleware,
    UserHandler:          userHandler,
    PlanHandler:          planHandler,
    LogHandler:           logHandler,
    InsightsHandler:      insightsHandler,
    AdaptationHandler:    adaptationHandler,
  })

  fmt.Printf("Server listening on :%s\n", cfg.Port)
  if err := router.Run(":" + cfg.Port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
