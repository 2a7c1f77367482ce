package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/yungbote/wellspring-backend/internal/handlers"
  "github.com/yungbote/wellspring-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler         *handlers.AuthHandler
  AuthMiddleware      *middleware.AuthMiddleware
  UserHandler         *handlers.UserHandler
  PlanHandler         *handlers.PlanHandler
  LogHandler          *handlers.LogHandler
  InsightsHandler     *handlers.InsightsHandler
  AdaptationHandler   *handlers.AdaptationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(otelgin.Middleware("wellspring"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))


// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/api/register", cfg.AuthHandler.Register)
  router.POST("/api/login", cfg.AuthHandler.Login)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  protected.POST("/user/onboarding/complete", cfg.UserHandler.CompleteOnboarding)

  api := protected.Group("/api")
  // Plan
  api.GET("/plan", cfg.PlanHandler.GetPlan)
  api.POST("/plan/generate", cfg.PlanHandler.Generate)
  api.GET("/plan/generation/:id", cfg.PlanHandler.GetGenerationRun)
  api.PATCH("/plan/items/:id/status", cfg.PlanHandler.UpdateItemStatus)
  // Logs
  api.POST("/logs", cfg.LogHandler.Create)
  api.GET("/logs/history", cfg.LogHandler.History)
  // Insights
  api.GET("/insights/weekly", cfg.InsightsHandler.Weekly)
  // Adaptations
  api.GET("/adaptations", cfg.AdaptationHandler.List)
  api.POST("/adaptations", cfg.AdaptationHandler.Record)
  api.POST("/adaptations/detect-missed", cfg.AdaptationHandler.DetectMissed)

  return router
}
