package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/wellspring-backend/internal/services"
)

type InsightsHandler struct {
  insightsService   services.InsightsService
}

func NewInsightsHandler(insightsService services.InsightsService) *InsightsHandler {
  return &InsightsHandler{insightsService: insightsService}
}

func (ih *InsightsHandler) Weekly(c *gin.Context) {
  weekStart, ok := parseWeekStart(c)
  if !ok {
    return
  }
  insights, err := ih.insightsService.Weekly(c.Request.Context(), weekStart)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"insights": insights})
}
