package handlers

import (
  "net/http"
  "strconv"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/wellspring-backend/internal/requestdata"
  "github.com/yungbote/wellspring-backend/internal/services"
  "github.com/yungbote/wellspring-backend/internal/types"
)

type AdaptationHandler struct {
  adaptationService   services.AdaptationService
}

func NewAdaptationHandler(adaptationService services.AdaptationService) *AdaptationHandler {
  return &AdaptationHandler{adaptationService: adaptationService}
}

func (ah *AdaptationHandler) List(c *gin.Context) {
  limit := 50
  if raw := c.Query("limit"); raw != "" {
    parsed, err := strconv.Atoi(raw)
    if err != nil || parsed < 1 {
      c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
      return
    }
    limit = parsed
  }
  rows, err := ah.adaptationService.ListForUser(c.Request.Context(), requestdata.UserID(c.Request.Context()), limit)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"adaptations": rows})
}

// Record is the external-trigger path: collaborating systems (or operators)
// append a signal the service did not observe itself.
func (ah *AdaptationHandler) Record(c *gin.Context) {
  var req struct {
    PlanID      string                    `json:"plan_id"`
    Trigger     string                    `json:"trigger_type"`
    Description string                    `json:"description"`
    Change      *types.AdaptationChange   `json:"change"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  planID, err := uuid.Parse(req.PlanID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
    return
  }
  trigger, err := types.ParseAdaptationTrigger(req.Trigger)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  row, err := ah.adaptationService.Record(c.Request.Context(), requestdata.UserID(c.Request.Context()), planID, trigger, req.Description, req.Change)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"adaptation": row})
}

func (ah *AdaptationHandler) DetectMissed(c *gin.Context) {
  var req struct {
    WeekStart   string      `json:"week_start"`
  }
  _ = c.ShouldBindJSON(&req)
  weekStart := time.Now().UTC()
  if req.WeekStart != "" {
    parsed, err := time.Parse("2006-01-02", req.WeekStart)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
      return
    }
    weekStart = parsed
  }
  recorded, err := ah.adaptationService.DetectMissedItems(c.Request.Context(), weekStart, time.Now().UTC())
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"recorded": recorded})
}
