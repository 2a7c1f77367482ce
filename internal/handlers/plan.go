package handlers

import (
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/wellspring-backend/internal/requestdata"
  "github.com/yungbote/wellspring-backend/internal/services"
)

type PlanHandler struct {
  planService       services.PlanService
  generationService services.PlanGenerationService
}

func NewPlanHandler(planService services.PlanService, generationService services.PlanGenerationService) *PlanHandler {
  return &PlanHandler{planService: planService, generationService: generationService}
}

// parseWeekStart reads week_start (YYYY-MM-DD) from the query; absent means
// the current week.
func parseWeekStart(c *gin.Context) (time.Time, bool) {
  raw := c.Query("week_start")
  if raw == "" {
    return time.Now().UTC(), true
  }
  parsed, err := time.Parse("2006-01-02", raw)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
    return time.Time{}, false
  }
  return parsed, true
}

func (ph *PlanHandler) GetPlan(c *gin.Context) {
  weekStart, ok := parseWeekStart(c)
  if !ok {
    return
  }
  view, err := ph.planService.GetPlanForWeek(c.Request.Context(), weekStart)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, view)
}

func (ph *PlanHandler) Generate(c *gin.Context) {
  var req struct {
    WeekStart   string      `json:"week_start"`
  }
  // An empty body is fine; it means the current week.
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
  run, err := ph.generationService.Enqueue(c.Request.Context(), requestdata.UserID(c.Request.Context()), weekStart)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusAccepted, gin.H{"run": run})
}

func (ph *PlanHandler) GetGenerationRun(c *gin.Context) {
  runID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
    return
  }
  run, err := ph.generationService.GetRun(c.Request.Context(), requestdata.UserID(c.Request.Context()), runID)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"run": run})
}

func (ph *PlanHandler) UpdateItemStatus(c *gin.Context) {
  itemID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
    return
  }
  var req struct {
    Status      string      `json:"status"`
    Reason      string      `json:"reason"`
  }
  if bErr := c.ShouldBindJSON(&req); bErr != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  item, err := ph.planService.UpdateItemStatus(c.Request.Context(), itemID, req.Status, req.Reason)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"item": item})
}
