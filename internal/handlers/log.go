package handlers

import (
  "net/http"
  "strconv"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/wellspring-backend/internal/services"
)

type LogHandler struct {
  logService      services.CoreFiveLogService
}

func NewLogHandler(logService services.CoreFiveLogService) *LogHandler {
  return &LogHandler{logService: logService}
}

func (lh *LogHandler) Create(c *gin.Context) {
  var req struct {
    Pillar      string      `json:"pillar"`
    Value       *float64    `json:"value"`
    Details     string      `json:"details"`
    LoggedAt    string      `json:"logged_at"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if req.Value == nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
    return
  }
  var loggedAt time.Time
  if req.LoggedAt != "" {
    parsed, err := time.Parse(time.RFC3339, req.LoggedAt)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "logged_at must be RFC3339"})
      return
    }
    loggedAt = parsed
  }
  row, err := lh.logService.Log(c.Request.Context(), req.Pillar, *req.Value, req.Details, loggedAt)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"log": row})
}

func (lh *LogHandler) History(c *gin.Context) {
  weeks := 4
  if raw := c.Query("weeks"); raw != "" {
    parsed, err := strconv.Atoi(raw)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "weeks must be an integer"})
      return
    }
    weeks = parsed
  }
  rows, err := lh.logService.History(c.Request.Context(), weeks)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"logs": rows})
}
