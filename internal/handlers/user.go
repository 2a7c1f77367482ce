package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/wellspring-backend/internal/services"
)

type UserHandler struct {
  userService     services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  me, err := uh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"me": me})
}

func (uh *UserHandler) CompleteOnboarding(c *gin.Context) {
  me, err := uh.userService.CompleteOnboarding(c.Request.Context())
  if err != nil {
    RespondMapped(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"me": me})
}
