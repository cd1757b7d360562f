package controllers

import (
	"net/http"

	"github.com/SketchShifter/portfolio_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UserController ユーザーに関するコントローラー
type UserController struct {
	userService services.UserService
}

// NewUserController UserControllerを作成
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// GetProfile ユーザーIDでプロフィールを取得
func (c *UserController) GetProfile(ctx *gin.Context) {
	profile, err := c.userService.GetProfile(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, profile)
}
