package controllers

import (
	"net/http"

	"github.com/SketchShifter/portfolio_backend/internal/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthController 認証に関するコントローラー
type AuthController struct{}

// NewAuthController AuthControllerを作成
func NewAuthController() *AuthController {
	return &AuthController{}
}

// GetMe トークンから解決したログインユーザーを返す
func (c *AuthController) GetMe(ctx *gin.Context) {
	user := middlewares.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "認証が必要です"})
		return
	}

	respondData(ctx, http.StatusOK, user)
}
