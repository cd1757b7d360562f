package middlewares

import (
	"net/http"
	"strings"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// userKey ログインユーザーを保存するコンテキストのキー
const userKey = "user"

// AuthMiddleware 認証ミドルウェア
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Authorizationヘッダーを取得
		authHeader := ctx.GetHeader("Authorization")

		// ヘッダーがない場合は認証エラー
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "認証が必要です"})
			return
		}

		// Bearer トークンの形式かチェック
		if !strings.HasPrefix(authHeader, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "無効な認証形式です"})
			return
		}

		user, err := authService.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "無効なトークンです"})
			return
		}

		ctx.Set(userKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware オプショナル認証ミドルウェア（認証がない場合もエラーを返さない）
func OptionalAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			ctx.Next()
			return
		}

		user, err := authService.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err == nil {
			ctx.Set(userKey, user)
		}
		ctx.Next()
	}
}

// CurrentUser コンテキストからログインユーザーを取得 (未ログインなら nil)
func CurrentUser(ctx *gin.Context) *models.CurrentUser {
	value, exists := ctx.Get(userKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.CurrentUser)
	return user
}
