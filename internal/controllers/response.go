package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/pagination"

	"github.com/gin-gonic/gin"
)

// statusOf エラー種別からHTTPステータスを決める
func statusOf(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidFilter), errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrStorageTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError エラーレスポンスを返す
// 500 系は内部のエラー内容を返さずログに残す
func respondError(ctx *gin.Context, err error) {
	status := statusOf(err)
	message := err.Error()

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		if status == http.StatusInternalServerError {
			message = "サーバーエラーが発生しました"
		}
	}

	ctx.JSON(status, gin.H{"success": false, "error": message})
}

// respondList 一覧レスポンスを返す
func respondList(ctx *gin.Context, data interface{}, meta pagination.Metadata) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": data, "pagination": meta})
}

// respondData 単体レスポンスを返す
func respondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, gin.H{"success": true, "data": data})
}

// parseID パスパラメータのIDを解析
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "無効なIDです"})
		return 0, false
	}
	return uint(id), true
}

// queryInt 整数のクエリパラメータ (省略時は既定値)
func queryInt(ctx *gin.Context, name string, def int) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewInvalidArgumentError("%sは整数で指定してください: %s", name, raw)
	}
	return v, nil
}
