package controllers

import (
	"net/http"

	"github.com/SketchShifter/portfolio_backend/internal/middlewares"
	"github.com/SketchShifter/portfolio_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UploadController 画像アップロードに関するコントローラー
type UploadController struct {
	imageService services.ImageService
}

// NewUploadController UploadControllerを作成
func NewUploadController(imageService services.ImageService) *UploadController {
	return &UploadController{
		imageService: imageService,
	}
}

// UploadImage 画像をアップロードしてURLを返す
func (c *UploadController) UploadImage(ctx *gin.Context) {
	// ファイルを取得
	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "画像ファイルが必要です"})
		return
	}
	defer file.Close()

	url, err := c.imageService.Store(
		ctx.Request.Context(),
		middlewares.CurrentUser(ctx),
		file,
		header.Filename,
		header.Size,
		ctx.PostForm("purpose"),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "url": url})
}
