package controllers

import (
	"net/http"
	"strings"

	"github.com/SketchShifter/portfolio_backend/internal/middlewares"
	"github.com/SketchShifter/portfolio_backend/internal/pipeline"
	"github.com/SketchShifter/portfolio_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// PortfolioController ポートフォリオに関するコントローラー
type PortfolioController struct {
	portfolioService services.PortfolioService
	likeService      services.LikeService
}

// NewPortfolioController PortfolioControllerを作成
func NewPortfolioController(portfolioService services.PortfolioService, likeService services.LikeService) *PortfolioController {
	return &PortfolioController{
		portfolioService: portfolioService,
		likeService:      likeService,
	}
}

// List 検索条件に一致するポートフォリオの一覧
func (c *PortfolioController) List(ctx *gin.Context) {
	params, err := searchParams(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	portfolios, meta, err := c.portfolioService.Search(ctx.Request.Context(), params)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondList(ctx, portfolios, meta)
}

// searchParams クエリパラメータを検索条件に変換
func searchParams(ctx *gin.Context) (pipeline.Params, error) {
	field, err := pipeline.ParseSearchField(ctx.Query("searchType"))
	if err != nil {
		return pipeline.Params{}, err
	}
	page, err := queryInt(ctx, "page", pipeline.DefaultPage)
	if err != nil {
		return pipeline.Params{}, err
	}
	limit, err := queryInt(ctx, "limit", pipeline.DefaultLimit)
	if err != nil {
		return pipeline.Params{}, err
	}

	// techStacks は繰り返し指定とカンマ区切りの両方を受け付ける
	var techStacks []string
	for _, v := range ctx.QueryArray("techStacks") {
		techStacks = append(techStacks, strings.Split(v, ",")...)
	}

	return pipeline.Params{
		JobGroup:    ctx.Query("jobGroup"),
		TechStacks:  techStacks,
		SearchField: field,
		Keyword:     ctx.Query("keyword"),
		Sort:        pipeline.ParseSort(ctx.Query("sort")),
		Page:        page,
		Limit:       limit,
	}, nil
}

// GetByID IDでポートフォリオを取得 (閲覧数を加算)
func (c *PortfolioController) GetByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	detail, err := c.portfolioService.GetDetail(
		ctx.Request.Context(),
		id,
		middlewares.CurrentUser(ctx),
		middlewares.ViewerSession(ctx),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, detail)
}

// ToggleLike いいねを切り替える
func (c *PortfolioController) ToggleLike(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	status, err := c.likeService.Toggle(ctx.Request.Context(), id, middlewares.CurrentUser(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// Create 新しいポートフォリオを作成
func (c *PortfolioController) Create(ctx *gin.Context) {
	var input services.PortfolioInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	detail, err := c.portfolioService.Create(ctx.Request.Context(), middlewares.CurrentUser(ctx), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, detail)
}

// Update ポートフォリオを更新
func (c *PortfolioController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var input services.PortfolioInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	detail, err := c.portfolioService.Update(ctx.Request.Context(), id, middlewares.CurrentUser(ctx), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, detail)
}

// Delete ポートフォリオを削除
func (c *PortfolioController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.portfolioService.Delete(ctx.Request.Context(), id, middlewares.CurrentUser(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "ポートフォリオを削除しました"})
}

// ListByUser ユーザーのポートフォリオ一覧
func (c *PortfolioController) ListByUser(ctx *gin.Context) {
	page, err := queryInt(ctx, "page", pipeline.DefaultPage)
	if err != nil {
		respondError(ctx, err)
		return
	}
	limit, err := queryInt(ctx, "limit", pipeline.DefaultLimit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	portfolios, meta, err := c.portfolioService.ListByUser(
		ctx.Request.Context(),
		ctx.Param("userId"),
		page,
		limit,
		pipeline.ParseSort(ctx.Query("sort")),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondList(ctx, portfolios, meta)
}
