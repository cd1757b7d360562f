package controllers

import (
	"net/http"

	"github.com/SketchShifter/portfolio_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReferenceController 職種・技術スタックに関するコントローラー
type ReferenceController struct {
	referenceService services.ReferenceService
}

// NewReferenceController ReferenceControllerを作成
func NewReferenceController(referenceService services.ReferenceService) *ReferenceController {
	return &ReferenceController{
		referenceService: referenceService,
	}
}

// ListJobGroups 職種一覧
func (c *ReferenceController) ListJobGroups(ctx *gin.Context) {
	groups, err := c.referenceService.ListJobGroups(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, groups)
}

// ListTechStacks 技術スタック一覧
func (c *ReferenceController) ListTechStacks(ctx *gin.Context) {
	stacks, err := c.referenceService.ListTechStacks(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, stacks)
}

// TechStackStatistics 技術スタックの利用統計
func (c *ReferenceController) TechStackStatistics(ctx *gin.Context) {
	usage, err := c.referenceService.TechStackStatistics(ctx.Request.Context(), ctx.Query("job"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, usage)
}
