package repository

import (
	"context"

	"github.com/SketchShifter/portfolio_backend/internal/models"

	"gorm.io/gorm"
)

// TechStackRepository 技術スタックに関するデータベース操作を行うインターフェース
type TechStackRepository interface {
	List(ctx context.Context) ([]models.TechStack, error)
	Statistics(ctx context.Context, jobGroupID *uint) ([]models.TechStackUsage, error)
}

// techStackRepository TechStackRepositoryの実装
type techStackRepository struct {
	db *gorm.DB
}

// NewTechStackRepository TechStackRepositoryを作成
func NewTechStackRepository(db *gorm.DB) TechStackRepository {
	return &techStackRepository{db: db}
}

// List 技術スタック一覧 (スキル名順)
func (r *techStackRepository) List(ctx context.Context) ([]models.TechStack, error) {
	var stacks []models.TechStack
	if err := conn(ctx, r.db).Order("skill_name").Find(&stacks).Error; err != nil {
		return nil, translateError(ctx, err)
	}
	return stacks, nil
}

type techStackUsageRow struct {
	SkillName  string
	BgColor    string
	TextColor  string
	JobGroupID uint
	TotalCount int64
}

// Statistics スキルごとの利用ポートフォリオ数 (多い順)
// jobGroupID を指定するとその職種の技術スタックだけを集計する
func (r *techStackRepository) Statistics(ctx context.Context, jobGroupID *uint) ([]models.TechStackUsage, error) {
	query := conn(ctx, r.db).Model(&models.TechStack{}).
		Select("tech_stacks.skill_name, tech_stacks.bg_color, tech_stacks.text_color, tech_stacks.job_group_id, " +
			"(SELECT COUNT(DISTINCT portfolio_skills.portfolio_id) FROM portfolio_skills " +
			"WHERE portfolio_skills.skill_name = tech_stacks.skill_name) AS total_count")
	if jobGroupID != nil {
		query = query.Where("tech_stacks.job_group_id = ?", *jobGroupID)
	}

	var rows []techStackUsageRow
	if err := query.Order("total_count DESC, tech_stacks.skill_name").Scan(&rows).Error; err != nil {
		return nil, translateError(ctx, err)
	}

	usages := make([]models.TechStackUsage, 0, len(rows))
	for _, row := range rows {
		usages = append(usages, models.TechStackUsage{
			TechStackInfo: models.TechStackInfo{
				Skill:      row.SkillName,
				BgColor:    row.BgColor,
				TextColor:  row.TextColor,
				JobGroupID: row.JobGroupID,
			},
			TotalCount: row.TotalCount,
		})
	}
	return usages, nil
}
