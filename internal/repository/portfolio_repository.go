package repository

import (
	"context"
	"errors"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/pipeline"

	"gorm.io/gorm"
)

// PortfolioRepository ポートフォリオに関するデータベース操作を行うインターフェース
type PortfolioRepository interface {
	Execute(ctx context.Context, p pipeline.Pipeline) ([]models.PortfolioView, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Portfolio, error)
	Create(ctx context.Context, portfolio *models.Portfolio) error
	Update(ctx context.Context, portfolio *models.Portfolio) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

// portfolioRepository PortfolioRepositoryの実装
type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository PortfolioRepositoryを作成
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

// Execute パイプラインを実行し、ページの結果とフィルタ後の総件数を返す
func (r *portfolioRepository) Execute(ctx context.Context, p pipeline.Pipeline) ([]models.PortfolioView, int64, error) {
	db := conn(ctx, r.db)

	filters, err := r.filterScopes(ctx, db, p.Filters())
	if err != nil {
		return nil, 0, err
	}

	// 総件数はフィルタのみで計算
	var total int64
	if err := db.Model(&models.Portfolio{}).Scopes(filters...).Count(&total).Error; err != nil {
		return nil, 0, translateError(ctx, err)
	}

	query := db.Model(&models.Portfolio{}).Scopes(filters...)
	if p.Enriched() {
		query = query.Scopes(enrichScope)
	}
	query = query.Scopes(sortScope(p.Sort()))
	if w, ok := p.Window(); ok {
		query = query.Scopes(windowScope(w))
	}

	var portfolios []models.Portfolio
	if err := query.
		Preload("Tags", orderByID).
		Preload("Skills", orderByID).
		Find(&portfolios).Error; err != nil {
		return nil, 0, translateError(ctx, err)
	}

	var techStacks map[string]models.TechStackInfo
	if p.Enriched() {
		techStacks, err = r.resolveTechStacks(ctx, db, portfolios)
		if err != nil {
			return nil, 0, err
		}
	}

	views := make([]models.PortfolioView, 0, len(portfolios))
	for _, portfolio := range portfolios {
		views = append(views, models.NewPortfolioView(portfolio, techStackInfo(portfolio, techStacks)))
	}

	return views, total, nil
}

// filterScopes フィルタステージをクエリ条件に変換 (職種名はここで ID に解決する)
func (r *portfolioRepository) filterScopes(ctx context.Context, db *gorm.DB, stages []pipeline.Stage) ([]scope, error) {
	scopes := make([]scope, 0, len(stages))
	for _, stage := range stages {
		switch s := stage.(type) {
		case pipeline.JobGroupFilter:
			var jobGroup models.JobGroup
			if err := db.Where("name = ?", s.Name).First(&jobGroup).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, models.NewInvalidFilterError("存在しない職種です: %s", s.Name)
				}
				return nil, translateError(ctx, err)
			}
			scopes = append(scopes, jobGroupScope(jobGroup.ID))
		case pipeline.TechStackFilter:
			scopes = append(scopes, techStackScope(s.Skills))
		case pipeline.KeywordFilter:
			scopes = append(scopes, keywordScope(s))
		case pipeline.OwnerFilter:
			scopes = append(scopes, ownerScope(s.UserID))
		}
	}
	return scopes, nil
}

// resolveTechStacks 結果に含まれるスキル名をまとめて技術スタック情報に解決
func (r *portfolioRepository) resolveTechStacks(ctx context.Context, db *gorm.DB, portfolios []models.Portfolio) (map[string]models.TechStackInfo, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range portfolios {
		for _, name := range p.SkillNames() {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return nil, nil
	}

	var stacks []models.TechStack
	if err := db.Where("skill_name IN ?", names).Find(&stacks).Error; err != nil {
		return nil, translateError(ctx, err)
	}

	infos := make(map[string]models.TechStackInfo, len(stacks))
	for _, s := range stacks {
		infos[s.SkillName] = s.Info()
	}
	return infos, nil
}

// techStackInfo 登録順を保ったまま解決できたスキルだけを返す
func techStackInfo(p models.Portfolio, infos map[string]models.TechStackInfo) []models.TechStackInfo {
	out := make([]models.TechStackInfo, 0, len(p.Skills))
	for _, name := range p.SkillNames() {
		if info, ok := infos[name]; ok {
			out = append(out, info)
		}
	}
	return out
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// FindByID IDでポートフォリオを検索
func (r *portfolioRepository) FindByID(ctx context.Context, id uint) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := conn(ctx, r.db).
		Preload("Tags", orderByID).
		Preload("Skills", orderByID).
		First(&portfolio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ポートフォリオ", id)
		}
		return nil, translateError(ctx, err)
	}
	return &portfolio, nil
}

// Create 新しいポートフォリオを作成 (タグ・技術スタックも保存)
func (r *portfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	return translateError(ctx, conn(ctx, r.db).Create(portfolio).Error)
}

// Update ポートフォリオを更新 (タグ・技術スタックは置き換え)
// 存在確認は呼び出し側で行うこと
func (r *portfolioRepository) Update(ctx context.Context, portfolio *models.Portfolio) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(portfolio).
			Select("title", "contents", "images", "job_group_id", "thumbnail_image", "updated_at").
			Updates(portfolio).Error; err != nil {
			return err
		}

		if err := tx.Where("portfolio_id = ?", portfolio.ID).Delete(&models.PortfolioTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", portfolio.ID).Delete(&models.PortfolioSkill{}).Error; err != nil {
			return err
		}

		for i := range portfolio.Tags {
			portfolio.Tags[i].ID = 0
			portfolio.Tags[i].PortfolioID = portfolio.ID
		}
		for i := range portfolio.Skills {
			portfolio.Skills[i].ID = 0
			portfolio.Skills[i].PortfolioID = portfolio.ID
		}
		if len(portfolio.Tags) > 0 {
			if err := tx.Create(&portfolio.Tags).Error; err != nil {
				return err
			}
		}
		if len(portfolio.Skills) > 0 {
			if err := tx.Create(&portfolio.Skills).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(ctx, err)
}

// Delete ポートフォリオと関連するいいね・タグ・技術スタックを削除
func (r *portfolioRepository) Delete(ctx context.Context, id uint) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.PortfolioTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.PortfolioSkill{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Portfolio{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("ポートフォリオ", id)
		}
		return nil
	})
	return translateError(ctx, err)
}

// IncrementViews 閲覧数を 1 増加
func (r *portfolioRepository) IncrementViews(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).
		Model(&models.Portfolio{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return translateError(ctx, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("ポートフォリオ", id)
	}
	return nil
}
