package repository

import (
	"context"
	"errors"

	"github.com/SketchShifter/portfolio_backend/internal/models"

	"gorm.io/gorm"
)

// JobGroupRepository 職種に関するデータベース操作を行うインターフェース
type JobGroupRepository interface {
	List(ctx context.Context) ([]models.JobGroup, error)
	FindByID(ctx context.Context, id uint) (*models.JobGroup, error)
	FindByName(ctx context.Context, name string) (*models.JobGroup, error)
}

// jobGroupRepository JobGroupRepositoryの実装
type jobGroupRepository struct {
	db *gorm.DB
}

// NewJobGroupRepository JobGroupRepositoryを作成
func NewJobGroupRepository(db *gorm.DB) JobGroupRepository {
	return &jobGroupRepository{db: db}
}

// List 職種一覧 (名前順)
func (r *jobGroupRepository) List(ctx context.Context) ([]models.JobGroup, error) {
	var groups []models.JobGroup
	if err := conn(ctx, r.db).Order("name").Find(&groups).Error; err != nil {
		return nil, translateError(ctx, err)
	}
	return groups, nil
}

// FindByID IDで職種を検索
func (r *jobGroupRepository) FindByID(ctx context.Context, id uint) (*models.JobGroup, error) {
	var group models.JobGroup
	if err := conn(ctx, r.db).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("職種", id)
		}
		return nil, translateError(ctx, err)
	}
	return &group, nil
}

// FindByName 名前で職種を検索
func (r *jobGroupRepository) FindByName(ctx context.Context, name string) (*models.JobGroup, error) {
	var group models.JobGroup
	if err := conn(ctx, r.db).Where("name = ?", name).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("職種", name)
		}
		return nil, translateError(ctx, err)
	}
	return &group, nil
}
