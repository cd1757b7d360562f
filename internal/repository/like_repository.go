package repository

import (
	"context"

	"github.com/SketchShifter/portfolio_backend/internal/models"

	"gorm.io/gorm"
)

// LikeRepository いいねに関するデータベース操作を行うインターフェース
type LikeRepository interface {
	Toggle(ctx context.Context, portfolioID uint, userID string) (*models.LikeStatus, error)
	HasLiked(ctx context.Context, portfolioID uint, userID string) (bool, error)
	CountByPortfolio(ctx context.Context, portfolioID uint) (int64, error)
	CountReceivedByOwner(ctx context.Context, ownerUserID string) (int64, error)
}

// likeRepository LikeRepositoryの実装
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository LikeRepositoryを作成
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle いいねの有無を反転し、反転後の状態といいね数を返す
// 同じ組み合わせの同時挿入はユニーク制約で失敗し Conflict になる
func (r *likeRepository) Toggle(ctx context.Context, portfolioID uint, userID string) (*models.LikeStatus, error) {
	var status models.LikeStatus

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Portfolio{}).Where("id = ?", portfolioID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("ポートフォリオ", portfolioID)
		}

		var count int64
		if err := tx.Model(&models.Like{}).Where("portfolio_id = ?", portfolioID).Count(&count).Error; err != nil {
			return err
		}

		var like models.Like
		if err := tx.Where("portfolio_id = ? AND user_id = ?", portfolioID, userID).Limit(1).Find(&like).Error; err != nil {
			return err
		}

		if like.ID == 0 {
			if err := tx.Create(&models.Like{PortfolioID: portfolioID, UserID: userID}).Error; err != nil {
				return err
			}
			status = models.LikeStatus{Liked: true, LikeCount: count + 1}
			return nil
		}

		result := tx.Delete(&like)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewConflictError("いいねは既に取り消されています", nil)
		}
		status = models.LikeStatus{Liked: false, LikeCount: count - 1}
		return nil
	})
	if err != nil {
		return nil, translateError(ctx, err)
	}

	return &status, nil
}

// HasLiked ユーザーがポートフォリオにいいねしているかどうか
func (r *likeRepository) HasLiked(ctx context.Context, portfolioID uint, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	var count int64
	if err := conn(ctx, r.db).Model(&models.Like{}).
		Where("portfolio_id = ? AND user_id = ?", portfolioID, userID).
		Count(&count).Error; err != nil {
		return false, translateError(ctx, err)
	}
	return count > 0, nil
}

// CountByPortfolio ポートフォリオのいいね数
func (r *likeRepository) CountByPortfolio(ctx context.Context, portfolioID uint) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.Like{}).Where("portfolio_id = ?", portfolioID).Count(&count).Error; err != nil {
		return 0, translateError(ctx, err)
	}
	return count, nil
}

// CountReceivedByOwner ユーザーの全ポートフォリオが受け取ったいいねの合計
func (r *likeRepository) CountReceivedByOwner(ctx context.Context, ownerUserID string) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.Like{}).
		Joins("JOIN portfolios ON portfolios.id = likes.portfolio_id").
		Where("portfolios.user_id = ?", ownerUserID).
		Count(&count).Error; err != nil {
		return 0, translateError(ctx, err)
	}
	return count, nil
}
