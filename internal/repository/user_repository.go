package repository

import (
	"context"
	"errors"

	"github.com/SketchShifter/portfolio_backend/internal/models"

	"gorm.io/gorm"
)

// UserRepository ユーザーに関するデータベース操作を行うインターフェース
// ユーザーは認証サービスが管理するため読み取りのみ
type UserRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
}

// userRepository UserRepositoryの実装
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository UserRepositoryを作成
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUserID ユーザーIDで検索
func (r *userRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ユーザー", userID)
		}
		return nil, translateError(ctx, err)
	}
	return &user, nil
}
