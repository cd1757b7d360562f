package services

import (
	"context"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/repository"
)

// UserService ユーザーに関するサービスインターフェース
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// userService UserServiceの実装
type userService struct {
	userRepo repository.UserRepository
	likeRepo repository.LikeRepository
}

// NewUserService UserServiceを作成
func NewUserService(userRepo repository.UserRepository, likeRepo repository.LikeRepository) UserService {
	return &userService{
		userRepo: userRepo,
		likeRepo: likeRepo,
	}
}

// GetProfile プロフィールと受け取ったいいねの合計を取得
func (s *userService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := s.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	likes, err := s.likeRepo.CountReceivedByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{User: *user, LikeCount: likes}
	if profile.TechStack == nil {
		profile.TechStack = []string{}
	}
	if profile.Links == nil {
		profile.Links = []string{}
	}
	return profile, nil
}
