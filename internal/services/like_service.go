package services

import (
	"context"
	"errors"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/metrics"
	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/repository"
)

// LikeService いいねに関するサービスインターフェース
type LikeService interface {
	Toggle(ctx context.Context, portfolioID uint, user *models.CurrentUser) (*models.LikeStatus, error)
}

// likeService LikeServiceの実装
type likeService struct {
	likeRepo     repository.LikeRepository
	queryTimeout time.Duration
}

// NewLikeService LikeServiceを作成
func NewLikeService(likeRepo repository.LikeRepository, queryTimeout time.Duration) LikeService {
	return &likeService{
		likeRepo:     likeRepo,
		queryTimeout: queryTimeout,
	}
}

// Toggle いいねを切り替える (再試行はしない)
func (s *likeService) Toggle(ctx context.Context, portfolioID uint, user *models.CurrentUser) (*models.LikeStatus, error) {
	if user == nil {
		return nil, models.NewUnauthenticatedError()
	}

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	status, err := s.likeRepo.Toggle(ctx, portfolioID, user.ID)
	switch {
	case err == nil && status.Liked:
		metrics.LikeToggles.WithLabelValues("liked").Inc()
	case err == nil:
		metrics.LikeToggles.WithLabelValues("unliked").Inc()
	case errors.Is(err, models.ErrConflict):
		metrics.LikeToggles.WithLabelValues("conflict").Inc()
	default:
		metrics.LikeToggles.WithLabelValues("error").Inc()
	}
	if err != nil {
		return nil, err
	}

	return status, nil
}
