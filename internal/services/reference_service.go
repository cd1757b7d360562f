package services

import (
	"context"
	"errors"
	"strings"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/repository"
)

// ReferenceService 職種・技術スタックの参照データに関するサービスインターフェース
type ReferenceService interface {
	ListJobGroups(ctx context.Context) ([]models.JobGroup, error)
	ListTechStacks(ctx context.Context) ([]models.TechStack, error)
	TechStackStatistics(ctx context.Context, jobGroupName string) ([]models.TechStackUsage, error)
}

// referenceService ReferenceServiceの実装
type referenceService struct {
	jobGroupRepo  repository.JobGroupRepository
	techStackRepo repository.TechStackRepository
}

// NewReferenceService ReferenceServiceを作成
func NewReferenceService(jobGroupRepo repository.JobGroupRepository, techStackRepo repository.TechStackRepository) ReferenceService {
	return &referenceService{
		jobGroupRepo:  jobGroupRepo,
		techStackRepo: techStackRepo,
	}
}

// ListJobGroups 職種一覧
func (s *referenceService) ListJobGroups(ctx context.Context) ([]models.JobGroup, error) {
	return s.jobGroupRepo.List(ctx)
}

// ListTechStacks 技術スタック一覧
func (s *referenceService) ListTechStacks(ctx context.Context) ([]models.TechStack, error) {
	return s.techStackRepo.List(ctx)
}

// TechStackStatistics 技術スタックの利用統計 (職種名を指定するとその職種に限定)
func (s *referenceService) TechStackStatistics(ctx context.Context, jobGroupName string) ([]models.TechStackUsage, error) {
	jobGroupName = strings.TrimSpace(jobGroupName)
	if jobGroupName == "" {
		return s.techStackRepo.Statistics(ctx, nil)
	}

	group, err := s.jobGroupRepo.FindByName(ctx, jobGroupName)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewInvalidFilterError("存在しない職種です: %s", jobGroupName)
		}
		return nil, err
	}
	return s.techStackRepo.Statistics(ctx, &group.ID)
}
