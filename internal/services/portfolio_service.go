package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/metrics"
	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/pagination"
	"github.com/SketchShifter/portfolio_backend/internal/pipeline"
	"github.com/SketchShifter/portfolio_backend/internal/repository"
	"github.com/SketchShifter/portfolio_backend/internal/session"
	"github.com/SketchShifter/portfolio_backend/internal/viewcounter"
)

// PortfolioInput ポートフォリオの作成・更新内容
type PortfolioInput struct {
	Title          string   `json:"title"`
	Contents       string   `json:"contents"`
	Images         []string `json:"images"`
	Tags           []string `json:"tags"`
	TechStack      []string `json:"techStack"`
	JobGroupID     uint     `json:"jobGroup"`
	ThumbnailImage *string  `json:"thumbnailImage"`
}

// PortfolioService ポートフォリオに関するサービスインターフェース
type PortfolioService interface {
	Search(ctx context.Context, params pipeline.Params) ([]models.PortfolioView, pagination.Metadata, error)
	GetDetail(ctx context.Context, id uint, user *models.CurrentUser, sess *session.Session) (*models.PortfolioDetail, error)
	ListByUser(ctx context.Context, userID string, page, limit int, sort pipeline.SortOrder) ([]models.PortfolioView, pagination.Metadata, error)
	Create(ctx context.Context, user *models.CurrentUser, input PortfolioInput) (*models.PortfolioDetail, error)
	Update(ctx context.Context, id uint, user *models.CurrentUser, input PortfolioInput) (*models.PortfolioDetail, error)
	Delete(ctx context.Context, id uint, user *models.CurrentUser) error
}

// portfolioService PortfolioServiceの実装
type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	likeRepo      repository.LikeRepository
	jobGroupRepo  repository.JobGroupRepository
	transactor    repository.Transactor
	counter       *viewcounter.Counter
	sessions      session.Store
	queryTimeout  time.Duration
}

// NewPortfolioService PortfolioServiceを作成
func NewPortfolioService(
	portfolioRepo repository.PortfolioRepository,
	likeRepo repository.LikeRepository,
	jobGroupRepo repository.JobGroupRepository,
	transactor repository.Transactor,
	counter *viewcounter.Counter,
	sessions session.Store,
	queryTimeout time.Duration) PortfolioService {

	return &portfolioService{
		portfolioRepo: portfolioRepo,
		likeRepo:      likeRepo,
		jobGroupRepo:  jobGroupRepo,
		transactor:    transactor,
		counter:       counter,
		sessions:      sessions,
		queryTimeout:  queryTimeout,
	}
}

// Search 検索条件に一致するポートフォリオの 1 ページ分とページ情報を返す
func (s *portfolioService) Search(ctx context.Context, params pipeline.Params) ([]models.PortfolioView, pagination.Metadata, error) {
	p, err := pipeline.FromParams(params)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}
	return s.execute(ctx, p)
}

// ListByUser ユーザーのポートフォリオ一覧
func (s *portfolioService) ListByUser(ctx context.Context, userID string, page, limit int, sort pipeline.SortOrder) ([]models.PortfolioView, pagination.Metadata, error) {
	p, err := pipeline.NewBuilder().
		Owner(userID).
		Enrich().
		SortBy(sort).
		Paginate(page, limit).
		Build()
	if err != nil {
		return nil, pagination.Metadata{}, err
	}
	return s.execute(ctx, p)
}

func (s *portfolioService) execute(ctx context.Context, p pipeline.Pipeline) ([]models.PortfolioView, pagination.Metadata, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	defer metrics.ObserveSearch(string(p.Sort()), started)

	views, total, err := s.portfolioRepo.Execute(ctx, p)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}

	window, _ := p.Window()
	return views, pagination.Paginate(total, window.Page(), window.Limit), nil
}

// GetDetail ポートフォリオの詳細を取得し、必要なら閲覧数を増やす
// 閲覧数の加算と取得は同じトランザクションで行い、セッションはコミット後に保存する
func (s *portfolioService) GetDetail(ctx context.Context, id uint, user *models.CurrentUser, sess *session.Session) (*models.PortfolioDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var detail *models.PortfolioDetail
	counted := false

	err := s.transactor.Transaction(ctx, func(ctx context.Context) error {
		if sess != nil {
			var err error
			counted, err = s.counter.IncrementIfDue(ctx, id, sess)
			if err != nil {
				return err
			}
		}

		var err error
		detail, err = s.fetchDetail(ctx, id, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	if counted {
		metrics.ViewIncrements.Inc()
		if err := s.sessions.Save(ctx, sess); err != nil {
			// 閲覧数は加算済みなのでレスポンスは返す
			log.Printf("閲覧セッションの保存に失敗しました: session=%s, portfolio=%d: %v", sess.ID, id, err)
		}
	}

	return detail, nil
}

func (s *portfolioService) fetchDetail(ctx context.Context, id uint, user *models.CurrentUser) (*models.PortfolioDetail, error) {
	p, err := pipeline.NewBuilder().ID(id).Enrich().Paginate(1, 1).Build()
	if err != nil {
		return nil, err
	}

	views, _, err := s.portfolioRepo.Execute(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, models.NewNotFoundError("ポートフォリオ", id)
	}

	liked := false
	if user != nil {
		liked, err = s.likeRepo.HasLiked(ctx, id, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &models.PortfolioDetail{PortfolioView: views[0], Liked: liked}, nil
}

// Create ポートフォリオを作成
func (s *portfolioService) Create(ctx context.Context, user *models.CurrentUser, input PortfolioInput) (*models.PortfolioDetail, error) {
	if user == nil {
		return nil, models.NewUnauthenticatedError()
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	portfolio := &models.Portfolio{UserID: user.ID}
	applyInput(portfolio, input)

	var detail *models.PortfolioDetail
	err := s.transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
			return err
		}
		var err error
		detail, err = s.fetchDetail(ctx, portfolio.ID, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("ポートフォリオを作成しました: ID=%d, user=%s", portfolio.ID, user.ID)
	return detail, nil
}

// Update ポートフォリオを更新 (所有者のみ)
func (s *portfolioService) Update(ctx context.Context, id uint, user *models.CurrentUser, input PortfolioInput) (*models.PortfolioDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var detail *models.PortfolioDetail
	err := s.transactor.Transaction(ctx, func(ctx context.Context) error {
		portfolio, err := s.ownedPortfolio(ctx, id, user)
		if err != nil {
			return err
		}
		if err := s.validate(ctx, input); err != nil {
			return err
		}

		applyInput(portfolio, input)
		if err := s.portfolioRepo.Update(ctx, portfolio); err != nil {
			return err
		}

		detail, err = s.fetchDetail(ctx, id, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// Delete ポートフォリオを削除 (所有者のみ)
func (s *portfolioService) Delete(ctx context.Context, id uint, user *models.CurrentUser) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.transactor.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.ownedPortfolio(ctx, id, user); err != nil {
			return err
		}
		return s.portfolioRepo.Delete(ctx, id)
	})
}

// ownedPortfolio ポートフォリオを取得し、所有者であることを確認
func (s *portfolioService) ownedPortfolio(ctx context.Context, id uint, user *models.CurrentUser) (*models.Portfolio, error) {
	portfolio, err := s.portfolioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError()
	}
	if portfolio.UserID != user.ID {
		return nil, models.NewForbiddenError("このポートフォリオを変更する権限がありません")
	}
	return portfolio, nil
}

// validate 入力値と職種の存在を確認 (変更前に行う)
func (s *portfolioService) validate(ctx context.Context, input PortfolioInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return models.NewInvalidArgumentError("タイトルは必須です")
	}
	if strings.TrimSpace(input.Contents) == "" {
		return models.NewInvalidArgumentError("内容は必須です")
	}

	if _, err := s.jobGroupRepo.FindByID(ctx, input.JobGroupID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NewInvalidFilterError("存在しない職種です: ID=%d", input.JobGroupID)
		}
		return err
	}
	return nil
}

func applyInput(p *models.Portfolio, input PortfolioInput) {
	p.Title = strings.TrimSpace(input.Title)
	p.Contents = input.Contents
	p.Images = input.Images
	if p.Images == nil {
		p.Images = []string{}
	}
	p.JobGroupID = input.JobGroupID
	p.ThumbnailImage = input.ThumbnailImage
	p.SetTags(input.Tags)
	p.SetSkills(input.TechStack)
}

func (s *portfolioService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
