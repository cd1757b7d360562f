package services

import (
	"context"
	"sync"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/pipeline"
	"github.com/SketchShifter/portfolio_backend/internal/session"
)

// stubPortfolioRepo インメモリのPortfolioRepository
type stubPortfolioRepo struct {
	portfolios map[uint]*models.Portfolio
	nextID     uint
	executed   []pipeline.Pipeline
	executeErr error
	updated    int
	deleted    []uint
}

func newStubPortfolioRepo(ps ...models.Portfolio) *stubPortfolioRepo {
	r := &stubPortfolioRepo{portfolios: map[uint]*models.Portfolio{}, nextID: 1}
	for i := range ps {
		p := ps[i]
		r.portfolios[p.ID] = &p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *stubPortfolioRepo) Execute(_ context.Context, p pipeline.Pipeline) ([]models.PortfolioView, int64, error) {
	r.executed = append(r.executed, p)
	if r.executeErr != nil {
		return nil, 0, r.executeErr
	}

	var out []models.PortfolioView
	for _, stage := range p.Filters() {
		if kw, ok := stage.(pipeline.KeywordFilter); ok && kw.Field == pipeline.FieldID {
			if found, ok := r.portfolios[kw.PortfolioID]; ok {
				out = append(out, models.NewPortfolioView(*found, nil))
			}
			return out, int64(len(out)), nil
		}
	}
	for _, found := range r.portfolios {
		out = append(out, models.NewPortfolioView(*found, nil))
	}
	return out, int64(len(out)), nil
}

func (r *stubPortfolioRepo) FindByID(_ context.Context, id uint) (*models.Portfolio, error) {
	found, ok := r.portfolios[id]
	if !ok {
		return nil, models.NewNotFoundError("ポートフォリオ", id)
	}
	cp := *found
	return &cp, nil
}

func (r *stubPortfolioRepo) Create(_ context.Context, p *models.Portfolio) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.portfolios[p.ID] = &cp
	return nil
}

func (r *stubPortfolioRepo) Update(_ context.Context, p *models.Portfolio) error {
	r.updated++
	cp := *p
	r.portfolios[p.ID] = &cp
	return nil
}

func (r *stubPortfolioRepo) Delete(_ context.Context, id uint) error {
	r.deleted = append(r.deleted, id)
	delete(r.portfolios, id)
	return nil
}

func (r *stubPortfolioRepo) IncrementViews(_ context.Context, id uint) error {
	found, ok := r.portfolios[id]
	if !ok {
		return models.NewNotFoundError("ポートフォリオ", id)
	}
	found.ViewCount++
	return nil
}

// stubLikeRepo インメモリのLikeRepository
type stubLikeRepo struct {
	likes     map[uint]map[string]bool
	toggleErr error
}

func newStubLikeRepo() *stubLikeRepo {
	return &stubLikeRepo{likes: map[uint]map[string]bool{}}
}

func (r *stubLikeRepo) Toggle(_ context.Context, portfolioID uint, userID string) (*models.LikeStatus, error) {
	if r.toggleErr != nil {
		return nil, r.toggleErr
	}
	if r.likes[portfolioID] == nil {
		r.likes[portfolioID] = map[string]bool{}
	}
	if r.likes[portfolioID][userID] {
		delete(r.likes[portfolioID], userID)
		return &models.LikeStatus{Liked: false, LikeCount: int64(len(r.likes[portfolioID]))}, nil
	}
	r.likes[portfolioID][userID] = true
	return &models.LikeStatus{Liked: true, LikeCount: int64(len(r.likes[portfolioID]))}, nil
}

func (r *stubLikeRepo) HasLiked(_ context.Context, portfolioID uint, userID string) (bool, error) {
	return r.likes[portfolioID][userID], nil
}

func (r *stubLikeRepo) CountByPortfolio(_ context.Context, portfolioID uint) (int64, error) {
	return int64(len(r.likes[portfolioID])), nil
}

func (r *stubLikeRepo) CountReceivedByOwner(_ context.Context, _ string) (int64, error) {
	var total int64
	for _, users := range r.likes {
		total += int64(len(users))
	}
	return total, nil
}

// stubJobGroupRepo インメモリのJobGroupRepository
type stubJobGroupRepo struct {
	groups []models.JobGroup
}

func (r *stubJobGroupRepo) List(_ context.Context) ([]models.JobGroup, error) {
	return r.groups, nil
}

func (r *stubJobGroupRepo) FindByID(_ context.Context, id uint) (*models.JobGroup, error) {
	for _, g := range r.groups {
		if g.ID == id {
			g := g
			return &g, nil
		}
	}
	return nil, models.NewNotFoundError("職種", id)
}

func (r *stubJobGroupRepo) FindByName(_ context.Context, name string) (*models.JobGroup, error) {
	for _, g := range r.groups {
		if g.Name == name {
			g := g
			return &g, nil
		}
	}
	return nil, models.NewNotFoundError("職種", name)
}

// stubTransactor fn をそのまま実行し、結果を記録する
type stubTransactor struct {
	commits   int
	rollbacks int
}

func (t *stubTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		t.rollbacks++
		return err
	}
	t.commits++
	return nil
}

// spySessionStore 保存されたセッションを記録する
type spySessionStore struct {
	mu    sync.Mutex
	saved []map[uint]int64
	err   error
}

func (s *spySessionStore) Load(_ context.Context, id string) (*session.Session, error) {
	return session.New(id), nil
}

func (s *spySessionStore) Save(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(map[uint]int64, len(sess.ViewedPortfolios))
	for k, v := range sess.ViewedPortfolios {
		cp[k] = v
	}
	s.saved = append(s.saved, cp)
	return s.err
}
