// Package session 閲覧者ごとのセッション (閲覧履歴) を管理する
package session

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable セッションストアに接続できない
var ErrStoreUnavailable = errors.New("session store unavailable")

// Session 閲覧者のセッション
// ViewedPortfolios はポートフォリオIDから最終閲覧時刻 (ミリ秒) への対応
type Session struct {
	ID               string         `json:"-"`
	ViewedPortfolios map[uint]int64 `json:"viewedPortfolios"`
}

// New 空のセッションを作成
func New(id string) *Session {
	return &Session{ID: id, ViewedPortfolios: map[uint]int64{}}
}

// LastViewed 最終閲覧時刻を返す
func (s *Session) LastViewed(portfolioID uint) (time.Time, bool) {
	millis, ok := s.ViewedPortfolios[portfolioID]
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// MarkViewed 閲覧時刻を記録
func (s *Session) MarkViewed(portfolioID uint, at time.Time) {
	if s.ViewedPortfolios == nil {
		s.ViewedPortfolios = map[uint]int64{}
	}
	s.ViewedPortfolios[portfolioID] = at.UnixMilli()
}

// Store セッションの永続化先
type Store interface {
	// Load セッションを読み込む (存在しなければ空のセッションを返す)
	Load(ctx context.Context, id string) (*Session, error)
	// Save セッションを保存する
	Save(ctx context.Context, s *Session) error
}
