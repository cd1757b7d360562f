// Package viewcounter セッション単位で重複を除いた閲覧数カウント
package viewcounter

import (
	"context"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/session"
)

// Window 同じセッションからの閲覧を 1 回と数える期間
const Window = 24 * time.Hour

// Incrementer 閲覧数を 1 増やすストア操作
type Incrementer interface {
	IncrementViews(ctx context.Context, id uint) error
}

// Counter 閲覧数カウンター
type Counter struct {
	store  Incrementer
	window time.Duration
	now    func() time.Time
}

// Option Counterの設定
type Option func(c *Counter)

// WithClock 現在時刻の取得方法を差し替える
func WithClock(now func() time.Time) Option {
	return func(c *Counter) { c.now = now }
}

// WithWindow 重複とみなす期間を変更する
func WithWindow(window time.Duration) Option {
	return func(c *Counter) { c.window = window }
}

// New Counterを作成
func New(store Incrementer, opts ...Option) *Counter {
	c := &Counter{store: store, window: Window, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IncrementIfDue 初回閲覧または前回から期間を超えていれば閲覧数を増やし、セッションに記録する
// ctx がトランザクションを持つ場合はその中で更新される。セッションの保存は呼び出し側がコミット後に行う
func (c *Counter) IncrementIfDue(ctx context.Context, portfolioID uint, sess *session.Session) (bool, error) {
	now := c.now()
	if last, ok := sess.LastViewed(portfolioID); ok && now.Sub(last) <= c.window {
		return false, nil
	}

	if err := c.store.IncrementViews(ctx, portfolioID); err != nil {
		return false, err
	}

	sess.MarkViewed(portfolioID, now)
	return true, nil
}
