package viewcounter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	views map[uint]int
}

func (f *fakeStore) IncrementViews(_ context.Context, id uint) error {
	if _, ok := f.views[id]; !ok {
		return models.NewNotFoundError("ポートフォリオ", id)
	}
	f.views[id]++
	return nil
}

func TestCounter_IncrementIfDue(t *testing.T) {
	store := &fakeStore{views: map[uint]int{1: 0}}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	counter := New(store, WithClock(func() time.Time { return now }))
	sess := session.New("sid")
	ctx := context.Background()

	steps := []struct {
		name    string
		advance time.Duration
		want    bool
		views   int
	}{
		{name: "初回閲覧", advance: 0, want: true, views: 1},
		{name: "1時間後は重複", advance: time.Hour, want: false, views: 1},
		{name: "ちょうど24時間後も重複", advance: 23 * time.Hour, want: false, views: 1},
		{name: "24時間を超えたら再カウント", advance: time.Millisecond, want: true, views: 2},
		{name: "直後は重複", advance: time.Second, want: false, views: 2},
	}
	for _, step := range steps {
		now = now.Add(step.advance)
		counted, err := counter.IncrementIfDue(ctx, 1, sess)
		require.NoError(t, err, step.name)
		assert.Equal(t, step.want, counted, step.name)
		assert.Equal(t, step.views, store.views[1], step.name)
	}
}

func TestCounter_SessionsAreIndependent(t *testing.T) {
	store := &fakeStore{views: map[uint]int{1: 0, 2: 0}}
	counter := New(store)
	ctx := context.Background()

	a := session.New("a")
	b := session.New("b")

	for _, s := range []*session.Session{a, b, a, b} {
		_, err := counter.IncrementIfDue(ctx, 1, s)
		require.NoError(t, err)
	}
	_, err := counter.IncrementIfDue(ctx, 2, a)
	require.NoError(t, err)

	assert.Equal(t, 2, store.views[1])
	assert.Equal(t, 1, store.views[2])
}

func TestCounter_MissingPortfolioLeavesSessionUntouched(t *testing.T) {
	store := &fakeStore{views: map[uint]int{}}
	counter := New(store)
	sess := session.New("sid")

	counted, err := counter.IncrementIfDue(context.Background(), 9, sess)
	assert.False(t, counted)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Empty(t, sess.ViewedPortfolios)
}
