package repository

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func TestLikeRepository_ToggleAlternates(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	fe := fx.JobGroup("Frontend")
	p := fx.Portfolio("p", "alice", fe.ID)
	fx.Like(p.ID, "carol")

	for i := 1; i <= 6; i++ {
		status, err := repo.Toggle(ctx, p.ID, "bob")
		require.NoError(t, err)

		wantLiked := i%2 == 1
		assert.Equal(t, wantLiked, status.Liked, "toggle %d", i)

		var rows int64
		require.NoError(t, db.Model(&models.Like{}).
			Where("portfolio_id = ? AND user_id = ?", p.ID, "bob").Count(&rows).Error)
		if wantLiked {
			assert.Equal(t, int64(1), rows)
			assert.Equal(t, int64(2), status.LikeCount)
		} else {
			assert.Zero(t, rows)
			assert.Equal(t, int64(1), status.LikeCount)
		}

		count, err := repo.CountByPortfolio(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, status.LikeCount, count)
	}
}

func TestLikeRepository_ToggleConcurrent(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	fe := fx.JobGroup("Frontend")
	p := fx.Portfolio("p", "alice", fe.ID)

	const workers = 2
	var wg sync.WaitGroup
	statuses := make([]*models.LikeStatus, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i], errs[i] = repo.Toggle(ctx, p.ID, "bob")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	liked := 0
	for i := range errs {
		if errs[i] != nil {
			assert.True(t, errors.Is(errs[i], models.ErrConflict), "unexpected error: %v", errs[i])
			continue
		}
		succeeded++
		if statuses[i].Liked {
			liked++
		}
	}
	require.NotZero(t, succeeded)

	var rows int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("portfolio_id = ? AND user_id = ?", p.ID, "bob").Count(&rows).Error)
	assert.LessOrEqual(t, rows, int64(1))
	if succeeded == workers {
		assert.Equal(t, 1, liked, "交互に反映される")
		assert.Zero(t, rows)
	}
}

func TestLikeRepository_ToggleMissingPortfolio(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLikeRepository(db)

	_, err := repo.Toggle(context.Background(), 404, "bob")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	var rows int64
	require.NoError(t, db.Model(&models.Like{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestLikeRepository_DuplicateInsertIsConflict(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	fe := fx.JobGroup("Frontend")
	p := fx.Portfolio("p", "alice", fe.ID)
	fx.Like(p.ID, "bob")

	err := db.Create(&models.Like{PortfolioID: p.ID, UserID: "bob"}).Error
	require.Error(t, err)
	assert.True(t, errors.Is(translateError(context.Background(), err), models.ErrConflict))
}

func TestLikeRepository_HasLikedAndCountReceived(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	fe := fx.JobGroup("Frontend")
	p1 := fx.Portfolio("p1", "alice", fe.ID)
	p2 := fx.Portfolio("p2", "alice", fe.ID)
	other := fx.Portfolio("p3", "carol", fe.ID)
	fx.Like(p1.ID, "bob")
	fx.Like(p2.ID, "bob")
	fx.Like(p2.ID, "dave")
	fx.Like(other.ID, "alice")

	liked, err := repo.HasLiked(ctx, p1.ID, "bob")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.HasLiked(ctx, p1.ID, "carol")
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = repo.HasLiked(ctx, p1.ID, "")
	require.NoError(t, err)
	assert.False(t, liked)

	count, err := repo.CountReceivedByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountReceivedByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikeRepository_StorageError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `likes` WHERE portfolio_id = ?")).
		WithArgs(7).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CountByPortfolio(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStorage))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleRollsBackOnStorageError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `portfolios` WHERE id = ?")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `likes` WHERE portfolio_id = ?")).
		WithArgs(1).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.Toggle(context.Background(), 1, "bob")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStorage))
	assert.NoError(t, mock.ExpectationsWereMet())
}
