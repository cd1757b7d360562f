package repository

import (
	"context"
	"errors"

	"github.com/SketchShifter/portfolio_backend/internal/models"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor トランザクション境界を提供するインターフェース
// fn に渡される ctx を使ったリポジトリ呼び出しは同じトランザクションで実行される
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// gormTransactor Transactorの実装
type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor Transactorを作成
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

// Transaction fn をトランザクション内で実行 (エラーならロールバック)
// 既にトランザクション内であればそのまま参加する
func (t *gormTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	return translateError(ctx, err)
}

// conn ctx にトランザクションがあればそれを、なければ ctx 付きの接続を返す
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// translateError ストアのエラーをアプリケーションエラーに変換
// 変換済みのエラーはそのまま返す
func translateError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return models.NewStorageTimeoutError(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewConflictError("同時に更新されました。再度お試しください", err)
	default:
		return models.NewStorageError(err)
	}
}
