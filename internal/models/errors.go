package models

import (
	"errors"
	"fmt"
)

// エラー種別
var (
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage error")
	ErrStorageTimeout  = errors.New("storage timeout")
)

// AppError アプリケーションエラー
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is エラー種別で比較
func (e *AppError) Is(target error) bool {
	return e.Kind == target
}

// NewInvalidFilterError 不正なフィルタ
func NewInvalidFilterError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: ErrInvalidFilter, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidArgumentError 不正な引数
func NewInvalidArgumentError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError リソースが存在しない
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf("%sが見つかりません: ID=%v", resource, id)}
}

// NewUnauthenticatedError ログインしていない
func NewUnauthenticatedError() *AppError {
	return &AppError{Kind: ErrUnauthenticated, Message: "ログインが必要です"}
}

// NewForbiddenError 権限がない
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: ErrForbidden, Message: message}
}

// NewConflictError 同時更新による競合
func NewConflictError(message string, err error) *AppError {
	return &AppError{Kind: ErrConflict, Message: message, Err: err}
}

// NewStorageError ストレージエラー
func NewStorageError(err error) *AppError {
	return &AppError{Kind: ErrStorage, Message: "データベースエラーが発生しました", Err: err}
}

// NewStorageTimeoutError ストレージのタイムアウト
func NewStorageTimeoutError(err error) *AppError {
	return &AppError{Kind: ErrStorageTimeout, Message: "データベースの応答がタイムアウトしました", Err: err}
}
