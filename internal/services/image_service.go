package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/SketchShifter/portfolio_backend/internal/config"
	"github.com/SketchShifter/portfolio_backend/internal/models"

	"github.com/google/uuid"
)

// 画像の用途
const (
	PurposeProfile   = "profile"
	PurposeThumbnail = "thumbnail"
	PurposeContent   = "content"
)

// ImageStore 画像の保存先 (Cloudinary または S3)
type ImageStore interface {
	Put(ctx context.Context, body io.Reader, key, contentType string) (string, error)
}

// ImageService 画像アップロードに関するサービスインターフェース
type ImageService interface {
	Store(ctx context.Context, user *models.CurrentUser, body io.Reader, fileName string, size int64, purpose string) (string, error)
}

// imageService ImageServiceの実装
type imageService struct {
	store        ImageStore
	maxSize      int64
	allowedTypes map[string]struct{}
}

// NewImageService ImageServiceを作成
func NewImageService(store ImageStore, cfg config.StorageConfig) ImageService {
	allowed := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, ext := range cfg.AllowedTypes {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &imageService{
		store:        store,
		maxSize:      cfg.MaxUploadSize,
		allowedTypes: allowed,
	}
}

// Store 画像を検証して保存し、公開URLを返す
// キーは {ユーザーID}/{用途}/{UUID}{拡張子}
func (s *imageService) Store(ctx context.Context, user *models.CurrentUser, body io.Reader, fileName string, size int64, purpose string) (string, error) {
	if user == nil {
		return "", models.NewUnauthenticatedError()
	}

	if purpose == "" {
		purpose = PurposeProfile
	}
	switch purpose {
	case PurposeProfile, PurposeThumbnail, PurposeContent:
	default:
		return "", models.NewInvalidArgumentError("不明な画像の用途です: %s", purpose)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := s.allowedTypes[ext]; !ok {
		return "", models.NewInvalidArgumentError("画像ファイルのみアップロードできます: %s", fileName)
	}
	if s.maxSize > 0 && size > s.maxSize {
		return "", models.NewInvalidArgumentError("ファイルサイズが上限(%dMB)を超えています", s.maxSize/1024/1024)
	}

	key := fmt.Sprintf("%s/%s/%s%s", user.ID, purpose, uuid.New().String(), ext)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.store.Put(ctx, body, key, contentType)
	if err != nil {
		return "", fmt.Errorf("画像のアップロードに失敗しました: %w", err)
	}
	return url, nil
}
