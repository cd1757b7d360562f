package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/SketchShifter/portfolio_backend/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// NewImageStore 設定に応じた画像の保存先を作成
func NewImageStore(cfg *config.Config) (ImageStore, error) {
	switch cfg.Storage.Provider {
	case "s3":
		return NewS3ImageStore(cfg.AWS)
	case "cloudinary", "":
		return NewCloudinaryImageStore(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("不明なストレージです: %s", cfg.Storage.Provider)
	}
}

// cloudinaryImageStore Cloudinaryに保存するImageStore
type cloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryImageStore Cloudinaryの保存先を作成
func NewCloudinaryImageStore(cfg config.CloudinaryConfig) (ImageStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return &cloudinaryImageStore{cld: cld, folder: cfg.Folder}, nil
}

// Put 画像をアップロード
func (s *cloudinaryImageStore) Put(ctx context.Context, body io.Reader, key, _ string) (string, error) {
	// Cloudinary の public ID には拡張子を含めない
	publicID := strings.TrimSuffix(key, path.Ext(key))

	result, err := s.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %v", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %s", result.Error.Message)
	}

	return result.SecureURL, nil
}

// s3ImageStore S3に保存するImageStore
type s3ImageStore struct {
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
}

// NewS3ImageStore S3の保存先を作成 (認証情報はSDKの標準の探索順で解決する)
func NewS3ImageStore(cfg config.AWSConfig) (ImageStore, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKETが設定されていません")
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("AWSセッションの作成に失敗しました: %w", err)
	}

	return &s3ImageStore{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3Bucket,
		prefix:   cfg.S3Prefix,
	}, nil
}

// Put 画像をアップロード
func (s *s3ImageStore) Put(ctx context.Context, body io.Reader, key, contentType string) (string, error) {
	result, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path.Join(s.prefix, key)),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("S3へのアップロードに失敗しました: %w", err)
	}
	return result.Location, nil
}
