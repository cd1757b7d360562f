package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config アプリケーション設定
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Storage    StorageConfig
	AWS        AWSConfig
	Cloudinary CloudinaryConfig
	View       ViewConfig
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig データベース設定
type DatabaseConfig struct {
	Host         string
	Port         string
	Username     string
	Password     string
	DBName       string
	QueryTimeout time.Duration // 1リクエストあたりのストア操作の上限
}

// RedisConfig Redis設定 (閲覧セッションの保存先)
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// AuthConfig 認証設定
type AuthConfig struct {
	JWTSecret string
}

// StorageConfig 画像ストレージ設定
type StorageConfig struct {
	Provider      string // cloudinary または s3
	MaxUploadSize int64
	AllowedTypes  []string
}

// AWSConfig AWS設定
type AWSConfig struct {
	Region   string
	S3Bucket string
	S3Prefix string
}

// CloudinaryConfig Cloudinary設定
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// ViewConfig 閲覧セッション設定
type ViewConfig struct {
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
}

// Load 環境変数から設定をロード
func Load() (*Config, error) {
	// .env ファイルをロード (存在すれば)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 10)) * time.Second,
			WriteTimeout:   time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 10)) * time.Second,
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "3306"),
			Username:     getEnv("DB_USER", "root"),
			Password:     getEnv("DB_PASSWORD", ""),
			DBName:       getEnv("DB_NAME", "portfolio"),
			QueryTimeout: time.Duration(getEnvAsInt("DB_QUERY_TIMEOUT", 5)) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Storage: StorageConfig{
			Provider:      getEnv("STORAGE_PROVIDER", "cloudinary"),
			MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE", 10)) * 1024 * 1024, // MB to Bytes
			AllowedTypes:  []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
		},
		AWS: AWSConfig{
			Region:   getEnv("AWS_REGION", "ap-northeast-2"),
			S3Bucket: getEnv("AWS_S3_BUCKET", ""),
			S3Prefix: getEnv("AWS_S3_PREFIX", "images"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "portfolio"),
		},
		View: ViewConfig{
			CookieName:   getEnv("VIEW_COOKIE_NAME", "viewer_sid"),
			CookieSecure: getEnvAsBool("VIEW_COOKIE_SECURE", false),
			SessionTTL:   time.Duration(getEnvAsInt("VIEW_SESSION_TTL_HOURS", 48)) * time.Hour,
		},
	}

	return config, nil
}

// getEnv 環境変数を取得、存在しない場合はデフォルト値を返す
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool 環境変数をboolとして取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice カンマ区切りの環境変数をスライスとして取得
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
