package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// HealthStatus ヘルスステータス
type HealthStatus struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Sessions  string `json:"sessions"`
}

// HealthService ヘルスチェックに関するサービスインターフェース
type HealthService interface {
	GetStatus(ctx context.Context) HealthStatus
}

// healthService HealthServiceの実装
type healthService struct {
	db          *gorm.DB
	sessionKind string
	startTime   time.Time
}

// NewHealthService HealthServiceを作成
// sessionKind は閲覧セッションの保存先 (redis または memory)
func NewHealthService(db *gorm.DB, sessionKind string) HealthService {
	return &healthService{
		db:          db,
		sessionKind: sessionKind,
		startTime:   time.Now(),
	}
}

// GetStatus サービスのステータスを取得
func (s *healthService) GetStatus(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  "ok",
		Sessions:  s.sessionKind,
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status.Status = "degraded"
		status.Database = err.Error()
	}

	return status
}
