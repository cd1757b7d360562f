// Package testutil テストで共有するデータベースとフィクスチャ
package testutil

import (
	"testing"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB マイグレーション済みのインメモリSQLiteを作成
// インメモリDBは接続ごとに別物になるため接続数は 1 に固定する
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// Fixture テストデータの作成ヘルパー
type Fixture struct {
	t  testing.TB
	db *gorm.DB
}

// NewFixture Fixtureを作成
func NewFixture(t testing.TB, db *gorm.DB) *Fixture {
	return &Fixture{t: t, db: db}
}

// JobGroup 職種を作成
func (f *Fixture) JobGroup(name string) models.JobGroup {
	f.t.Helper()
	group := models.JobGroup{Name: name}
	require.NoError(f.t, f.db.Create(&group).Error)
	return group
}

// TechStack 技術スタックを作成
func (f *Fixture) TechStack(skill string, jobGroupID uint) models.TechStack {
	f.t.Helper()
	stack := models.TechStack{SkillName: skill, BgColor: "#201E50", TextColor: "#FFFFFF", JobGroupID: jobGroupID}
	require.NoError(f.t, f.db.Create(&stack).Error)
	return stack
}

// User ユーザーを作成
func (f *Fixture) User(userID, name string) models.User {
	f.t.Helper()
	user := models.User{UserID: userID, Name: name}
	require.NoError(f.t, f.db.Create(&user).Error)
	return user
}

// PortfolioOption ポートフォリオの属性を上書きする
type PortfolioOption func(p *models.Portfolio)

// WithTags タグを設定
func WithTags(tags ...string) PortfolioOption {
	return func(p *models.Portfolio) { p.SetTags(tags) }
}

// WithSkills 技術スタックを設定
func WithSkills(skills ...string) PortfolioOption {
	return func(p *models.Portfolio) { p.SetSkills(skills) }
}

// WithViews 閲覧数を設定
func WithViews(views int) PortfolioOption {
	return func(p *models.Portfolio) { p.ViewCount = views }
}

// WithCreatedAt 作成日時を設定
func WithCreatedAt(at time.Time) PortfolioOption {
	return func(p *models.Portfolio) { p.CreatedAt = at }
}

// Portfolio ポートフォリオを作成
func (f *Fixture) Portfolio(title, ownerUserID string, jobGroupID uint, opts ...PortfolioOption) models.Portfolio {
	f.t.Helper()
	p := models.Portfolio{
		Title:      title,
		Contents:   title + " contents",
		UserID:     ownerUserID,
		JobGroupID: jobGroupID,
		Images:     []string{},
	}
	for _, opt := range opts {
		opt(&p)
	}
	require.NoError(f.t, f.db.Create(&p).Error)
	return p
}

// Like いいねを作成
func (f *Fixture) Like(portfolioID uint, userID string) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(&models.Like{PortfolioID: portfolioID, UserID: userID}).Error)
}
