package models

import (
	"time"
)

// Portfolio ポートフォリオモデル
type Portfolio struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"not null"`
	Contents       string    `json:"contents" gorm:"type:text;not null"`
	ViewCount      int       `json:"view" gorm:"not null;default:0"`
	Images         []string  `json:"images" gorm:"type:text;serializer:json"`
	JobGroupID     uint      `json:"jobGroupId" gorm:"not null;index"`
	ThumbnailImage *string   `json:"thumbnailImage"`
	UserID         string    `json:"userID" gorm:"size:64;not null;index"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index:idx_portfolios_created_at,sort:desc"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// リレーション
	Tags   []PortfolioTag   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Skills []PortfolioSkill `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	// 集計値 (クエリ時に計算、永続化しない)
	LikeCount         int64   `json:"-" gorm:"->;-:migration"`
	JobGroupName      *string `json:"-" gorm:"->;-:migration"`
	OwnerName         *string `json:"-" gorm:"->;-:migration"`
	OwnerProfileImage *string `json:"-" gorm:"->;-:migration"`
}

// PortfolioTag ポートフォリオのタグ
type PortfolioTag struct {
	ID          uint   `gorm:"primaryKey"`
	PortfolioID uint   `gorm:"not null;index"`
	Name        string `gorm:"size:100;not null"`
}

// PortfolioSkill ポートフォリオの技術スタック (スキル名のみ、参照整合性なし)
type PortfolioSkill struct {
	ID          uint   `gorm:"primaryKey"`
	PortfolioID uint   `gorm:"not null;index:idx_portfolio_skill"`
	SkillName   string `gorm:"size:100;not null;index:idx_portfolio_skill"`
}

// TagNames タグ名の一覧
func (p *Portfolio) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// SkillNames 技術スタック名の一覧
func (p *Portfolio) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.SkillName)
	}
	return names
}

// SetTags タグ名からリレーションを組み立てる
func (p *Portfolio) SetTags(names []string) {
	p.Tags = make([]PortfolioTag, 0, len(names))
	for _, name := range uniqueNonEmpty(names) {
		p.Tags = append(p.Tags, PortfolioTag{Name: name})
	}
}

// SetSkills スキル名からリレーションを組み立てる
func (p *Portfolio) SetSkills(names []string) {
	p.Skills = make([]PortfolioSkill, 0, len(names))
	for _, name := range uniqueNonEmpty(names) {
		p.Skills = append(p.Skills, PortfolioSkill{SkillName: name})
	}
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
