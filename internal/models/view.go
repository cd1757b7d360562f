package models

import (
	"time"
)

// PortfolioView 一覧・詳細で返す非正規化済みポートフォリオ
type PortfolioView struct {
	ID             uint            `json:"_id"`
	Title          string          `json:"title"`
	Contents       string          `json:"contents"`
	ViewCount      int             `json:"view"`
	Images         []string        `json:"images"`
	Tags           []string        `json:"tags"`
	TechStack      []TechStackInfo `json:"techStack"`
	CreatedAt      time.Time       `json:"createdAt"`
	ThumbnailImage *string         `json:"thumbnailImage"`
	UserInfo       *OwnerInfo      `json:"userInfo"`
	LikeCount      int64           `json:"likeCount"`
	JobGroup       string          `json:"jobGroup"`
}

// PortfolioDetail 詳細レスポンス
type PortfolioDetail struct {
	PortfolioView
	Liked bool `json:"liked"`
}

// NewPortfolioView 集計済みのポートフォリオから表示用データを作成
func NewPortfolioView(p Portfolio, techStack []TechStackInfo) PortfolioView {
	view := PortfolioView{
		ID:             p.ID,
		Title:          p.Title,
		Contents:       p.Contents,
		ViewCount:      p.ViewCount,
		Images:         p.Images,
		Tags:           p.TagNames(),
		TechStack:      techStack,
		CreatedAt:      p.CreatedAt,
		ThumbnailImage: p.ThumbnailImage,
		LikeCount:      p.LikeCount,
	}
	if view.Images == nil {
		view.Images = []string{}
	}
	if view.TechStack == nil {
		view.TechStack = []TechStackInfo{}
	}
	if p.JobGroupName != nil {
		view.JobGroup = *p.JobGroupName
	}
	if p.OwnerName != nil {
		view.UserInfo = &OwnerInfo{
			UserID:       p.UserID,
			Name:         *p.OwnerName,
			ProfileImage: p.OwnerProfileImage,
		}
	}
	return view
}
