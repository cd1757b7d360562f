package models

import (
	"time"
)

// Like いいねモデル
// (PortfolioID, UserID) の組はユニーク
type Like struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PortfolioID uint      `json:"portfolioID" gorm:"not null;uniqueIndex:idx_likes_portfolio_user"`
	UserID      string    `json:"userID" gorm:"size:64;not null;uniqueIndex:idx_likes_portfolio_user;index"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LikeStatus いいねの状態
type LikeStatus struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}
