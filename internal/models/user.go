package models

import (
	"time"
)

// User ユーザーモデル (認証サービスが所有、ここでは読み取り専用)
type User struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	UserID       string    `json:"userID" gorm:"size:64;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	ProfileImage *string   `json:"profileImage"`
	TechStack    []string  `json:"techStack" gorm:"type:text;serializer:json"`
	JobGroupID   uint      `json:"jobGroupId"`
	Intro        string    `json:"intro"`
	Links        []string  `json:"links" gorm:"type:text;serializer:json"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OwnerInfo ポートフォリオ所有者の表示情報
type OwnerInfo struct {
	UserID       string  `json:"userID"`
	Name         string  `json:"name"`
	ProfileImage *string `json:"profileImage"`
}

// CurrentUser 認証済みユーザー
type CurrentUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserProfile ユーザープロフィール (受け取ったいいねの合計付き)
type UserProfile struct {
	User
	LikeCount int64 `json:"likeCount"`
}
