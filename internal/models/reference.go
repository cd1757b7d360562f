package models

// JobGroup 職種モデル
type JobGroup struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"job" gorm:"size:100;uniqueIndex;not null"`
}

// TechStack 技術スタックモデル
type TechStack struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	SkillName  string `json:"skill" gorm:"size:100;uniqueIndex;not null"`
	BgColor    string `json:"bgColor" gorm:"size:16;not null;default:'#201E50'"`
	TextColor  string `json:"textColor" gorm:"size:16;not null;default:'#FFFFFF'"`
	JobGroupID uint   `json:"jobCode" gorm:"not null;index"`
}

// TechStackInfo 表示用の技術スタック情報
type TechStackInfo struct {
	Skill      string `json:"skill"`
	BgColor    string `json:"bgColor"`
	TextColor  string `json:"textColor"`
	JobGroupID uint   `json:"jobCode"`
}

// Info 表示用の情報に変換
func (t TechStack) Info() TechStackInfo {
	return TechStackInfo{
		Skill:      t.SkillName,
		BgColor:    t.BgColor,
		TextColor:  t.TextColor,
		JobGroupID: t.JobGroupID,
	}
}

// TechStackUsage 技術スタックの利用統計
type TechStackUsage struct {
	TechStackInfo
	TotalCount int64 `json:"totalCount"`
}
