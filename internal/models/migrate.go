package models

// AllModels マイグレーション対象のモデル (作成順)
func AllModels() []interface{} {
	return []interface{}{
		&JobGroup{},
		&TechStack{},
		&User{},
		&Portfolio{},
		&PortfolioTag{},
		&PortfolioSkill{},
		&Like{},
	}
}
