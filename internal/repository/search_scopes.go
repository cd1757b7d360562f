package repository

import (
	"strings"

	"github.com/SketchShifter/portfolio_backend/internal/pipeline"

	"gorm.io/gorm"
)

type scope = func(*gorm.DB) *gorm.DB

// likeCountExpr ポートフォリオごとのいいね数
const likeCountExpr = "(SELECT COUNT(*) FROM likes WHERE likes.portfolio_id = portfolios.id)"

// enrichSelect 付加情報を含む SELECT 句
const enrichSelect = "portfolios.*, " +
	likeCountExpr + " AS like_count, " +
	"job_groups.name AS job_group_name, " +
	"users.name AS owner_name, " +
	"users.profile_image AS owner_profile_image"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern 大文字小文字を区別しない部分一致パターン (ESCAPE '!' と組み合わせて使う)
// SQL の LOWER に合わせて ASCII の英字だけを小文字にする
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(asciiLower(keyword)) + "%"
}

func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func jobGroupScope(jobGroupID uint) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("portfolios.job_group_id = ?", jobGroupID)
	}
}

// techStackScope 指定したスキルをすべて持つポートフォリオ
func techStackScope(skills []string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"portfolios.id IN (SELECT portfolio_id FROM portfolio_skills WHERE skill_name IN ? "+
				"GROUP BY portfolio_id HAVING COUNT(DISTINCT skill_name) = ?)",
			skills, len(skills),
		)
	}
}

func keywordScope(f pipeline.KeywordFilter) scope {
	return func(db *gorm.DB) *gorm.DB {
		switch f.Field {
		case pipeline.FieldTitle:
			return db.Where("LOWER(portfolios.title) LIKE ? ESCAPE '!'", containsPattern(f.Keyword))
		case pipeline.FieldTag:
			return db.Where(
				"EXISTS (SELECT 1 FROM portfolio_tags WHERE portfolio_tags.portfolio_id = portfolios.id "+
					"AND LOWER(portfolio_tags.name) LIKE ? ESCAPE '!')",
				containsPattern(f.Keyword),
			)
		case pipeline.FieldUser:
			pattern := containsPattern(f.Keyword)
			return db.Where(
				"EXISTS (SELECT 1 FROM users u WHERE u.user_id = portfolios.user_id "+
					"AND (LOWER(u.user_id) LIKE ? ESCAPE '!' OR LOWER(u.name) LIKE ? ESCAPE '!'))",
				pattern, pattern,
			)
		case pipeline.FieldLikedByUser:
			return db.Where(
				"EXISTS (SELECT 1 FROM likes l WHERE l.portfolio_id = portfolios.id AND l.user_id = ?)",
				f.Keyword,
			)
		case pipeline.FieldID:
			return db.Where("portfolios.id = ?", f.PortfolioID)
		default:
			return db
		}
	}
}

func ownerScope(userID string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("portfolios.user_id = ?", userID)
	}
}

// enrichScope いいね数・職種名・所有者情報を付与
func enrichScope(db *gorm.DB) *gorm.DB {
	return db.Select(enrichSelect).
		Joins("LEFT JOIN job_groups ON job_groups.id = portfolios.job_group_id").
		Joins("LEFT JOIN users ON users.user_id = portfolios.user_id")
}

// sortScope 並び順 (同順位は ID の降順で確定させる)
func sortScope(order pipeline.SortOrder) scope {
	return func(db *gorm.DB) *gorm.DB {
		switch order {
		case pipeline.SortViews:
			return db.Order("portfolios.view_count DESC, portfolios.created_at DESC, portfolios.id DESC")
		case pipeline.SortLikes:
			return db.Order(likeCountExpr + " DESC, portfolios.created_at DESC, portfolios.id DESC")
		default:
			return db.Order("portfolios.created_at DESC, portfolios.id DESC")
		}
	}
}

func windowScope(w pipeline.WindowStage) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(w.Skip).Limit(w.Limit)
	}
}
