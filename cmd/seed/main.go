package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/config"
	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/services"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// 職種ごとの技術スタック
var catalog = map[string][]string{
	"Frontend": {"React", "Vue", "TypeScript", "Next.js", "Svelte"},
	"Backend":  {"Go", "Node.js", "Spring", "Django", "Rails"},
	"Infra":    {"AWS", "Kubernetes", "Terraform", "Docker"},
	"Mobile":   {"Swift", "Kotlin", "Flutter"},
}

func main() {
	users := flag.Int("users", 10, "作成するユーザー数")
	portfolios := flag.Int("portfolios", 50, "作成するポートフォリオ数")
	seed := flag.Int64("seed", time.Now().UnixNano(), "乱数のシード")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("データベース接続に失敗しました: %v", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		log.Fatalf("マイグレーションに失敗しました: %v", err)
	}

	gofakeit.Seed(*seed)
	r := rand.New(rand.NewSource(*seed))

	var demo models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		groups, stacks, err := seedReference(tx)
		if err != nil {
			return err
		}

		created, err := seedUsers(tx, *users, groups)
		if err != nil {
			return err
		}
		demo = created[0]

		return seedPortfolios(tx, r, *portfolios, created, groups, stacks)
	})
	if err != nil {
		log.Fatalf("データの投入に失敗しました: %v", err)
	}

	token, err := services.NewAuthService(cfg.Auth.JWTSecret).
		GenerateToken(models.CurrentUser{ID: demo.UserID, Name: demo.Name}, 7*24*time.Hour)
	if err != nil {
		log.Fatalf("トークンの発行に失敗しました: %v", err)
	}

	fmt.Printf("データの投入が完了しました: users=%d, portfolios=%d\n", *users, *portfolios)
	fmt.Printf("デモユーザー: %s\n", demo.UserID)
	fmt.Printf("Authorization: Bearer %s\n", token)
}

// seedReference 職種と技術スタックを作成 (既存のものは再利用)
func seedReference(tx *gorm.DB) ([]models.JobGroup, map[uint][]string, error) {
	var groups []models.JobGroup
	stacks := map[uint][]string{}

	for name, skills := range catalog {
		group := models.JobGroup{Name: name}
		if err := tx.Where(models.JobGroup{Name: name}).FirstOrCreate(&group).Error; err != nil {
			return nil, nil, err
		}
		groups = append(groups, group)

		for _, skill := range skills {
			stack := models.TechStack{
				SkillName:  skill,
				BgColor:    gofakeit.HexColor(),
				TextColor:  "#FFFFFF",
				JobGroupID: group.ID,
			}
			if err := tx.Where(models.TechStack{SkillName: skill}).FirstOrCreate(&stack).Error; err != nil {
				return nil, nil, err
			}
			stacks[group.ID] = append(stacks[group.ID], skill)
		}
	}

	return groups, stacks, nil
}

// seedUsers ユーザーを作成
func seedUsers(tx *gorm.DB, n int, groups []models.JobGroup) ([]models.User, error) {
	if n < 1 {
		n = 1
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		image := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
		user := models.User{
			UserID:       fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Name:         gofakeit.Name(),
			ProfileImage: &image,
			TechStack:    []string{},
			JobGroupID:   groups[i%len(groups)].ID,
			Intro:        gofakeit.Sentence(12),
			Links:        []string{gofakeit.URL()},
		}
		if err := tx.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// seedPortfolios ポートフォリオといいねを作成
func seedPortfolios(tx *gorm.DB, r *rand.Rand, n int, users []models.User, groups []models.JobGroup, stacks map[uint][]string) error {
	now := time.Now()
	for i := 0; i < n; i++ {
		owner := users[r.Intn(len(users))]
		group := groups[r.Intn(len(groups))]
		skills := stacks[group.ID]
		thumbnail := fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.UUID())

		p := models.Portfolio{
			Title:          gofakeit.Sentence(4),
			Contents:       gofakeit.Paragraph(2, 3, 8, "\n"),
			ViewCount:      r.Intn(500),
			Images:         []string{thumbnail},
			JobGroupID:     group.ID,
			ThumbnailImage: &thumbnail,
			UserID:         owner.UserID,
			CreatedAt:      gofakeit.DateRange(now.AddDate(0, -6, 0), now),
		}
		p.SetTags([]string{gofakeit.Word(), gofakeit.Word()})
		p.SetSkills(pick(r, skills, 1+r.Intn(len(skills))))
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		for _, liker := range pick(r, userIDs(users), r.Intn(len(users)+1)) {
			if err := tx.Create(&models.Like{PortfolioID: p.ID, UserID: liker}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func pick(r *rand.Rand, values []string, n int) []string {
	shuffled := append([]string(nil), values...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func userIDs(users []models.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.UserID)
	}
	return ids
}
