package routes

import (
	"github.com/SketchShifter/portfolio_backend/internal/config"
	"github.com/SketchShifter/portfolio_backend/internal/controllers"
	"github.com/SketchShifter/portfolio_backend/internal/metrics"
	"github.com/SketchShifter/portfolio_backend/internal/middlewares"
	"github.com/SketchShifter/portfolio_backend/internal/repository"
	"github.com/SketchShifter/portfolio_backend/internal/services"
	"github.com/SketchShifter/portfolio_backend/internal/session"
	"github.com/SketchShifter/portfolio_backend/internal/viewcounter"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter ルーターを設定
// sessions は閲覧セッションの保存先、images は画像の保存先
func SetupRouter(cfg *config.Config, db *gorm.DB, sessions session.Store, images services.ImageStore) *gin.Engine {
	// Ginルーターを作成
	r := gin.Default()

	// ミドルウェアを設定
	r.Use(middlewares.ErrorMiddleware())
	r.Use(middlewares.CORSMiddleware(cfg.Server.AllowedOrigins))

	// リポジトリを作成
	transactor := repository.NewTransactor(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	jobGroupRepo := repository.NewJobGroupRepository(db)
	techStackRepo := repository.NewTechStackRepository(db)
	userRepo := repository.NewUserRepository(db)

	// サービスを作成
	queryTimeout := cfg.Database.QueryTimeout
	authService := services.NewAuthService(cfg.Auth.JWTSecret)
	portfolioService := services.NewPortfolioService(
		portfolioRepo,
		likeRepo,
		jobGroupRepo,
		transactor,
		viewcounter.New(portfolioRepo),
		sessions,
		queryTimeout,
	)
	likeService := services.NewLikeService(likeRepo, queryTimeout)
	referenceService := services.NewReferenceService(jobGroupRepo, techStackRepo)
	userService := services.NewUserService(userRepo, likeRepo)
	imageService := services.NewImageService(images, cfg.Storage)
	healthService := services.NewHealthService(db, sessionKind(sessions))

	// コントローラーを作成
	authController := controllers.NewAuthController()
	portfolioController := controllers.NewPortfolioController(portfolioService, likeService)
	referenceController := controllers.NewReferenceController(referenceService)
	userController := controllers.NewUserController(userService)
	uploadController := controllers.NewUploadController(imageService)
	healthController := controllers.NewHealthController(healthService)

	// 認証ミドルウェア
	authMiddleware := middlewares.AuthMiddleware(authService)
	optionalAuthMiddleware := middlewares.OptionalAuthMiddleware(authService)
	sessionMiddleware := middlewares.SessionMiddleware(sessions, middlewares.SessionOptions{
		CookieName: cfg.View.CookieName,
		TTL:        cfg.View.SessionTTL,
		Secure:     cfg.View.CookieSecure,
	})

	// 運用エンドポイント
	r.GET("/health", healthController.Check)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// APIグループを作成
	api := r.Group("/api/v1")
	{
		api.GET("/health", healthController.Check)

		// 認証ルート
		api.GET("/auth/me", authMiddleware, authController.GetMe)

		// ポートフォリオルート
		portfolios := api.Group("/portfolios")
		{
			// 認証不要
			portfolios.GET("", portfolioController.List)
			portfolios.GET("/:id", optionalAuthMiddleware, sessionMiddleware, portfolioController.GetByID)

			// 認証が必要
			portfolios.POST("", authMiddleware, portfolioController.Create)
			portfolios.PUT("/:id", authMiddleware, portfolioController.Update)
			portfolios.DELETE("/:id", authMiddleware, portfolioController.Delete)
			portfolios.POST("/:id/like", authMiddleware, portfolioController.ToggleLike)
		}

		// ユーザールート
		users := api.Group("/users")
		{
			users.GET("/:userId", userController.GetProfile)
			users.GET("/:userId/portfolios", portfolioController.ListByUser)
		}

		// 参照データ
		api.GET("/job-groups", referenceController.ListJobGroups)
		api.GET("/tech-stacks", referenceController.ListTechStacks)
		api.GET("/tech-stacks/statistics", referenceController.TechStackStatistics)

		// 画像アップロード
		api.POST("/images", authMiddleware, uploadController.UploadImage)
	}

	return r
}

func sessionKind(store session.Store) string {
	if _, ok := store.(*session.RedisStore); ok {
		return "redis"
	}
	return "memory"
}
