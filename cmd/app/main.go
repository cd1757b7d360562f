package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/config"
	"github.com/SketchShifter/portfolio_backend/internal/routes"
	"github.com/SketchShifter/portfolio_backend/internal/services"
	"github.com/SketchShifter/portfolio_backend/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("サーバーを起動しています...")

	// 設定をロード
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// Gin モードの設定（環境変数が設定されていない場合はデバッグモード）
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		log.Printf("エンドポイント登録: %s %s -> %s (%d handlers)\n", httpMethod, absolutePath, handlerName, nuHandlers)
	}

	// データベース接続
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("データベース接続に失敗しました: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("SQLDBインスタンス取得に失敗しました: %v", err)
	}
	defer sqlDB.Close()

	// 閲覧セッションの保存先 (Redisに接続できなければメモリ)
	var sessions session.Store
	if client := config.InitRedis(cfg); client != nil {
		defer client.Close()
		sessions = session.NewRedisStore(client, cfg.View.SessionTTL)
	} else {
		sessions = session.NewMemoryStore(cfg.View.SessionTTL)
	}

	// 画像の保存先
	images, err := services.NewImageStore(cfg)
	if err != nil {
		log.Fatalf("画像ストレージの初期化に失敗しました: %v", err)
	}

	// ルーターをセットアップ
	router := routes.SetupRouter(cfg, db, sessions, images)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("サーバーを開始しています... PORT: %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("サーバーの起動に失敗しました: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("サーバーを停止しています...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("サーバーの停止に失敗しました: %v", err)
	}
}
