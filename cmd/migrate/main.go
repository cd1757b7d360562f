package main

import (
	"fmt"
	"log"
	"os"

	"github.com/SketchShifter/portfolio_backend/internal/config"
	"github.com/SketchShifter/portfolio_backend/internal/models"
)

func main() {
	// 引数をチェック
	if len(os.Args) < 2 {
		log.Fatal("使用方法: migrate [up|down]")
	}

	// 設定をロード
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// データベース接続
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("データベース接続に失敗しました: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "up":
		if err := db.AutoMigrate(models.AllModels()...); err != nil {
			log.Fatalf("マイグレーションに失敗しました: %v", err)
		}
		fmt.Println("マイグレーションが成功しました")

	case "down":
		// 依存の逆順に削除
		all := models.AllModels()
		tables := make([]interface{}, 0, len(all))
		for i := len(all) - 1; i >= 0; i-- {
			tables = append(tables, all[i])
		}
		if err := db.Migrator().DropTable(tables...); err != nil {
			log.Fatalf("テーブル削除に失敗しました: %v", err)
		}
		fmt.Println("テーブルの削除が成功しました")

	default:
		log.Fatalf("不明なコマンドです: %s", command)
	}
}
