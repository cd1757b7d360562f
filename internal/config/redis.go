package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis Redis接続を初期化
// 無効化されているか接続できない場合は nil を返す (呼び出し側はメモリストアを使う)
func InitRedis(cfg *Config) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Println("Redisは無効です。セッションはメモリに保存されます")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redisに接続できません: %v (セッションはメモリに保存されます)", err)
		_ = client.Close()
		return nil
	}

	log.Printf("Redis接続に成功しました: %s", cfg.Redis.Addr)
	return client
}
