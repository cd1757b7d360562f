package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "viewer_session:"

// RedisStore Redis に JSON で保存するセッションストア
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore RedisStoreを作成
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) key(id string) string {
	return keyPrefix + id
}

// Load セッションを読み込む
func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s := New(id)
	if err := json.Unmarshal(data, s); err != nil {
		// 壊れたセッションは作り直す
		return New(id), nil
	}
	if s.ViewedPortfolios == nil {
		s.ViewedPortfolios = map[uint]int64{}
	}
	return s, nil
}

// Save セッションを保存 (TTL を更新する)
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
