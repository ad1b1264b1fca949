package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"recipe-parser/internal/core/recipe"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisStore Redis 緩存服務
type RedisStore struct {
	client *redis.Client
	config *config.CacheConfig
	hits   int64
	misses int64
}

// NewRedisStore 創建 Redis 緩存並測試連接
func NewRedisStore(cfg *config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg), nil
}

// NewRedisStoreWithClient 使用既有的 client
func NewRedisStoreWithClient(client *redis.Client, cfg *config.CacheConfig) *RedisStore {
	return &RedisStore{
		client: client,
		config: cfg,
	}
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, url string) (*recipe.Recipe, bool, error) {
	key := generateKey(url)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddInt64(&s.misses, 1)
			common.LogCacheMiss("redis", key)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cache: %w", err)
	}

	r, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	atomic.AddInt64(&s.hits, 1)
	common.LogCacheHit("redis", key)
	return r, true, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, url string, r *recipe.Recipe) error {
	value, err := encode(r)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, generateKey(url), value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 快取統計
func (s *RedisStore) Stats() map[string]interface{} {
	return map[string]interface{}{
		"backend": "redis",
		"addr":    s.config.RedisAddr,
		"hits":    atomic.LoadInt64(&s.hits),
		"misses":  atomic.LoadInt64(&s.misses),
	}
}

// Close 關閉連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
