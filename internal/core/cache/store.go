package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"recipe-parser/internal/core/recipe"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"
)

// Store 已解析食譜的快取，以來源 URL 為鍵
type Store interface {
	// Get 取得快取的食譜，未命中時 ok 為 false
	Get(ctx context.Context, url string) (*recipe.Recipe, bool, error)

	// Set 寫入快取
	Set(ctx context.Context, url string, r *recipe.Recipe) error

	// Stats 快取統計
	Stats() map[string]interface{}

	// Close 釋放資源
	Close() error
}

// NewStore 依設定建立快取，未啟用時返回 nil
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisStore(&cfg.Cache)
	case "memory", "":
		return NewManager(&cfg.Cache), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// generateKey 生成緩存鍵
func generateKey(url string) string {
	return "recipe:" + common.HashString(url)
}

func encode(r *recipe.Recipe) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal recipe: %w", err)
	}
	return string(data), nil
}

func decode(data []byte) (*recipe.Recipe, error) {
	var r recipe.Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	return &r, nil
}
