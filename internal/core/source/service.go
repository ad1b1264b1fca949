package source

import (
	"context"
	"errors"
	"strings"
	"time"

	"recipe-parser/internal/core/cache"
	"recipe-parser/internal/core/recipe"
	"recipe-parser/internal/pkg/common"
	"recipe-parser/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Service 抓取、擷取並解析來源頁面
type Service struct {
	fetcher PageFetcher
	parser  *recipe.Parser
	cache   cache.Store
}

// NewService 建立服務，store 為 nil 表示不使用快取
func NewService(fetcher PageFetcher, parser *recipe.Parser, store cache.Store) *Service {
	if parser == nil {
		parser = recipe.NewParser(nil)
	}
	return &Service{
		fetcher: fetcher,
		parser:  parser,
		cache:   store,
	}
}

// Load 取得 URL 的解析結果，命中快取時不重新抓取
func (s *Service) Load(ctx context.Context, url string) (*recipe.Recipe, error) {
	url = strings.TrimSpace(url)
	if err := ValidateURL(url); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, url)
		switch {
		case err != nil:
			common.LogWarn("讀取快取失敗", zap.String("url", url), zap.Error(err))
		case ok:
			metrics.CacheTotal.WithLabelValues(metrics.ResultHit).Inc()
			return cached, nil
		default:
			metrics.CacheTotal.WithLabelValues(metrics.ResultMiss).Inc()
		}
	}

	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractRecipeData(page)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.parser.ParseRaw(raw.Title, url, raw.Ingredients, raw.Instructions)
	if err != nil {
		metrics.ObserveParse(start, 0, err, errors.Is(err, recipe.ErrInvalidInput))
		return nil, err
	}
	metrics.ObserveParse(start, len(result.Steps), nil, false)

	if s.cache != nil {
		if err := s.cache.Set(ctx, url, result); err != nil {
			common.LogWarn("寫入快取失敗", zap.String("url", url), zap.Error(err))
		}
	}

	return result, nil
}
