package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"
	"recipe-parser/internal/pkg/metrics"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrInvalidURL URL 不是 http/https 絕對網址
	ErrInvalidURL = errors.New("invalid source url")

	// ErrFetch 來源頁面無法取得
	ErrFetch = errors.New("source fetch failed")
)

// PageFetcher 取得頁面 HTML
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Fetcher 使用 resty 抓取來源頁面
type Fetcher struct {
	client  *resty.Client
	maxBody int64
}

// NewFetcher 依設定建立抓取器
func NewFetcher(cfg *config.FetchConfig) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetRetryCount(cfg.MaxAttempts - 1).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// 只重試連線錯誤與 5xx
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Fetcher{
		client:  client,
		maxBody: cfg.MaxBodyBytes,
	}
}

// Fetch 抓取頁面內容，非 2xx 視為錯誤
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := f.fetch(ctx, rawURL)
	common.LogFetch(rawURL, time.Since(start), err, common.RequestIDFrom(ctx))

	if err != nil {
		metrics.FetchTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}
	metrics.FetchTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return body, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, rawURL, err)
	}

	if resp.IsError() || resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, rawURL, resp.StatusCode())
	}

	body := resp.Body()
	if f.maxBody > 0 && int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("%w: %s body exceeds %d bytes", ErrFetch, rawURL, f.maxBody)
	}
	return body, nil
}

// ValidateURL 只接受帶主機的 http/https 網址
func ValidateURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
