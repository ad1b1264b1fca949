package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-parser/internal/pkg/common"
)

// 超過這個數量才掃描過期指紋
const dedupSweepThreshold = 1024

// deduplicator 請求去重緩存
type deduplicator struct {
	mu       sync.Mutex
	window   time.Duration
	requests map[string]time.Time
	now      func() time.Time
}

// Deduplication 請求去重中間件，同一客戶端 window 內相同的 POST 請求回 429
func Deduplication(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = time.Second
	}
	d := &deduplicator{
		window:   window,
		requests: make(map[string]time.Time),
		now:      time.Now,
	}
	return d.handle
}

func (d *deduplicator) handle(c *gin.Context) {
	// 只處理 POST 請求
	if c.Request.Method != "POST" {
		c.Next()
		return
	}

	// 計算請求體哈希
	bodyHash := ""
	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			common.LogWarn("Failed to read request body", zap.Error(err))
			apiErr := common.ErrInvalidRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apiErr = common.ErrRequestTooLarge
			}
			status, resp := common.ToResponse(apiErr, false)
			c.AbortWithStatusJSON(status, resp)
			return
		}
		bodyHash = common.HashString(string(body))

		// 恢復請求體
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	// 生成請求指紋，不同客戶端各自計算
	fingerprint := c.Request.Method + ":" + c.ClientIP() + ":" + c.Request.URL.Path + ":" + bodyHash

	if d.seen(fingerprint) {
		common.LogInfo("Duplicate request rejected",
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)
		status, resp := common.ToResponse(common.ErrTooManyRequests, false)
		c.AbortWithStatusJSON(status, resp)
		return
	}

	c.Next()
}

// seen 檢查並記錄指紋
func (d *deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if last, exists := d.requests[fingerprint]; exists && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now

	if len(d.requests) > dedupSweepThreshold {
		for k, t := range d.requests {
			if now.Sub(t) > d.window {
				delete(d.requests, k)
			}
		}
	}
	return false
}
