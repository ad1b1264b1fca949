package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 結果標籤
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

var (
	// 解析指標
	ParseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_parse_total",
			Help: "Total number of recipe parses by result",
		},
		[]string{"result"},
	)

	StepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_steps_total",
			Help: "Total number of atomic steps produced",
		},
	)

	ParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_parse_duration_seconds",
			Help:    "Duration of recipe parsing in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// 來源抓取指標
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_fetch_total",
			Help: "Total number of source page fetches by result",
		},
		[]string{"result"},
	)

	// 快取指標
	CacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_cache_total",
			Help: "Total number of recipe cache lookups by result",
		},
		[]string{"result"},
	)

	// HTTP 請求指標
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_rate_limit_rejects_total",
			Help: "Total number of requests rejected due to rate limiting",
		},
	)
)

// ObserveParse 記錄一次解析
func ObserveParse(start time.Time, steps int, err error, invalid bool) {
	ParseDuration.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		ParseTotal.WithLabelValues(ResultSuccess).Inc()
		StepsTotal.Add(float64(steps))
	case invalid:
		ParseTotal.WithLabelValues(ResultInvalid).Inc()
	default:
		ParseTotal.WithLabelValues(ResultError).Inc()
	}
}

// Middleware 記錄 HTTP 請求數量與延遲
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// 使用路由樣板避免高基數
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
