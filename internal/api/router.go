package api

import (
	"time"

	"recipe-parser/internal/api/handlers/health"
	recipeHandler "recipe-parser/internal/api/handlers/recipe"
	"recipe-parser/internal/api/middleware"
	"recipe-parser/internal/core/cache"
	"recipe-parser/internal/core/queue"
	"recipe-parser/internal/core/recipe"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"
	"recipe-parser/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services 路由需要的服務
type Services struct {
	Parser *recipe.Parser
	Loader recipeHandler.RecipeLoader
	Queue  *queue.Manager
	Cache  cache.Store // 可為 nil
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// 健康檢查路由不受限流影響
	healthHandler := health.NewHandler(cfg, svc.Queue, svc.Cache)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由組
	api := router.Group("/api/v1")
	api.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
			cfg.RateLimit.Window,
		))
	}
	api.Use(middleware.RequestContext(cfg.Server.RequestTimeout))
	{
		h := recipeHandler.NewHandler(svc.Parser, svc.Loader, svc.Queue, cfg.Queue.MaxSize, cfg.App.Debug)

		// 只有會抓取外部頁面的路由需要去重
		dedup := middleware.Deduplication(cfg.DedupWindow)

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/parse", h.HandleParse)
			recipeGroup.POST("/fetch", dedup, h.HandleFetch)
			recipeGroup.POST("/batch", dedup, h.HandleBatch)
		}

		cookGroup := api.Group("/cook")
		{
			cookGroup.POST("/qa", h.HandleCookQA)
		}
	}

	router.NoRoute(abortWith(common.ErrNotFound, cfg.App.Debug))
	router.NoMethod(abortWith(common.ErrMethodNotAllowed, cfg.App.Debug))

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", svc.Cache != nil),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}

// abortWith 以固定錯誤回應
func abortWith(err *common.CustomError, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, resp := common.ToResponse(err, debug)
		c.AbortWithStatusJSON(status, resp)
	}
}
