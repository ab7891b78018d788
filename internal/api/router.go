package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/config"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/mw"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/session"
)

// NewRouter creates and configures a new Gin router over the session.
func NewRouter(s *session.Session, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	handler := NewHandler(s, cfg)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	metaCache := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(metaCache, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/plan", handler.GetPlan)
		api.PATCH("/plan/cells", handler.PatchCell)
		api.GET("/plan/unprocessed", handler.GetUnprocessed)
		api.POST("/plan/undo", handler.PostUndo)
		api.POST("/plan/redo", handler.PostRedo)
		api.POST("/plan/copy", handler.PostCopy)

		api.GET("/meta", caching, handler.GetMeta)
	}

	return r
}
