package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"ewaste-tracking-backend/config"
	"ewaste-tracking-backend/internal/intake"
	"ewaste-tracking-backend/internal/mw"
	"ewaste-tracking-backend/internal/tracking"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, intakeSvc *intake.Service, trackingSvc *tracking.Service) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(intakeSvc, trackingSvc, cfg.Tracking.QRDir)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// Public tracking surface: the QR landing page and the manual search.
	r.GET("/track/:mac", rateLimiter, caching, handler.TrackDevice)
	r.GET("/qr_codes/:filename", rateLimiter, handler.ServeQRCode)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/track", caching, handler.TrackDeviceQuery)
		api.POST("/intake", handler.RegisterDevice)
	}

	return r
}
