package api

import (
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"mareblu-backend/config"
	"mareblu-backend/internal/mw"
	"mareblu-backend/internal/schedule"
	"mareblu-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, svc *schedule.Service, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, falling back to UTC", cfg.Schedule.Timezone)
		loc = time.UTC
	}

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	handler := NewHandler(s, svc, webpushOptions, cacheStore, loc)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Read path: recompute + merge, cached briefly
		api.GET("/schedule", caching, handler.GetSchedule)
		api.GET("/apartments", caching, handler.GetApartments)

		// Write path: single-record mutations, each flushes the cache
		api.POST("/cleanings", handler.CreateCleaning)
		api.PATCH("/cleanings/:id", handler.UpdateCleaning)
		api.DELETE("/cleanings/:id", handler.DeleteCleaning)

		// Staff device push registry
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
