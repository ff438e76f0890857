package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"mareblu-backend/internal/schedule"
	"mareblu-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	schedule *schedule.Service
	webpush  *webpush.Options
	cache    *cache.Cache
	location *time.Location
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, svc *schedule.Service, webpushOptions *webpush.Options, cacheStore *cache.Cache, loc *time.Location) *Handler {
	return &Handler{
		store:    s,
		schedule: svc,
		webpush:  webpushOptions,
		cache:    cacheStore,
		location: loc,
	}
}

// flushCache drops all cached GET responses after a mutation so the next
// schedule read recomputes against fresh records.
func (h *Handler) flushCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}

// today returns the current wall-clock day in the configured timezone.
func (h *Handler) today() time.Time {
	if h.location != nil {
		return time.Now().In(h.location)
	}
	return time.Now().UTC()
}
