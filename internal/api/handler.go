package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-weather-alerts/internal/catalog"
	"github.com/mr1hm/go-weather-alerts/internal/observability"
	"github.com/mr1hm/go-weather-alerts/internal/repository"
	"github.com/mr1hm/go-weather-alerts/internal/search"
	"github.com/mr1hm/go-weather-alerts/internal/store"
	"github.com/mr1hm/go-weather-alerts/internal/stream"
)

const (
	defaultSuggestLimit = 3
	maxSuggestLimit     = 20
)

// Deps are the collaborators the handler serves. Broadcaster and Metrics
// may be nil.
type Deps struct {
	Locations    *store.LocationStore
	Views        *store.ViewStore
	Search       *search.Engine
	Catalog      *catalog.Catalog
	Alerts       repository.AlertRepository
	Broadcaster  *stream.Broadcaster
	Metrics      *observability.Metrics
	SuggestLimit int
}

type Handler struct {
	locations    *store.LocationStore
	views        *store.ViewStore
	search       *search.Engine
	catalog      *catalog.Catalog
	alerts       repository.AlertRepository
	broadcaster  *stream.Broadcaster
	metrics      *observability.Metrics
	suggestLimit int

	// mu serializes location mutations; the store itself is last-writer-wins.
	mu sync.Mutex
}

func NewHandler(d Deps) *Handler {
	limit := d.SuggestLimit
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	return &Handler{
		locations:    d.Locations,
		views:        d.Views,
		search:       d.Search,
		catalog:      d.Catalog,
		alerts:       d.Alerts,
		broadcaster:  d.Broadcaster,
		metrics:      d.Metrics,
		suggestLimit: limit,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)

	api := r.Group("/api")

	api.GET("/locations", h.listLocations)
	api.POST("/locations", h.saveLocation)
	api.PUT("/locations/:id", h.updateLocation)
	api.DELETE("/locations/:id", h.deleteLocation)
	api.POST("/locations/:id/favorite", h.toggleFavorite)

	api.GET("/search", h.searchLocations)
	api.GET("/suggestions", h.suggestions)

	api.GET("/alerts", h.getAlerts)
	api.GET("/alerts/locations", h.alertLocations)
	api.GET("/alerts/map", h.alertMap)
	api.GET("/alerts/stream", h.streamAlerts)

	api.GET("/catalog/:state/:city", h.catalogEntry)

	api.GET("/view", h.getView)
	api.PUT("/view", h.putView)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeStoreError maps store failures to a status and a message fit to
// show the user.
func writeStoreError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidLocation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateLocation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrStorageUnavailable):
		slog.Error("storage unavailable", "action", action, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "não foi possível " + action + ", tente novamente"})
	default:
		slog.Error("unexpected store error", "action", action, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "não foi possível " + action})
	}
}
