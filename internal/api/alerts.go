package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-weather-alerts/internal/alerts"
	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/repository"
)

// parseCriteria reads severity plus either city/state or a "city, state"
// location parameter.
func parseCriteria(c *gin.Context) (alerts.Criteria, bool) {
	var crit alerts.Criteria

	if s := c.Query("severity"); s != "" {
		sev := models.AlertSeverity(strings.ToUpper(s))
		if !sev.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid severity: " + s})
			return crit, false
		}
		crit.Severity = &sev
	}

	city, state := strings.TrimSpace(c.Query("city")), strings.TrimSpace(c.Query("state"))
	switch {
	case city != "" && state != "":
		crit.Location = models.LocationKey(city, state)
	case city != "" || state != "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "city and state must be given together"})
		return crit, false
	default:
		crit.Location = strings.TrimSpace(c.Query("location"))
	}

	return crit, true
}

func (h *Handler) getAlerts(c *gin.Context) {
	crit, ok := parseCriteria(c)
	if !ok {
		return
	}

	feed, err := h.alerts.ListAlerts(c.Request.Context(), repository.AlertFilter{})
	if err != nil {
		slog.Error("error listing alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	saved := h.locations.List(c.Request.Context())
	filtered := alerts.Filter(feed, crit)

	resp := gin.H{
		"alerts": alerts.Annotate(filtered, saved),
		"count":  len(filtered),
	}
	if crit.Location != "" {
		resp["location"] = crit.Location
		resp["saved"] = alerts.IsSaved(crit.Location, saved)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) alertLocations(c *gin.Context) {
	feed, err := h.alerts.ListAlerts(c.Request.Context(), repository.AlertFilter{})
	if err != nil {
		slog.Error("error listing alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": alerts.ListLocations(feed, h.locations.List(c.Request.Context())),
	})
}

func (h *Handler) alertMap(c *gin.Context) {
	crit, ok := parseCriteria(c)
	if !ok {
		return
	}

	feed, err := h.alerts.ListAlerts(c.Request.Context(), repository.AlertFilter{})
	if err != nil {
		slog.Error("error listing alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	fc := toGeoJSON(alerts.Filter(feed, crit))
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

// streamAlerts pushes added or changed alerts as server-sent events until
// the client disconnects or the broadcaster closes.
func (h *Handler) streamAlerts(c *gin.Context) {
	if h.broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "alert stream unavailable"})
		return
	}

	crit, ok := parseCriteria(c)
	if !ok {
		return
	}

	id, ch := h.broadcaster.Subscribe(func(a *models.DisasterAlert) bool {
		return len(alerts.Filter([]models.DisasterAlert{*a}, crit)) == 1
	})
	defer h.broadcaster.Unsubscribe(id)

	if h.metrics != nil {
		h.metrics.StreamSubscribers.Inc()
		defer h.metrics.StreamSubscribers.Dec()
	}
	slog.Debug("alert stream opened", "subscriber", id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			slog.Debug("alert stream closed by client", "subscriber", id)
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			saved := h.locations.List(ctx)
			c.SSEvent("alert", alerts.Annotate([]models.DisasterAlert{*a}, saved)[0])
			c.Writer.Flush()
		}
	}
}
