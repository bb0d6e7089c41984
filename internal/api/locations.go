package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/observability"
)

func (h *Handler) listLocations(c *gin.Context) {
	locs := h.locations.List(c.Request.Context())
	h.observeStore("list", nil)
	if h.metrics != nil {
		h.metrics.SavedLocations.Set(float64(len(locs)))
	}
	c.JSON(http.StatusOK, gin.H{"locations": locs})
}

func (h *Handler) saveLocation(c *gin.Context) {
	var in models.LocationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	var (
		loc     models.Location
		existed bool
	)
	err := h.mutate("save", func() error {
		existed = h.locations.Has(ctx, in.City, in.State)
		var err error
		loc, err = h.locations.Save(ctx, in)
		return err
	})
	if err != nil {
		writeStoreError(c, "salvar a localização", err)
		return
	}

	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	c.JSON(status, loc)
}

func (h *Handler) updateLocation(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	loc.ID = c.Param("id")

	ctx := c.Request.Context()
	if err := h.mutate("update", func() error { return h.locations.Update(ctx, loc) }); err != nil {
		writeStoreError(c, "atualizar a localização", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteLocation(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.mutate("delete", func() error { return h.locations.Delete(ctx, id) }); err != nil {
		writeStoreError(c, "excluir a localização", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) toggleFavorite(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.mutate("favorite", func() error { return h.locations.ToggleFavorite(ctx, id) }); err != nil {
		writeStoreError(c, "atualizar o favorito", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mutate runs fn with location mutations serialized.
func (h *Handler) mutate(op string, fn func() error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := fn()
	h.observeStore(op, err)
	return err
}

func (h *Handler) observeStore(op string, err error) {
	if h.metrics != nil {
		h.metrics.StoreOperations.WithLabelValues(op, observability.Outcome(err)).Inc()
	}
}
