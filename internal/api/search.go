package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) searchLocations(c *gin.Context) {
	res := h.search.Search(c.Request.Context(), c.Query("q"))

	if h.metrics != nil {
		switch {
		case res.AllSaved():
			h.metrics.SearchesAllSaved.Inc()
		case res.Matched == 0 && len(res.Term) > 0:
			h.metrics.SearchesNoResults.Inc()
		}
	}

	// term is echoed so debounced clients can drop stale responses.
	c.JSON(http.StatusOK, gin.H{
		"term":      res.Term,
		"locations": res.Locations,
		"matched":   res.Matched,
		"allSaved":  res.AllSaved(),
	})
}

func (h *Handler) suggestions(c *gin.Context) {
	limit := h.suggestLimit
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= maxSuggestLimit {
			limit = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": h.search.Suggest(c.Request.Context(), limit),
	})
}
