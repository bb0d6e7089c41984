package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/risk"
)

type riskView struct {
	models.DisasterRisk
	Rank  int    `json:"rank"`
	Color string `json:"color"`
}

type catalogResponse struct {
	Entry            models.CatalogEntry `json:"entry"`
	Known            bool                `json:"known"`
	Saved            bool                `json:"saved"`
	TemperatureColor string              `json:"temperatureColor"`
	Risks            []riskView          `json:"risks"`
}

func (h *Handler) catalogEntry(c *gin.Context) {
	city := strings.TrimSpace(c.Param("city"))
	state := strings.TrimSpace(c.Param("state"))

	_, known := h.catalog.Get(city, state)
	entry := h.catalog.Lookup(city, state)

	risks := make([]riskView, 0, len(entry.Risks.CurrentRisks))
	for _, r := range entry.Risks.CurrentRisks {
		risks = append(risks, riskView{
			DisasterRisk: r,
			Rank:         risk.Rank(r.Level),
			Color:        risk.Color(r.Level),
		})
	}

	c.JSON(http.StatusOK, catalogResponse{
		Entry:            entry,
		Known:            known,
		Saved:            h.locations.Has(c.Request.Context(), city, state),
		TemperatureColor: risk.TemperatureColor(entry.Weather.Temperature),
		Risks:            risks,
	})
}

func (h *Handler) getView(c *gin.Context) {
	view, err := h.views.Load(c.Request.Context())
	if err != nil {
		writeStoreError(c, "carregar a última localização", err)
		return
	}
	if view == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) putView(c *gin.Context) {
	var view models.SavedView
	if err := c.ShouldBindJSON(&view); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.views.Save(c.Request.Context(), view); err != nil {
		writeStoreError(c, "salvar a última localização", err)
		return
	}
	c.Status(http.StatusNoContent)
}
