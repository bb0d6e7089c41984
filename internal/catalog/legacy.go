package catalog

import (
	"fmt"
	"strings"

	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/risk"
	"github.com/mr1hm/go-weather-alerts/internal/textnorm"
)

// rawEntry accepts both the current shape and the older one that carried a
// single floodRisk level instead of risks.currentRisks.
type rawEntry struct {
	models.CatalogEntry
	FloodRisk string `json:"floodRisk,omitempty"`
}

// Older catalogs used names outside the DisasterType set.
var disasterAliases = map[string]models.DisasterType{
	"enchente":     models.DisasterTypeFlood,
	"alagamento":   models.DisasterTypeFlood,
	"deslizamento": models.DisasterTypeLandslide,
	"seca":         models.DisasterTypeDrought,
	"incendio":     models.DisasterTypeFire,
	"vendaval":     models.DisasterTypeGale,
	"costeiro":     models.DisasterTypeGale,
	"nenhum":       models.DisasterTypeNone,
}

func canonicalDisaster(t models.DisasterType) (models.DisasterType, error) {
	if d, ok := disasterAliases[textnorm.Normalize(string(t))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown disaster type %q", t)
}

func canonicalLevel(l models.RiskLevel) (models.RiskLevel, error) {
	parsed := risk.ParseLevel(string(l))
	if parsed == models.RiskLevelNone && textnorm.Normalize(string(l)) != "nenhum" {
		return "", fmt.Errorf("unknown risk level %q", l)
	}
	return parsed, nil
}

func (r rawEntry) toEntry() (models.CatalogEntry, error) {
	e := r.CatalogEntry
	e.City = strings.TrimSpace(e.City)
	e.State = strings.TrimSpace(e.State)

	active := make([]models.DisasterType, 0, len(e.ActiveDisasters))
	for _, d := range e.ActiveDisasters {
		c, err := canonicalDisaster(d)
		if err != nil {
			return e, err
		}
		active = append(active, c)
	}
	e.ActiveDisasters = active

	current := make([]models.DisasterRisk, 0, len(e.Risks.CurrentRisks))
	for _, cr := range e.Risks.CurrentRisks {
		t, err := canonicalDisaster(cr.Type)
		if err != nil {
			return e, err
		}
		l, err := canonicalLevel(cr.Level)
		if err != nil {
			return e, err
		}
		current = append(current, models.DisasterRisk{Type: t, Level: l, Details: cr.Details})
	}

	if len(current) == 0 && r.FloodRisk != "" {
		l, err := canonicalLevel(models.RiskLevel(r.FloodRisk))
		if err != nil {
			return e, fmt.Errorf("floodRisk: %w", err)
		}
		current = append(current, models.DisasterRisk{
			Type:  models.DisasterTypeFlood,
			Level: l,
		})
	}
	e.Risks.CurrentRisks = current

	return e, nil
}
