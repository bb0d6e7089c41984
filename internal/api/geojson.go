package api

import (
	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/risk"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// toGeoJSON maps alerts onto points. Alerts without coordinates are left
// out since they cannot be placed.
func toGeoJSON(feed []models.DisasterAlert) FeatureCollection {
	features := make([]Feature, 0, len(feed))

	for _, a := range feed {
		if a.Location.Coordinates == nil {
			continue
		}
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{a.Location.Coordinates.Longitude, a.Location.Coordinates.Latitude},
			},
			Properties: map[string]any{
				"id":         a.ID,
				"title":      a.Title,
				"type":       a.Type,
				"type_label": a.Type.Label(),
				"severity":   a.Severity,
				"color":      risk.SeverityColor(a.Severity),
				"status":     a.Status,
				"location":   a.Location.Key(),
				"start_date": a.StartDate,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
