// Package risk maps risk levels and alert severities to ordinal ranks and
// display colors. Every function is total: unknown input gets rank 0 and
// the neutral color.
package risk

import (
	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/textnorm"
)

const (
	ColorLow      = "#4CAF50"
	ColorMedium   = "#FFC107"
	ColorHigh     = "#FF9800"
	ColorCritical = "#F44336"
	ColorNeutral  = "#757575"
)

// ParseLevel accepts accent- and case-insensitive spellings ("medio",
// "CRITICO"). Unknown text maps to Nenhum.
func ParseLevel(s string) models.RiskLevel {
	switch textnorm.Normalize(s) {
	case "baixo":
		return models.RiskLevelLow
	case "medio":
		return models.RiskLevelMedium
	case "alto":
		return models.RiskLevelHigh
	case "critico":
		return models.RiskLevelCritical
	default:
		return models.RiskLevelNone
	}
}

func Rank(level models.RiskLevel) int {
	switch ParseLevel(string(level)) {
	case models.RiskLevelCritical:
		return 4
	case models.RiskLevelHigh:
		return 3
	case models.RiskLevelMedium:
		return 2
	case models.RiskLevelLow:
		return 1
	default:
		return 0
	}
}

func Color(level models.RiskLevel) string {
	switch Rank(level) {
	case 4:
		return ColorCritical
	case 3:
		return ColorHigh
	case 2:
		return ColorMedium
	case 1:
		return ColorLow
	default:
		return ColorNeutral
	}
}

// MaxRank returns the highest rank among risks, 0 when empty.
func MaxRank(risks []models.DisasterRisk) int {
	max := 0
	for _, r := range risks {
		if rank := Rank(r.Level); rank > max {
			max = rank
		}
	}
	return max
}

func SeverityRank(s models.AlertSeverity) int {
	switch s {
	case models.AlertSeverityCritical:
		return 4
	case models.AlertSeverityHigh:
		return 3
	case models.AlertSeverityMedium:
		return 2
	case models.AlertSeverityLow:
		return 1
	default:
		return 0
	}
}

func SeverityColor(s models.AlertSeverity) string {
	switch s {
	case models.AlertSeverityCritical:
		return ColorCritical
	case models.AlertSeverityHigh:
		return ColorHigh
	case models.AlertSeverityMedium:
		return ColorMedium
	case models.AlertSeverityLow:
		return ColorLow
	default:
		return ColorNeutral
	}
}

// TemperatureColor buckets a temperature in °C for map backgrounds.
func TemperatureColor(temp float64) string {
	switch {
	case temp >= 30:
		return "#FF4D4D"
	case temp >= 25:
		return "#FFA07A"
	case temp >= 20:
		return "#FFD700"
	case temp >= 15:
		return "#98FB98"
	default:
		return "#87CEEB"
	}
}
