package models

import "time"

type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "LOW"
	AlertSeverityMedium   AlertSeverity = "MEDIUM"
	AlertSeverityHigh     AlertSeverity = "HIGH"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

func (s AlertSeverity) Valid() bool {
	switch s {
	case AlertSeverityLow, AlertSeverityMedium, AlertSeverityHigh, AlertSeverityCritical:
		return true
	}
	return false
}

type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "ACTIVE"
	AlertStatusExpired  AlertStatus = "EXPIRED"
	AlertStatusCanceled AlertStatus = "CANCELED"
)

type AlertType string

const (
	AlertTypeStorm       AlertType = "STORM"
	AlertTypeFlood       AlertType = "FLOOD"
	AlertTypeTemperature AlertType = "TEMPERATURE"
	AlertTypeWind        AlertType = "WIND"
	AlertTypeUV          AlertType = "UV"
	AlertTypeFire        AlertType = "FIRE"
	AlertTypeCoastal     AlertType = "COASTAL"
	AlertTypeLandslide   AlertType = "LANDSLIDE"
	AlertTypeDrought     AlertType = "DROUGHT"
)

// Label returns the Portuguese display label for the alert type.
func (t AlertType) Label() string {
	switch t {
	case AlertTypeStorm:
		return "Tempestade"
	case AlertTypeFlood:
		return "Alagamento"
	case AlertTypeTemperature:
		return "Temperatura"
	case AlertTypeWind:
		return "Vento"
	case AlertTypeUV:
		return "Radiação UV"
	case AlertTypeFire:
		return "Incêndio"
	case AlertTypeCoastal:
		return "Ressaca"
	case AlertTypeLandslide:
		return "Deslizamento"
	case AlertTypeDrought:
		return "Seca"
	default:
		return "Outro"
	}
}

type AlertLocation struct {
	City        string       `json:"city"`
	State       string       `json:"state"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Key returns the "city, state" form used by alert filters.
func (l AlertLocation) Key() string {
	return LocationKey(l.City, l.State)
}

type EmergencyContacts struct {
	CivilDefense string `json:"civilDefense"`
	Firefighters string `json:"firefighters"`
}

// Nationwide emergency numbers used when a feed entry omits them.
var DefaultEmergencyContacts = EmergencyContacts{
	CivilDefense: "199",
	Firefighters: "193",
}

type DisasterAlert struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Type              AlertType         `json:"type"`
	Severity          AlertSeverity     `json:"severity"`
	Status            AlertStatus       `json:"status"`
	StartDate         time.Time         `json:"startDate"`
	EndDate           *time.Time        `json:"endDate,omitempty"`
	Description       string            `json:"description"`
	Location          AlertLocation     `json:"location"`
	AffectedAreas     []string          `json:"affectedAreas"`
	Recommendations   []string          `json:"recommendations"`
	EmergencyContacts EmergencyContacts `json:"emergencyContacts"`
}
