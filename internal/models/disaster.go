package models

type DisasterType string

const (
	DisasterTypeFlood     DisasterType = "Enchente"
	DisasterTypeLandslide DisasterType = "Deslizamento"
	DisasterTypeDrought   DisasterType = "Seca"
	DisasterTypeFire      DisasterType = "Incêndio"
	DisasterTypeGale      DisasterType = "Vendaval"
	DisasterTypeNone      DisasterType = "Nenhum"
)

func (t DisasterType) Valid() bool {
	switch t {
	case DisasterTypeFlood, DisasterTypeLandslide, DisasterTypeDrought,
		DisasterTypeFire, DisasterTypeGale, DisasterTypeNone:
		return true
	}
	return false
}

// RiskLevel is ordered Nenhum < Baixo < Médio < Alto < Crítico.
type RiskLevel string

const (
	RiskLevelNone     RiskLevel = "Nenhum"
	RiskLevelLow      RiskLevel = "Baixo"
	RiskLevelMedium   RiskLevel = "Médio"
	RiskLevelHigh     RiskLevel = "Alto"
	RiskLevelCritical RiskLevel = "Crítico"
)

type DisasterRisk struct {
	Type    DisasterType `json:"type"`
	Level   RiskLevel    `json:"level"`
	Details string       `json:"details"`
}

type Weather struct {
	Temperature     float64 `json:"temperature"`
	Condition       string  `json:"condition"`
	Humidity        int     `json:"humidity"`
	RainProbability int     `json:"rainProbability"`
}

type RiskData struct {
	CurrentRisks   []DisasterRisk `json:"currentRisks"`
	RainLevel      string         `json:"rainLevel"`
	SoilSaturation string         `json:"soilSaturation"`
	RiskAreas      int            `json:"riskAreas"`
}

// CatalogEntry is read-only reference data for a known place.
type CatalogEntry struct {
	City            string         `json:"city"`
	State           string         `json:"state"`
	Weather         Weather        `json:"weather"`
	ActiveDisasters []DisasterType `json:"activeDisasters"`
	Risks           RiskData       `json:"risks"`
	Recommendations []string       `json:"recommendations"`
}

// HasActiveDisaster ignores the "Nenhum" placeholder some feeds use for an empty list.
func (e CatalogEntry) HasActiveDisaster() bool {
	for _, d := range e.ActiveDisasters {
		if d != DisasterTypeNone && d != "" {
			return true
		}
	}
	return false
}

// ToLocation projects the entry onto an unsaved Location candidate.
func (e CatalogEntry) ToLocation() Location {
	temp := e.Weather.Temperature
	return Location{
		ID:          LocationID(e.City, e.State),
		City:        e.City,
		State:       e.State,
		Temperature: &temp,
		Condition:   e.Weather.Condition,
	}
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
