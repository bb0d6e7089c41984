package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mr1hm/go-weather-alerts/internal/models"
)

const (
	LocationsKey = "locations"
	SavedViewKey = "saved_view"

	SchemaVersion = 1
)

type locationsEnvelope struct {
	Version   int               `json:"version"`
	Locations []models.Location `json:"locations"`
}

type viewEnvelope struct {
	Version int              `json:"version"`
	View    models.SavedView `json:"view"`
}

// decodeLocations accepts the versioned envelope and the bare array written
// before versioning existed.
func decodeLocations(data []byte) ([]models.Location, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []models.Location{}, nil
	}

	if trimmed[0] == '[' {
		var legacy []models.Location
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("%w: %w", errCorrupt, err)
		}
		return legacy, nil
	}

	var env locationsEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	if env.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, env.Version)
	}
	if env.Locations == nil {
		env.Locations = []models.Location{}
	}
	return env.Locations, nil
}

func encodeLocations(locs []models.Location) ([]byte, error) {
	return json.Marshal(locationsEnvelope{Version: SchemaVersion, Locations: locs})
}

func decodeView(data []byte) (*models.SavedView, error) {
	var env viewEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	if env.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, env.Version)
	}
	return &env.View, nil
}

func encodeView(v models.SavedView) ([]byte, error) {
	return json.Marshal(viewEnvelope{Version: SchemaVersion, View: v})
}
