package models

import (
	"strings"
	"time"
)

type Location struct {
	ID          string     `json:"id"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	Temperature *float64   `json:"temperature,omitempty"`
	Condition   string     `json:"condition,omitempty"`
	LastUpdate  *time.Time `json:"lastUpdate,omitempty"`
	IsFavorite  bool       `json:"isFavorite,omitempty"`
}

// Key returns the "city, state" form used by alert filters.
func (l Location) Key() string {
	return LocationKey(l.City, l.State)
}

type LocationInput struct {
	City        string   `json:"city"`
	State       string   `json:"state"`
	Temperature *float64 `json:"temperature,omitempty"`
	Condition   string   `json:"condition,omitempty"`
}

// SavedView is the last location shown on the dashboard.
type SavedView struct {
	City        string   `json:"city"`
	State       string   `json:"state"`
	Temperature *float64 `json:"temperature,omitempty"`
	Condition   string   `json:"condition,omitempty"`
}

func LocationID(city, state string) string {
	return city + "-" + state
}

func LocationKey(city, state string) string {
	return city + ", " + state
}

// ParseLocationKey splits a "city, state" string. City names may contain
// commas, so the split happens on the last separator.
func ParseLocationKey(s string) (city, state string, ok bool) {
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return "", "", false
	}
	city = strings.TrimSpace(s[:i])
	state = strings.TrimSpace(s[i+1:])
	if city == "" || state == "" {
		return "", "", false
	}
	return city, state, true
}
