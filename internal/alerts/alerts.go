// Package alerts filters, orders and annotates the disaster alert feed
// against the user's saved locations.
package alerts

import (
	"sort"

	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/risk"
)

// Criteria narrows Filter. Zero values mean "no filter".
type Criteria struct {
	Severity *models.AlertSeverity
	// Location is a "city, state" string.
	Location string
}

// AnnotatedAlert is an alert decorated for display.
type AnnotatedAlert struct {
	models.DisasterAlert
	Saved     bool   `json:"saved"`
	Color     string `json:"color"`
	TypeLabel string `json:"typeLabel"`
}

// ListLocations returns every distinct "city, state" in the feed or the
// saved list. Order is first-seen, alerts before saved locations.
func ListLocations(feed []models.DisasterAlert, saved []models.Location) []string {
	seen := make(map[string]bool, len(feed)+len(saved))
	out := make([]string, 0, len(feed)+len(saved))

	add := func(key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, key)
	}
	for _, a := range feed {
		add(a.Location.Key())
	}
	for _, l := range saved {
		add(l.Key())
	}

	return out
}

// Filter returns the alerts matching every criterion, most recent first.
// Alerts with equal StartDate keep their feed order. The input slice is
// not modified.
func Filter(feed []models.DisasterAlert, c Criteria) []models.DisasterAlert {
	sorted := make([]models.DisasterAlert, len(feed))
	copy(sorted, feed)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})

	var city, state string
	if c.Location != "" {
		var ok bool
		city, state, ok = models.ParseLocationKey(c.Location)
		if !ok {
			return []models.DisasterAlert{}
		}
	}

	out := make([]models.DisasterAlert, 0, len(sorted))
	for _, a := range sorted {
		if c.Severity != nil && a.Severity != *c.Severity {
			continue
		}
		if c.Location != "" && (a.Location.City != city || a.Location.State != state) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// IsSaved reports whether location ("city, state") is in saved.
func IsSaved(location string, saved []models.Location) bool {
	city, state, ok := models.ParseLocationKey(location)
	if !ok {
		return false
	}
	for _, l := range saved {
		if l.City == city && l.State == state {
			return true
		}
	}
	return false
}

func Annotate(feed []models.DisasterAlert, saved []models.Location) []AnnotatedAlert {
	out := make([]AnnotatedAlert, 0, len(feed))
	for _, a := range feed {
		out = append(out, AnnotatedAlert{
			DisasterAlert: a,
			Saved:         IsSaved(a.Location.Key(), saved),
			Color:         risk.SeverityColor(a.Severity),
			TypeLabel:     a.Type.Label(),
		})
	}
	return out
}
