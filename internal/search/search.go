// Package search matches free text against the location catalog and
// proposes unsaved places with active risks.
package search

import (
	"context"
	"sort"

	"github.com/mr1hm/go-weather-alerts/internal/catalog"
	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/risk"
	"github.com/mr1hm/go-weather-alerts/internal/textnorm"
)

// MinTermLength guards against overly broad matches.
const MinTermLength = 2

// SavedLister is satisfied by *store.LocationStore.
type SavedLister interface {
	List(ctx context.Context) []models.Location
}

type Engine struct {
	catalog *catalog.Catalog
	saved   SavedLister
}

func NewEngine(c *catalog.Catalog, saved SavedLister) *Engine {
	return &Engine{
		catalog: c,
		saved:   saved,
	}
}

type Result struct {
	Term      string
	Locations []models.Location
	// Matched counts catalog matches before already-saved entries were removed.
	Matched int
}

// AllSaved reports that the term matched something, but every match is
// already saved.
func (r Result) AllSaved() bool {
	return r.Matched > 0 && len(r.Locations) == 0
}

// Search returns catalog entries whose city or state contains term,
// ignoring accents and case, minus entries already saved.
func (e *Engine) Search(ctx context.Context, term string) Result {
	res := Result{
		Term:      term,
		Locations: []models.Location{},
	}

	needle := textnorm.Normalize(term)
	if len([]rune(needle)) < MinTermLength {
		return res
	}

	saved := savedSet(e.saved.List(ctx))
	for _, entry := range e.catalog.Entries() {
		if !matches(entry, needle) {
			continue
		}
		res.Matched++
		if saved[normalizedKey(entry.City, entry.State)] {
			continue
		}
		res.Locations = append(res.Locations, entry.ToLocation())
	}

	return res
}

// Suggest ranks unsaved entries that have an active disaster or a current
// risk above Baixo: active disaster first, then highest risk, then city name.
func (e *Engine) Suggest(ctx context.Context, limit int) []models.Location {
	if limit <= 0 {
		return []models.Location{}
	}

	saved := savedSet(e.saved.List(ctx))

	type candidate struct {
		entry   models.CatalogEntry
		active  bool
		maxRank int
	}
	var candidates []candidate
	for _, entry := range e.catalog.Entries() {
		if saved[normalizedKey(entry.City, entry.State)] {
			continue
		}
		c := candidate{
			entry:   entry,
			active:  entry.HasActiveDisaster(),
			maxRank: risk.MaxRank(entry.Risks.CurrentRisks),
		}
		if !c.active && c.maxRank <= risk.Rank(models.RiskLevelLow) {
			continue
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.active != b.active {
			return a.active
		}
		if a.maxRank != b.maxRank {
			return a.maxRank > b.maxRank
		}
		return cityLess(a.entry, b.entry)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]models.Location, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.entry.ToLocation())
	}
	return out
}

func matches(entry models.CatalogEntry, needle string) bool {
	return textnorm.Contains(entry.City, needle) || textnorm.Contains(entry.State, needle)
}

// cityLess orders by accent-folded city, then state, then the raw names.
func cityLess(a, b models.CatalogEntry) bool {
	ak, bk := normalizedKey(a.City, a.State), normalizedKey(b.City, b.State)
	if ak.City != bk.City {
		return ak.City < bk.City
	}
	if ak.State != bk.State {
		return ak.State < bk.State
	}
	if a.City != b.City {
		return a.City < b.City
	}
	return a.State < b.State
}

// savedSet compares on normalized names so "Sao Paulo" saved by hand still
// hides the catalog's "São Paulo".
func savedSet(locs []models.Location) map[catalog.Key]bool {
	set := make(map[catalog.Key]bool, len(locs))
	for _, l := range locs {
		set[normalizedKey(l.City, l.State)] = true
	}
	return set
}

func normalizedKey(city, state string) catalog.Key {
	return catalog.Key{City: textnorm.Normalize(city), State: textnorm.Normalize(state)}
}
