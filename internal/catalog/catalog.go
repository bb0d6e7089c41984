// Package catalog holds the read-only reference list of known places and
// their weather and risk snapshots, keyed by (city, state).
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/risk"
)

//go:embed data/catalog.json
var embedded []byte

type Key struct {
	City  string
	State string
}

// String returns the "City-ST" form used as the object key in catalog files.
func (k Key) String() string {
	return models.LocationID(k.City, k.State)
}

type Catalog struct {
	entries map[Key]models.CatalogEntry
	order   []Key // sorted by city, then state
}

// New builds a catalog from already-typed entries. Each entry is validated
// and duplicate (city, state) pairs are rejected.
func New(entries ...models.CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[Key]models.CatalogEntry, len(entries)),
	}
	for _, e := range entries {
		if err := validate(e); err != nil {
			return nil, err
		}
		k := Key{City: e.City, State: e.State}
		if _, dup := c.entries[k]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", k)
		}
		c.entries[k] = e
		c.order = append(c.order, k)
	}

	sort.SliceStable(c.order, func(i, j int) bool {
		if c.order[i].City != c.order[j].City {
			return c.order[i].City < c.order[j].City
		}
		return c.order[i].State < c.order[j].State
	})

	return c, nil
}

// Default loads the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(embedded))
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening catalog file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a JSON object mapping "City-ST" keys to entries. Legacy
// entry shapes are converted onto the current schema, see legacy.go.
func Load(r io.Reader) (*Catalog, error) {
	var raw map[string]rawEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding catalog: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]models.CatalogEntry, 0, len(raw))
	for _, k := range keys {
		e, err := raw[k].toEntry()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", k, err)
		}
		if want := models.LocationID(e.City, e.State); k != want {
			return nil, fmt.Errorf("catalog entry %q: key does not match city/state %q", k, want)
		}
		entries = append(entries, e)
	}

	return New(entries...)
}

func (c *Catalog) Len() int {
	return len(c.order)
}

// Entries returns every entry ordered by city name, then state.
func (c *Catalog) Entries() []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.entries[k])
	}
	return out
}

func (c *Catalog) Get(city, state string) (models.CatalogEntry, bool) {
	e, ok := c.entries[Key{City: city, State: state}]
	return e, ok
}

// Lookup never fails: unknown places get DefaultEntry.
func (c *Catalog) Lookup(city, state string) models.CatalogEntry {
	if e, ok := c.Get(city, state); ok {
		return e
	}
	return DefaultEntry(city, state)
}

// DefaultEntry describes a place with no reference data: mild weather,
// no active disasters and no risks.
func DefaultEntry(city, state string) models.CatalogEntry {
	return models.CatalogEntry{
		City:  city,
		State: state,
		Weather: models.Weather{
			Temperature: 20,
			Condition:   "Nublado",
		},
		ActiveDisasters: []models.DisasterType{},
		Risks: models.RiskData{
			CurrentRisks: []models.DisasterRisk{
				{Type: models.DisasterTypeNone, Level: models.RiskLevelNone, Details: "Sem dados de risco para esta localidade"},
			},
			RainLevel:      "0mm",
			SoilSaturation: "0%",
		},
		Recommendations: []string{
			"Fique atento aos alertas da Defesa Civil",
		},
	}
}

func validate(e models.CatalogEntry) error {
	if strings.TrimSpace(e.City) == "" || strings.TrimSpace(e.State) == "" {
		return fmt.Errorf("catalog entry requires city and state")
	}
	for _, d := range e.ActiveDisasters {
		if !d.Valid() {
			return fmt.Errorf("%s: unknown disaster type %q", models.LocationID(e.City, e.State), d)
		}
	}
	for _, r := range e.Risks.CurrentRisks {
		if !r.Type.Valid() {
			return fmt.Errorf("%s: unknown disaster type %q", models.LocationID(e.City, e.State), r.Type)
		}
		if risk.ParseLevel(string(r.Level)) != r.Level {
			return fmt.Errorf("%s: unknown risk level %q", models.LocationID(e.City, e.State), r.Level)
		}
	}
	return nil
}
