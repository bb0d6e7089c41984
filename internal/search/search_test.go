package search

import (
	"context"
	"testing"

	"github.com/mr1hm/go-weather-alerts/internal/catalog"
	"github.com/mr1hm/go-weather-alerts/internal/models"
)

// mockSaved implements SavedLister for testing
type mockSaved struct {
	locations []models.Location
}

func (m *mockSaved) List(ctx context.Context) []models.Location {
	return m.locations
}

func defaultEngine(t *testing.T, saved ...models.Location) *Engine {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return NewEngine(c, &mockSaved{locations: saved})
}

func entry(city, state string, active []models.DisasterType, levels ...models.RiskLevel) models.CatalogEntry {
	e := models.CatalogEntry{City: city, State: state, ActiveDisasters: active}
	for _, l := range levels {
		e.Risks.CurrentRisks = append(e.Risks.CurrentRisks, models.DisasterRisk{Type: models.DisasterTypeFlood, Level: l})
	}
	return e
}

func TestSearch_MinimumLength(t *testing.T) {
	e := defaultEngine(t)

	res := e.Search(context.Background(), "a")
	if len(res.Locations) != 0 || res.Matched != 0 {
		t.Errorf("expected no results for single character, got %+v", res)
	}

	res = e.Search(context.Background(), "  ")
	if len(res.Locations) != 0 {
		t.Errorf("expected no results for blank term, got %d", len(res.Locations))
	}

	res = e.Search(context.Background(), "sa")
	if len(res.Locations) == 0 {
		t.Fatal("expected matches for 'sa'")
	}
	for _, l := range res.Locations {
		if l.City != "Salvador" && l.City != "São Paulo" {
			t.Errorf("unexpected match %s", l.City)
		}
	}
}

func TestSearch_AccentAndCaseInsensitive(t *testing.T) {
	e := defaultEngine(t)

	res := e.Search(context.Background(), "SAO PAULO")
	if len(res.Locations) != 1 || res.Locations[0].City != "São Paulo" {
		t.Fatalf("expected São Paulo, got %+v", res.Locations)
	}
	if res.Locations[0].ID != "São Paulo-SP" {
		t.Errorf("expected id São Paulo-SP, got %s", res.Locations[0].ID)
	}
	if res.Locations[0].Temperature == nil || *res.Locations[0].Temperature != 20 {
		t.Errorf("expected catalog temperature, got %v", res.Locations[0].Temperature)
	}
}

func TestSearch_MatchesState(t *testing.T) {
	e := defaultEngine(t)

	res := e.Search(context.Background(), "rj")
	if len(res.Locations) != 1 || res.Locations[0].City != "Rio de Janeiro" {
		t.Errorf("expected Rio de Janeiro by state, got %+v", res.Locations)
	}
}

func TestSearch_ExcludesSaved(t *testing.T) {
	e := defaultEngine(t, models.Location{ID: "São Paulo-SP", City: "São Paulo", State: "SP"})

	res := e.Search(context.Background(), "São Paulo")
	for _, l := range res.Locations {
		if l.City == "São Paulo" {
			t.Error("expected saved São Paulo to be excluded")
		}
	}
	if !res.AllSaved() {
		t.Error("expected AllSaved when every match is already saved")
	}
}

func TestSearch_NoMatchIsNotAllSaved(t *testing.T) {
	e := defaultEngine(t)

	res := e.Search(context.Background(), "Fortaleza")
	if res.AllSaved() {
		t.Error("expected AllSaved false for a genuine miss")
	}
	if res.Matched != 0 {
		t.Errorf("expected 0 matches, got %d", res.Matched)
	}
}

func TestSuggest_Ranking(t *testing.T) {
	c, err := catalog.New(
		entry("Cidade Calma", "CC", nil),
		entry("Cidade Media", "CM", nil, models.RiskLevelMedium),
		entry("Cidade Ativa", "CA", []models.DisasterType{models.DisasterTypeFlood}, models.RiskLevelLow),
	)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	e := NewEngine(c, &mockSaved{})

	got := e.Suggest(context.Background(), 3)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].City != "Cidade Ativa" || got[1].City != "Cidade Media" {
		t.Errorf("unexpected order: %s, %s", got[0].City, got[1].City)
	}
}

func TestSuggest_TieBreaks(t *testing.T) {
	flood := []models.DisasterType{models.DisasterTypeFlood}
	c, err := catalog.New(
		entry("Zeta", "ZZ", flood, models.RiskLevelHigh),
		entry("Alfa", "AA", flood, models.RiskLevelHigh),
		entry("Beta", "BB", flood, models.RiskLevelCritical),
		entry("Gama", "GG", nil, models.RiskLevelCritical),
	)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	e := NewEngine(c, &mockSaved{})

	got := e.Suggest(context.Background(), 10)
	want := []string{"Beta", "Alfa", "Zeta", "Gama"}
	if len(got) != len(want) {
		t.Fatalf("expected %d suggestions, got %d", len(want), len(got))
	}
	for i, city := range want {
		if got[i].City != city {
			t.Errorf("position %d: expected %s, got %s", i, city, got[i].City)
		}
	}
}

func TestSuggest_TieBreakIgnoresAccents(t *testing.T) {
	flood := []models.DisasterType{models.DisasterTypeFlood}
	c, err := catalog.New(
		entry("Zé Doca", "MA", flood, models.RiskLevelHigh),
		entry("Águas Claras", "DF", flood, models.RiskLevelHigh),
		entry("Itaituba", "PA", flood, models.RiskLevelHigh),
	)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	e := NewEngine(c, &mockSaved{})

	got := e.Suggest(context.Background(), 10)
	want := []string{"Águas Claras", "Itaituba", "Zé Doca"}
	if len(got) != len(want) {
		t.Fatalf("expected %d suggestions, got %d", len(want), len(got))
	}
	for i, city := range want {
		if got[i].City != city {
			t.Errorf("position %d: expected %s, got %s", i, city, got[i].City)
		}
	}
}

func TestSuggest_PlaceholderDisasterIsNotActive(t *testing.T) {
	e := defaultEngine(t)

	for _, l := range e.Suggest(context.Background(), 10) {
		if l.City == "Salvador" || l.City == "Belo Horizonte" {
			t.Errorf("expected low-risk %s to be excluded", l.City)
		}
	}
}

func TestSuggest_LimitAndSaved(t *testing.T) {
	e := defaultEngine(t, models.Location{City: "Manaus", State: "AM"})

	got := e.Suggest(context.Background(), 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	for _, l := range got {
		if l.City == "Manaus" {
			t.Error("expected saved Manaus to be excluded")
		}
	}
	// Porto Alegre: active flood, Crítico.
	if got[0].City != "Porto Alegre" {
		t.Errorf("expected Porto Alegre first, got %s", got[0].City)
	}

	if got := e.Suggest(context.Background(), 0); len(got) != 0 {
		t.Errorf("expected no suggestions for limit 0, got %d", len(got))
	}
}
