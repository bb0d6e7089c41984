// catalog-check validates a location catalog file and prints what the
// suggestion engine would propose from it to a user with nothing saved.
//
// Usage: catalog-check [path]   (defaults to CATALOG_PATH, then the bundled catalog)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/mr1hm/go-weather-alerts/internal/catalog"
	"github.com/mr1hm/go-weather-alerts/internal/config"
	"github.com/mr1hm/go-weather-alerts/internal/logging"
	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/risk"
	"github.com/mr1hm/go-weather-alerts/internal/search"
)

// nothingSaved satisfies search.SavedLister for a fresh user.
type nothingSaved struct{}

func (nothingSaved) List(ctx context.Context) []models.Location { return nil }

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	path := cfg.Catalog.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	var cat *catalog.Catalog
	if path == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.LoadFile(path)
	}
	if err != nil {
		logging.Fatalf("catalog invalid: %v", err)
	}
	slog.Info("catalog valid", "path", path, "entries", cat.Len())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LOCATION\tTEMP\tACTIVE\tMAX RISK")
	for _, e := range cat.Entries() {
		fmt.Fprintf(w, "%s\t%.0f°C\t%v\t%d\n", models.LocationKey(e.City, e.State), e.Weather.Temperature, e.HasActiveDisaster(), risk.MaxRank(e.Risks.CurrentRisks))
	}
	w.Flush()

	engine := search.NewEngine(cat, nothingSaved{})
	fmt.Println()
	fmt.Println("Suggestions:")
	for i, l := range engine.Suggest(context.Background(), cfg.API.SuggestLimit) {
		fmt.Printf("  %d. %s\n", i+1, l.Key())
	}
}
