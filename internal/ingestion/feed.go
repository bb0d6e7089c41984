package ingestion

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mr1hm/go-weather-alerts/internal/models"
)

//go:embed data/alerts.json
var embeddedFeed []byte

// EmbeddedSource names the alert fixture bundled with the binary.
const EmbeddedSource = "embedded"

// Source yields the current contents of an alert feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.DisasterAlert, error)
}

// NewSource picks a Source for target: "embedded", an http(s) URL, or a
// file path.
func NewSource(target string) Source {
	switch {
	case target == "" || target == EmbeddedSource:
		return bytesSource{name: EmbeddedSource, data: embeddedFeed}
	case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"):
		return &httpSource{
			url: target,
			client: &http.Client{
				Timeout: 15 * time.Second,
			},
		}
	default:
		return fileSource{path: target}
	}
}

type bytesSource struct {
	name string
	data []byte
}

func (s bytesSource) Name() string { return s.name }

func (s bytesSource) Fetch(ctx context.Context) ([]models.DisasterAlert, error) {
	return decodeFeed(bytes.NewReader(s.data))
}

type fileSource struct {
	path string
}

func (s fileSource) Name() string { return "file:" + s.path }

func (s fileSource) Fetch(ctx context.Context) ([]models.DisasterAlert, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("error opening feed file: %w", err)
	}
	defer f.Close()

	return decodeFeed(f)
}

type httpSource struct {
	url    string
	client *http.Client
}

func (s *httpSource) Name() string { return s.url }

func (s *httpSource) Fetch(ctx context.Context) ([]models.DisasterAlert, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	return decodeFeed(resp.Body)
}

type feedDocument struct {
	Alerts []models.DisasterAlert `json:"alerts"`
}

// decodeFeed accepts either {"alerts": [...]} or a bare array.
func decodeFeed(r io.Reader) ([]models.DisasterAlert, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading feed: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var alerts []models.DisasterAlert
		if err := json.Unmarshal(trimmed, &alerts); err != nil {
			return nil, fmt.Errorf("error decoding feed: %w", err)
		}
		return alerts, nil
	}

	var doc feedDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("error decoding feed: %w", err)
	}
	return doc.Alerts, nil
}
