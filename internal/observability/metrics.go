package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec   // labels: route, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: route

	// Location store metrics.
	StoreOperations *prometheus.CounterVec // labels: op={list,save,update,delete,favorite}, outcome={ok,error}
	SavedLocations  prometheus.Gauge

	// Alert feed metrics.
	FeedPolls         *prometheus.CounterVec // labels: outcome={ok,error}
	AlertsIngested    *prometheus.CounterVec // labels: result={added,updated,unchanged,error}
	StreamSubscribers prometheus.Gauge

	// Search metrics.
	SearchesNoResults prometheus.Counter
	SearchesAllSaved  prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_alert",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_alert",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route"}),
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_alert",
			Name:      "store_operations_total",
			Help:      "Location store operations by kind and outcome.",
		}, []string{"op", "outcome"}),
		SavedLocations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_alert",
			Name:      "saved_locations",
			Help:      "Number of saved locations observed on the last list.",
		}),
		FeedPolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_alert",
			Name:      "feed_polls_total",
			Help:      "Alert feed polls by outcome.",
		}, []string{"outcome"}),
		AlertsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_alert",
			Name:      "alerts_ingested_total",
			Help:      "Alerts processed from the feed by result.",
		}, []string{"result"}),
		StreamSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_alert",
			Name:      "stream_subscribers",
			Help:      "Open alert stream connections.",
		}),
		SearchesNoResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_alert",
			Name:      "searches_no_results_total",
			Help:      "Searches that matched nothing in the catalog.",
		}),
		SearchesAllSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_alert",
			Name:      "searches_all_saved_total",
			Help:      "Searches whose matches were all already saved.",
		}),
	}

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.StoreOperations,
		m.SavedLocations,
		m.FeedPolls,
		m.AlertsIngested,
		m.StreamSubscribers,
		m.SearchesNoResults,
		m.SearchesAllSaved,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HTTPRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_alert", Name: "http_requests_total"}, []string{"route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_alert", Name: "http_request_duration_seconds"}, []string{"route"}),
		StoreOperations:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_alert", Name: "store_operations_total"}, []string{"op", "outcome"}),
		SavedLocations:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_alert", Name: "saved_locations"}),
		FeedPolls:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_alert", Name: "feed_polls_total"}, []string{"outcome"}),
		AlertsIngested:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_alert", Name: "alerts_ingested_total"}, []string{"result"}),
		StreamSubscribers:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_alert", Name: "stream_subscribers"}),
		SearchesNoResults:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_alert", Name: "searches_no_results_total"}),
		SearchesAllSaved:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_alert", Name: "searches_all_saved_total"}),
	}
}

// Outcome returns the "ok"/"error" label for err.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
