// Package ingestion polls the alert feed and records what it observes:
// new alerts are added, status changes on known alerts are applied, and
// both are pushed to live subscribers.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-weather-alerts/internal/config"
	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/observability"
	"github.com/mr1hm/go-weather-alerts/internal/repository"
	"github.com/mr1hm/go-weather-alerts/internal/stream"
	"github.com/mr1hm/go-weather-alerts/internal/worker"
)

const (
	resultAdded     = "added"
	resultUpdated   = "updated"
	resultUnchanged = "unchanged"
	resultSkipped   = "skipped"
	resultError     = "error"
)

// batch is one poll's worth of alerts, processed in feed order.
type batch struct {
	source string
	alerts []models.DisasterAlert
}

type Manager struct {
	cfg         *config.Config
	source      Source
	repo        repository.AlertRepository
	broadcaster *stream.Broadcaster
	metrics     *observability.Metrics
	clock       clockwork.Clock
	pool        *worker.WorkerPool
	sweeper     *ExpirySweeper
	wg          sync.WaitGroup
}

type Option func(*Manager)

func WithSource(s Source) Option {
	return func(m *Manager) { m.source = s }
}

func WithClock(c clockwork.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// NewManager builds a manager for cfg.Feed. broadcaster and metrics may be nil.
func NewManager(cfg *config.Config, repo repository.AlertRepository, broadcaster *stream.Broadcaster, metrics *observability.Metrics, opts ...Option) *Manager {
	m := &Manager{
		cfg:         cfg,
		repo:        repo,
		broadcaster: broadcaster,
		metrics:     metrics,
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.source == nil {
		m.source = NewSource(cfg.Feed.Source)
	}
	return m
}

func (m *Manager) Start(ctx context.Context) {
	m.pool = worker.NewWorkerPool("ingestion", m.cfg.Worker.Count, m.cfg.Worker.BufferSize, m.processBatch)
	m.pool.Start(ctx)

	if m.cfg.Feed.Enabled {
		m.wg.Add(1)
		go m.runPoller(ctx, m.cfg.Feed.PollInterval)
	}

	if m.cfg.Feed.ExpirySchedule != "" {
		m.sweeper = NewExpirySweeper(m.repo, m.broadcaster, m.clock)
		if err := m.sweeper.Start(ctx, m.cfg.Feed.ExpirySchedule); err != nil {
			slog.Error("expiry sweeper not started", "error", err)
			m.sweeper = nil
		}
	}
}

func (m *Manager) runPoller(ctx context.Context, interval time.Duration) {
	defer m.wg.Done()
	slog.Info("starting poller", "source", m.source.Name(), "interval", interval)

	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()

	m.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "source", m.source.Name())
			return
		case <-ticker.Chan():
			m.poll(ctx)
		}
	}
}

func (m *Manager) poll(ctx context.Context) {
	slog.Debug("polling", "source", m.source.Name())

	alerts, err := m.source.Fetch(ctx)
	if err != nil {
		m.observePoll(err)
		slog.Error("poll failed", "source", m.source.Name(), "error", err)
		return
	}
	m.observePoll(nil)

	if err := m.pool.Submit(ctx, batch{source: m.source.Name(), alerts: alerts}); err != nil {
		slog.Warn("poll result dropped", "source", m.source.Name(), "error", err)
		return
	}

	slog.Debug("poll complete", "source", m.source.Name(), "count", len(alerts))
}

func (m *Manager) Stop() {
	if m.sweeper != nil {
		m.sweeper.Stop()
	}
	m.wg.Wait()
	if m.pool != nil {
		m.pool.Stop()
	}
	slog.Info("ingestion manager stopped")
}

func (m *Manager) processBatch(ctx context.Context, job worker.Job) error {
	b, ok := job.(batch)
	if !ok {
		return fmt.Errorf("unexpected job type %T", job)
	}

	var failed int
	for i := range b.alerts {
		result, err := m.process(ctx, &b.alerts[i])
		m.observeAlert(result)
		if err != nil {
			failed++
			slog.Error("error processing alert", "id", b.alerts[i].ID, "source", b.source, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d alerts from %s failed", failed, len(b.alerts), b.source)
	}
	return nil
}

func (m *Manager) process(ctx context.Context, a *models.DisasterAlert) (string, error) {
	normalizeAlert(a)
	if reason := invalidReason(a); reason != "" {
		slog.Warn("skipping alert", "id", a.ID, "reason", reason)
		return resultSkipped, nil
	}

	existing, err := m.repo.GetAlert(ctx, a.ID)
	if err != nil {
		return resultError, fmt.Errorf("error looking up alert: %w", err)
	}

	if existing == nil {
		if err := m.repo.AddAlert(ctx, a); err != nil {
			return resultError, fmt.Errorf("error adding alert: %w", err)
		}
		slog.Info("added alert", "id", a.ID, "type", a.Type, "severity", a.Severity, "location", a.Location.Key())
		m.broadcast(a)
		return resultAdded, nil
	}

	// EXPIRED and CANCELED are final. The feed may still correct other fields.
	if existing.Status != models.AlertStatusActive && a.Status != existing.Status {
		slog.Warn("ignoring status change on closed alert", "id", a.ID, "status", a.Status, "stored_status", existing.Status)
		a.Status = existing.Status
	}

	if !changed(existing, a) {
		return resultUnchanged, nil
	}
	if err := m.repo.UpdateAlert(ctx, a); err != nil {
		return resultError, fmt.Errorf("error updating alert: %w", err)
	}
	slog.Info("updated alert", "id", a.ID, "status", a.Status, "previous_status", existing.Status)
	m.broadcast(a)
	return resultUpdated, nil
}

func (m *Manager) broadcast(a *models.DisasterAlert) {
	if m.broadcaster == nil {
		return
	}
	alert := *a
	m.broadcaster.Broadcast(&alert)
}

func (m *Manager) observePoll(err error) {
	if m.metrics != nil {
		m.metrics.FeedPolls.WithLabelValues(observability.Outcome(err)).Inc()
	}
}

func (m *Manager) observeAlert(result string) {
	if m.metrics != nil {
		m.metrics.AlertsIngested.WithLabelValues(result).Inc()
	}
}

// normalizeAlert trims location fields and fills defaults the feed may omit.
func normalizeAlert(a *models.DisasterAlert) {
	a.ID = strings.TrimSpace(a.ID)
	a.Location.City = strings.TrimSpace(a.Location.City)
	a.Location.State = strings.TrimSpace(a.Location.State)
	if a.Status == "" {
		a.Status = models.AlertStatusActive
	}
	if a.EmergencyContacts.CivilDefense == "" {
		a.EmergencyContacts.CivilDefense = models.DefaultEmergencyContacts.CivilDefense
	}
	if a.EmergencyContacts.Firefighters == "" {
		a.EmergencyContacts.Firefighters = models.DefaultEmergencyContacts.Firefighters
	}
	if a.AffectedAreas == nil {
		a.AffectedAreas = []string{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
}

func invalidReason(a *models.DisasterAlert) string {
	switch {
	case a.ID == "":
		return "missing id"
	case a.Location.City == "" || a.Location.State == "":
		return "missing location"
	case !a.Severity.Valid():
		return fmt.Sprintf("unknown severity %q", a.Severity)
	case a.StartDate.IsZero():
		return "missing start date"
	}
	return ""
}

// changed reports whether b carries a transition worth recording over a.
func changed(a, b *models.DisasterAlert) bool {
	if a.Status != b.Status || a.Severity != b.Severity {
		return true
	}
	if a.Title != b.Title || a.Description != b.Description {
		return true
	}
	if !a.StartDate.Equal(b.StartDate) {
		return true
	}
	switch {
	case a.EndDate == nil && b.EndDate == nil:
		return false
	case a.EndDate == nil || b.EndDate == nil:
		return true
	default:
		return !a.EndDate.Equal(*b.EndDate)
	}
}
