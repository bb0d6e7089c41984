package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/repository"
	"github.com/mr1hm/go-weather-alerts/internal/stream"
)

// ExpirySweeper marks ACTIVE alerts whose end date has passed as EXPIRED.
// Feeds often stop listing an alert rather than republishing it expired.
type ExpirySweeper struct {
	repo        repository.AlertRepository
	broadcaster *stream.Broadcaster
	clock       clockwork.Clock
	cron        *cron.Cron
}

func NewExpirySweeper(repo repository.AlertRepository, broadcaster *stream.Broadcaster, clock clockwork.Clock) *ExpirySweeper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ExpirySweeper{
		repo:        repo,
		broadcaster: broadcaster,
		clock:       clock,
	}
}

// Start runs Sweep on schedule, a standard cron expression or descriptor
// such as "@every 1m".
func (s *ExpirySweeper) Start(ctx context.Context, schedule string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			slog.Error("expiry sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling expiry sweep: %w", err)
	}

	s.cron.Start()
	slog.Info("expiry sweeper started", "schedule", schedule)
	return nil
}

// Stop waits for a running sweep to finish.
func (s *ExpirySweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// Sweep returns the number of alerts it expired.
func (s *ExpirySweeper) Sweep(ctx context.Context) (int, error) {
	active := models.AlertStatusActive
	feed, err := s.repo.ListAlerts(ctx, repository.AlertFilter{Status: &active})
	if err != nil {
		return 0, fmt.Errorf("error listing active alerts: %w", err)
	}

	now := s.clock.Now()
	expired := 0
	for i := range feed {
		a := &feed[i]
		if a.Status != models.AlertStatusActive || a.EndDate == nil || a.EndDate.After(now) {
			continue
		}

		a.Status = models.AlertStatusExpired
		if err := s.repo.UpdateAlert(ctx, a); err != nil {
			return expired, fmt.Errorf("error expiring alert %q: %w", a.ID, err)
		}
		expired++
		slog.Info("alert expired", "id", a.ID, "end_date", a.EndDate)

		if s.broadcaster != nil {
			alert := *a
			s.broadcaster.Broadcast(&alert)
		}
	}

	return expired, nil
}
