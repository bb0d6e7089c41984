package repository

import (
	"context"

	"github.com/mr1hm/go-weather-alerts/internal/models"
)

// BlobStore is a keyed store of opaque values. Get returns nil, nil for a
// missing key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type AlertFilter struct {
	Limit  int
	Status *models.AlertStatus
}

// AlertRepository holds the observed alert feed. ListAlerts returns alerts
// in the order they were first ingested.
type AlertRepository interface {
	AddAlert(ctx context.Context, a *models.DisasterAlert) error
	GetAlert(ctx context.Context, id string) (*models.DisasterAlert, error)
	UpdateAlert(ctx context.Context, a *models.DisasterAlert) error
	ListAlerts(ctx context.Context, opts AlertFilter) ([]models.DisasterAlert, error)
}
