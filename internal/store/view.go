package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/repository"
)

// ViewStore keeps the last location shown on the dashboard.
type ViewStore struct {
	blobs repository.BlobStore
}

func NewViewStore(blobs repository.BlobStore) *ViewStore {
	return &ViewStore{blobs: blobs}
}

// Load returns nil, nil when no view has been saved or the stored one is
// unreadable.
func (s *ViewStore) Load(ctx context.Context) (*models.SavedView, error) {
	data, err := s.blobs.Get(ctx, SavedViewKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if data == nil {
		return nil, nil
	}

	view, err := decodeView(data)
	if errors.Is(err, errCorrupt) {
		slog.Warn("ignoring corrupt saved view", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ViewStore) Save(ctx context.Context, view models.SavedView) error {
	city, state, err := validCityState(view.City, view.State)
	if err != nil {
		return err
	}
	view.City, view.State = city, state

	data, err := encodeView(view)
	if err != nil {
		return fmt.Errorf("error encoding saved view: %w", err)
	}
	if err := s.blobs.Put(ctx, SavedViewKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}
