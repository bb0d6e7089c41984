// Package store persists the user's saved locations and the last viewed
// dashboard location in a key-value blob store.
//
// Every mutation reads the whole collection, changes it and writes it back.
// Two overlapping mutations lose one update (last writer wins); callers are
// expected to serialize mutations per session.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-weather-alerts/internal/models"
	"github.com/mr1hm/go-weather-alerts/internal/repository"
)

type LocationStore struct {
	blobs repository.BlobStore
	clock clockwork.Clock
}

// NewLocationStore uses the real clock when clock is nil.
func NewLocationStore(blobs repository.BlobStore, clock clockwork.Clock) *LocationStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &LocationStore{
		blobs: blobs,
		clock: clock,
	}
}

// List returns every saved location. It never fails: unreadable or corrupt
// storage is logged and reported as an empty collection.
func (s *LocationStore) List(ctx context.Context) []models.Location {
	locs, err := s.load(ctx)
	if err != nil {
		slog.Error("error loading saved locations", "error", err)
		return []models.Location{}
	}
	return locs
}

// Has reports whether (city, state) is saved. Names are trimmed and
// compared exactly, the same way Save deduplicates.
func (s *LocationStore) Has(ctx context.Context, city, state string) bool {
	city, state = strings.TrimSpace(city), strings.TrimSpace(state)
	for _, l := range s.List(ctx) {
		if l.City == city && l.State == state {
			return true
		}
	}
	return false
}

// Save is idempotent on (city, state): an existing record is returned
// unchanged.
func (s *LocationStore) Save(ctx context.Context, in models.LocationInput) (models.Location, error) {
	city, state, err := validCityState(in.City, in.State)
	if err != nil {
		return models.Location{}, err
	}

	locs, err := s.loadForWrite(ctx)
	if err != nil {
		return models.Location{}, err
	}

	id := models.LocationID(city, state)
	for _, l := range locs {
		if l.City == city && l.State == state {
			return l, nil
		}
		if l.ID == id {
			return models.Location{}, fmt.Errorf("%w: id %q belongs to %s", ErrDuplicateLocation, id, l.Key())
		}
	}

	ts := s.stamp(locs)
	loc := models.Location{
		ID:          id,
		City:        city,
		State:       state,
		Temperature: in.Temperature,
		Condition:   in.Condition,
		LastUpdate:  &ts,
	}

	if err := s.persist(ctx, append(locs, loc)); err != nil {
		return models.Location{}, err
	}

	slog.Info("location saved", "id", loc.ID)
	return loc, nil
}

// Update replaces the record with loc.ID and stamps a fresh lastUpdate.
// An unknown ID is a silent no-op.
func (s *LocationStore) Update(ctx context.Context, loc models.Location) error {
	locs, err := s.loadForWrite(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(locs, loc.ID)
	if idx < 0 {
		slog.Debug("update skipped, location not found", "id", loc.ID)
		return nil
	}

	city, state, err := validCityState(loc.City, loc.State)
	if err != nil {
		return err
	}
	loc.City, loc.State = city, state
	for i, l := range locs {
		if i != idx && l.City == city && l.State == state {
			return fmt.Errorf("%w: %s", ErrDuplicateLocation, l.Key())
		}
	}

	ts := s.stamp(locs)
	loc.LastUpdate = &ts
	locs[idx] = loc

	return s.persist(ctx, locs)
}

// Delete removes the record with id. An unknown ID is not an error.
func (s *LocationStore) Delete(ctx context.Context, id string) error {
	locs, err := s.loadForWrite(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Location, 0, len(locs))
	for _, l := range locs {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(locs) {
		slog.Debug("delete skipped, location not found", "id", id)
		return nil
	}

	if err := s.persist(ctx, kept); err != nil {
		return err
	}

	slog.Info("location deleted", "id", id)
	return nil
}

// ToggleFavorite flips isFavorite. An unknown ID is a silent no-op.
func (s *LocationStore) ToggleFavorite(ctx context.Context, id string) error {
	locs, err := s.loadForWrite(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(locs, id)
	if idx < 0 {
		return nil
	}
	locs[idx].IsFavorite = !locs[idx].IsFavorite

	return s.persist(ctx, locs)
}

func (s *LocationStore) load(ctx context.Context) ([]models.Location, error) {
	data, err := s.blobs.Get(ctx, LocationsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if data == nil {
		return []models.Location{}, nil
	}
	return decodeLocations(data)
}

// loadForWrite treats a corrupt collection as empty so the next write
// replaces it. I/O failures and newer schemas still abort the mutation.
func (s *LocationStore) loadForWrite(ctx context.Context) ([]models.Location, error) {
	locs, err := s.load(ctx)
	if errors.Is(err, errCorrupt) {
		slog.Warn("discarding corrupt saved locations", "error", err)
		return []models.Location{}, nil
	}
	if errors.Is(err, ErrUnsupportedSchema) {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return locs, err
}

func (s *LocationStore) persist(ctx context.Context, locs []models.Location) error {
	data, err := encodeLocations(locs)
	if err != nil {
		return fmt.Errorf("error encoding locations: %w", err)
	}
	if err := s.blobs.Put(ctx, LocationsKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// stamp returns the current time, never earlier than any stored lastUpdate.
func (s *LocationStore) stamp(locs []models.Location) time.Time {
	ts := s.clock.Now().UTC()
	for _, l := range locs {
		if l.LastUpdate != nil && l.LastUpdate.After(ts) {
			ts = l.LastUpdate.UTC()
		}
	}
	return ts
}

func indexOf(locs []models.Location, id string) int {
	for i, l := range locs {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func validCityState(city, state string) (string, string, error) {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	if city == "" || state == "" {
		return "", "", fmt.Errorf("%w: city and state are required", ErrInvalidLocation)
	}
	return city, state, nil
}
