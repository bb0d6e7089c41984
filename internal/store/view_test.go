package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mr1hm/go-weather-alerts/internal/models"
)

func TestViewStore_LoadEmpty(t *testing.T) {
	s := NewViewStore(newMockBlobStore())

	view, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if view != nil {
		t.Errorf("expected nil view, got %+v", view)
	}
}

func TestViewStore_SaveAndLoad(t *testing.T) {
	s := NewViewStore(newMockBlobStore())
	ctx := context.Background()

	temp := 20.0
	if err := s.Save(ctx, models.SavedView{City: "São Paulo", State: "SP", Temperature: &temp, Condition: "Nublado"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	view, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if view == nil || view.City != "São Paulo" || view.Condition != "Nublado" || *view.Temperature != 20 {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestViewStore_Errors(t *testing.T) {
	blobs := newMockBlobStore()
	s := NewViewStore(blobs)
	ctx := context.Background()

	if err := s.Save(ctx, models.SavedView{City: "São Paulo"}); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("expected ErrInvalidLocation, got %v", err)
	}

	blobs.data[SavedViewKey] = []byte("garbage")
	view, err := s.Load(ctx)
	if err != nil || view != nil {
		t.Errorf("expected nil, nil for corrupt view, got %+v, %v", view, err)
	}

	blobs.getErr = errors.New("disk gone")
	if _, err := s.Load(ctx); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}
