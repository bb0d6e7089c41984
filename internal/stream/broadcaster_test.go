package stream

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/mr1hm/go-weather-alerts/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testAlert(id string, sev models.AlertSeverity) *models.DisasterAlert {
	return &models.DisasterAlert{
		ID:       id,
		Type:     models.AlertTypeStorm,
		Severity: sev,
		Status:   models.AlertStatusActive,
		Location: models.AlertLocation{City: "Manaus", State: "AM"},
	}
}

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster(0)

	id, ch := b.Subscribe(nil)
	if b.SubscriberCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", b.SubscriberCount())
	}

	b.Unsubscribe(id)
	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", b.SubscriberCount())
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to be closed")
		}
	default:
		t.Error("channel should be closed and readable")
	}

	// Second unsubscribe is a no-op.
	b.Unsubscribe(id)
}

func TestBroadcaster_Broadcast(t *testing.T) {
	b := NewBroadcaster(0)

	id, ch := b.Subscribe(nil)
	defer b.Unsubscribe(id)

	alert := testAlert("alert_1", models.AlertSeverityHigh)
	b.Broadcast(alert)

	select {
	case received := <-ch:
		if received.ID != alert.ID {
			t.Errorf("expected ID %s, got %s", alert.ID, received.ID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for broadcast")
	}
}

func TestBroadcaster_Match(t *testing.T) {
	b := NewBroadcaster(0)

	onlyCritical := func(a *models.DisasterAlert) bool {
		return a.Severity == models.AlertSeverityCritical
	}
	id, ch := b.Subscribe(onlyCritical)
	defer b.Unsubscribe(id)

	b.Broadcast(testAlert("low", models.AlertSeverityLow))
	b.Broadcast(testAlert("critical", models.AlertSeverityCritical))

	select {
	case received := <-ch:
		if received.ID != "critical" {
			t.Errorf("expected critical alert, got %s", received.ID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for broadcast")
	}

	select {
	case received := <-ch:
		t.Errorf("expected no more alerts, got %s", received.ID)
	default:
	}
}

func TestBroadcaster_ConcurrentSubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster(0)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _ := b.Subscribe(nil)
			time.Sleep(time.Millisecond)
			b.Unsubscribe(id)
		}()
	}

	wg.Wait()

	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after cleanup, got %d", b.SubscriberCount())
	}
}

func TestBroadcaster_ConcurrentSubscribeBroadcast(t *testing.T) {
	b := NewBroadcaster(0)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, ch := b.Subscribe(nil)
			drained := make(chan struct{})
			go func() {
				defer close(drained)
				for range ch {
				}
			}()
			time.Sleep(5 * time.Millisecond)
			b.Unsubscribe(id)
			<-drained
		}()
	}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			b.Broadcast(testAlert(fmt.Sprintf("alert_%d", n), models.AlertSeverityMedium))
		}(i)
	}

	wg.Wait()

	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", b.SubscriberCount())
	}
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster(0)

	var channels []<-chan *models.DisasterAlert
	for i := 0; i < 5; i++ {
		_, ch := b.Subscribe(nil)
		channels = append(channels, ch)
	}

	b.Close()

	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after close, got %d", b.SubscriberCount())
	}
	for i, ch := range channels {
		select {
		case _, ok := <-ch:
			if ok {
				t.Errorf("channel %d should be closed", i)
			}
		default:
			t.Errorf("channel %d should be closed and readable", i)
		}
	}

	// Subscribing after Close yields a closed channel.
	_, ch := b.Subscribe(nil)
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after Close")
	}
	if b.SubscriberCount() != 0 {
		t.Errorf("expected no subscribers after Close, got %d", b.SubscriberCount())
	}
}

func TestBroadcaster_SlowSubscriber(t *testing.T) {
	b := NewBroadcaster(2)

	id, ch := b.Subscribe(nil)
	defer b.Unsubscribe(id)

	for i := 0; i < 3; i++ {
		b.Broadcast(testAlert(fmt.Sprintf("alert_%d", i), models.AlertSeverityLow))
	}

	if len(ch) != 2 {
		t.Errorf("expected buffer of 2 to be full, got %d", len(ch))
	}
}
