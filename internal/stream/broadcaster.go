// Package stream fans out alert changes from the feed to live subscribers.
package stream

import (
	"sync"
	"sync/atomic"

	"github.com/mr1hm/go-weather-alerts/internal/models"
)

// DefaultBuffer holds roughly one feed poll per subscriber.
const DefaultBuffer = 100

// MatchFunc selects the alerts a subscriber receives. Nil matches all.
type MatchFunc func(*models.DisasterAlert) bool

type subscriber struct {
	ch    chan *models.DisasterAlert
	match MatchFunc
}

type Broadcaster struct {
	subscribers map[uint64]subscriber
	nextID      atomic.Uint64
	buffer      int
	closed      bool
	mu          sync.RWMutex
}

func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broadcaster{
		subscribers: make(map[uint64]subscriber),
		buffer:      buffer,
	}
}

// Subscribe registers a subscriber. After Close, the returned channel is
// already closed.
func (b *Broadcaster) Subscribe(match MatchFunc) (uint64, <-chan *models.DisasterAlert) {
	id := b.nextID.Add(1)
	ch := make(chan *models.DisasterAlert, b.buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return id, ch
	}
	b.subscribers[id] = subscriber{ch: ch, match: match}

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if s, ok := b.subscribers[id]; ok {
		close(s.ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

// Broadcast never blocks: subscribers with a full buffer miss the alert.
func (b *Broadcaster) Broadcast(a *models.DisasterAlert) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, s := range b.subscribers {
		if s.match != nil && !s.match(a) {
			continue
		}
		select {
		case s.ch <- a:
		default:
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels so open streams end.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, s := range b.subscribers {
		close(s.ch)
		delete(b.subscribers, id)
	}
}
