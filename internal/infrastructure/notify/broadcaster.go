package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/skillswap/skillswap-api/internal/core/domain"
)

const subscriberBuffer = 64

// Broadcaster fans engine events out to all registered subscribers. Delivery
// is best effort and at most once per event: a subscriber whose channel is
// full simply misses the event. Consumers that need a consistent view must
// re-derive it from the read operations, not from the event stream.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[int]chan domain.Event
	next int
	log  zerolog.Logger
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster(log zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		subs: make(map[int]chan domain.Event),
		log:  log,
	}
}

// Subscribe registers a new subscriber and returns its event channel plus a
// cancel function. Cancel closes the channel and must be called exactly once.
func (b *Broadcaster) Subscribe() (<-chan domain.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan domain.Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking. Slow
// subscribers drop events.
func (b *Broadcaster) Publish(event domain.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.log.Warn().
				Int("subscriber", id).
				Str("kind", string(event.Kind)).
				Msg("subscriber buffer full, event dropped")
		}
	}
}

// Close removes and closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
