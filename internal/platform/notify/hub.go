package notify

import (
	"sync"
	"time"
)

// Collection identifies one of the source collections whose changes drive
// downstream recomputation.
type Collection string

const (
	CollectionUsers       Collection = "users"
	CollectionMatches     Collection = "matches"
	CollectionPredictions Collection = "predictions"
)

// Event is a coarse change notification. It carries no payload; consumers
// re-read the full collection state.
type Event struct {
	Collection Collection
	At         time.Time
}

// Hub fans change events out to subscribers. Publishing never blocks: a
// subscriber whose buffer is full skips the event, which is safe because
// consumers recompute from full snapshots rather than applying deltas.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	now    func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan Event),
		now:  time.Now,
	}
}

// Subscribe returns a channel of change events and a cancel function. The
// channel is closed on cancel.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}

	ch := make(chan Event, buffer)
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		sub, ok := h.subs[id]
		if ok {
			delete(h.subs, id)
		}
		h.mu.Unlock()
		if ok {
			close(sub)
		}
	}
	return ch, cancel
}

func (h *Hub) Publish(c Collection) {
	if h == nil {
		return
	}

	evt := Event{Collection: c, At: h.now().UTC()}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}
