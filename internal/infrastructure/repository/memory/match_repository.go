package memory

import (
	"context"
	"sync"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/notify"
)

type MatchRepository struct {
	mu     sync.RWMutex
	items  map[string]match.Match
	orders []string
	hub    *notify.Hub
}

func NewMatchRepository(matches []match.Match, hub *notify.Hub) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	orders := make([]string, 0, len(matches))

	for _, m := range matches {
		items[m.ID] = cloneMatch(m)
		orders = append(orders, m.ID)
	}

	return &MatchRepository{
		items:  items,
		orders: orders,
		hub:    hub,
	}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.orders))
	for _, id := range r.orders {
		if m, ok := r.items[id]; ok {
			out = append(out, cloneMatch(m))
		}
	}

	return out, nil
}

func (r *MatchRepository) Get(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return match.Match{}, false, nil
	}

	return cloneMatch(m), true, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	if _, exists := r.items[m.ID]; !exists {
		r.orders = append(r.orders, m.ID)
	}
	r.items[m.ID] = cloneMatch(m)
	r.mu.Unlock()

	r.hub.Publish(notify.CollectionMatches)
	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	if _, exists := r.items[m.ID]; !exists {
		r.orders = append(r.orders, m.ID)
	}
	r.items[m.ID] = cloneMatch(m)
	r.mu.Unlock()

	r.hub.Publish(notify.CollectionMatches)
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()

	r.hub.Publish(notify.CollectionMatches)
	return nil
}

func cloneMatch(m match.Match) match.Match {
	copied := m
	if m.Result != nil {
		res := *m.Result
		copied.Result = &res
	}
	return copied
}
