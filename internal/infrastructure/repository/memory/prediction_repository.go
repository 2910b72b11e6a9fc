package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/notify"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Prediction
	hub   *notify.Hub
}

func NewPredictionRepository(hub *notify.Hub) *PredictionRepository {
	return &PredictionRepository{
		items: make(map[string]prediction.Prediction),
		hub:   hub,
	}
}

func (r *PredictionRepository) List(_ context.Context) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(prediction.Prediction) bool { return true }), nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(p prediction.Prediction) bool { return p.UserID == userID }), nil
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(p prediction.Prediction) bool { return p.MatchID == matchID }), nil
}

func (r *PredictionRepository) UpsertBatch(_ context.Context, items []prediction.Prediction) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	for _, p := range items {
		r.items[p.Key()] = clonePrediction(p)
	}
	r.mu.Unlock()

	r.hub.Publish(notify.CollectionPredictions)
	return nil
}

func (r *PredictionRepository) FreezePoints(_ context.Context, matchID string, pointsByKey map[string]int) error {
	if len(pointsByKey) == 0 {
		return nil
	}

	r.mu.Lock()
	for key, pts := range pointsByKey {
		p, ok := r.items[key]
		if !ok || p.MatchID != matchID {
			continue
		}
		pts := pts
		p.Points = &pts
		r.items[key] = p
	}
	r.mu.Unlock()

	r.hub.Publish(notify.CollectionPredictions)
	return nil
}

func (r *PredictionRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	r.items = make(map[string]prediction.Prediction)
	r.mu.Unlock()

	r.hub.Publish(notify.CollectionPredictions)
	return nil
}

// sorted returns matching predictions in a deterministic key order. Callers
// hold at least a read lock.
func (r *PredictionRepository) sorted(keep func(prediction.Prediction) bool) []prediction.Prediction {
	out := make([]prediction.Prediction, 0, len(r.items))
	for _, p := range r.items {
		if keep(p) {
			out = append(out, clonePrediction(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func clonePrediction(p prediction.Prediction) prediction.Prediction {
	copied := p
	if p.Points != nil {
		pts := *p.Points
		copied.Points = &pts
	}
	return copied
}
