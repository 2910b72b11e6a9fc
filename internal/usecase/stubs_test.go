package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/user"
)

type stubMatchRepo struct {
	mu      sync.Mutex
	matches map[string]match.Match
	order   []string

	listErr   error
	deleteErr map[string]error
	deleted   []string
	onDelete  func(id string)
}

func newStubMatchRepo(items ...match.Match) *stubMatchRepo {
	r := &stubMatchRepo{
		matches:   make(map[string]match.Match),
		deleteErr: make(map[string]error),
	}
	for _, m := range items {
		r.matches[m.ID] = m
		r.order = append(r.order, m.ID)
	}
	return r
}

func (r *stubMatchRepo) List(ctx context.Context) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]match.Match, 0, len(r.order))
	for _, id := range r.order {
		if m, ok := r.matches[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMatchRepo) Get(ctx context.Context, id string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	return m, ok, nil
}

func (r *stubMatchRepo) Create(ctx context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *stubMatchRepo) Update(ctx context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[m.ID] = m
	return nil
}

func (r *stubMatchRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.deleteErr[id]; err != nil {
		return err
	}
	delete(r.matches, id)
	r.deleted = append(r.deleted, id)
	if r.onDelete != nil {
		r.onDelete(id)
	}
	return nil
}

type stubPredictionRepo struct {
	mu    sync.Mutex
	items map[string]prediction.Prediction

	upsertErr error
	freezeErr error

	// ops records write operations in call order, for assertions on
	// freeze-before-delete style sequencing.
	ops []string
}

func newStubPredictionRepo(items ...prediction.Prediction) *stubPredictionRepo {
	r := &stubPredictionRepo{items: make(map[string]prediction.Prediction)}
	for _, p := range items {
		r.items[p.Key()] = p
	}
	return r
}

func (r *stubPredictionRepo) snapshot() []prediction.Prediction {
	out := make([]prediction.Prediction, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func (r *stubPredictionRepo) List(ctx context.Context) ([]prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), nil
}

func (r *stubPredictionRepo) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []prediction.Prediction
	for _, p := range r.snapshot() {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPredictionRepo) ListByMatch(ctx context.Context, matchID string) ([]prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []prediction.Prediction
	for _, p := range r.snapshot() {
		if p.MatchID == matchID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPredictionRepo) UpsertBatch(ctx context.Context, items []prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for _, p := range items {
		r.items[p.Key()] = p
	}
	r.ops = append(r.ops, "upsert")
	return nil
}

func (r *stubPredictionRepo) FreezePoints(ctx context.Context, matchID string, pointsByKey map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.freezeErr != nil {
		return r.freezeErr
	}
	for key, pts := range pointsByKey {
		p, ok := r.items[key]
		if !ok || p.MatchID != matchID {
			continue
		}
		pts := pts
		p.Points = &pts
		r.items[key] = p
	}
	r.ops = append(r.ops, "freeze:"+matchID)
	return nil
}

func (r *stubPredictionRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]prediction.Prediction)
	r.ops = append(r.ops, "deleteAll")
	return nil
}

type stubUserRepo struct {
	users []user.User
}

func (r *stubUserRepo) List(ctx context.Context) ([]user.User, error) {
	return append([]user.User(nil), r.users...), nil
}

func intPtr(v int) *int { return &v }
