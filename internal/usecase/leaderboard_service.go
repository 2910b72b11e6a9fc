package usecase

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/leaderboard"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/scoring"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/user"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/cache"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/logging"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/notify"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/resilience"
)

const standingsCacheKey = "leaderboard:standings"

// parallelRecomputeThreshold is the contestant count above which per-user
// point summation fans out to a worker pool.
const parallelRecomputeThreshold = 64

// LeaderboardService derives the ranked standings from full snapshots of
// users, matches and predictions. Recomputation is total: there is no
// incremental path, every change re-runs the whole reduction.
type LeaderboardService struct {
	userRepo       user.Repository
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	store          *cache.Store
	logger         *logging.Logger
	flight         resilience.SingleFlight
	now            func() time.Time

	mu        sync.Mutex
	prevRanks map[string]int
}

func NewLeaderboardService(
	userRepo user.Repository,
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		userRepo:       userRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		store:          store,
		logger:         logger,
		now:            time.Now,
		prevRanks:      make(map[string]int),
	}
}

// Standings returns the current leaderboard, serving the cached read model
// when one is fresh.
func (s *LeaderboardService) Standings(ctx context.Context) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Standings")
	defer span.End()

	if s.store != nil {
		if cached, ok := s.store.Get(ctx, standingsCacheKey); ok {
			if entries, ok := cached.([]leaderboard.Entry); ok {
				return entries, nil
			}
		}
	}

	return s.Recompute(ctx)
}

// Recompute rebuilds the leaderboard from scratch. Concurrent callers are
// coalesced onto one run.
func (s *LeaderboardService) Recompute(ctx context.Context) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Recompute")
	defer span.End()

	val, err, _ := s.flight.Do("leaderboard:recompute", func() (any, error) {
		return s.recomputeOnce(ctx)
	})
	if err != nil {
		return nil, err
	}

	entries, _ := val.([]leaderboard.Entry)
	return entries, nil
}

// Watch consumes change events and recomputes the standings after each one.
// It returns when the context is cancelled or the event channel closes.
func (s *LeaderboardService) Watch(ctx context.Context, events <-chan notify.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			if s.store != nil {
				s.store.Delete(ctx, standingsCacheKey)
			}
			if _, err := s.Recompute(ctx); err != nil {
				s.logger.ErrorContext(ctx, "leaderboard recompute failed",
					"collection", string(evt.Collection),
					"error", err,
				)
			}
		}
	}
}

func (s *LeaderboardService) recomputeOnce(ctx context.Context) ([]leaderboard.Entry, error) {
	started := s.now()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users for leaderboard: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches for leaderboard: %w", err)
	}
	predictions, err := s.predictionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions for leaderboard: %w", err)
	}

	matchByID := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		matchByID[m.ID] = m
	}
	predsByUser := make(map[string][]prediction.Prediction, len(users))
	for _, p := range predictions {
		predsByUser[p.UserID] = append(predsByUser[p.UserID], p)
	}

	contestants := make([]user.User, 0, len(users))
	for _, u := range users {
		if u.IsAdmin {
			continue
		}
		contestants = append(contestants, u)
	}

	entries := make([]leaderboard.Entry, len(contestants))
	fill := func(idx int) {
		u := contestants[idx]
		entries[idx] = leaderboard.Entry{
			User:       u,
			Points:     userTotalPoints(predsByUser[u.ID], matchByID),
			RankChange: leaderboard.RankSame,
		}
	}

	if len(contestants) >= parallelRecomputeThreshold {
		s.fillParallel(len(contestants), fill)
	} else {
		for idx := range contestants {
			fill(idx)
		}
	}

	// Stable sort: equal totals keep the user listing order, which is the
	// only tie-break the contest defines.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	s.mu.Lock()
	nextRanks := make(map[string]int, len(entries))
	for idx := range entries {
		rank := idx + 1
		entries[idx].Rank = rank
		entries[idx].RankChange = rankChange(rank, s.prevRanks[entries[idx].User.ID])
		nextRanks[entries[idx].User.ID] = rank
	}
	s.prevRanks = nextRanks
	s.mu.Unlock()

	if s.store != nil {
		s.store.Set(ctx, standingsCacheKey, entries)
	}

	s.logger.DebugContext(ctx, "leaderboard recomputed",
		"contestants", len(entries),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return entries, nil
}

// fillParallel spreads per-user summation over a bounded worker pool. Each
// worker writes a disjoint slot, so the only synchronization needed is the
// wait group.
func (s *LeaderboardService) fillParallel(n int, fill func(idx int)) {
	pool, err := ants.NewPool(runtime.GOMAXPROCS(0))
	if err != nil {
		for idx := 0; idx < n; idx++ {
			fill(idx)
		}
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for idx := 0; idx < n; idx++ {
		idx := idx
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			fill(idx)
		}); err != nil {
			fill(idx)
			wg.Done()
		}
	}
	wg.Wait()
}

// userTotalPoints sums one user's predictions. A frozen point value is
// authoritative; otherwise the pick is scored against the live match result
// when the match still exists and is finished, and contributes zero when it
// does not.
func userTotalPoints(preds []prediction.Prediction, matchByID map[string]match.Match) int {
	total := 0
	for _, p := range preds {
		if p.Points != nil {
			total += *p.Points
			continue
		}
		m, ok := matchByID[p.MatchID]
		if !ok || m.Result == nil {
			continue
		}
		total += scoring.ComputePoints(p.Value, *m.Result)
	}
	return total
}

func rankChange(rank, prev int) leaderboard.RankChange {
	switch {
	case prev == 0 || prev == rank:
		return leaderboard.RankSame
	case rank < prev:
		return leaderboard.RankUp
	default:
		return leaderboard.RankDown
	}
}
