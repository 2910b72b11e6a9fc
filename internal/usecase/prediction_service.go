package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/logging"
)

// PredictionService runs the pick submission pipeline: it resolves the
// current grid, filters the raw selections against it and the lock window,
// stamps snapshot fields and persists the surviving picks in one batch.
type PredictionService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	logger         *logging.Logger
	now            func() time.Time
}

// SubmitInput is one user's raw selection map, keyed by match id. Values are
// unvalidated strings straight from the client.
type SubmitInput struct {
	UserID     string
	UserName   string
	Selections map[string]string
}

func NewPredictionService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PredictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit persists the accepted subset of the selections and returns it.
// Selections for unknown matches, matches outside the grid, locked matches
// or with malformed values are dropped silently: a late pick degrades to a
// partial save, never a failed batch. Only a persistence failure is an error.
func (s *PredictionService) Submit(ctx context.Context, in SubmitInput) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches for submission: %w", err)
	}

	grid := match.Grid(matches)
	gridByID := make(map[string]match.Match, len(grid))
	for _, m := range grid {
		gridByID[m.ID] = m
	}

	now := s.now().UTC()
	accepted := make([]prediction.Prediction, 0, len(in.Selections))
	dropped := 0
	for matchID, raw := range in.Selections {
		value, ok := prediction.ParseValue(raw)
		if !ok {
			dropped++
			continue
		}
		m, ok := gridByID[matchID]
		if !ok || match.IsLocked(m, now) {
			dropped++
			continue
		}

		accepted = append(accepted, prediction.Prediction{
			UserID:         userID,
			MatchID:        m.ID,
			Value:          value,
			UserName:       strings.TrimSpace(in.UserName),
			MatchBetNumber: m.BetNumber,
			MatchLabel:     m.Label(),
			SubmittedAt:    now,
		})
	}

	// Selection maps have no order; persist and report in grid order.
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].MatchBetNumber < accepted[j].MatchBetNumber
	})

	if len(accepted) > 0 {
		if err := s.predictionRepo.UpsertBatch(ctx, accepted); err != nil {
			return nil, fmt.Errorf("upsert predictions user=%s: %w", userID, err)
		}
	}

	if dropped > 0 {
		s.logger.InfoContext(ctx, "dropped stale or invalid picks",
			"user_id", userID,
			"accepted", len(accepted),
			"dropped", dropped,
		)
	}

	return accepted, nil
}

// ListByUser returns the user's current picks.
func (s *PredictionService) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list predictions by user: %w", err)
	}

	return items, nil
}

// ListAll returns every stored pick, for the admin view.
func (s *PredictionService) ListAll(ctx context.Context) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListAll")
	defer span.End()

	items, err := s.predictionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	return items, nil
}

// ResetCompetition deletes every prediction, returning all counters to zero.
func (s *PredictionService) ResetCompetition(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ResetCompetition")
	defer span.End()

	if err := s.predictionRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all predictions: %w", err)
	}

	s.logger.InfoContext(ctx, "competition reset, all predictions deleted")
	return nil
}
