package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/scoring"
	idgen "github.com/anguiley99-beep/prediction-foot-africa/internal/platform/id"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/logging"
)

// MatchService owns the match lifecycle, including the point-freezing pass
// that preserves historical scores when a finished match is removed.
type MatchService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	ids            idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

// GridEntry is one grid slot with its lock state evaluated at read time.
type GridEntry struct {
	Match  match.Match
	Locked bool
}

func NewMatchService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	ids idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		ids:            ids,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

// Grid returns the pick grid with each slot's lock state at the current
// instant. Callers poll this; the lock state is always evaluated fresh.
func (s *MatchService) Grid(ctx context.Context) ([]GridEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Grid")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches for grid: %w", err)
	}

	now := s.now().UTC()
	grid := match.Grid(items)
	out := make([]GridEntry, 0, len(grid))
	for _, m := range grid {
		out = append(out, GridEntry{Match: m, Locked: match.IsLocked(m, now)})
	}

	return out, nil
}

func (s *MatchService) Create(ctx context.Context, m match.Match) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	if strings.TrimSpace(m.HomeTeam.Name) == "" || strings.TrimSpace(m.AwayTeam.Name) == "" {
		return match.Match{}, fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	}
	if m.KickoffAt.IsZero() {
		return match.Match{}, fmt.Errorf("%w: kickoff time is required", ErrInvalidInput)
	}

	if strings.TrimSpace(m.ID) == "" {
		id, err := s.ids.NewID()
		if err != nil {
			return match.Match{}, fmt.Errorf("generate match id: %w", err)
		}
		m.ID = id
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return m, nil
}

func (s *MatchService) Update(ctx context.Context, m match.Match) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	_, exists, err := s.matchRepo.Get(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, m.ID)
	}

	if err := s.matchRepo.Update(ctx, m); err != nil {
		return fmt.Errorf("update match: %w", err)
	}

	return nil
}

// Delete removes a match. A finished match first has its predictions' points
// frozen in one atomic batch, so the scores survive the deletion; the order
// is always freeze first, delete second. Deleting a missing match is a
// benign no-op.
func (s *MatchService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get match for deletion: %w", err)
	}
	if !exists {
		return nil
	}

	return s.freezeAndDelete(ctx, m)
}

// PurgeFinished deletes every finished match, freezing points per match. It
// stops at the first failure; matches already purged stay purged. The purge
// count lets callers distinguish "nothing to do" from an error.
func (s *MatchService) PurgeFinished(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.PurgeFinished")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list matches for purge: %w", err)
	}

	purged := 0
	for _, m := range items {
		if !m.Finished() {
			continue
		}
		if err := s.freezeAndDelete(ctx, m); err != nil {
			return purged, fmt.Errorf("purge match=%s: %w", m.ID, err)
		}
		purged++
	}

	return purged, nil
}

func (s *MatchService) freezeAndDelete(ctx context.Context, m match.Match) error {
	if m.Finished() {
		if err := s.freezeMatchPoints(ctx, m); err != nil {
			return err
		}
	}

	if err := s.matchRepo.Delete(ctx, m.ID); err != nil {
		return fmt.Errorf("delete match=%s: %w", m.ID, err)
	}

	s.logger.InfoContext(ctx, "match deleted",
		"match_id", m.ID,
		"finished", m.Finished(),
	)
	return nil
}

// freezeMatchPoints writes final point values onto every prediction of the
// match. Predictions whose points are already frozen are left untouched:
// a frozen value is authoritative and never recomputed.
func (s *MatchService) freezeMatchPoints(ctx context.Context, m match.Match) error {
	preds, err := s.predictionRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list predictions for freeze match=%s: %w", m.ID, err)
	}
	if len(preds) == 0 {
		return nil
	}

	pointsByKey := make(map[string]int, len(preds))
	for _, p := range preds {
		if p.Frozen() {
			continue
		}
		pointsByKey[p.Key()] = scoring.ComputePoints(p.Value, *m.Result)
	}
	if len(pointsByKey) == 0 {
		return nil
	}

	if err := s.predictionRepo.FreezePoints(ctx, m.ID, pointsByKey); err != nil {
		return fmt.Errorf("freeze points match=%s: %w", m.ID, err)
	}

	s.logger.InfoContext(ctx, "prediction points frozen",
		"match_id", m.ID,
		"predictions", len(pointsByKey),
	)
	return nil
}
