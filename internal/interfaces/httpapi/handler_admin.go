package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/usecase"
)

type upsertMatchRequest struct {
	ID          string `json:"id" validate:"omitempty,max=100"`
	BetNumber   int    `json:"bet_number" validate:"required,gt=0"`
	HomeTeam    string `json:"home_team" validate:"required,max=100"`
	AwayTeam    string `json:"away_team" validate:"required,max=100"`
	KickoffAt   string `json:"kickoff_at" validate:"required"`
	Competition string `json:"competition" validate:"omitempty,max=100"`
	Country     string `json:"country" validate:"omitempty,max=100"`
	HomeScore   *int   `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore   *int   `json:"away_score" validate:"omitempty,gte=0"`
}

func (req upsertMatchRequest) toDomain() (match.Match, error) {
	kickoffAt, err := time.Parse(time.RFC3339, req.KickoffAt)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: invalid kickoff_at: %v", usecase.ErrInvalidInput, err)
	}

	m := match.Match{
		ID:          strings.TrimSpace(req.ID),
		BetNumber:   req.BetNumber,
		HomeTeam:    match.Team{Name: strings.TrimSpace(req.HomeTeam)},
		AwayTeam:    match.Team{Name: strings.TrimSpace(req.AwayTeam)},
		KickoffAt:   kickoffAt.UTC(),
		Competition: strings.TrimSpace(req.Competition),
		Country:     strings.TrimSpace(req.Country),
	}

	// A result needs both scores; one-sided payloads are rejected rather
	// than guessed at.
	switch {
	case req.HomeScore != nil && req.AwayScore != nil:
		m.Result = &match.Result{HomeScore: *req.HomeScore, AwayScore: *req.AwayScore}
	case req.HomeScore != nil || req.AwayScore != nil:
		return match.Match{}, fmt.Errorf("%w: home_score and away_score must be set together", usecase.ErrInvalidInput)
	}

	return m, nil
}

func (h *Handler) decodeMatchRequest(w http.ResponseWriter, r *http.Request) (upsertMatchRequest, bool) {
	ctx := r.Context()

	var req upsertMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return upsertMatchRequest{}, false
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return upsertMatchRequest{}, false
	}

	return req, true
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	req, ok := h.decodeMatchRequest(w, r)
	if !ok {
		return
	}

	m, err := req.toDomain()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.Create(ctx, m)
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	req, ok := h.decodeMatchRequest(w, r)
	if !ok {
		return
	}

	m, err := req.toDomain()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	m.ID = matchID

	if err := h.matchService.Update(ctx, m); err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.matchService.Delete(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"match_id": matchID})
}

func (h *Handler) PurgeFinishedMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PurgeFinishedMatches")
	defer span.End()

	purged, err := h.matchService.PurgeFinished(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "purge finished matches failed", "purged", purged, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"purged": purged})
}

func (h *Handler) ResetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetCompetition")
	defer span.End()

	if err := h.predictionService.ResetCompetition(ctx); err != nil {
		h.logger.WarnContext(ctx, "reset competition failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}
