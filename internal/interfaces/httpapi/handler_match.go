package httpapi

import (
	"net/http"
	"time"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/usecase"
)

type resultDTO struct {
	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`
}

type matchDTO struct {
	ID          string     `json:"id"`
	BetNumber   int        `json:"bet_number"`
	HomeTeam    string     `json:"home_team"`
	AwayTeam    string     `json:"away_team"`
	KickoffAt   string     `json:"kickoff_at"`
	Competition string     `json:"competition,omitempty"`
	Country     string     `json:"country,omitempty"`
	Result      *resultDTO `json:"result,omitempty"`
}

type gridEntryDTO struct {
	matchDTO
	Locked bool `json:"locked"`
}

func matchToDTO(m match.Match) matchDTO {
	dto := matchDTO{
		ID:          m.ID,
		BetNumber:   m.BetNumber,
		HomeTeam:    m.HomeTeam.Name,
		AwayTeam:    m.AwayTeam.Name,
		KickoffAt:   m.KickoffAt.UTC().Format(time.RFC3339),
		Competition: m.Competition,
		Country:     m.Country,
	}
	if m.Result != nil {
		dto.Result = &resultDTO{
			HomeScore: m.Result.HomeScore,
			AwayScore: m.Result.AwayScore,
		}
	}
	return dto
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	items, err := h.matchService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGrid")
	defer span.End()

	entries, err := h.matchService.Grid(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get grid failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridEntriesToDTO(entries))
}

func gridEntriesToDTO(entries []usecase.GridEntry) []gridEntryDTO {
	out := make([]gridEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, gridEntryDTO{
			matchDTO: matchToDTO(e.Match),
			Locked:   e.Locked,
		})
	}
	return out
}
