package httpapi

import (
	"net/http"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/leaderboard"
)

type leaderboardEntryDTO struct {
	UserID            string `json:"user_id"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	CountryName       string `json:"country_name,omitempty"`
	CountryCode       string `json:"country_code,omitempty"`
	Points            int    `json:"points"`
	Rank              int    `json:"rank"`
	RankChange        string `json:"rank_change"`
}

func leaderboardToDTO(entries []leaderboard.Entry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryDTO{
			UserID:            e.User.ID,
			Name:              e.User.Name,
			ProfilePictureURL: e.User.ProfilePictureURL,
			CountryName:       e.User.Country.Name,
			CountryCode:       e.User.Country.Code,
			Points:            e.Points,
			Rank:              e.Rank,
			RankChange:        string(e.RankChange),
		})
	}
	return out
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	entries, err := h.leaderboardService.Standings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}
