package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/usecase"
)

type submitPredictionsRequest struct {
	UserID     string            `json:"user_id" validate:"required"`
	UserName   string            `json:"user_name" validate:"omitempty,max=100"`
	Selections map[string]string `json:"selections" validate:"required,min=1"`
}

type predictionDTO struct {
	UserID         string `json:"user_id"`
	MatchID        string `json:"match_id"`
	Value          string `json:"value"`
	UserName       string `json:"user_name,omitempty"`
	MatchBetNumber int    `json:"match_bet_number"`
	MatchLabel     string `json:"match_label"`
	SubmittedAt    string `json:"submitted_at"`
	Points         *int   `json:"points,omitempty"`
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		UserID:         p.UserID,
		MatchID:        p.MatchID,
		Value:          string(p.Value),
		UserName:       p.UserName,
		MatchBetNumber: p.MatchBetNumber,
		MatchLabel:     p.MatchLabel,
		SubmittedAt:    p.SubmittedAt.UTC().Format(time.RFC3339),
		Points:         p.Points,
	}
}

func predictionsToDTO(items []prediction.Prediction) []predictionDTO {
	out := make([]predictionDTO, 0, len(items))
	for _, p := range items {
		out = append(out, predictionToDTO(p))
	}
	return out
}

func (h *Handler) SubmitPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPredictions")
	defer span.End()

	var req submitPredictionsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	accepted, err := h.predictionService.Submit(ctx, usecase.SubmitInput{
		UserID:     req.UserID,
		UserName:   req.UserName,
		Selections: req.Selections,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit predictions failed", "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionsToDTO(accepted))
}

func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	items, err := h.predictionService.ListByUser(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionsToDTO(items))
}

func (h *Handler) ListAllPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAllPredictions")
	defer span.End()

	items, err := h.predictionService.ListAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list all predictions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionsToDTO(items))
}
