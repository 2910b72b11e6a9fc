package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/infrastructure/repository/memory"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/logging"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/usecase"
)

const testAdminToken = "test-admin-token"

type staticIDs struct{}

func (staticIDs) NewID() (string, error) { return "generated-id", nil }

func newTestRouter(t *testing.T, matches []match.Match) http.Handler {
	t.Helper()

	matchRepo := memory.NewMatchRepository(matches, nil)
	predRepo := memory.NewPredictionRepository(nil)
	userRepo := memory.NewUserRepository(memory.SeedUsers())

	logger := logging.NewNop()
	matchService := usecase.NewMatchService(matchRepo, predRepo, staticIDs{}, logger)
	predictionService := usecase.NewPredictionService(matchRepo, predRepo, logger)
	leaderboardService := usecase.NewLeaderboardService(userRepo, matchRepo, predRepo, nil, logger)

	handler := NewHandler(matchService, predictionService, leaderboardService, logger)
	return NewRouter(handler, logger, []string{"*"}, testAdminToken)
}

func decodeData(t *testing.T, body []byte) any {
	t.Helper()

	var envelope map[string]any
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return envelope["data"]
}

func TestRouter_SubmitAndReadBack(t *testing.T) {
	kickoff := time.Now().UTC().Add(6 * time.Hour).Truncate(time.Second)
	router := newTestRouter(t, []match.Match{
		{
			ID:        "mt-001",
			BetNumber: 1,
			HomeTeam:  match.Team{Name: "Senegal"},
			AwayTeam:  match.Team{Name: "Morocco"},
			KickoffAt: kickoff,
		},
	})

	submitBody := `{"user_id":"usr-awa","user_name":"Awa Diop","selections":{"mt-001":"1"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/predictions", strings.NewReader(submitBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	accepted, ok := decodeData(t, rec.Body.Bytes()).([]any)
	if !ok || len(accepted) != 1 {
		t.Fatalf("submit: expected 1 accepted pick, got %v", accepted)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/predictions/me?user_id=usr-awa", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("read back: expected status 200, got %d", rec.Code)
	}
	picks, ok := decodeData(t, rec.Body.Bytes()).([]any)
	if !ok || len(picks) != 1 {
		t.Fatalf("read back: expected 1 pick, got %v", picks)
	}
	pick := picks[0].(map[string]any)
	if pick["value"] != "1" || pick["match_id"] != "mt-001" {
		t.Fatalf("read back: unexpected pick %v", pick)
	}
}

func TestRouter_SubmitRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/predictions", strings.NewReader(`{"user_id":"u1","selections":{"x":"1"},"extra":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_GridReportsLockState(t *testing.T) {
	now := time.Now().UTC()
	router := newTestRouter(t, []match.Match{
		{
			ID:        "mt-open",
			BetNumber: 1,
			HomeTeam:  match.Team{Name: "Nigeria"},
			AwayTeam:  match.Team{Name: "Ghana"},
			KickoffAt: now.Add(6 * time.Hour),
		},
		{
			ID:        "mt-locked",
			BetNumber: 2,
			HomeTeam:  match.Team{Name: "Egypt"},
			AwayTeam:  match.Team{Name: "Algeria"},
			KickoffAt: now.Add(30 * time.Minute),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/matches/grid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	entries, ok := decodeData(t, rec.Body.Bytes()).([]any)
	if !ok || len(entries) != 2 {
		t.Fatalf("expected 2 grid slots, got %v", entries)
	}
	first := entries[0].(map[string]any)
	second := entries[1].(map[string]any)
	if first["locked"] != false {
		t.Fatalf("expected mt-open to be unlocked, got %v", first["locked"])
	}
	if second["locked"] != true {
		t.Fatalf("expected mt-locked to be locked, got %v", second["locked"])
	}
}

func TestRouter_AdminRoutesNeedToken(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/competition/reset", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/admin/competition/reset", nil)
	req.Header.Set("X-Admin-Token", testAdminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AdminCreateAssignsGeneratedID(t *testing.T) {
	router := newTestRouter(t, nil)

	body := `{"bet_number":1,"home_team":"Tunisia","away_team":"Mali","kickoff_at":"2026-10-01T17:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/matches", strings.NewReader(body))
	req.Header.Set("X-Admin-Token", testAdminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created, ok := decodeData(t, rec.Body.Bytes()).(map[string]any)
	if !ok || created["id"] != "generated-id" {
		t.Fatalf("expected generated id, got %v", created)
	}
}

func TestRouter_LeaderboardExcludesAdmins(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	entries, ok := decodeData(t, rec.Body.Bytes()).([]any)
	if !ok || len(entries) == 0 {
		t.Fatalf("expected leaderboard entries, got %v", entries)
	}
	for _, raw := range entries {
		entry := raw.(map[string]any)
		if entry["user_id"] == "usr-admin" {
			t.Fatalf("admin user must not appear on the leaderboard")
		}
	}
}
