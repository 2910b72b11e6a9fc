package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/grid", handler.GetGrid)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("POST /v1/predictions", handler.SubmitPredictions)
	mux.HandleFunc("GET /v1/predictions/me", handler.ListMyPredictions)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/matches", RequireAdminToken(adminToken, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("PUT /v1/admin/matches/{matchID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.UpdateMatch)))
	mux.Handle("DELETE /v1/admin/matches/{matchID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.DeleteMatch)))
	mux.Handle("POST /v1/admin/matches/purge-finished", RequireAdminToken(adminToken, http.HandlerFunc(handler.PurgeFinishedMatches)))
	mux.Handle("POST /v1/admin/competition/reset", RequireAdminToken(adminToken, http.HandlerFunc(handler.ResetCompetition)))
	mux.Handle("GET /v1/admin/predictions", RequireAdminToken(adminToken, http.HandlerFunc(handler.ListAllPredictions)))
}
