package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerFeedRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/overview", handler.GetOverview)
	mux.HandleFunc("GET /v1/live", handler.ListLive)
	mux.HandleFunc("GET /v1/results", handler.ListResults)
	mux.HandleFunc("GET /v1/schedule", handler.ListSchedule)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/conferences", handler.ListConferences)
	mux.HandleFunc("GET /v1/teams/divisions", handler.ListDivisions)
	mux.HandleFunc("GET /v1/teams/{teamID}/matches", handler.ListTeamMatches)
	mux.HandleFunc("GET /v1/news", handler.ListNews)
	mux.HandleFunc("GET /v1/news/divisions", handler.ListNewsDivisions)
	mux.HandleFunc("GET /v1/news/divisions/{division}", handler.GetNewsDivision)
}

func registerSEORoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seo/home", handler.GetHomeSEO)
	mux.HandleFunc("GET /v1/seo/divisions/{division}", handler.GetDivisionSEO)
	mux.HandleFunc("GET /v1/seo/conferences/{conference}", handler.GetConferenceSEO)
	mux.HandleFunc("GET /v1/seo/teams/{teamID}", handler.GetTeamSEO)
}
