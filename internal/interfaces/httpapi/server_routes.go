package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerStandingsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/teams", handler.ListTeams)
	// Any method reaches the handler so non-POST calls get a JSON 405.
	mux.HandleFunc("/api/refresh", handler.Refresh)
}
