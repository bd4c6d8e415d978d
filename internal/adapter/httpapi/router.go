package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kelsier27/investsim-backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router. The health endpoint is
// open; everything under /api requires the configured token.
func NewRouter(h *Handlers, log *logger.Logger, apiToken string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware(apiToken))

	api.HandleFunc("/tickers", h.GetTickers).Methods("GET")
	api.HandleFunc("/prices/latest", h.GetLatestPrices).Methods("GET")
	api.HandleFunc("/investments/{ticker}", h.ListInvestments).Methods("GET")
	api.HandleFunc("/investments/{ticker}/generate", h.Generate).Methods("POST")
	api.HandleFunc("/investments/{ticker}/report", h.GetReport).Methods("GET")

	r.Use(requestIDMiddleware())
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "investsim-api",
	})
}
