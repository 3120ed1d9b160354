package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sidehustle-starter/coach-api/internal/middleware"
)

// HealthInfo reports liveness and which optional store backs memory.
type HealthInfo struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// NewRouter wires the routes and global middleware.
func NewRouter(coachHandler *CoachHandler, storeKind string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.MethodNotAllowed(
		func(w http.ResponseWriter, _ *http.Request) {
			Error(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		},
	)

	r.Get(
		"/health", func(w http.ResponseWriter, _ *http.Request) {
			JSON(w, http.StatusOK, HealthInfo{Status: "ok", Store: storeKind})
		},
	)
	r.Post("/api/ask-coach", coachHandler.HandleAsk)

	return r
}
