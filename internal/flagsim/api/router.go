// Package api implements the flag-service HTTP contract for the simulator:
// the read endpoints the console consumes and the write endpoints the admin
// surface drives, plus an /admin control plane for tests and demos.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/flipperlabs/flipper-console/internal/flagsim/store"
)

// Handler holds all API handler state.
type Handler struct {
	store  *store.MemoryStore
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s *store.MemoryStore, logger *slog.Logger) *Handler {
	return &Handler{store: s, logger: logger}
}

// Routes mounts the service routes under /api and the admin extras.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Get("/experiment", h.Experiment)

		r.Route("/flipper/features", func(r chi.Router) {
			r.Get("/", h.ListFeatures)
			r.Post("/{name}/enable", h.EnableFeature)
			r.Post("/{name}/disable", h.DisableFeature)
			r.Post("/{name}/percentage", h.SetPercentage)
			r.Post("/{name}/actors", h.AddActor)
		})
	})

	// Admin control plane (state seeding for tests and demos)
	r.Post("/admin/reset", h.AdminReset)
	r.Get("/admin/state", h.AdminGetState)
	r.Post("/admin/state", h.AdminLoadState)
}
