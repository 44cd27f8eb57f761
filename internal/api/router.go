// Package api exposes the console's orchestration core over a JSON API for
// the browser UI. It carries no flag logic of its own: every endpoint maps
// onto one console operation and returns the resulting read snapshot.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/flipperlabs/flipper-console/internal/console"
)

// Handler holds the API handler state.
type Handler struct {
	console *console.Console
	logger  *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(c *console.Console, logger *slog.Logger) *Handler {
	return &Handler{console: c, logger: logger}
}

// Routes mounts the console API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Post("/user", h.ChangeUser)
		r.Post("/reload", h.Reload)

		r.Route("/features", func(r chi.Router) {
			r.Post("/", h.CreateFeature)
			r.Patch("/{name}/input", h.StageInput)
			r.Post("/{name}/toggle", h.ToggleFeature)
			r.Post("/{name}/percentage", h.SetPercentage)
			r.Post("/{name}/actors", h.AddActor)
			r.Post("/{name}/enable-for", h.EnableForUsers)
		})

		r.Post("/quick-actions/{action}", h.QuickAction)
	})
}
