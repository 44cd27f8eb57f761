package api

import (
	"encoding/json"
	"hash/fnv"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/flipperlabs/flipper-console/internal/flagsim/store"
	"github.com/flipperlabs/flipper-console/internal/webcore"
)

// catalogueEntry is the wire form of a flag: actors are comma-joined.
type catalogueEntry struct {
	Name       string `json:"name"`
	Enabled    bool   `json:"enabled"`
	Percentage int    `json:"percentage"`
	Actors     string `json:"actors"`
}

// percentageRequest sets a flag's rollout.
type percentageRequest struct {
	Percentage *int `json:"percentage"`
}

// actorRequest enrolls one actor.
type actorRequest struct {
	ActorID string `json:"actorId"`
}

// userHash buckets a user id into 0-99 for percentage rollouts.
func userHash(userID string) int {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return int(h.Sum32() % 100)
}

// evaluate resolves one flag for a user: fully enabled, enrolled as an
// actor, or inside the percentage bucket.
func evaluate(f store.Flag, userID string, hash int) bool {
	if f.Enabled {
		return true
	}
	for _, a := range f.Actors {
		if a == userID {
			return true
		}
	}
	return f.Percentage > 0 && hash < f.Percentage
}

// Dashboard handles GET /api/dashboard?userId={id}.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	hash := userHash(userID)

	features := map[string]bool{}
	for _, f := range h.store.List() {
		features[f.Name] = evaluate(f, userID, hash)
	}

	version, layout := "v1.0", "classic"
	if features["new_dashboard"] {
		version, layout = "v2.0", "modern-grid"
	}

	webcore.JSON(w, http.StatusOK, map[string]any{
		"dashboardVersion": version,
		"layout":           layout,
		"features":         features,
		"userId":           userID,
		"userHash":         hash,
	})
}

// experimentVariants maps a hash bucket to an experiment experience.
var experimentVariants = []struct {
	variant string
	message string
	color   string
}{
	{"control", "Welcome to the standard experience!", "#3B82F6"},
	{"variant_a", "Welcome to the enhanced experience!", "#EF4444"},
	{"variant_b", "Try our alternative experience!", "#14B8A6"},
}

// Experiment handles GET /api/experiment?userId={id}.
func (h *Handler) Experiment(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	v := experimentVariants[userHash(userID)%len(experimentVariants)]

	webcore.JSON(w, http.StatusOK, map[string]any{
		"variant":        v.variant,
		"welcomeMessage": v.message,
		"buttonColor":    v.color,
	})
}

// ListFeatures handles GET /api/flipper/features.
func (h *Handler) ListFeatures(w http.ResponseWriter, r *http.Request) {
	flags := h.store.List()
	out := make([]catalogueEntry, 0, len(flags))
	for _, f := range flags {
		out = append(out, catalogueEntry{
			Name:       f.Name,
			Enabled:    f.Enabled,
			Percentage: f.Percentage,
			Actors:     strings.Join(f.Actors, ","),
		})
	}
	webcore.JSON(w, http.StatusOK, out)
}

// EnableFeature handles POST /api/flipper/features/{name}/enable.
func (h *Handler) EnableFeature(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.store.SetEnabled(name, true)
	h.logger.Info("flag enabled", "flag", name)
	webcore.JSON(w, http.StatusOK, map[string]string{"status": "enabled"})
}

// DisableFeature handles POST /api/flipper/features/{name}/disable.
// Disabling an unknown name registers it, which is how the demo creates flags.
func (h *Handler) DisableFeature(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.store.SetEnabled(name, false)
	h.logger.Info("flag disabled", "flag", name)
	webcore.JSON(w, http.StatusOK, map[string]string{"status": "disabled"})
}

// SetPercentage handles POST /api/flipper/features/{name}/percentage.
func (h *Handler) SetPercentage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req percentageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	pct := 0
	if req.Percentage != nil {
		pct = *req.Percentage
	}
	h.store.SetPercentage(name, pct)
	h.logger.Info("rollout set", "flag", name, "percentage", pct)
	webcore.JSON(w, http.StatusOK, map[string]any{"status": "set", "percentage": pct})
}

// AddActor handles POST /api/flipper/features/{name}/actors.
func (h *Handler) AddActor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req actorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ActorID == "" {
		webcore.Error(w, http.StatusBadRequest, "actorId is required")
		return
	}

	h.store.AddActor(name, req.ActorID)
	h.logger.Info("actor added", "flag", name, "actor_id", req.ActorID)
	webcore.JSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// AdminReset handles POST /admin/reset.
func (h *Handler) AdminReset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	webcore.JSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// AdminGetState handles GET /admin/state.
func (h *Handler) AdminGetState(w http.ResponseWriter, r *http.Request) {
	webcore.JSON(w, http.StatusOK, h.store.Snapshot())
}

// AdminLoadState handles POST /admin/state.
func (h *Handler) AdminLoadState(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		webcore.Error(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}
	if err := h.store.LoadState(data); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid state: "+err.Error())
		return
	}
	webcore.JSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}
