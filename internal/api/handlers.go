package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flipperlabs/flipper-console/internal/console"
	"github.com/flipperlabs/flipper-console/internal/webcore"
)

// changeUserRequest selects the identity to inspect.
type changeUserRequest struct {
	UserID string `json:"userId"`
}

// toggleRequest flips a flag on or off.
type toggleRequest struct {
	Enable bool `json:"enable"`
}

// percentageRequest carries raw percentage input text. A nil Percentage
// means "submit whatever is staged for this flag".
type percentageRequest struct {
	Percentage *string `json:"percentage"`
}

// actorRequest carries an actor id. A nil ActorID submits the staged input.
type actorRequest struct {
	ActorID *string `json:"actorId"`
}

// stageRequest updates the pending edit buffers for a flag.
type stageRequest struct {
	Percentage *string `json:"percentage"`
	Actor      *string `json:"actor"`
}

// enableForRequest lists the actors a flag should be restricted to.
type enableForRequest struct {
	ActorIDs []string `json:"actorIds"`
}

// createFeatureRequest names a new flag.
type createFeatureRequest struct {
	Name string `json:"name"`
}

// GetState handles GET /api/state.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}

// ChangeUser handles POST /api/user. Both the explicit search button and the
// Enter keystroke in the UI land here. An empty id is the one blocking,
// operator-visible failure.
func (h *Handler) ChangeUser(w http.ResponseWriter, r *http.Request) {
	var req changeUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.console.RequestUserChange(req.UserID); err != nil {
		if errors.Is(err, console.ErrEmptyUserID) {
			webcore.Error(w, http.StatusBadRequest, "Please enter a valid User ID")
			return
		}
		webcore.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}

// Reload handles POST /api/reload: re-pull the catalogue on demand.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	h.console.RefreshCatalogue()
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}

// CreateFeature handles POST /api/features. Flag creation goes through the
// disable endpoint; the service treats disabling an unknown name as creating
// it. A blank name is ignored.
func (h *Handler) CreateFeature(w http.ResponseWriter, r *http.Request) {
	var req createFeatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	h.console.ToggleFlag(req.Name, false)
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}

// StageInput handles PATCH /api/features/{name}/input, recording unsubmitted
// form input without any network activity.
func (h *Handler) StageInput(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req stageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Percentage != nil {
		h.console.StagePercentage(name, *req.Percentage)
	}
	if req.Actor != nil {
		h.console.StageActor(name, *req.Actor)
	}
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}

// ToggleFeature handles POST /api/features/{name}/toggle.
func (h *Handler) ToggleFeature(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	h.console.ToggleFlag(name, req.Enable)
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}

// SetPercentage handles POST /api/features/{name}/percentage.
func (h *Handler) SetPercentage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req percentageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Percentage != nil {
		h.console.SetPercentage(name, *req.Percentage)
	} else {
		h.console.SubmitPercentage(name)
	}
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}

// AddActor handles POST /api/features/{name}/actors.
func (h *Handler) AddActor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req actorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.ActorID != nil {
		h.console.AddActor(name, *req.ActorID)
	} else {
		h.console.SubmitActor(name)
	}
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}

// EnableForUsers handles POST /api/features/{name}/enable-for.
func (h *Handler) EnableForUsers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req enableForRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webcore.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	h.console.EnableForUsers(name, req.ActorIDs)
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}

// quickActions are the canned rollout composites exposed on the admin surface.
var quickActions = map[string]struct {
	flag   string
	actors []string
}{
	"new-dashboard-ten-users": {
		flag: "new_dashboard",
		actors: []string{"user1", "user2", "user3", "user4", "user5",
			"user6", "user7", "user8", "user9", "user10"},
	},
	"dark-mode-admin": {
		flag:   "dark_mode",
		actors: []string{"admin"},
	},
}

// QuickAction handles POST /api/quick-actions/{action}.
func (h *Handler) QuickAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	qa, ok := quickActions[action]
	if !ok {
		webcore.Error(w, http.StatusNotFound, "unknown quick action: "+action)
		return
	}

	h.logger.Info("quick action", "action", action, "flag", qa.flag)
	h.console.EnableForUsers(qa.flag, qa.actors)
	webcore.JSON(w, http.StatusOK, h.console.Snapshot())
}
