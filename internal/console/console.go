// Package console implements the orchestration core of the flipper demo: it
// keeps a read snapshot of one user's resolved flags, the experiment
// assignment, and the global flag catalogue consistent with the remote
// service across identity changes and administrative writes.
//
// The console holds no authoritative state of its own; every read view is
// replaced wholesale after each load, and every mutation ends in a full
// resync because the remote service is always the source of truth.
//
// Overlapping operations are not fenced: if a second identity change or
// mutation starts before the first sequence's resync completes, both
// sequences' completions race and the last write to the shared snapshot
// wins. There is no request cancellation and no generation counter; a stale
// fetch may complete after a newer one and silently overwrite it. This is an
// accepted, documented property rather than a guarded one.
package console

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/flipperlabs/flipper-console/internal/flipper"
)

// ErrEmptyUserID is returned when an identity change is requested with an
// empty or whitespace-only id. It is the only operator-visible failure.
var ErrEmptyUserID = errors.New("user id must not be empty")

// Console orchestrates fetches and mutations against the flag service.
type Console struct {
	client *flipper.Client
	state  *state
	logger *slog.Logger
}

// New creates a Console backed by the given client. The logger must not be nil.
func New(client *flipper.Client, logger *slog.Logger) *Console {
	return &Console{
		client: client,
		state:  newState(),
		logger: logger,
	}
}

// Snapshot returns a copy of the current read state.
func (c *Console) Snapshot() Snapshot {
	return c.state.snapshot()
}

// Bootstrap performs the initial load for the default user. Fetch failures
// fall back to defaults as usual.
func (c *Console) Bootstrap(defaultUserID string) {
	c.state.setRequestedID(defaultUserID)
	c.reload(defaultUserID)
}

// SetRequestedID records the identity input without triggering any load.
func (c *Console) SetRequestedID(id string) {
	c.state.setRequestedID(id)
}

// RequestUserChange switches the inspected identity. An empty or
// whitespace-only id returns ErrEmptyUserID without any network activity.
// An id equal to the currently active one is a silent no-op, also without
// network activity. Otherwise a full reload runs, and only after the
// per-user fetches complete is the id marked active, so the displayed
// identity label never gets ahead of the flags on screen.
func (c *Console) RequestUserChange(id string) error {
	c.state.setRequestedID(id)

	if strings.TrimSpace(id) == "" {
		return ErrEmptyUserID
	}
	if id == c.state.activeID() {
		return nil
	}

	c.logger.Info("loading data for user", "user_id", id)
	c.reload(id)
	return nil
}

// reload produces a fresh read snapshot for one identity: resolved flags and
// experiment assignment first, then activation, then a catalogue refresh.
// The catalogue does not depend on the identity; it is refreshed on the same
// cadence for operational simplicity.
func (c *Console) reload(userID string) {
	c.fetchResolvedFlags(userID)
	c.fetchExperiment(userID)
	c.state.activate(userID)
	c.RefreshCatalogue()
}

// resync restores consistency after a mutation: catalogue plus the per-user
// views for the currently active identity.
func (c *Console) resync() {
	c.RefreshCatalogue()
	id := c.state.activeID()
	c.fetchResolvedFlags(id)
	c.fetchExperiment(id)
}
