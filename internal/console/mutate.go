package console

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// step is one side-effecting call within a mutation command.
type step struct {
	name string
	run  func() error
}

// runCommand executes a mutation as an explicit command: a deterministic
// sequence of steps, each best-effort, followed by exactly one resync of the
// catalogue and the per-user views. Step failures are logged under the
// command id and never abort the remaining steps; the mandatory resync is
// the only consistency-recovery mechanism, so every path ends there.
func (c *Console) runCommand(op string, steps []step) {
	cmdID := uuid.NewString()
	c.logger.Info("mutation command", "op", op, "cmd", cmdID, "steps", len(steps))

	for _, s := range steps {
		if err := s.run(); err != nil {
			c.logger.Warn("mutation step failed", "op", op, "cmd", cmdID,
				"step", s.name, "err", err)
		}
	}

	c.resync()
}

// ToggleFlag enables or disables a flag. Disabling a name the service has
// never seen creates it; creation and disabling share this one path. A blank
// name is ignored.
func (c *Console) ToggleFlag(name string, enable bool) {
	if strings.TrimSpace(name) == "" {
		return
	}

	call, stepName := c.client.Disable, "disable"
	if enable {
		call, stepName = c.client.Enable, "enable"
	}
	c.runCommand("toggle", []step{
		{name: stepName + " " + name, run: func() error { return call(name) }},
	})
}

// SetPercentage sets a flag's rollout percentage from raw input text. Empty
// or non-numeric text falls back to the flag's committed percentage, and to
// 0 when that is unknown. The pending percentage buffer for the flag is
// cleared once the submission has been attempted.
func (c *Console) SetPercentage(name, text string) {
	value := c.resolvePercentage(name, text)
	c.logger.Info("setting rollout", "flag", name, "percentage", value)

	c.runCommand("set-percentage", []step{
		{name: "percentage " + name, run: func() error {
			err := c.client.SetPercentage(name, value)
			c.state.clearPercentageInput(name)
			return err
		}},
	})
}

// AddActor registers an actor id on a flag. An empty actor id is a no-op
// with no network activity and no resync.
func (c *Console) AddActor(name, actorID string) {
	if actorID == "" {
		return
	}
	c.logger.Info("adding actor", "flag", name, "actor_id", actorID)

	c.runCommand("add-actor", []step{
		{name: "actor " + name, run: func() error {
			err := c.client.AddActor(name, actorID)
			c.state.clearActorInput(name)
			return err
		}},
	})
}

// EnableForUsers restricts a flag to an explicit list of actors: disable
// first, zero the rollout, then add each actor in order. Zeroing the global
// enablement and rollout before adding actors guarantees there is no window
// where the flag is both broadly enabled and actor-restricted. The sequence
// is best-effort, not transactional, and is followed by a single resync.
func (c *Console) EnableForUsers(name string, ids []string) {
	if strings.TrimSpace(name) == "" {
		return
	}

	steps := []step{
		{name: "disable " + name, run: func() error { return c.client.Disable(name) }},
		{name: "percentage 0", run: func() error { return c.client.SetPercentage(name, 0) }},
	}
	for _, id := range ids {
		steps = append(steps, step{
			name: "actor " + id,
			run:  func() error { return c.client.AddActor(name, id) },
		})
	}

	c.runCommand("enable-for-users", steps)
}

// StagePercentage records unsubmitted percentage input for a flag.
func (c *Console) StagePercentage(name, text string) {
	c.state.stagePercentage(name, text)
}

// StageActor records unsubmitted actor input for a flag.
func (c *Console) StageActor(name, text string) {
	c.state.stageActor(name, text)
}

// SubmitPercentage submits whatever percentage text is staged for the flag.
func (c *Console) SubmitPercentage(name string) {
	c.SetPercentage(name, c.state.stagedPercentage(name))
}

// SubmitActor submits the staged actor id for the flag, if any.
func (c *Console) SubmitActor(name string) {
	c.AddActor(name, c.state.stagedActor(name))
}

// resolvePercentage turns raw input text into the integer to send: parsed
// text wins, then the committed catalogue percentage, then 0.
func (c *Console) resolvePercentage(name, text string) int {
	if t := strings.TrimSpace(text); t != "" {
		if v, err := strconv.Atoi(t); err == nil {
			return v
		}
	}
	if p, ok := c.state.committedPercentage(name); ok {
		return p
	}
	return 0
}
