package console

import (
	"sync"

	"github.com/flipperlabs/flipper-console/internal/flipper"
)

// UserContext tracks which identity is being inspected. RequestedID mirrors
// the identity input field; ActiveID is the identity the last successful
// load applied to. Displayed read state always corresponds to ActiveID.
type UserContext struct {
	RequestedID string `json:"requestedId"`
	ActiveID    string `json:"activeId"`
}

// Snapshot is a point-in-time copy of the console's read state.
type Snapshot struct {
	User             UserContext            `json:"user"`
	Features         map[string]bool        `json:"features"`
	DashboardVersion string                 `json:"dashboardVersion,omitempty"`
	Layout           string                 `json:"layout,omitempty"`
	UserHash         int                    `json:"userHash"`
	Experiment       flipper.ExperimentData `json:"experiment"`
	Catalogue        []flipper.FeatureFlag  `json:"catalogue"`
	Loading          bool                   `json:"loading"`
	PercentageInput  map[string]string      `json:"percentageInput"`
	ActorInput       map[string]string      `json:"actorInput"`
}

// state is the single shared read-state snapshot. Read views are replaced
// wholesale; there is no field-level merging. Overlapping load sequences
// race and the last completion wins (see the package doc).
type state struct {
	mu sync.RWMutex

	user            UserContext
	features        map[string]bool
	dashboard       flipper.DashboardData
	experiment      flipper.ExperimentData
	catalogue       []flipper.FeatureFlag
	loading         bool
	percentageInput map[string]string
	actorInput      map[string]string
}

func newState() *state {
	return &state{
		features:        map[string]bool{},
		catalogue:       []flipper.FeatureFlag{},
		percentageInput: map[string]string{},
		actorInput:      map[string]string{},
	}
}

// snapshot returns a deep copy of the current state.
func (s *state) snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	features := make(map[string]bool, len(s.features))
	for k, v := range s.features {
		features[k] = v
	}
	catalogue := make([]flipper.FeatureFlag, len(s.catalogue))
	copy(catalogue, s.catalogue)
	pct := make(map[string]string, len(s.percentageInput))
	for k, v := range s.percentageInput {
		pct[k] = v
	}
	actors := make(map[string]string, len(s.actorInput))
	for k, v := range s.actorInput {
		actors[k] = v
	}

	return Snapshot{
		User:             s.user,
		Features:         features,
		DashboardVersion: s.dashboard.DashboardVersion,
		Layout:           s.dashboard.Layout,
		UserHash:         s.dashboard.UserHash,
		Experiment:       s.experiment,
		Catalogue:        catalogue,
		Loading:          s.loading,
		PercentageInput:  pct,
		ActorInput:       actors,
	}
}

func (s *state) activeID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.ActiveID
}

func (s *state) activate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.ActiveID = id
}

func (s *state) setRequestedID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.RequestedID = id
}

func (s *state) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// replaceDashboard swaps in a fresh resolved view. The feature map is taken
// from the dashboard payload; a nil map becomes an empty one so the snapshot
// never exposes nil.
func (s *state) replaceDashboard(d flipper.DashboardData) {
	if d.Features == nil {
		d.Features = map[string]bool{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = d
	s.features = d.Features
}

func (s *state) replaceExperiment(e flipper.ExperimentData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experiment = e
}

func (s *state) replaceCatalogue(flags []flipper.FeatureFlag) {
	if flags == nil {
		flags = []flipper.FeatureFlag{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogue = flags
}

// committedPercentage returns the last fetched percentage for a flag name.
func (s *state) committedPercentage(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.catalogue {
		if f.Name == name {
			return f.Percentage, true
		}
	}
	return 0, false
}

func (s *state) stagePercentage(name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == "" {
		delete(s.percentageInput, name)
		return
	}
	s.percentageInput[name] = text
}

func (s *state) stageActor(name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == "" {
		delete(s.actorInput, name)
		return
	}
	s.actorInput[name] = text
}

func (s *state) stagedPercentage(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.percentageInput[name]
}

func (s *state) stagedActor(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actorInput[name]
}

func (s *state) clearPercentageInput(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.percentageInput, name)
}

func (s *state) clearActorInput(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.actorInput, name)
}
