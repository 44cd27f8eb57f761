package store

import (
	"encoding/json"
	"sync"
)

// MemoryStore holds all simulator state in memory. Flags keep their
// creation order so the catalogue listing is stable.
type MemoryStore struct {
	mu    sync.RWMutex
	flags map[string]*Flag
	order []string
}

// New creates a MemoryStore pre-seeded with the demo catalogue.
func New() *MemoryStore {
	s := &MemoryStore{}
	s.seed()
	return s
}

func (s *MemoryStore) seed() {
	s.flags = make(map[string]*Flag)
	s.order = nil
	for _, f := range SeedFlags() {
		f := f
		s.flags[f.Name] = &f
		s.order = append(s.order, f.Name)
	}
}

// List returns all flags in creation order.
func (s *MemoryStore) List() []Flag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Flag, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.flags[name])
	}
	return out
}

// Get returns a flag by name.
func (s *MemoryStore) Get(name string) (Flag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.flags[name]
	if !ok {
		return Flag{}, false
	}
	return *f, true
}

// getOrCreate returns the flag, creating a disabled one on first reference.
// Must be called with the write lock held.
func (s *MemoryStore) getOrCreate(name string) *Flag {
	if f, ok := s.flags[name]; ok {
		return f
	}
	f := &Flag{Name: name}
	s.flags[name] = f
	s.order = append(s.order, name)
	return f
}

// SetEnabled enables or disables a flag, creating it if unknown. This is
// how the demo creates flags: disabling a never-seen name registers it.
func (s *MemoryStore) SetEnabled(name string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(name).Enabled = enabled
}

// SetPercentage sets a flag's rollout percentage, creating it if unknown.
func (s *MemoryStore) SetPercentage(name string, percentage int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(name).Percentage = percentage
}

// AddActor enrolls an actor on a flag, creating the flag if unknown.
// Re-adding an existing actor is a no-op.
func (s *MemoryStore) AddActor(name, actorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.getOrCreate(name)
	for _, a := range f.Actors {
		if a == actorID {
			return
		}
	}
	f.Actors = append(f.Actors, actorID)
}

// stateSnapshot is the JSON-serializable state for admin endpoints.
type stateSnapshot struct {
	Flags []Flag `json:"flags"`
}

// Snapshot returns the full state as a JSON-serializable value.
func (s *MemoryStore) Snapshot() any {
	return stateSnapshot{Flags: s.List()}
}

// LoadState replaces the full state from a JSON body.
func (s *MemoryStore) LoadState(data []byte) error {
	var snap stateSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags = make(map[string]*Flag, len(snap.Flags))
	s.order = nil
	for _, f := range snap.Flags {
		f := f
		s.flags[f.Name] = &f
		s.order = append(s.order, f.Name)
	}
	return nil
}

// Reset restores the seed catalogue.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed()
}
