// Package store defines the flag simulator's state types and in-memory store.
package store

// Flag is one feature flag as the simulator persists it. Actors holds the
// individually enrolled actor ids; the wire format joins them with commas.
type Flag struct {
	Name       string   `json:"name"`
	Enabled    bool     `json:"enabled"`
	Percentage int      `json:"percentage"`
	Actors     []string `json:"actors"`
}

// SeedFlags returns the catalogue the simulator starts with, matching the
// example flags of the demo.
func SeedFlags() []Flag {
	return []Flag{
		{Name: "new_dashboard"},
		{Name: "beta_features", Percentage: 25, Actors: []string{"user1", "user2"}},
		{Name: "premium_content", Percentage: 50},
		{Name: "dark_mode", Percentage: 75, Actors: []string{"admin"}},
		{Name: "experiment_a"},
		{Name: "experiment_b"},
	}
}
