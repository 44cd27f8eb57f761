// Package flipper provides a typed HTTP client for the remote flag-evaluation
// service, plus the static defaults the console falls back to when the
// service is unreachable.
package flipper

import (
	"encoding/json"
	"strings"
)

// Experiment variants assigned by the service.
const (
	VariantControl = "control"
	VariantA       = "variant_a"
	VariantB       = "variant_b"
)

// DashboardData is the per-user resolved view returned by GET /dashboard.
type DashboardData struct {
	DashboardVersion string          `json:"dashboardVersion,omitempty"`
	Layout           string          `json:"layout,omitempty"`
	Features         map[string]bool `json:"features"`
	UserID           string          `json:"userId"`
	UserHash         int             `json:"userHash"`
}

// ExperimentData is the A/B assignment returned by GET /experiment.
type ExperimentData struct {
	Variant        string `json:"variant"`
	WelcomeMessage string `json:"welcomeMessage"`
	ButtonColor    string `json:"buttonColor"`
}

// FeatureFlag is one catalogue entry returned by GET /flipper/features.
// Actors is a comma-joined list of actor ids, as the service renders it.
type FeatureFlag struct {
	Name       string `json:"name"`
	Enabled    bool   `json:"enabled"`
	Percentage int    `json:"percentage,omitempty"`
	Actors     string `json:"actors,omitempty"`
}

// FallbackFeatures returns the baseline resolved-flag map used when the
// dashboard fetch fails: the four well-known flags, all off.
func FallbackFeatures() map[string]bool {
	return map[string]bool{
		"new_dashboard":   false,
		"beta_features":   false,
		"premium_content": false,
		"dark_mode":       false,
	}
}

// DefaultExperiment returns the assignment used when the experiment fetch fails.
func DefaultExperiment() ExperimentData {
	return ExperimentData{
		Variant:        VariantControl,
		WelcomeMessage: "Welcome to the standard experience!",
		ButtonColor:    "#3B82F6",
	}
}

// FallbackCatalogue returns the static catalogue used when the catalogue
// fetch fails. It is fixed data, not derived from server state, so mutations
// made just before a failed fetch are not reflected in it.
func FallbackCatalogue() []FeatureFlag {
	return []FeatureFlag{
		{Name: "new_dashboard", Enabled: false, Percentage: 0, Actors: ""},
		{Name: "beta_features", Enabled: false, Percentage: 25, Actors: "user1,user2"},
		{Name: "premium_content", Enabled: false, Percentage: 50, Actors: ""},
		{Name: "dark_mode", Enabled: false, Percentage: 75, Actors: "admin"},
		{Name: "experiment_a", Enabled: false, Percentage: 0, Actors: ""},
		{Name: "experiment_b", Enabled: false, Percentage: 0, Actors: ""},
	}
}

// decodeCatalogue parses a catalogue response body. The body must be a JSON
// array; entries that are not objects or have a missing/blank name are
// dropped individually rather than failing the whole decode.
func decodeCatalogue(data []byte) ([]FeatureFlag, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	flags := make([]FeatureFlag, 0, len(raw))
	for _, entry := range raw {
		var f FeatureFlag
		if err := json.Unmarshal(entry, &f); err != nil {
			continue
		}
		if strings.TrimSpace(f.Name) == "" {
			continue
		}
		flags = append(flags, f)
	}
	return flags, nil
}
