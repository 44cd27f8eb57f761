package api_test

import (
	"net/http/httptest"
	"testing"

	"github.com/flipperlabs/flipper-console/internal/flagsim/api"
	"github.com/flipperlabs/flipper-console/internal/flagsim/store"
	"github.com/flipperlabs/flipper-console/internal/webcore"
	"github.com/flipperlabs/flipper-console/pkg/testutil"
)

func setupSim(t *testing.T) *testutil.Client {
	t.Helper()
	memStore := store.New()
	srv := webcore.New(&webcore.Config{Name: "flipper-sim-test"})
	handler := api.NewHandler(memStore, srv.Logger)
	handler.Routes(srv.Router)

	ts := httptest.NewServer(srv.Router)
	t.Cleanup(ts.Close)
	return testutil.NewClient(t, ts)
}

func TestListFeaturesSeed(t *testing.T) {
	tc := setupSim(t)

	resp := tc.Get("/api/flipper/features")
	resp.AssertStatus(200)

	var flags []map[string]any
	resp.JSON(&flags)
	if len(flags) != 6 {
		t.Fatalf("expected 6 seed flags, got %d", len(flags))
	}
	if flags[0]["name"] != "new_dashboard" {
		t.Errorf("expected new_dashboard first, got %v", flags[0]["name"])
	}
	if flags[1]["actors"] != "user1,user2" {
		t.Errorf("expected comma-joined actors, got %v", flags[1]["actors"])
	}
}

func TestEnableAndDashboard(t *testing.T) {
	tc := setupSim(t)

	tc.Post("/api/flipper/features/premium_content/enable", nil).AssertStatus(200)

	resp := tc.Get("/api/dashboard?userId=someone")
	resp.AssertStatus(200)
	m := resp.JSONMap()

	features := m["features"].(map[string]any)
	if features["premium_content"] != true {
		t.Error("expected premium_content enabled for everyone")
	}
	if m["userId"] != "someone" {
		t.Errorf("expected userId echoed, got %v", m["userId"])
	}
	if _, ok := m["userHash"].(float64); !ok {
		t.Errorf("expected numeric userHash, got %v", m["userHash"])
	}
}

func TestActorMatch(t *testing.T) {
	tc := setupSim(t)

	// Seed enrolls admin on dark_mode; dark_mode is otherwise disabled with 75%.
	m := tc.Get("/api/dashboard?userId=admin").JSONMap()
	features := m["features"].(map[string]any)
	if features["dark_mode"] != true {
		t.Error("expected dark_mode on for enrolled actor admin")
	}
}

func TestPercentageBuckets(t *testing.T) {
	tc := setupSim(t)

	tc.Post("/api/flipper/features/experiment_a/percentage",
		map[string]int{"percentage": 100}).AssertStatus(200)

	m := tc.Get("/api/dashboard?userId=whoever").JSONMap()
	if m["features"].(map[string]any)["experiment_a"] != true {
		t.Error("expected 100% rollout to include everyone")
	}

	tc.Post("/api/flipper/features/experiment_a/percentage",
		map[string]int{"percentage": 0}).AssertStatus(200)

	m = tc.Get("/api/dashboard?userId=whoever").JSONMap()
	if m["features"].(map[string]any)["experiment_a"] != false {
		t.Error("expected 0% rollout to exclude everyone")
	}
}

func TestDisableCreatesUnknownFlag(t *testing.T) {
	tc := setupSim(t)

	tc.Post("/api/flipper/features/fresh_flag/disable", nil).AssertStatus(200)

	var flags []map[string]any
	tc.Get("/api/flipper/features").JSON(&flags)
	found := false
	for _, f := range flags {
		if f["name"] == "fresh_flag" {
			found = true
			if f["enabled"] != false {
				t.Error("expected fresh flag to start disabled")
			}
		}
	}
	if !found {
		t.Error("expected disable to register the unknown flag")
	}
}

func TestAddActorRequiresID(t *testing.T) {
	tc := setupSim(t)

	tc.Post("/api/flipper/features/dark_mode/actors",
		map[string]string{"actorId": ""}).AssertStatus(400)

	tc.Post("/api/flipper/features/dark_mode/actors",
		map[string]string{"actorId": "user3"}).AssertStatus(200)

	var flags []map[string]any
	tc.Get("/api/flipper/features").JSON(&flags)
	for _, f := range flags {
		if f["name"] == "dark_mode" && f["actors"] != "admin,user3" {
			t.Errorf("expected actors admin,user3, got %v", f["actors"])
		}
	}
}

func TestExperimentDeterministic(t *testing.T) {
	tc := setupSim(t)

	first := tc.Get("/api/experiment?userId=user12").JSONMap()
	second := tc.Get("/api/experiment?userId=user12").JSONMap()
	if first["variant"] != second["variant"] {
		t.Errorf("expected stable assignment, got %v then %v", first["variant"], second["variant"])
	}

	switch first["variant"] {
	case "control", "variant_a", "variant_b":
	default:
		t.Errorf("unexpected variant %v", first["variant"])
	}
	if first["welcomeMessage"] == "" || first["buttonColor"] == "" {
		t.Error("expected a welcome message and button color")
	}
}

func TestAdminResetAndState(t *testing.T) {
	tc := setupSim(t)

	tc.Post("/api/flipper/features/extra/disable", nil).AssertStatus(200)
	tc.Post("/admin/reset", nil).AssertStatus(200)

	var flags []map[string]any
	tc.Get("/api/flipper/features").JSON(&flags)
	if len(flags) != 6 {
		t.Errorf("expected reset to restore the 6 seed flags, got %d", len(flags))
	}

	state := map[string]any{
		"flags": []map[string]any{
			{"name": "only_flag", "enabled": true, "percentage": 5, "actors": []string{"x"}},
		},
	}
	tc.Post("/admin/state", state).AssertStatus(200)

	tc.Get("/api/flipper/features").AssertBodyContains("only_flag")
	m := tc.Get("/admin/state").JSONMap()
	loaded := m["flags"].([]any)
	if len(loaded) != 1 {
		t.Errorf("expected 1 loaded flag, got %d", len(loaded))
	}
}
