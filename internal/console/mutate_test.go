package console_test

import (
	"strings"
	"testing"
)

func TestToggleResyncsEverything(t *testing.T) {
	cons, svc := setup(t)
	cons.RequestUserChange("user12")
	start := svc.requestCount()

	cons.ToggleFlag("dark_mode", true)

	got := svc.recorded()[start:]
	want := []string{
		"POST /flipper/features/dark_mode/enable",
		"GET /flipper/features",
		"GET /dashboard?userId=user12",
		"GET /experiment?userId=user12",
	}
	assertRequests(t, got, want)
}

func TestToggleDisableCreatesUnknownFlag(t *testing.T) {
	cons, svc := setup(t)

	cons.ToggleFlag("brand_new_flag", false)

	got := svc.recorded()
	if len(got) == 0 || got[0] != "POST /flipper/features/brand_new_flag/disable" {
		t.Fatalf("expected disable request first, got %v", got)
	}
}

func TestToggleBlankNameIgnored(t *testing.T) {
	cons, svc := setup(t)

	cons.ToggleFlag("  ", true)

	if n := svc.requestCount(); n != 0 {
		t.Errorf("expected no requests for a blank name, got %d", n)
	}
}

func TestToggleFailureStillResyncs(t *testing.T) {
	cons, svc := setup(t)
	svc.writeStatus = 500

	cons.ToggleFlag("dark_mode", true)

	got := svc.recorded()
	want := []string{
		"POST /flipper/features/dark_mode/enable",
		"GET /flipper/features",
		"GET /dashboard?userId=",
		"GET /experiment?userId=",
	}
	assertRequests(t, got, want)
}

func TestSetPercentageSendsParsedValue(t *testing.T) {
	cons, svc := setup(t)

	cons.SetPercentage("dark_mode", "60")

	if body := svc.lastBodyFor("/percentage"); body != `{"percentage":60}` {
		t.Errorf("expected percentage 60, got body %s", body)
	}
}

func TestSetPercentageEmptyFallsBackToCommitted(t *testing.T) {
	cons, svc := setup(t)
	// The fake catalogue carries dark_mode at 42%.
	cons.RefreshCatalogue()

	cons.SetPercentage("dark_mode", "")

	if body := svc.lastBodyFor("/percentage"); body != `{"percentage":42}` {
		t.Errorf("expected committed percentage 42, got body %s", body)
	}
}

func TestSetPercentageUnknownFlagDefaultsToZero(t *testing.T) {
	cons, svc := setup(t)

	cons.SetPercentage("never_seen", "")

	if body := svc.lastBodyFor("/percentage"); body != `{"percentage":0}` {
		t.Errorf("expected percentage 0, got body %s", body)
	}
}

func TestSetPercentageNonNumericFallsBack(t *testing.T) {
	cons, svc := setup(t)
	cons.RefreshCatalogue()

	cons.SetPercentage("dark_mode", "lots")

	if body := svc.lastBodyFor("/percentage"); body != `{"percentage":42}` {
		t.Errorf("expected fallback to committed 42, got body %s", body)
	}
}

func TestSubmitPercentageUsesAndClearsStagedInput(t *testing.T) {
	cons, svc := setup(t)
	cons.StagePercentage("dark_mode", "75")

	if staged := cons.Snapshot().PercentageInput["dark_mode"]; staged != "75" {
		t.Fatalf("expected staged input 75, got %q", staged)
	}

	cons.SubmitPercentage("dark_mode")

	if body := svc.lastBodyFor("/percentage"); body != `{"percentage":75}` {
		t.Errorf("expected staged percentage 75, got body %s", body)
	}
	if _, ok := cons.Snapshot().PercentageInput["dark_mode"]; ok {
		t.Error("pending percentage buffer must be cleared after submission")
	}
}

func TestAddActorEmptyIsNoOp(t *testing.T) {
	cons, svc := setup(t)

	cons.AddActor("dark_mode", "")

	if n := svc.requestCount(); n != 0 {
		t.Errorf("expected no requests for an empty actor id, got %d", n)
	}
}

func TestAddActorSendsAndClearsBuffer(t *testing.T) {
	cons, svc := setup(t)
	cons.StageActor("dark_mode", "user7")

	cons.SubmitActor("dark_mode")

	if body := svc.lastBodyFor("/actors"); body != `{"actorId":"user7"}` {
		t.Errorf("expected actor user7, got body %s", body)
	}
	if _, ok := cons.Snapshot().ActorInput["dark_mode"]; ok {
		t.Error("pending actor buffer must be cleared after submission")
	}
}

func TestEnableForUsersSequence(t *testing.T) {
	cons, svc := setup(t)
	cons.RequestUserChange("user12")
	start := svc.requestCount()

	cons.EnableForUsers("new_dashboard", []string{"u1", "u2"})

	got := svc.recorded()[start:]
	want := []string{
		"POST /flipper/features/new_dashboard/disable",
		"POST /flipper/features/new_dashboard/percentage",
		"POST /flipper/features/new_dashboard/actors",
		"POST /flipper/features/new_dashboard/actors",
		"GET /flipper/features",
		"GET /dashboard?userId=user12",
		"GET /experiment?userId=user12",
	}
	assertRequests(t, got, want)

	if body := svc.lastBodyFor("/percentage"); body != `{"percentage":0}` {
		t.Errorf("expected percentage zeroed, got body %s", body)
	}
}

func TestEnableForUsersBestEffortOnFailures(t *testing.T) {
	cons, svc := setup(t)
	cons.RequestUserChange("user12")
	svc.writeStatus = 500
	start := svc.requestCount()

	cons.EnableForUsers("new_dashboard", []string{"u1", "u2"})

	// Every step still runs and exactly one resync follows.
	got := svc.recorded()[start:]
	if len(got) != 7 {
		t.Fatalf("expected 4 writes + 3 resync fetches, got %d: %v", len(got), got)
	}
	writes := 0
	for _, r := range got {
		if strings.HasPrefix(r, "POST ") {
			writes++
		}
	}
	if writes != 4 {
		t.Errorf("expected all 4 write steps despite failures, got %d", writes)
	}
}

func assertRequests(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d requests, got %d:\n%v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
