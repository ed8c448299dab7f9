package cli

import (
	"strings"
	"testing"
)

func TestEnvDefault(t *testing.T) {
	t.Setenv("TARGET_IFACE", "Ethernet0/3")
	if got := envDefault("TARGET_IFACE", "Ethernet0/0"); got != "Ethernet0/3" {
		t.Fatalf("envDefault() = %q, want Ethernet0/3", got)
	}
	if got := envDefault("NETMCP_UNSET_WIZARD_KEY", "fallback"); got != "fallback" {
		t.Fatalf("envDefault() = %q, want fallback", got)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("DRY_RUN", "0")
	if envBool("DRY_RUN", true) {
		t.Fatal("envBool(DRY_RUN=0) = true, want false")
	}
	t.Setenv("SAVE", "1")
	if !envBool("SAVE", false) {
		t.Fatal("envBool(SAVE=1) = false, want true")
	}
	if !envBool("NETMCP_UNSET_WIZARD_KEY", true) {
		t.Fatal("envBool(unset) = false, want fallback true")
	}
	t.Setenv("REPLACE", "maybe")
	if envBool("REPLACE", false) {
		t.Fatal("envBool(REPLACE=maybe) = true, want fallback false")
	}
}

func TestReviewArgsAcceptAndDecline(t *testing.T) {
	c, out := menuConsole("y\n")
	if !c.reviewArgs(map[string]any{"interface": "Gi0/1"}) {
		t.Fatal("reviewArgs() = false on accept")
	}
	if got := out.String(); !strings.Contains(got, "Review arguments:") || !strings.Contains(got, `"interface": "Gi0/1"`) {
		t.Fatalf("review output missing argument dump:\n%s", got)
	}

	c, _ = menuConsole("n\n")
	if c.reviewArgs(map[string]any{}) {
		t.Fatal("reviewArgs() = true on decline")
	}

	c, _ = menuConsole("")
	if c.reviewArgs(map[string]any{}) {
		t.Fatal("reviewArgs() = true on EOF")
	}
}
