package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/netmcp/netmcp/internal/response"
)

func printConsole() (*console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &console{out: out}, out
}

func TestPrettyPrintFullResult(t *testing.T) {
	c, out := printConsole()
	data := response.Normalize("set_interface_ip", map[string]any{
		"device":   "R51",
		"commands": []any{"interface Gi0/1", "ip address 10.1.1.1 255.255.255.0"},
		"raw":      "config applied",
		"parsed":   []any{map[string]any{"interface": "Gi0/1"}},
		"saved":    true,
		"dry_run":  false,
	})
	c.prettyPrint("set_interface_ip", data)

	got := out.String()
	for _, want := range []string{
		"=== set_interface_ip [R51] ===",
		"Commands to device:",
		"  - interface Gi0/1",
		"RAW output:",
		"config applied",
		"Parsed:",
		"Saved to NVRAM: true",
		"Dry run: false",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Server error:") {
		t.Fatalf("output has error section without an error:\n%s", got)
	}
}

func TestPrettyPrintErrorResult(t *testing.T) {
	c, out := printConsole()
	data := response.Normalize("get_version", map[string]any{
		"device": "R51",
		"error":  "connection refused",
	})
	c.prettyPrint("get_version", data)

	got := out.String()
	if !strings.Contains(got, "Server error: connection refused") {
		t.Fatalf("output missing server error:\n%s", got)
	}
	if strings.Contains(got, "RAW output:") {
		t.Fatalf("output has raw section for nil raw:\n%s", got)
	}
}

func TestPrettyPrintEmptyRaw(t *testing.T) {
	c, out := printConsole()
	c.prettyPrint("get_interfaces", map[string]any{"raw": ""})
	if !strings.Contains(out.String(), "<no raw output>") {
		t.Fatalf("output missing empty-raw placeholder:\n%s", out.String())
	}
}

func TestPrettyPrintRecoversVersion(t *testing.T) {
	c, out := printConsole()
	data := map[string]any{
		"device": "R51",
		"raw":    "Cisco IOS XE Software, Version 17.3.2, RELEASE SOFTWARE",
		"parsed": map[string]any{"hostname": "R51", "version": ""},
	}
	c.prettyPrint("get_version", data)
	if !strings.Contains(out.String(), `"version": "17.3.2"`) {
		t.Fatalf("output missing recovered version:\n%s", out.String())
	}
}

func TestPrintAggregate(t *testing.T) {
	c, out := printConsole()
	c.printAggregate(
		[]string{"=== R51 ===\nout51\n", "=== R52 ===\nout52\n"},
		[]map[string]any{{"device": "R51"}, {"device": "R52"}},
	)
	got := out.String()
	for _, want := range []string{"Aggregated (all devices)", "=== R51 ===", "out52", "Parsed (combined):"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDeviceNames(t *testing.T) {
	if got := deviceNames([]any{"R51", "R52"}); len(got) != 2 || got[0] != "R51" {
		t.Fatalf("deviceNames() = %v, want [R51 R52]", got)
	}
	if got := deviceNames([]any{1, 2}); got != nil {
		t.Fatalf("deviceNames(non-strings) = %v, want nil", got)
	}
	if got := deviceNames("R51"); got != nil {
		t.Fatalf("deviceNames(string) = %v, want nil", got)
	}
	if got := deviceNames(nil); got != nil {
		t.Fatalf("deviceNames(nil) = %v, want nil", got)
	}
}

func TestTruthy(t *testing.T) {
	for _, v := range []any{true, float64(1), "yes"} {
		if !truthy(v) {
			t.Fatalf("truthy(%v) = false, want true", v)
		}
	}
	for _, v := range []any{false, float64(0), "", "false", "0", nil} {
		if truthy(v) {
			t.Fatalf("truthy(%v) = true, want false", v)
		}
	}
}

func TestDeviceLabel(t *testing.T) {
	if got := deviceLabel(""); got != "<default device>" {
		t.Fatalf("deviceLabel(\"\") = %q", got)
	}
	if got := deviceLabel("R51"); got != "R51" {
		t.Fatalf("deviceLabel(R51) = %q", got)
	}
}
