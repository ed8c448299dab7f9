package cli

import (
	"encoding/json"
	"fmt"

	"github.com/netmcp/netmcp/internal/response"
)

// prettyPrint renders a normalized tool result. The display keys are always
// present after Normalize, so each section only checks for a usable value.
func (c *console) prettyPrint(name string, data map[string]any) {
	if name == "get_version" {
		response.RecoverVersion(data)
	}

	header := name
	if dev, ok := data["device"].(string); ok && dev != "" {
		header = fmt.Sprintf("%s [%s]", name, dev)
	}
	fmt.Fprintf(c.out, "\n=== %s ===\n", header)

	if errVal, ok := data["error"]; ok && errVal != nil {
		fmt.Fprintf(c.out, "Server error: %v\n", errVal)
	}

	if cmds, ok := data["commands"].([]any); ok && len(cmds) > 0 {
		fmt.Fprintln(c.out, "Commands to device:")
		for _, cmd := range cmds {
			fmt.Fprintf(c.out, "  - %v\n", cmd)
		}
	}

	if raw, present := data["raw"]; present && raw != nil {
		fmt.Fprintf(c.out, "\nRAW output:\n\n")
		if s, ok := raw.(string); ok && s == "" {
			fmt.Fprintln(c.out, "<no raw output>")
		} else {
			fmt.Fprintf(c.out, "%v\n", raw)
		}
	}

	if parsed, present := data["parsed"]; present && parsed != nil {
		fmt.Fprintln(c.out, "\nParsed:")
		fmt.Fprintln(c.out, renderJSON(parsed))
	}

	if saved, present := data["saved"]; present && saved != nil {
		fmt.Fprintf(c.out, "\nSaved to NVRAM: %v\n", truthy(saved))
	}
	if dryRun, present := data["dry_run"]; present && dryRun != nil {
		fmt.Fprintf(c.out, "Dry run: %v\n", truthy(dryRun))
	}
}

// printAggregate renders the combined view after an all-devices run.
func (c *console) printAggregate(combinedRaw []string, combinedParsed []map[string]any) {
	fmt.Fprintln(c.out, "\n=== Aggregated (all devices) ===")
	fmt.Fprintf(c.out, "\nRAW (combined):\n\n")
	for _, chunk := range combinedRaw {
		fmt.Fprintln(c.out, chunk)
	}
	fmt.Fprintln(c.out, "\nParsed (combined):")
	fmt.Fprintln(c.out, renderJSON(combinedParsed))
}

func renderJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != "" && t != "false" && t != "0"
	default:
		return v != nil
	}
}
