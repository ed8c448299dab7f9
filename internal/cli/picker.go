package cli

import (
	"fmt"
	"strconv"
)

// Selection modes for the device picker.
const (
	pickCancel = "cancel"
	pickAll    = "all"
	pickSingle = "single"
)

type deviceSelection struct {
	mode   string
	device string   // single mode; empty means server default
	names  []string // all mode
}

// listDevices fetches the device names through the list_devices tool,
// tolerating both the direct mapping form and JSON smuggled in raw.
func (c *console) listDevices() []string {
	data, err := c.client.CallTool("list_devices", map[string]any{}, c.listTimeout())
	if err != nil {
		fmt.Fprintf(c.out, "list_devices failed: %v\n", err)
		return nil
	}
	if names := deviceNames(data["devices"]); names != nil {
		return names
	}
	return nil
}

func deviceNames(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			names = append(names, s)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

// pickDevice shows the inventory and reads a selection. With allowAll set,
// empty input or 'a' selects every device; otherwise empty input defaults
// to the first device. Unrecognized input falls back to the first device.
func (c *console) pickDevice(allowAll bool, label string) deviceSelection {
	names := c.listDevices()
	if len(names) == 0 {
		fmt.Fprintln(c.out, "Could not retrieve device list from server; using server default device.")
		return deviceSelection{mode: pickSingle}
	}

	fmt.Fprintln(c.out, "\nDevices:")
	for i, name := range names {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, name)
	}
	if allowAll {
		fmt.Fprintln(c.out, "\nPick a device number or name, press ENTER / 'a' for all, or 'q' to cancel.")
	} else {
		fmt.Fprintln(c.out, "\nPick a device number or name (ENTER picks the first) or 'q' to cancel.")
	}

	fmt.Fprintf(c.out, "%s: ", label)
	sel, ok := c.prompt.readLine()
	if !ok || isQuit(sel) {
		return deviceSelection{mode: pickCancel}
	}

	if allowAll && (sel == "" || sel == "a" || sel == "all" || sel == "A") {
		return deviceSelection{mode: pickAll, names: names}
	}
	if sel == "" {
		return deviceSelection{mode: pickSingle, device: names[0]}
	}

	if idx, err := strconv.Atoi(sel); err == nil {
		if idx >= 1 && idx <= len(names) {
			return deviceSelection{mode: pickSingle, device: names[idx-1]}
		}
		fmt.Fprintln(c.out, "Out of range; defaulting to first device.")
		return deviceSelection{mode: pickSingle, device: names[0]}
	}

	for _, name := range names {
		if name == sel {
			return deviceSelection{mode: pickSingle, device: sel}
		}
	}

	fmt.Fprintln(c.out, "Not recognized; defaulting to first device.")
	return deviceSelection{mode: pickSingle, device: names[0]}
}
