package cli

import (
	"fmt"
)

// runCall executes one tool with prepared arguments and prints the result.
func (c *console) runCall(name string, args map[string]any) map[string]any {
	data, err := c.callNorm(name, args)
	if err != nil {
		fmt.Fprintf(c.out, "Tool call failed: %v\n", err)
		return nil
	}
	c.prettyPrint(name, data)
	return data
}

func (c *console) runListDevices() {
	data, err := c.callNorm("list_devices", map[string]any{})
	if err != nil {
		fmt.Fprintf(c.out, "Tool call failed: %v\n", err)
		return
	}
	if names := deviceNames(data["devices"]); names != nil {
		fmt.Fprintln(c.out, "\nDevices:")
		for i, n := range names {
			fmt.Fprintf(c.out, "  %d. %s\n", i+1, n)
		}
	}
	c.prettyPrint("list_devices", data)
}

// runShowTool handles the read-only tools that support all-devices runs.
func (c *console) runShowTool(name string) {
	sel := c.pickDevice(true, "Selection")
	switch sel.mode {
	case pickCancel:
		return
	case pickAll:
		c.runOnAll(name, sel.names)
	default:
		args := map[string]any{}
		if sel.device != "" {
			args["device"] = sel.device
		}
		fmt.Fprintf(c.out, "\nRunning '%s' on %s ...\n", name, deviceLabel(sel.device))
		c.runCall(name, args)
	}
}

// runOnAll fans a tool out over every device, printing each result and an
// aggregated view at the end. A failing device does not stop the batch.
func (c *console) runOnAll(name string, names []string) {
	fmt.Fprintf(c.out, "\nRunning '%s' on ALL devices ...\n", name)

	var combinedRaw []string
	var combinedParsed []map[string]any
	for _, dev := range names {
		data, err := c.callNorm(name, map[string]any{"device": dev})
		if err != nil {
			fmt.Fprintf(c.out, "%s: %v\n", dev, err)
			combinedParsed = append(combinedParsed, map[string]any{"device": dev, "error": err.Error()})
			continue
		}
		c.prettyPrint(name, data)

		raw, _ := data["raw"].(string)
		combinedRaw = append(combinedRaw, fmt.Sprintf("=== %s ===\n%s\n", dev, raw))
		combinedParsed = append(combinedParsed, map[string]any{"device": dev, "parsed": data["parsed"]})
	}

	c.printAggregate(combinedRaw, combinedParsed)
}

// runCreateLoopback runs the loopback wizard and, when the server reports a
// device-side failure, offers to apply the same address to a physical
// interface through set_interface_ip instead.
func (c *console) runCreateLoopback() {
	args := c.wizardCreateLoopback()
	if args == nil {
		return
	}
	data := c.runCall("create_loopback", args)
	if data == nil || data["error"] == nil {
		return
	}

	fmt.Fprintln(c.out, "\nLoopback creation failed on the server.")
	retry, ok := c.prompt.Bool("Try applying the same IP to a physical interface instead?", true)
	if !ok || !retry {
		return
	}

	fb := map[string]any{
		"ip":          args["ip"],
		"replace":     true,
		"no_shutdown": true,
		"save":        false,
		"dry_run":     false,
	}
	if mask, ok := args["mask"]; ok {
		fb["mask"] = mask
	}
	if dev, ok := args["device"]; ok {
		fb["device"] = dev
	}

	fmt.Fprintln(c.out, "Your platform uses names like 'Ethernet0/0' .. 'Ethernet0/3'.")
	iface, ok := c.prompt.String("Interface to configure (e.g., Ethernet0/0)", "Ethernet0/0", false)
	if !ok {
		return
	}
	fb["interface"] = iface

	fmt.Fprintln(c.out, "\nFallback arguments (set_interface_ip):")
	fmt.Fprintln(c.out, renderJSON(fb))
	proceed, ok := c.prompt.Bool("Proceed with fallback?", true)
	if !ok || !proceed {
		return
	}

	fbData, err := c.callNorm("set_interface_ip", fb)
	if err != nil {
		fmt.Fprintf(c.out, "Fallback failed: %v\n", err)
		return
	}
	c.prettyPrint("set_interface_ip (fallback)", fbData)
}

func deviceLabel(dev string) string {
	if dev == "" {
		return "<default device>"
	}
	return dev
}
