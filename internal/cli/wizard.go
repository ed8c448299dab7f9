package cli

import (
	"fmt"
	"os"
)

// envDefault lets lab operators pre-seed wizard answers, mirroring the
// TARGET_* variables the flows were originally driven by.
func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "1":
		return true
	case "0":
		return false
	}
	return fallback
}

// wizardSetInterfaceIP walks the operator through set_interface_ip
// arguments. Returns nil when canceled; on a declined review the wizard
// restarts.
func (c *console) wizardSetInterfaceIP() map[string]any {
	for {
		fmt.Fprintln(c.out, "\nset_interface_ip - guided setup")
		sel := c.pickDevice(false, "Device")
		if sel.mode == pickCancel {
			return nil
		}

		fmt.Fprintln(c.out, "Tip: On your device, use names like 'Ethernet0/0', 'Ethernet0/1', 'Ethernet0/2', 'Ethernet0/3'.")

		iface, ok := c.prompt.String("Interface", envDefault("TARGET_IFACE", "Ethernet0/0"), false)
		if !ok {
			return nil
		}
		ip, mask, ok := c.prompt.IPWithOptionalMask(envDefault("TARGET_IP", "10.10.10.1/24"), os.Getenv("TARGET_MASK"))
		if !ok {
			return nil
		}
		replace, ok := c.prompt.Bool("Replace existing IP on interface?", envBool("REPLACE", true))
		if !ok {
			return nil
		}
		noShutdown, ok := c.prompt.Bool("Send 'no shutdown'?", envBool("NO_SHUT", true))
		if !ok {
			return nil
		}
		save, ok := c.prompt.Bool("Save config (write memory)?", envBool("SAVE", false))
		if !ok {
			return nil
		}
		dryRun, ok := c.prompt.Bool("Dry run (preview only)?", envBool("DRY_RUN", true))
		if !ok {
			return nil
		}

		args := map[string]any{
			"interface":   iface,
			"ip":          ip,
			"replace":     replace,
			"no_shutdown": noShutdown,
			"save":        save,
			"dry_run":     dryRun,
		}
		if mask != "" {
			args["mask"] = mask
		}
		if sel.device != "" {
			args["device"] = sel.device
		}

		if c.reviewArgs(args) {
			return args
		}
	}
}

// wizardCreateLoopback walks the operator through create_loopback
// arguments with the same cancel/restart semantics.
func (c *console) wizardCreateLoopback() map[string]any {
	for {
		fmt.Fprintln(c.out, "\ncreate_loopback - guided setup")
		sel := c.pickDevice(false, "Device")
		if sel.mode == pickCancel {
			return nil
		}

		loopID, ok := c.prompt.Int("Loopback ID", 0, 0)
		if !ok {
			return nil
		}
		ip, mask, ok := c.prompt.IPWithOptionalMask(envDefault("LOOPBACK_IP", "192.0.2.100/32"), "")
		if !ok {
			return nil
		}
		desc, ok := c.prompt.String("Description", envDefault("LOOPBACK_DESC", "netmcp-created loopback"), true)
		if !ok {
			return nil
		}
		save, ok := c.prompt.Bool("Save config (write memory)?", envBool("SAVE", false))
		if !ok {
			return nil
		}
		dryRun, ok := c.prompt.Bool("Dry run (preview only)?", envBool("DRY_RUN", true))
		if !ok {
			return nil
		}

		args := map[string]any{
			"loopback_id": loopID,
			"ip":          ip,
			"description": desc,
			"save":        save,
			"dry_run":     dryRun,
		}
		if mask != "" {
			args["mask"] = mask
		}
		if sel.device != "" {
			args["device"] = sel.device
		}

		if c.reviewArgs(args) {
			return args
		}
	}
}

// reviewArgs shows the collected arguments and asks for confirmation.
func (c *console) reviewArgs(args map[string]any) bool {
	fmt.Fprintln(c.out, "\nReview arguments:")
	fmt.Fprintln(c.out, renderJSON(args))
	proceed, ok := c.prompt.Bool("Proceed with these settings?", true)
	return ok && proceed
}
