package device

import (
	"fmt"
	"strings"
)

// InterfaceIPCommands builds the config set that (re)addresses an
// interface. Inputs are assumed validated and normalized.
func InterfaceIPCommands(iface, addr, netmask string, replace, noShutdown bool) []string {
	cmds := []string{fmt.Sprintf("interface %s", iface)}
	if replace {
		cmds = append(cmds, "no ip address")
	}
	cmds = append(cmds, fmt.Sprintf("ip address %s %s", addr, netmask))
	if noShutdown {
		cmds = append(cmds, "no shutdown")
	}
	return cmds
}

// LoopbackCommands builds the config set that creates LoopbackN with an
// address and optional description. Descriptions are collapsed to one line.
func LoopbackCommands(id int, description, addr, netmask string) []string {
	cmds := []string{fmt.Sprintf("interface Loopback%d", id)}
	if description != "" {
		desc := strings.TrimSpace(strings.Join(strings.Fields(strings.ReplaceAll(description, "\n", " ")), " "))
		if desc != "" {
			cmds = append(cmds, fmt.Sprintf("description %s", desc))
		}
	}
	cmds = append(cmds, fmt.Sprintf("ip address %s %s", addr, netmask))
	return cmds
}
