// Package device holds the device-facing collaborators of netmcpd: input
// validation, IOS command construction, output parsing, and the SSH session
// that executes commands.
package device

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

// NormalizeIPMask resolves the accepted address spellings to an IPv4
// address and dotted netmask. CIDR form ("10.0.0.1/24") wins and ignores
// mask; otherwise mask is required, either as a prefix length ("24") or a
// dotted mask ("255.255.255.0").
func NormalizeIPMask(ip, mask string) (string, string, error) {
	ip = strings.TrimSpace(ip)
	mask = strings.TrimSpace(mask)

	if strings.Contains(ip, "/") {
		prefix, err := netip.ParsePrefix(ip)
		if err != nil {
			return "", "", fmt.Errorf("invalid CIDR %q: %w", ip, err)
		}
		if !prefix.Addr().Is4() {
			return "", "", fmt.Errorf("only IPv4 addresses are supported, got %q", ip)
		}
		return prefix.Addr().String(), dottedMask(prefix.Bits()), nil
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "", "", fmt.Errorf("invalid IP address %q: %w", ip, err)
	}
	if !addr.Is4() {
		return "", "", fmt.Errorf("only IPv4 addresses are supported, got %q", ip)
	}
	if mask == "" {
		return "", "", fmt.Errorf("mask required when IP is not CIDR (e.g., ip=%q, mask=\"24\" or \"255.255.255.0\")", ip)
	}

	if isDigits(mask) {
		bits, err := strconv.Atoi(mask)
		if err != nil || bits < 0 || bits > 32 {
			return "", "", fmt.Errorf("invalid prefix length %q", mask)
		}
		return addr.String(), dottedMask(bits), nil
	}

	maskAddr := net.ParseIP(mask)
	if maskAddr == nil || maskAddr.To4() == nil {
		return "", "", fmt.Errorf("invalid mask %q", mask)
	}
	if ones, bits := net.IPMask(maskAddr.To4()).Size(); ones == 0 && bits == 0 {
		return "", "", fmt.Errorf("non-contiguous mask %q", mask)
	}
	return addr.String(), maskAddr.To4().String(), nil
}

func dottedMask(bits int) string {
	return net.IP(net.CIDRMask(bits, 32)).String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateInterfaceName rejects empty names and names carrying control
// characters that would break a config line.
func ValidateInterfaceName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", fmt.Errorf("interface name cannot be empty")
	}
	if strings.ContainsAny(n, "\n\r\t") {
		return "", fmt.Errorf("invalid characters in interface name")
	}
	return n, nil
}

// ValidateLoopbackID rejects negative loopback numbers.
func ValidateLoopbackID(id int) (int, error) {
	if id < 0 {
		return 0, fmt.Errorf("loopback ID must be non-negative")
	}
	return id, nil
}
