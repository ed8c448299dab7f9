package device

import (
	"regexp"
	"strings"
)

// InterfaceEntry is one row of "show ip interface brief".
type InterfaceEntry struct {
	Interface string `json:"interface"`
	IP        string `json:"ip"`
	OK        string `json:"ok"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	Protocol  string `json:"protocol"`
}

// ParseInterfaceBrief splits "show ip interface brief" output into rows.
// The first non-blank line is assumed to be the header; rows with fewer
// than six columns are skipped.
func ParseInterfaceBrief(raw string) []InterfaceEntry {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	var entries []InterfaceEntry
	for _, line := range lines[1:] {
		parts := strings.Fields(line)
		if len(parts) < 6 {
			continue
		}
		entries = append(entries, InterfaceEntry{
			Interface: parts[0],
			IP:        parts[1],
			OK:        parts[2],
			Method:    parts[3],
			Status:    parts[4],
			Protocol:  parts[5],
		})
	}
	return entries
}

// VersionInfo is the parsed subset of "show version" the tools report.
type VersionInfo struct {
	Hostname string `json:"hostname"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
}

var (
	uptimeRe  = regexp.MustCompile(`(?i)^(.+?) uptime is (.+)$`)
	versionRe = regexp.MustCompile(`(?i)Cisco IOS XE Software, Version ([^,\n]+)|Cisco IOS Software, .+ Version ([^,\n]+)`)
)

// ParseShowVersion extracts hostname, uptime and version from raw
// "show version" output. Missing fields stay empty.
func ParseShowVersion(raw string) VersionInfo {
	var info VersionInfo
	for _, line := range strings.Split(raw, "\n") {
		if m := uptimeRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			info.Hostname = strings.TrimSpace(m[1])
			info.Uptime = strings.TrimSpace(m[2])
			break
		}
	}
	if m := versionRe.FindStringSubmatch(raw); m != nil {
		if m[1] != "" {
			info.Version = strings.TrimSpace(m[1])
		} else {
			info.Version = strings.TrimSpace(m[2])
		}
	}
	return info
}
