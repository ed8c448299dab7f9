package response

import (
	"regexp"
	"strings"
)

// versionPatterns are tried in order, first match wins. They cover IOS XE,
// classic IOS, and a bare "Version x.y.z" token as a last resort.
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Cisco IOS XE Software,\s*Version\s+([^,\n]+)`),
	regexp.MustCompile(`(?i)Cisco IOS Software,[^\n]*Version\s+([^,\n]+)`),
	regexp.MustCompile(`(?i)\bVersion\s+([0-9A-Za-z.()\-]+\d)(?:,\s*RELEASE|\s|$)`),
	regexp.MustCompile(`(?i)IOS[-\s]?XE Software,[^\n]*Version\s+([^,\n]+)`),
}

// ExtractVersion scans raw show-version output for a plausible version
// token. It returns "" when nothing matches.
func ExtractVersion(raw string) string {
	if raw == "" {
		return ""
	}
	for _, pat := range versionPatterns {
		if m := pat.FindStringSubmatch(raw); m != nil {
			if ver := strings.TrimSpace(m[1]); ver != "" {
				return ver
			}
		}
	}
	return ""
}

// RecoverVersion fills parsed.version in place from the raw output when the
// server's parser left it missing or blank.
func RecoverVersion(data map[string]any) {
	parsed, ok := data["parsed"].(map[string]any)
	if !ok {
		return
	}
	switch v := parsed["version"].(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return
		}
	case nil:
		// missing or explicit null: recoverable
	default:
		return
	}
	raw, _ := data["raw"].(string)
	if recovered := ExtractVersion(raw); recovered != "" {
		parsed["version"] = recovered
	}
}
