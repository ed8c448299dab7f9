package config

import "time"

// Default per-call deadlines, matching the interactive flows they serve.
const (
	DefaultInitTimeout = 25 * time.Second
	DefaultListTimeout = 10 * time.Second
	DefaultCallTimeout = 90 * time.Second
)

// Config is the top-level netmcp configuration.
type Config struct {
	// DefaultServer names the entry used when the command line does not
	// pick one. Empty is fine when there is only one entry.
	DefaultServer string                  `toml:"default_server"`
	Servers       map[string]ServerConfig `toml:"servers"`
}

// ServerConfig describes how to spawn and talk to one tool server.
type ServerConfig struct {
	Command string            `toml:"command"`
	Args    []string          `toml:"args"`
	Env     map[string]string `toml:"env"`

	// Timeouts as duration strings ("25s"). Empty or invalid values fall
	// back to the package defaults.
	InitTimeout string `toml:"init_timeout"`
	CallTimeout string `toml:"call_timeout"`
}

// InitDeadline returns the initialize timeout for this server.
func (s ServerConfig) InitDeadline() time.Duration {
	return parseOr(s.InitTimeout, DefaultInitTimeout)
}

// CallDeadline returns the tool-call timeout for this server.
func (s ServerConfig) CallDeadline() time.Duration {
	return parseOr(s.CallTimeout, DefaultCallTimeout)
}

func parseOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
