// Package config loads the netmcp TOML configuration: named tool-server
// entries with spawn commands, environment overrides, and timeouts.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// DefaultPath returns the config file location: $NETMCP_CONFIG if set,
// otherwise netmcp.toml under the user config directory.
func DefaultPath() string {
	if p := os.Getenv("NETMCP_CONFIG"); p != "" {
		return p
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "netmcp.toml"
	}
	return filepath.Join(base, "netmcp", "netmcp.toml")
}

// Load reads the default config file. A missing file yields an empty
// Config, not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads and parses a config file at the given path, expanding
// ${ENV_VAR} placeholders from the current process environment.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Servers: make(map[string]ServerConfig)}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Servers == nil {
		cfg.Servers = make(map[string]ServerConfig)
	}
	expandConfigEnvVars(&cfg)
	return &cfg, nil
}

func expandConfigEnvVars(cfg *Config) {
	for name, srv := range cfg.Servers {
		cfg.Servers[name] = expandServerEnvVars(srv)
	}
}

func expandServerEnvVars(srv ServerConfig) ServerConfig {
	srv.Command = expandEnvVars(srv.Command)
	for i := range srv.Args {
		srv.Args[i] = expandEnvVars(srv.Args[i])
	}
	for k, v := range srv.Env {
		srv.Env[k] = expandEnvVars(v)
	}
	return srv
}

// expandEnvVars replaces ${VAR_NAME} with the value of the environment
// variable, leaving unresolved placeholders as-is.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRe.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}
