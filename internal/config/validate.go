package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	names := make([]string, 0, len(cfg.Servers))
	for name := range cfg.Servers {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		errs = append(errs, validateServer(name, cfg.Servers[name])...)
	}

	if cfg.DefaultServer != "" {
		if _, ok := cfg.Servers[cfg.DefaultServer]; !ok {
			errs = append(errs, fmt.Errorf("default_server: unknown server %q", cfg.DefaultServer))
		}
	}

	return errors.Join(errs...)
}

func validateServer(name string, srv ServerConfig) []error {
	var errs []error

	if strings.TrimSpace(srv.Command) == "" {
		errs = append(errs, fmt.Errorf("servers.%s: missing command", name))
	}

	for _, f := range []struct {
		field string
		raw   string
	}{
		{"init_timeout", srv.InitTimeout},
		{"call_timeout", srv.CallTimeout},
	} {
		field, raw := f.field, f.raw
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("servers.%s.%s: invalid duration %q: %w", name, field, raw, err))
		} else if d <= 0 {
			errs = append(errs, fmt.Errorf("servers.%s.%s: must be > 0, got %q", name, field, raw))
		}
	}

	return errs
}
