package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	knownDrivers = []string{DriverBadger, DriverFile, DriverSQLite, DriverPostgres, DriverMemory}
	knownCodecs  = []string{"json", "cbor"}
	knownLevels  = []string{"debug", "info", "warn", "error"}
	knownFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if !slices.Contains(knownLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", knownLevels, c.Log.Level)
	}
	if !slices.Contains(knownFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", knownFormats, c.Log.Format)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if !slices.Contains(knownDrivers, s.Driver) {
		return fmt.Errorf("driver must be one of %v (got %q)", knownDrivers, s.Driver)
	}
	if !slices.Contains(knownCodecs, s.Codec) {
		return fmt.Errorf("codec must be one of %v (got %q)", knownCodecs, s.Codec)
	}
	if strings.TrimSpace(s.Namespace) == "" {
		return fmt.Errorf("namespace is required")
	}

	switch s.Driver {
	case DriverBadger, DriverFile, DriverSQLite:
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("path is required for the %s driver", s.Driver)
		}
	case DriverPostgres:
		if s.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for the postgres driver")
		}
		if s.Postgres.MaxConns <= 0 {
			return fmt.Errorf("postgres.max_conns must be > 0 (got %d)", s.Postgres.MaxConns)
		}
		if s.Postgres.MinConns < 0 || s.Postgres.MinConns > s.Postgres.MaxConns {
			return fmt.Errorf("postgres.min_conns must be in 0..max_conns (got %d)", s.Postgres.MinConns)
		}
	}

	if s.Driver == DriverBadger && (s.Badger.GCDiscardRatio <= 0 || s.Badger.GCDiscardRatio >= 1) {
		return fmt.Errorf("badger.gc_discard_ratio must be in (0, 1) (got %v)", s.Badger.GCDiscardRatio)
	}

	return nil
}
