// Package config provides layered configuration for the radmem tooling:
// built-in defaults, then an optional YAML file, then RADMEM_-prefixed
// environment variables, highest wins.
package config

import (
	"fmt"
	"time"

	"radmem/internal/logging"
	"radmem/internal/redundancy"
	"radmem/internal/scrubber"
)

// Config is the root configuration tree.
type Config struct {
	Logging  logging.Config          `koanf:"logging"`
	Scrubber scrubber.Config         `koanf:"scrubber"`
	Health   redundancy.HealthConfig `koanf:"health"`
	Stress   StressConfig            `koanf:"stress"`
}

// StressConfig parameterizes fault-injection campaigns.
type StressConfig struct {
	// Trials per container variant.
	Trials int `koanf:"trials"`
	// Seed for the injector; 0 means nondeterministic.
	Seed uint64 `koanf:"seed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging:  logging.DefaultConfig(),
		Scrubber: scrubber.Config{Interval: scrubber.DefaultInterval},
		Health:   redundancy.DefaultHealthConfig(),
		Stress:   StressConfig{Trials: 100},
	}
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Scrubber.Interval < time.Millisecond {
		return fmt.Errorf("config: scrubber interval %v below 1ms floor", c.Scrubber.Interval)
	}
	if c.Stress.Trials <= 0 {
		return fmt.Errorf("config: stress trials must be positive, got %d", c.Stress.Trials)
	}
	if err := c.Health.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
