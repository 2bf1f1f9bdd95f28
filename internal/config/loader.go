package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables consumed by Load.
const envPrefix = "RADMEM_"

// Load builds the configuration from the YAML file at path (skipped when
// path is empty or the file does not exist), then RADMEM_-prefixed
// environment variables, then built-in defaults for anything left unset.
//
// Environment mapping: RADMEM_SCRUBBER_INTERVAL -> scrubber.interval,
// RADMEM_HEALTH_PENALTY -> health.penalty, RADMEM_STRESS_TRIALS ->
// stress.trials.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// RADMEM_SECTION_FIELD_NAME -> section.field_name: the first
		// underscore separates the section, the rest stay in the field.
		trimmed := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(trimmed, "_", 2)
		if len(parts) == 1 {
			return trimmed
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills every unset field from Default. Zero is not a valid
// value for any of these, so zero means unset.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
	if cfg.Scrubber.Interval == 0 {
		cfg.Scrubber.Interval = def.Scrubber.Interval
	}
	if cfg.Health.Reward == 0 {
		cfg.Health.Reward = def.Health.Reward
	}
	if cfg.Health.Penalty == 0 {
		cfg.Health.Penalty = def.Health.Penalty
	}
	if cfg.Health.Floor == 0 {
		cfg.Health.Floor = def.Health.Floor
	}
	if cfg.Health.Ceiling == 0 {
		cfg.Health.Ceiling = def.Health.Ceiling
	}
	if cfg.Stress.Trials == 0 {
		cfg.Stress.Trials = def.Stress.Trials
	}
}
