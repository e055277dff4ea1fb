package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// MissingKeyError reports a required top-level config.json key that
// was absent after load+env-override, fatal at startup (spec §6.3).
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("config: missing required key %q", e.Key)
}

// ConfigPath resolves the config.json location: an explicit
// OFFKAI_CONFIG environment variable, else "config.json" in the
// working directory.
func ConfigPath() string {
	if explicit := strings.TrimSpace(os.Getenv("OFFKAI_CONFIG")); explicit != "" {
		return explicit
	}
	return "config.json"
}

// Load reads config.json (if present), applies environment overrides,
// and validates that every required key (spec §6.3: DISCORD_TOKEN,
// EVENTS_FILE, RESPONSES_FILE, WAITLIST_FILE, GUILDS) is present.
// Unknown keys in the file are ignored (json.Unmarshal's default
// behavior already does this).
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := ConfigPath()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Proceed with defaults + env; Load still validates required keys.
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := envconfig.Process("OFFKAI", cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}
	if err := envconfig.Process("OFFKAI_SLACK", &cfg.Slack); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}
	if err := envconfig.Process("OFFKAI_SCHEDULER", &cfg.Scheduler); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := validateRequired(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateRequired(cfg *Config) error {
	if strings.TrimSpace(cfg.DiscordToken) == "" {
		return &MissingKeyError{Key: "DISCORD_TOKEN"}
	}
	if strings.TrimSpace(cfg.EventsFile) == "" {
		return &MissingKeyError{Key: "EVENTS_FILE"}
	}
	if strings.TrimSpace(cfg.ResponsesFile) == "" {
		return &MissingKeyError{Key: "RESPONSES_FILE"}
	}
	if strings.TrimSpace(cfg.WaitlistFile) == "" {
		return &MissingKeyError{Key: "WAITLIST_FILE"}
	}
	if len(cfg.Guilds) == 0 {
		return &MissingKeyError{Key: "GUILDS"}
	}
	return nil
}

// Save writes cfg to its resolved path, pretty-printed, matching the
// "pretty-print with indent expected but not required" convention
// spec §6.1 states for the data files (config.json follows the same
// house style).
func Save(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0o600)
}
