// Package config provides configuration types and loading for the
// offkai engine (spec §6.3).
package config

// Config is the root configuration struct, loaded from config.json and
// overridden by environment variables (spec §6.3).
type Config struct {
	// DiscordToken authenticates the chat-platform bot process. The
	// core never uses it directly (bot auth is out of scope, spec
	// §1) but it is a required top-level key.
	DiscordToken string `json:"DISCORD_TOKEN" envconfig:"DISCORD_TOKEN"`

	// EventsFile/ResponsesFile/WaitlistFile are the on-disk paths for
	// the two JSON stores (spec §4.1, §6.1). WaitlistFile is the
	// legacy sibling file merged during migration.
	EventsFile    string `json:"EVENTS_FILE" envconfig:"EVENTS_FILE"`
	ResponsesFile string `json:"RESPONSES_FILE" envconfig:"RESPONSES_FILE"`
	WaitlistFile  string `json:"WAITLIST_FILE" envconfig:"WAITLIST_FILE"`

	// Guilds is the set of chat-platform guild/workspace identifiers
	// the bot operates in. Opaque to the core engine.
	Guilds []string `json:"GUILDS" envconfig:"GUILDS"`

	// Slack configures the concrete collaborator adapter
	// (internal/channels). Unknown/omitted keys are ignored, per
	// spec §6.3's "unknown keys are ignored" rule, so this group is
	// optional even though the five keys above are not.
	Slack SlackConfig `json:"slack"`

	// Scheduler tunes the alert scheduler's tick cadence.
	Scheduler SchedulerConfig `json:"scheduler"`

	// AuditDB is the path to the supplemental sqlite audit trail
	// (spec_full §8.2). Empty disables the audit trail.
	AuditDB string `json:"AUDIT_DB" envconfig:"AUDIT_DB"`
}

// SlackConfig configures the Slack collaborator adapter.
type SlackConfig struct {
	Enabled        bool   `json:"enabled" envconfig:"ENABLED"`
	BotToken       string `json:"botToken" envconfig:"BOT_TOKEN"`
	DefaultChannel string `json:"defaultChannel" envconfig:"DEFAULT_CHANNEL"`
	APIBase        string `json:"apiBase,omitempty" envconfig:"API_BASE"`
}

// SchedulerConfig tunes the minute-granular alert scheduler (spec §4.6).
type SchedulerConfig struct {
	// TickIntervalSeconds overrides the default 60-second tick; tests
	// use a short interval, production should leave this at 60.
	TickIntervalSeconds int `json:"tickIntervalSeconds" envconfig:"TICK_INTERVAL_SECONDS"`
}

// DefaultConfig returns sensible defaults. Required keys are left
// empty so Load's validation catches a genuinely missing config.json.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: SchedulerConfig{TickIntervalSeconds: 60},
	}
}
