// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package config provides centralized configuration management for tracecat.
// Precedence is flags > env > active profile > defaults, resolved with Viper,
// and invalid values fail fast at startup. The default trace count is
// clamped into range rather than rejected.
package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/elastic/tracecat/internal/session"
)

// Config holds all application configuration.
type Config struct {
	Profile string      `mapstructure:"profile"` // Active profile override
	API     APIConfig   `mapstructure:"api"`
	Query   QueryConfig `mapstructure:"query"`
	TUI     TUIConfig   `mapstructure:"tui"`
	Log     LogConfig   `mapstructure:"log"`
	OTLP    OTLPConfig  `mapstructure:"otlp"`

	// ProfileName is the profile that contributed values, if any.
	ProfileName string `mapstructure:"-"`
}

// APIConfig holds the summarization backend connection settings.
type APIConfig struct {
	URL     string        `mapstructure:"url"`     // Backend base URL
	Token   string        `mapstructure:"token"`   // Bearer token (optional)
	Timeout time.Duration `mapstructure:"timeout"` // Per-request timeout
}

// QueryConfig holds query defaults.
type QueryConfig struct {
	DefaultCount int `mapstructure:"default_count"`
}

// TUIConfig holds interactive screen settings.
type TUIConfig struct {
	AutoSubmit    bool `mapstructure:"auto_submit"`    // Submit once on startup
	WatchProfiles bool `mapstructure:"watch_profiles"` // Reload the backend when the profile file changes
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	File  string `mapstructure:"file"`  // Log file; empty means stderr for CLI, discard for the TUI
}

// OTLPConfig holds OpenTelemetry export settings for request lifecycle events.
type OTLPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint
	Insecure bool   `mapstructure:"insecure"` // Use insecure connection
}

// Default configuration values.
const (
	DefaultAPIURL       = "http://localhost:8000"
	DefaultAPITimeout   = 120 * time.Second
	DefaultCount        = 10
	DefaultLogLevel     = "info"
	DefaultOTLPEndpoint = "localhost:4318"
)

// ContextKey is used to store config in context.
type ContextKey struct{}

// FromContext retrieves Config from context.
func FromContext(ctx context.Context) (Config, bool) {
	cfg, ok := ctx.Value(ContextKey{}).(Config)
	return cfg, ok
}

// WithContext stores Config in context.
func WithContext(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, ContextKey{}, cfg)
}

// Load builds a Config from the command's flags, TRACECAT_* environment
// variables, the active profile and defaults, then validates it.
func Load(cmd *cobra.Command) (Config, error) {
	profiles, err := LoadProfiles()
	if err != nil {
		return Config{}, err
	}
	return load(cmd, profiles)
}

func load(cmd *cobra.Command, profiles *ProfileConfig) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRACECAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindFlagsRecursive(v, cmd); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	profileName, err := applyProfile(v, profiles, v.GetString("profile"))
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ProfileName = profileName
	cfg.Query.DefaultCount = session.ClampCount(cfg.Query.DefaultCount)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers default values with Viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("profile", "")

	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", DefaultAPITimeout)

	v.SetDefault("query.default_count", DefaultCount)

	v.SetDefault("tui.auto_submit", false)
	v.SetDefault("tui.watch_profiles", true)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")

	v.SetDefault("otlp.enabled", false)
	v.SetDefault("otlp.endpoint", DefaultOTLPEndpoint)
	v.SetDefault("otlp.insecure", true)
}

// applyProfile layers the active profile between env and defaults by
// installing its values as defaults. Flags and env still win.
func applyProfile(v *viper.Viper, profiles *ProfileConfig, flagName string) (string, error) {
	if profiles == nil {
		return "", nil
	}
	if flagName != "" {
		if _, err := profiles.GetProfile(flagName); err != nil {
			return "", err
		}
	}
	p, name := profiles.GetActiveProfile(flagName)
	if p == nil {
		return "", nil
	}

	resolved, err := p.Resolve()
	if err != nil {
		return "", fmt.Errorf("profile %q: %w", name, err)
	}
	if resolved.API.URL != "" {
		v.SetDefault("api.url", resolved.API.URL)
	}
	if resolved.API.Token != "" {
		v.SetDefault("api.token", resolved.API.Token)
	}
	if resolved.OTLP.Endpoint != "" {
		v.SetDefault("otlp.endpoint", resolved.OTLP.Endpoint)
		v.SetDefault("otlp.enabled", true)
	}
	if resolved.OTLP.Insecure != nil {
		v.SetDefault("otlp.insecure", *resolved.OTLP.Insecure)
	}
	return name, nil
}

// bindFlagsRecursive binds flags from cmd and all parents so Viper sees them.
func bindFlagsRecursive(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	if err := bindFlagSet(v, cmd.Flags()); err != nil {
		return err
	}
	if err := bindFlagSet(v, cmd.PersistentFlags()); err != nil {
		return err
	}
	return bindFlagsRecursive(v, cmd.Parent())
}

// flagToKey maps CLI flag names to nested config keys.
var flagToKey = map[string]string{
	"profile":        "profile",
	"api-url":        "api.url",
	"api-token":      "api.token",
	"api-timeout":    "api.timeout",
	"default-count":  "query.default_count",
	"auto-submit":    "tui.auto_submit",
	"watch-profiles": "tui.watch_profiles",
	"log-level":      "log.level",
	"log-file":       "log.file",
	"otlp":           "otlp.endpoint",
	"otlp-enabled":   "otlp.enabled",
	"otlp-insecure":  "otlp.insecure",
}

// bindFlagSet binds known flags to their Viper keys. Flags without a
// mapping are command-local and stay out of the config.
func bindFlagSet(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagToKey[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate enforces correctness and fails fast on invalid configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return fmt.Errorf("api.url is required")
	}
	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.url must be an absolute http(s) URL, got %q", c.API.URL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0")
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.OTLP.Enabled && strings.TrimSpace(c.OTLP.Endpoint) == "" {
		return fmt.Errorf("otlp.endpoint is required when otlp.enabled is set")
	}
	return nil
}
