// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileConfig is the on-disk profile file, stored at
// ~/.config/tracecat/config.yaml.
type ProfileConfig struct {
	CurrentProfile string             `yaml:"current-profile,omitempty"`
	Profiles       map[string]Profile `yaml:"profiles,omitempty"`
}

// Profile is a named set of backend and telemetry settings.
type Profile struct {
	API  APIProfile  `yaml:"api,omitempty"`
	OTLP OTLPProfile `yaml:"otlp,omitempty"`
}

// APIProfile holds the summarization backend for a profile.
type APIProfile struct {
	URL   string `yaml:"url,omitempty"`
	Token string `yaml:"token,omitempty"` // Supports ${ENV_VAR} syntax
}

// OTLPProfile holds OTLP export settings for a profile.
type OTLPProfile struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Insecure *bool  `yaml:"insecure,omitempty"` // nil means unset
}

// Profile file location.
const (
	ConfigDirName  = "tracecat"
	ConfigFileName = "config.yaml"
)

// GetConfigDir returns the tracecat config directory, honoring XDG_CONFIG_HOME.
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName), nil
}

// GetConfigPath returns the full path to the profile file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadProfiles reads the profile file. A missing file yields an empty config.
func LoadProfiles() (*ProfileConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadProfilesFrom(path)
}

// LoadProfilesFrom reads a profile file at path.
func LoadProfilesFrom(path string) (*ProfileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &ProfileConfig{Profiles: make(map[string]Profile)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if warn := permissionWarning(path); warn != "" {
		fmt.Fprintln(os.Stderr, warn)
	}

	var cfg ProfileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}
	return &cfg, nil
}

// SaveProfiles writes the profile file with 0600 permissions.
func SaveProfiles(cfg *ProfileConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// GetProfile returns the named profile.
func (c *ProfileConfig) GetProfile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// SetProfile creates or replaces a named profile.
func (c *ProfileConfig) SetProfile(name string, profile Profile) {
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	c.Profiles[name] = profile
}

// DeleteProfile removes a profile, clearing current-profile if it pointed there.
func (c *ProfileConfig) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return nil
}

// ListProfiles returns the profile names, sorted.
func (c *ProfileConfig) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetActiveProfile returns the profile selected by override, falling back
// to current-profile. It returns nil when none is selected or it is missing.
func (c *ProfileConfig) GetActiveProfile(override string) (*Profile, string) {
	name := override
	if name == "" {
		name = c.CurrentProfile
	}
	if name == "" {
		return nil, ""
	}
	p, err := c.GetProfile(name)
	if err != nil {
		return nil, ""
	}
	return &p, name
}

var envRefPattern = regexp.MustCompile(`^\$\{([^}]+)\}$`)

// IsEnvRef reports whether s is a ${VAR} reference.
func IsEnvRef(s string) bool {
	return envRefPattern.MatchString(s)
}

// expandEnvRef expands a ${VAR} reference; other strings pass through.
// ok is false when the referenced variable is unset.
func expandEnvRef(s string) (value string, ok bool) {
	m := envRefPattern.FindStringSubmatch(s)
	if len(m) != 2 {
		return s, true
	}
	return os.LookupEnv(m[1])
}

// Resolve returns a copy of the profile with ${VAR} references expanded.
func (p Profile) Resolve() (Profile, error) {
	resolved := p
	token, ok := expandEnvRef(p.API.Token)
	if !ok {
		return Profile{}, fmt.Errorf("undefined environment variable in api token: %s", p.API.Token)
	}
	resolved.API.Token = token
	return resolved, nil
}

// HasPlainTextToken reports whether the token is stored literally.
func (p Profile) HasPlainTextToken() bool {
	return p.API.Token != "" && !IsEnvRef(p.API.Token)
}

// Masked hides literal tokens; env references are kept since they are not secret.
func (p Profile) Masked() Profile {
	m := p
	if p.HasPlainTextToken() {
		m.API.Token = "****"
	}
	return m
}

// Summary is a one-line description used by profile listings.
func (p Profile) Summary() string {
	var parts []string
	if p.API.URL != "" {
		parts = append(parts, "api="+p.API.URL)
	}
	if p.API.Token != "" {
		parts = append(parts, "token=set")
	}
	if p.OTLP.Endpoint != "" {
		parts = append(parts, "otlp="+p.OTLP.Endpoint)
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, ", ")
}

// String renders the file as YAML with tokens masked.
func (c ProfileConfig) String() string {
	masked := ProfileConfig{CurrentProfile: c.CurrentProfile, Profiles: make(map[string]Profile, len(c.Profiles))}
	for name, p := range c.Profiles {
		masked.Profiles[name] = p.Masked()
	}
	data, err := yaml.Marshal(masked)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return strings.TrimSpace(string(data))
}

// PlainTextTokenWarning is printed after saving a literal token.
func PlainTextTokenWarning() string {
	return "Warning: storing the API token in plain text. Consider an environment\n" +
		"variable reference instead (e.g., token: ${TRACECAT_TOKEN})."
}

// permissionWarning returns a warning when the profile file is readable by others.
func permissionWarning(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	if mode := info.Mode().Perm(); mode&0077 != 0 {
		return fmt.Sprintf("Warning: %s has permissions %04o, should be 0600", path, mode)
	}
	return ""
}
