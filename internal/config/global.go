package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/pubs/config.yml.
type GlobalConfig struct {
	SitePath string `yaml:"site_path,omitempty" json:"site_path"` // Default repository when not inside one
	LogLevel string `yaml:"log_level,omitempty" json:"log_level"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "pubs"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/pubs/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.SitePath != "" {
		cfg.SitePath = ExpandPath(cfg.SitePath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

func (g *GlobalConfig) fields() map[string]*string {
	return map[string]*string{
		"site_path": &g.SitePath,
		"log_level": &g.LogLevel,
	}
}

// GlobalKeys returns the settable global keys in sorted order.
func GlobalKeys() []string {
	keys := make([]string, 0, 2)
	for k := range (&GlobalConfig{}).fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a global key.
func (g *GlobalConfig) Get(key string) (string, error) {
	field, ok := g.fields()[key]
	if !ok {
		return "", fmt.Errorf("unknown global key: %s (valid: %s)", key, strings.Join(GlobalKeys(), ", "))
	}
	return *field, nil
}

// Set validates and assigns a global key. site_path must be an existing
// directory; log_level one of LogLevels.
func (g *GlobalConfig) Set(key, value string) error {
	field, ok := g.fields()[key]
	if !ok {
		return fmt.Errorf("unknown global key: %s (valid: %s)", key, strings.Join(GlobalKeys(), ", "))
	}
	switch key {
	case "site_path":
		value = ExpandPath(value)
		if err := ValidateDir(value); err != nil {
			return err
		}
	case "log_level":
		value = strings.ToLower(strings.TrimSpace(value))
		if value != "" && !validLogLevel(value) {
			return fmt.Errorf("invalid log_level %q (valid: %s)", value, strings.Join(LogLevels, ", "))
		}
	}
	*field = value
	return nil
}

func validLogLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}

// SaveGlobalConfig writes cfg to GlobalConfigPath and replaces the cached copy.
func SaveGlobalConfig(cfg *GlobalConfig) error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine global config location")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating global config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}

	globalConfigCache = cfg
	return nil
}

// HelpfulConfigMessage returns a hint shown when no repository is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No pubs repository found.

Run 'pubs init' in your site directory, or set a default repository:
  pubs config --global site_path /path/to/site

The default is stored in %s.`, configPath)
}
