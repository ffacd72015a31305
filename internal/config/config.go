// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config represents repository configuration stored in .pubs/config.json.
type Config struct {
	DataPath       string `json:"data_path"`                 // publications.json, relative to the repository root or absolute
	SiteRoot       string `json:"site_root,omitempty"`       // Directory holding papers/ and presentations/
	ExportFilename string `json:"export_filename,omitempty"` // Batch export file name
}

const (
	PubsDir         = ".pubs"
	ConfigFile      = "config.json"
	StateFile       = "state.json"
	CacheDir        = "cache"
	DBFile          = "pubs.db"
	DefaultDataPath = "publications.json"
)

// ErrNotRepository is returned when no .pubs directory is found.
var ErrNotRepository = errors.New("not in a pubs repository (no .pubs directory found)")

// PubsPath returns the path to the .pubs directory from a root path.
func PubsPath(root string) string {
	return filepath.Join(root, PubsDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, PubsDir, ConfigFile)
}

// StatePath returns the path to the saved filter state from a root path.
func StatePath(root string) string {
	return filepath.Join(root, PubsDir, StateFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, PubsDir, CacheDir)
}

// DBPath returns the path to pubs.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, PubsDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a pubs repository.
func IsRepository(root string) bool {
	info, err := os.Stat(PubsPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a pubs repository.
// Returns the repository root path or ErrNotRepository.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotRepository
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// fields maps config keys to their struct fields.
func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"data_path":       &c.DataPath,
		"site_root":       &c.SiteRoot,
		"export_filename": &c.ExportFilename,
	}
}

// Keys returns the settable config keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, 3)
	for k := range (&Config{}).fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	field, ok := c.fields()[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return *field, nil
}

// Set validates and assigns a config key.
func (c *Config) Set(key, value string) error {
	field, ok := c.fields()[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	switch key {
	case "site_root":
		if err := ValidateDir(value); err != nil {
			return err
		}
	case "export_filename":
		if value != "" && filepath.Base(value) != value {
			return fmt.Errorf("export_filename must be a file name, not a path: %s", value)
		}
	}
	*field = value
	return nil
}

// ValidateDir checks that path exists and is a directory.
func ValidateDir(path string) error {
	if path == "" {
		return nil // Empty is allowed (not yet configured)
	}

	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expandedPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", expandedPath)
	}

	return nil
}

// ResolvePath expands ~ and anchors relative paths at root.
func ResolvePath(root, path string) string {
	if path == "" {
		return ""
	}
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
