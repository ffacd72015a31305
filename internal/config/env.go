package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "PUBS"

// Env holds PUBS_* environment overrides. Empty means unset.
type Env struct {
	DataPath       string `envconfig:"DATA_PATH"`
	SitePath       string `envconfig:"SITE_PATH"`
	ExportFilename string `envconfig:"EXPORT_FILENAME"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
}

// LoadEnv loads a .env file from the working directory when present and
// decodes the PUBS_* variables. Variables already set in the process win
// over the file.
func LoadEnv() (*Env, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("reading %s_* environment: %w", EnvPrefix, err)
	}
	return &env, nil
}

// Settings is the effective configuration after layering.
type Settings struct {
	Root           string `json:"root"`
	DataPath       string `json:"data_path"`
	SiteRoot       string `json:"site_root"`
	ExportFilename string `json:"export_filename"`
	LogLevel       string `json:"log_level"`
}

// Resolve layers environment over repository over global config. Paths are
// anchored at root. Any of cfg, env and global may be nil.
func Resolve(root string, cfg *Config, env *Env, global *GlobalConfig) Settings {
	if cfg == nil {
		cfg = &Config{}
	}
	if env == nil {
		env = &Env{}
	}
	if global == nil {
		global = &GlobalConfig{}
	}

	dataPath := firstSet(env.DataPath, cfg.DataPath, DefaultDataPath)
	siteRoot := firstSet(cfg.SiteRoot, ".")

	return Settings{
		Root:           root,
		DataPath:       ResolvePath(root, dataPath),
		SiteRoot:       ResolvePath(root, siteRoot),
		ExportFilename: firstSet(env.ExportFilename, cfg.ExportFilename),
		LogLevel:       strings.ToLower(firstSet(env.LogLevel, global.LogLevel, "info")),
	}
}

func firstSet(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
