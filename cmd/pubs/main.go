// Package main provides the pubs CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/config"
	"github.com/commitlab/pubs/internal/logging"
	"github.com/commitlab/pubs/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// logLevel overrides PUBS_LOG_LEVEL and the global log_level
var logLevel string

var (
	env    *config.Env
	global *config.GlobalConfig
	logger = zerolog.Nop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubs",
	Short: "Faceted publication browser and BibTeX exporter",
	Long: `pubs browses a lab's publication list and exports it as BibTeX.

The list is read from a JSON file (publications.json), normalized and
deduplicated, then cached in .pubs/cache. Filtering is faceted by year,
keyword, author and type with live counts, plus a title search; the
current selection is saved in .pubs/state.json between commands.

All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Version = Version
}

// setup loads the environment and global config and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if env, err = config.LoadEnv(); err != nil {
		return err
	}
	if global, err = config.LoadGlobalConfig(); err != nil {
		return err
	}

	level := logLevel
	if level == "" {
		level = config.Resolve("", nil, env, global).LogLevel
	}
	logger, err = logging.New(os.Stderr, level, humanOutput)
	return err
}

// getStartingDirectory returns the directory to start searching for a repository.
// Checks PUBS_SITE_PATH and the global site_path first, then the current directory.
func getStartingDirectory() (string, int) {
	if env != nil && env.SitePath != "" {
		return config.ExpandPath(env.SitePath), 0
	}
	if global != nil && global.SitePath != "" {
		return global.SitePath, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository finds and validates the repository, exits on error.
// Returns the repository root path.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return repoRoot
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadSettings layers environment, repository and global config.
func mustLoadSettings(repoRoot string) config.Settings {
	return config.Resolve(repoRoot, mustLoadConfig(repoRoot), env, global)
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(repoRoot string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}
