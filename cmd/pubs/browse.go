package main

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/clipboard"
	"github.com/commitlab/pubs/internal/config"
	"github.com/commitlab/pubs/internal/export"
	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/logging"
	"github.com/commitlab/pubs/internal/publication"
	"github.com/commitlab/pubs/internal/storage"
	"github.com/commitlab/pubs/internal/tui"
)

// browseLogFile receives log output while the screen belongs to the browser.
const browseLogFile = "browse.log"

var browseFresh bool

func init() {
	browseCmd.Flags().BoolVar(&browseFresh, "fresh", false, "Start without the saved filter state")
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse publications interactively",
	Long: `Open the interactive faceted browser.

The left pane lists facets with live counts, the right pane the matching
publications grouped by year. Every change is saved to the filter state.
Press ? for key bindings; e exports the visible list to the current
directory and y copies it to the clipboard.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

// openBrowseLogger sends logs to .pubs/cache/browse.log.
func openBrowseLogger(repoRoot, level string) (zerolog.Logger, func(), error) {
	path := filepath.Join(config.CachePath(repoRoot), browseLogFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	l, err := logging.New(f, level, false)
	if err != nil {
		f.Close()
		return zerolog.Nop(), func() {}, err
	}
	return l, func() { f.Close() }, nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)

	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	level := settings.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	st := filter.NewState()
	if !browseFresh {
		st = mustReadState(repoRoot)
	}

	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	// No exits between opening the log and closing it.
	browseLogger, closeLog, err := openBrowseLogger(repoRoot, level)
	if err != nil {
		exitWithError(ExitError, "opening log: %v", err)
	}
	logger = browseLogger

	var copyText func(string) error
	if cb := clipboard.New(); cb.Available() {
		copyText = cb.Copy
	}

	app := tui.NewApp(tui.Options{
		Load: func() ([]publication.Record, error) {
			db, err := storage.OpenDB(config.DBPath(repoRoot))
			if err != nil {
				return nil, err
			}
			defer db.Close()
			return loadRecords(db, settings.DataPath)
		},
		State:          st,
		ExportFilename: settings.ExportFilename,
		SaveExport: func(dl *export.Download) (string, error) {
			return writeDownload(dl, "", cwd)
		},
		Copy: copyText,
		SaveState: func(s *filter.State) error {
			return storage.WriteState(config.StatePath(repoRoot), s)
		},
		Logger: browseLogger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if err := runThenClose(p.Run, closeLog); err != nil {
		exitWithError(ExitError, "running browser: %v", err)
	}
	return nil
}

// runThenClose runs the program and closes the log before returning, so
// the caller may exit on error.
func runThenClose(run func() (tea.Model, error), closeLog func()) error {
	defer closeLog()
	_, err := run()
	return err
}
