package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/config"
)

var (
	initDataPath string
	initSiteRoot string
)

func init() {
	initCmd.Flags().StringVar(&initDataPath, "data", config.DefaultDataPath, "Publications file, relative to the repository root")
	initCmd.Flags().StringVar(&initSiteRoot, "site-root", "", "Directory holding papers/ and presentations/")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a pubs repository in the current directory",
	Long: `Initialize a pubs repository in the current directory.

Creates .pubs/ with a config.json pointing at the publications file and an
empty cache directory. The publications file itself is not created.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(cwd) {
		exitWithError(ExitError, "already initialized: %s", config.PubsPath(cwd))
	}

	cfg := &config.Config{DataPath: initDataPath}
	if initSiteRoot != "" {
		if err := cfg.Set("site_root", config.ExpandPath(initSiteRoot)); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	if err := os.MkdirAll(config.CachePath(cwd), 0755); err != nil {
		exitWithError(ExitError, "creating %s: %v", config.PubsDir, err)
	}
	if err := cfg.Save(cwd); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		outputHuman("Initialized pubs repository in %s\n", config.PubsPath(cwd))
		if _, err := os.Stat(config.ResolvePath(cwd, cfg.DataPath)); os.IsNotExist(err) {
			outputHuman("Note: %s does not exist yet\n", cfg.DataPath)
		}
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.PubsPath(cwd)})
	}
	return nil
}
