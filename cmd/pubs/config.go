package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/config"
)

var (
	configEffective bool
	configGlobal    bool
)

func init() {
	configCmd.Flags().BoolVar(&configEffective, "effective", false, "Show settings after layering environment and global config")
	configCmd.Flags().BoolVar(&configGlobal, "global", false, "Read or write the user-wide config instead of the repository's")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  pubs config                                # Show all config
  pubs config data-path                      # Get specific value
  pubs config site-root ~/src/lab-site       # Set value
  pubs config export-filename lab.bib        # Set batch export name
  pubs config --effective                    # Show resolved settings
  pubs config --global site-path ~/src/site  # Default repository

Keys:
  data-path        Publications JSON file (default publications.json)
  site-root        Directory holding papers/ and presentations/
  export-filename  File name of batch exports

Global keys (~/.config/pubs/config.yml):
  site-path        Repository used when not inside one
  log-level        trace, debug, info, warn, error or disabled

Environment variables PUBS_DATA_PATH, PUBS_EXPORT_FILENAME, PUBS_SITE_PATH
and PUBS_LOG_LEVEL override these; a .env file is read if present.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configGlobal {
		return runGlobalConfig(args)
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if configEffective {
		settings := config.Resolve(repoRoot, cfg, env, global)
		if humanOutput {
			fmt.Printf("root:            %s\n", settings.Root)
			fmt.Printf("data_path:       %s\n", settings.DataPath)
			fmt.Printf("site_root:       %s\n", settings.SiteRoot)
			fmt.Printf("export_filename: %s\n", settings.ExportFilename)
			fmt.Printf("log_level:       %s\n", settings.LogLevel)
		} else {
			outputJSON(settings)
		}
		return nil
	}

	// No args: show all config
	if len(args) == 0 {
		values := make(map[string]string)
		for _, k := range config.Keys() {
			v, _ := cfg.Get(k)
			values[k] = v
		}
		if humanOutput {
			for _, k := range config.Keys() {
				fmt.Printf("%-16s %s\n", k+":", values[k])
			}
		} else {
			outputJSON(values)
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{key: value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if key == "site_root" {
		value = config.ExpandPath(value)
	}
	if err := cfg.Set(key, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}
	return nil
}

func runGlobalConfig(args []string) error {
	g, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if len(args) == 0 {
		if humanOutput {
			for _, k := range config.GlobalKeys() {
				v, _ := g.Get(k)
				fmt.Printf("%-10s %s\n", k+":", v)
			}
		} else {
			outputJSON(g)
		}
		return nil
	}

	key := normalizeKey(args[0])
	if len(args) == 1 {
		value, err := g.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{key: value})
		}
		return nil
	}

	updated := *g
	if err := updated.Set(key, args[1]); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := config.SaveGlobalConfig(&updated); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	value, _ := updated.Get(key)
	if humanOutput {
		fmt.Printf("Updated %s to %s in %s\n", key, value, config.GlobalConfigPath())
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}
	return nil
}

// normalizeKey converts key formats (data-path, data_path, DATA_PATH) to the
// stored form.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(key, "-", "_")
}
