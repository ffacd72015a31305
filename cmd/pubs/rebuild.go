package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/facet"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the cache from the publications file",
	Long: `Rebuild the SQLite cache from the publications file.

Commands rebuild the cache automatically when the file changes; use this
after editing it in place within the same second, or if the cache becomes
corrupted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status       string             `json:"status"`
	Source       string             `json:"source"`
	Publications int                `json:"publications"`
	Facets       map[facet.Name]int `json:"facets"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	records, err := rebuildCache(db, settings.DataPath)
	if err != nil {
		if errors.Is(err, errNoSource) {
			exitWithError(ExitDataError, "%v: %s", err, settings.DataPath)
		}
		exitWithError(ExitDataError, "rebuilding cache: %v", err)
	}

	count, err := db.Count()
	if err != nil {
		exitWithError(ExitDataError, "counting cached publications: %v", err)
	}
	sizes := facet.Build(records).Size()

	if humanOutput {
		outputHuman("Rebuilt cache: %d publications from %s\n", count, settings.DataPath)
		for _, name := range facet.All {
			outputHuman("  %-9s %d values\n", name+":", sizes[name])
		}
	} else {
		outputJSON(RebuildResult{
			Status:       "rebuilt",
			Source:       settings.DataPath,
			Publications: count,
			Facets:       sizes,
		})
	}
	return nil
}
