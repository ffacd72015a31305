package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/enrich"
	"github.com/commitlab/pubs/internal/export"
	"github.com/commitlab/pubs/internal/storage"
)

var enrichOut string

func init() {
	enrichCmd.Flags().StringVarP(&enrichOut, "out", "o", "", "Write the enriched list here instead of updating the publications file")
	rootCmd.AddCommand(enrichCmd)
}

var enrichCmd = &cobra.Command{
	Use:   "enrich <library.bib>",
	Short: "Attach existing BibTeX entries to publications",
	Long: `Attach the raw entry for each publication's bibtexKey from an existing
BibTeX library, stored as the publication's "oldbibtex" field.

Publications without a key, or whose key is not in the library, are left
unchanged and counted as missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

// EnrichResult is the response for the enrich command.
type EnrichResult struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	enrich.Result
}

func runEnrich(cmd *cobra.Command, args []string) error {
	library := args[0]

	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)

	if _, err := os.Stat(library); err != nil {
		exitWithError(ExitError, "reading library: %v", err)
	}
	idx, err := export.ParseBibTeXFile(library)
	if err != nil {
		exitWithError(ExitError, "parsing %s: %v", library, err)
	}

	docs, err := storage.ReadDocuments(settings.DataPath)
	if err != nil {
		exitWithError(ExitDataError, "reading publications: %v", err)
	}

	enriched, result := enrich.Apply(docs, idx.Entries)

	out := enrichOut
	if out == "" {
		out = settings.DataPath
	}
	if err := storage.WriteDocuments(out, enriched); err != nil {
		exitWithError(ExitError, "writing %s: %v", out, err)
	}

	logger.Info().
		Int("matched", result.Matched).
		Int("missing", result.Missing).
		Str("path", out).
		Msg("enriched")

	if humanOutput {
		fmt.Println(result.String())
		for _, key := range result.MissingKeys {
			fmt.Printf("  not in library: %s\n", key)
		}
	} else {
		outputJSON(EnrichResult{Status: "written", Path: out, Result: result})
	}
	return nil
}
