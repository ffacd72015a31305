package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/dedupe"
	"github.com/commitlab/pubs/internal/storage"
)

var dedupeWrite bool

func init() {
	dedupeCmd.Flags().BoolVar(&dedupeWrite, "write", false, "Remove the collapsed entries from the publications file")
	rootCmd.AddCommand(dedupeCmd)
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Report duplicate publications",
	Long: `Report publications that share a normalized title and item type.

Duplicates are always collapsed when browsing; the kept record is the one
with a PDF link, then a DOI, then slides, then the first seen.
With --write the collapsed entries are removed from the publications file.

Examples:
  pubs dedupe --human
  pubs dedupe --write`,
	Args: cobra.NoArgs,
	RunE: runDedupe,
}

// DedupeResult represents the result of a dedupe run.
type DedupeResult struct {
	Written    bool           `json:"written"`
	Total      int            `json:"total"`
	Unique     int            `json:"unique"`
	Groups     []dedupe.Group `json:"groups"`
	TotalDupes int            `json:"total_duplicates"`
}

// dropIndexes returns docs without the entries at the collapsed indexes.
func dropIndexes(docs []map[string]any, groups []dedupe.Group) []map[string]any {
	drop := make(map[int]bool)
	for _, g := range groups {
		for _, i := range g.Dropped {
			drop[i] = true
		}
	}
	out := make([]map[string]any, 0, len(docs)-len(drop))
	for i, doc := range docs {
		if !drop[i] {
			out = append(out, doc)
		}
	}
	return out
}

func runDedupe(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)

	records, err := storage.LoadRecords(settings.DataPath)
	if err != nil {
		exitWithError(ExitDataError, "reading publications: %v", err)
	}

	groups := dedupe.FindGroups(records)
	if groups == nil {
		groups = []dedupe.Group{}
	}

	totalDupes := 0
	for _, g := range groups {
		totalDupes += len(g.Dropped)
	}

	result := DedupeResult{
		Total:      len(records),
		Unique:     len(records) - totalDupes,
		Groups:     groups,
		TotalDupes: totalDupes,
	}

	if dedupeWrite && totalDupes > 0 {
		docs, err := storage.ReadDocuments(settings.DataPath)
		if err != nil {
			exitWithError(ExitDataError, "reading publications: %v", err)
		}
		if err := storage.WriteDocuments(settings.DataPath, dropIndexes(docs, groups)); err != nil {
			exitWithError(ExitError, "writing publications: %v", err)
		}
		result.Written = true
		logger.Info().Int("removed", totalDupes).Str("path", settings.DataPath).Msg("duplicates removed")
	}

	if !humanOutput {
		outputJSON(result)
		return nil
	}

	if len(groups) == 0 {
		fmt.Println("No duplicates found.")
		return nil
	}
	fmt.Printf("Found %d duplicate groups (%d total duplicates):\n\n", len(groups), totalDupes)
	for _, g := range groups {
		fmt.Printf("%s\n", truncateString(g.Title, ListTitleMaxLen))
		keep := fmt.Sprintf("#%d", g.Kept+1)
		if g.KeptHas != "" {
			keep += " (has " + g.KeptHas + ")"
		}
		fmt.Printf("  Keep:   %s\n", keep)
		fmt.Printf("  Drop:   %v\n\n", entryNumbers(g.Dropped))
	}
	if result.Written {
		fmt.Printf("Removed %d entries from %s\n", totalDupes, settings.DataPath)
	}
	return nil
}

// entryNumbers converts input indexes to 1-based entry numbers.
func entryNumbers(indexes []int) []int {
	out := make([]int, len(indexes))
	for i, n := range indexes {
		out[i] = n + 1
	}
	return out
}
