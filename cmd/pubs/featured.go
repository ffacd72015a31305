package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/publication"
)

func init() {
	rootCmd.AddCommand(featuredCmd)
}

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "List featured publications",
	Long:  `List the publications flagged as featured, newest first. Filters do not apply.`,
	Args:  cobra.NoArgs,
	RunE:  runFeatured,
}

func runFeatured(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)
	sess := mustLoadSession(repoRoot, settings)

	featured := sess.Featured()

	if humanOutput {
		if len(featured) == 0 {
			outputHuman("No featured publications.\n")
			return nil
		}
		for _, r := range featured {
			outputHuman("%s %s", yearLabel(r), formatRecordHuman(r)[2:])
		}
		return nil
	}

	if featured == nil {
		featured = []publication.Record{}
	}
	outputJSON(featured)
	return nil
}

// yearLabel returns the record's year, or four spaces when it has none.
func yearLabel(r publication.Record) string {
	if r.Year > 0 {
		return fmt.Sprintf("%04d", r.Year)
	}
	return "    "
}
