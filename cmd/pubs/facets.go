package main

import (
	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/filter"
)

func init() {
	rootCmd.AddCommand(facetsCmd)
}

var facetsCmd = &cobra.Command{
	Use:   "facets [facet]",
	Short: "List facet values with live counts",
	Long: `List the values of every facet, or one facet, with the number of
publications each would show given the other active filters.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacets,
}

func runFacets(cmd *cobra.Command, args []string) error {
	var only facet.Name
	if len(args) == 1 {
		name, err := facet.ParseName(args[0])
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		only = name
	}

	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)
	sess := mustLoadSession(repoRoot, settings)

	var counts []filter.FacetCounts
	if only != "" {
		counts = []filter.FacetCounts{filter.CountFacet(sess.Records(), sess.Index(), sess.State(), only)}
	} else {
		counts = filter.Counts(sess.Records(), sess.Index(), sess.State())
	}

	if humanOutput {
		for _, fc := range counts {
			outputHuman("%s", formatFacetHuman(fc, 0))
		}
		return nil
	}
	outputJSON(counts)
	return nil
}
