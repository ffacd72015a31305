package main

import (
	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/present"
)

var sortDesc bool

func init() {
	sortCmd.Flags().BoolVar(&sortDesc, "desc", false, "Sort descending")
	rootCmd.AddCommand(sortCmd)
}

var sortCmd = &cobra.Command{
	Use:   "sort <key>",
	Short: "Set the ordering within each year",
	Long: `Set the ordering of publications within each year group and save the state.

Keys: none, title, venue, firstAuthor, type, month.
Year groups are always newest first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func runSort(cmd *cobra.Command, args []string) error {
	key, err := present.ParseSortKey(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)
	sess := mustLoadSession(repoRoot, settings)

	v := sess.SetSort(key, sortDesc)

	mustWriteState(repoRoot, sess.State())
	printView(v)
	return nil
}
