package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all facet selections and the title search",
	Long:  `Clear all facet selections and the title search and save the state. Sorting is kept.`,
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)
	sess := mustLoadSession(repoRoot, settings)

	v := sess.Clear()

	mustWriteState(repoRoot, sess.State())
	printView(v)
	return nil
}
