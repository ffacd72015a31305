package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query [text...]",
	Short: "Set the title search",
	Long: `Set the case-insensitive title search and save the state.

With no arguments the search is cleared.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)
	sess := mustLoadSession(repoRoot, settings)

	v := sess.SetQuery(strings.Join(args, " "))

	mustWriteState(repoRoot, sess.State())
	printView(v)
	return nil
}
