package main

import (
	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/present"
	"github.com/commitlab/pubs/internal/session"
)

var (
	viewFresh    bool
	viewQuery    string
	viewYears    []string
	viewKeywords []string
	viewAuthors  []string
	viewTypes    []string
	viewSort     string
	viewDesc     bool
)

func init() {
	viewCmd.Flags().BoolVar(&viewFresh, "fresh", false, "Ignore the saved filter state")
	viewCmd.Flags().StringVarP(&viewQuery, "query", "q", "", "Title search")
	viewCmd.Flags().StringSliceVar(&viewYears, "year", nil, "Select a year (repeatable)")
	viewCmd.Flags().StringSliceVar(&viewKeywords, "keyword", nil, "Select a keyword (repeatable)")
	viewCmd.Flags().StringSliceVar(&viewAuthors, "author", nil, "Select an author (repeatable)")
	viewCmd.Flags().StringSliceVar(&viewTypes, "type", nil, "Select an item type (repeatable)")
	viewCmd.Flags().StringVar(&viewSort, "sort", "", "Sort key within years (none, title, venue, firstAuthor, type, month)")
	viewCmd.Flags().BoolVar(&viewDesc, "desc", false, "Sort descending")
	rootCmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the filtered publication list",
	Long: `Show the publication list grouped by year, with live facet counts.

Starts from the saved filter state; flags add to it for this invocation
only and are not saved. Use toggle, query, sort and clear to change the
saved state.

Examples:
  pubs view --human
  pubs view --fresh --year 2021 --keyword nlp
  pubs view -q "graph" --sort title --desc`,
	Args: cobra.NoArgs,
	RunE: runView,
}

// viewOverlay holds filters given on the command line for one view.
type viewOverlay struct {
	Fresh      bool
	Query      *string
	Selections map[facet.Name][]string
	Sort       string
	Desc       *bool
}

// apply layers the overlay onto st. Facet values are added to the saved
// selections, never toggled off.
func (o viewOverlay) apply(st *filter.State) error {
	if o.Fresh {
		st.Clear()
		st.SetSort(present.SortNone, false)
	}
	if o.Query != nil {
		st.SetQuery(*o.Query)
	}
	for _, name := range facet.All {
		for _, v := range o.Selections[name] {
			st.Set(name, canonicalValue(name, v), true)
		}
	}

	key, desc := st.SortKey, st.SortDesc
	if o.Sort != "" {
		k, err := present.ParseSortKey(o.Sort)
		if err != nil {
			return err
		}
		key = k
	}
	if o.Desc != nil {
		desc = *o.Desc
	}
	st.SetSort(key, desc)
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	overlay := viewOverlay{
		Fresh: viewFresh,
		Sort:  viewSort,
		Selections: map[facet.Name][]string{
			facet.Years:    viewYears,
			facet.Keywords: viewKeywords,
			facet.Authors:  viewAuthors,
			facet.Types:    viewTypes,
		},
	}
	if cmd.Flags().Changed("query") {
		overlay.Query = &viewQuery
	}
	if cmd.Flags().Changed("desc") {
		overlay.Desc = &viewDesc
	}

	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)

	st := mustReadState(repoRoot)
	if err := overlay.apply(st); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	records := mustLoadRecords(repoRoot, settings)
	sess := session.New(records, st,
		session.WithExportFilename(settings.ExportFilename),
		session.WithLogger(logger),
	)
	printView(sess.View())
	return nil
}
