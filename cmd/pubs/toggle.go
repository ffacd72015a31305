package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/publication"
	"github.com/commitlab/pubs/internal/session"
)

func init() {
	rootCmd.AddCommand(toggleCmd)
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <facet> <value>...",
	Short: "Select or deselect facet values",
	Long: `Flip the selection of one or more values of a facet and save the state.

Values within a facet combine with OR; facets combine with AND.
A value that would match nothing under the other active filters cannot be
selected. Selected values can always be deselected.
Facets: years, keywords, authors, types (singular forms also work).

Examples:
  pubs toggle year 2021 2022
  pubs toggle keyword "machine learning"
  pubs toggle type inproceedings`,
	Args: cobra.MinimumNArgs(2),
	RunE: runToggle,
}

// canonicalValue maps user input to the form facet values are indexed in.
func canonicalValue(name facet.Name, v string) string {
	if name == facet.Types {
		return publication.NormalizeType(v)
	}
	return strings.TrimSpace(v)
}

// parseToggleArgs splits "facet value..." arguments.
func parseToggleArgs(args []string) (facet.Name, []string, error) {
	name, err := facet.ParseName(args[0])
	if err != nil {
		return "", nil, err
	}
	values := make([]string, 0, len(args)-1)
	for _, v := range args[1:] {
		if v = canonicalValue(name, v); v != "" {
			values = append(values, v)
		}
	}
	return name, values, nil
}

// toggleValues flips each value in turn. Selecting an unknown value, or one
// whose live count is zero, fails and leaves the remaining values untouched.
func toggleValues(sess *session.Session, name facet.Name, values []string) (session.View, error) {
	v := sess.View()
	for _, value := range values {
		st := sess.State()
		if !st.IsSelected(name, value) {
			if !sess.Index().Contains(name, value) {
				return v, fmt.Errorf("unknown %s value %q", name, value)
			}
			fc := filter.CountFacet(sess.Records(), sess.Index(), st, name)
			for _, vc := range fc.Values {
				if vc.Value == value && vc.Disabled {
					return v, fmt.Errorf("%s %q matches nothing under the current filters", name, value)
				}
			}
		}
		v = sess.Toggle(name, value)
	}
	return v, nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	name, values, err := parseToggleArgs(args)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)
	sess := mustLoadSession(repoRoot, settings)

	v, err := toggleValues(sess, name, values)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	mustWriteState(repoRoot, sess.State())
	printView(v)
	return nil
}
