package filter

import (
	"strings"

	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/publication"
)

// NoExclude applies every facet.
const NoExclude facet.Name = ""

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(publication.CollapseSpace(q)))
}

// matchesFacet reports whether a record passes one facet's selection: any of
// its values must be selected. An empty selection passes everything.
func matchesFacet(r publication.Record, name facet.Name, sel Selection) bool {
	if len(sel) == 0 {
		return true
	}
	for _, v := range facet.ValuesOf(r, name) {
		if sel[v] {
			return true
		}
	}
	return false
}

// Visible returns the records passing the state, in input order. The title
// query is always applied; the facet named by exclude is skipped, which is
// how live counts for that facet are computed. Pass NoExclude for the
// displayed result.
func Visible(records []publication.Record, s *State, exclude facet.Name) []publication.Record {
	q := normalizeQuery(s.Query)

	out := make([]publication.Record, 0, len(records))
	for _, r := range records {
		if q != "" && !strings.Contains(strings.ToLower(r.Title), q) {
			continue
		}
		pass := true
		for _, name := range facet.All {
			if name == exclude {
				continue
			}
			if !matchesFacet(r, name, s.Selected[name]) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out
}
