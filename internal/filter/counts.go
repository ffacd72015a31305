package filter

import (
	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/publication"
)

// ValueCount is the display state of one facet value.
type ValueCount struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
	// Disabled is set when the value would match nothing and is not
	// selected. Selected values stay enabled so they can be deselected.
	Disabled bool `json:"disabled"`
}

// FacetCounts holds the live counts of one facet in index order.
type FacetCounts struct {
	Name   facet.Name   `json:"name"`
	Values []ValueCount `json:"values"`
}

// Tally counts, per facet value, the records that carry it. A record is
// counted once per value even if it lists the value twice.
func Tally(records []publication.Record, name facet.Name) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		seen := make(map[string]bool)
		for _, v := range facet.ValuesOf(r, name) {
			if seen[v] {
				continue
			}
			seen[v] = true
			counts[v]++
		}
	}
	return counts
}

// CountFacet computes the live counts of one facet: the records matching
// every other active filter, tallied by this facet's values. Selected values
// missing from the index are appended so they are never hidden.
func CountFacet(records []publication.Record, idx *facet.Index, s *State, name facet.Name) FacetCounts {
	counts := Tally(Visible(records, s, name), name)

	fc := FacetCounts{Name: name}
	listed := make(map[string]bool)
	for _, v := range idx.Values(name) {
		listed[v] = true
		fc.Values = append(fc.Values, valueCount(name, v, counts[v], s.IsSelected(name, v)))
	}
	for _, v := range s.SelectedValues(name) {
		if !listed[v] {
			fc.Values = append(fc.Values, valueCount(name, v, counts[v], true))
		}
	}
	return fc
}

func valueCount(name facet.Name, v string, n int, selected bool) ValueCount {
	return ValueCount{
		Value:    v,
		Label:    facet.Label(name, v),
		Count:    n,
		Selected: selected,
		Disabled: n == 0 && !selected,
	}
}

// Counts computes the live counts of every facet.
func Counts(records []publication.Record, idx *facet.Index, s *State) []FacetCounts {
	out := make([]FacetCounts, 0, len(facet.All))
	for _, name := range facet.All {
		out = append(out, CountFacet(records, idx, s, name))
	}
	return out
}
