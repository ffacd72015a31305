// Package filter narrows a publication collection by a faceted selection
// and computes live per-value counts.
package filter

import (
	"sort"

	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/present"
)

// Selection is the set of selected values of one facet. Presence means
// selected.
type Selection map[string]bool

// State is the complete user-controlled filter state. There is a single live
// State per browsing session; every mutation is followed by a full recompute.
type State struct {
	Query    string                   `json:"query"`
	Selected map[facet.Name]Selection `json:"selected"`
	SortKey  present.SortKey          `json:"sort_key"`
	SortDesc bool                     `json:"sort_desc"`
}

// NewState returns a state with empty selections and no sorting.
func NewState() *State {
	s := &State{SortKey: present.SortNone}
	s.reset()
	return s
}

func (s *State) reset() {
	s.Selected = make(map[facet.Name]Selection, len(facet.All))
	for _, name := range facet.All {
		s.Selected[name] = Selection{}
	}
}

// ensure fills in selections missing after decoding a partial state.
func (s *State) ensure() {
	if s.Selected == nil {
		s.Selected = make(map[facet.Name]Selection, len(facet.All))
	}
	for _, name := range facet.All {
		if s.Selected[name] == nil {
			s.Selected[name] = Selection{}
		}
	}
	if s.SortKey == "" {
		s.SortKey = present.SortNone
	}
}

// Normalize repairs a state decoded from storage: unknown facets and false
// entries are dropped, nil maps are allocated and an empty or unknown sort
// key becomes SortNone.
func (s *State) Normalize() {
	s.ensure()
	if key, err := present.ParseSortKey(string(s.SortKey)); err == nil {
		s.SortKey = key
	} else {
		s.SortKey = present.SortNone
	}
	for name, sel := range s.Selected {
		if !known(name) {
			delete(s.Selected, name)
			continue
		}
		for v, on := range sel {
			if !on {
				delete(sel, v)
			}
		}
	}
}

func known(name facet.Name) bool {
	for _, n := range facet.All {
		if n == name {
			return true
		}
	}
	return false
}

// IsSelected reports whether value is selected in a facet.
func (s *State) IsSelected(name facet.Name, value string) bool {
	return s.Selected[name][value]
}

// Toggle flips a value's selection and reports whether it is now selected.
func (s *State) Toggle(name facet.Name, value string) bool {
	s.ensure()
	sel := s.Selected[name]
	if sel[value] {
		delete(sel, value)
		return false
	}
	sel[value] = true
	return true
}

// Set selects or deselects a value.
func (s *State) Set(name facet.Name, value string, on bool) {
	s.ensure()
	if on {
		s.Selected[name][value] = true
	} else {
		delete(s.Selected[name], value)
	}
}

// SelectedValues returns the selected values of a facet in sorted order.
func (s *State) SelectedValues(name facet.Name) []string {
	sel := s.Selected[name]
	out := make([]string, 0, len(sel))
	for v, on := range sel {
		if on {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// SetQuery replaces the title query.
func (s *State) SetQuery(q string) {
	s.Query = q
}

// SetSort replaces the sort key and direction.
func (s *State) SetSort(key present.SortKey, desc bool) {
	s.SortKey = key
	s.SortDesc = desc
}

// Clear drops every selection and the query. Sorting is kept.
func (s *State) Clear() {
	s.Query = ""
	s.reset()
}

// Active reports whether any filter (query or selection) is in effect.
func (s *State) Active() bool {
	if normalizeQuery(s.Query) != "" {
		return true
	}
	for _, sel := range s.Selected {
		if len(sel) > 0 {
			return true
		}
	}
	return false
}
