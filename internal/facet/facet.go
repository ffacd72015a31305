// Package facet derives the distinct filter values of a publication
// collection.
package facet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/commitlab/pubs/internal/publication"
)

// Name identifies a facet dimension.
type Name string

const (
	Years    Name = "years"
	Keywords Name = "keywords"
	Authors  Name = "authors"
	Types    Name = "types"
)

// All lists the facets in display order.
var All = []Name{Years, Keywords, Authors, Types}

// ParseName accepts a facet name in plural or singular form.
func ParseName(s string) (Name, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "years", "year":
		return Years, nil
	case "keywords", "keyword":
		return Keywords, nil
	case "authors", "author":
		return Authors, nil
	case "types", "type":
		return Types, nil
	}
	return "", fmt.Errorf("unknown facet %q (valid: years, keywords, authors, types)", s)
}

// ValuesOf returns the facet values a record contributes. Years are
// rendered in decimal; a record without a year contributes nothing.
func ValuesOf(r publication.Record, name Name) []string {
	switch name {
	case Years:
		if r.Year > 0 {
			return []string{strconv.Itoa(r.Year)}
		}
		return nil
	case Keywords:
		return r.Keywords()
	case Authors:
		return r.Authors()
	case Types:
		return []string{publication.NormalizeType(r.ItemType)}
	}
	return nil
}

// Label returns the display label of a facet value.
func Label(name Name, value string) string {
	if name == Types {
		return publication.TypeLabel(value)
	}
	return value
}

// Index holds the sorted distinct values of every facet.
type Index struct {
	values map[Name][]string
}

// Build computes the index for a collection. It is meant to run once per
// data load.
func Build(records []publication.Record) *Index {
	sets := make(map[Name]map[string]struct{}, len(All))
	for _, name := range All {
		sets[name] = make(map[string]struct{})
	}
	for _, r := range records {
		for _, name := range All {
			for _, v := range ValuesOf(r, name) {
				sets[name][v] = struct{}{}
			}
		}
	}

	idx := &Index{values: make(map[Name][]string, len(All))}
	coll := collate.New(language.Und)

	for _, name := range All {
		vals := make([]string, 0, len(sets[name]))
		for v := range sets[name] {
			vals = append(vals, v)
		}

		switch name {
		case Years:
			sort.Slice(vals, func(i, j int) bool {
				a, _ := strconv.Atoi(vals[i])
				b, _ := strconv.Atoi(vals[j])
				return a > b
			})
		case Types:
			sort.SliceStable(vals, func(i, j int) bool {
				li, lj := publication.TypeLabel(vals[i]), publication.TypeLabel(vals[j])
				if c := coll.CompareString(li, lj); c != 0 {
					return c < 0
				}
				return vals[i] < vals[j]
			})
		default:
			sort.SliceStable(vals, func(i, j int) bool {
				if c := coll.CompareString(vals[i], vals[j]); c != 0 {
					return c < 0
				}
				return vals[i] < vals[j]
			})
		}
		idx.values[name] = vals
	}

	return idx
}

// Values returns the sorted values of a facet.
func (idx *Index) Values(name Name) []string {
	return idx.values[name]
}

// Contains reports whether a value is present in a facet.
func (idx *Index) Contains(name Name, value string) bool {
	for _, v := range idx.values[name] {
		if v == value {
			return true
		}
	}
	return false
}

// Size returns the number of values per facet.
func (idx *Index) Size() map[Name]int {
	out := make(map[Name]int, len(All))
	for _, name := range All {
		out[name] = len(idx.values[name])
	}
	return out
}
