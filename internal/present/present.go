// Package present groups and orders visible publications for display and
// export.
package present

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/commitlab/pubs/internal/publication"
)

// SortKey selects the within-year ordering.
type SortKey string

const (
	SortNone        SortKey = "none"
	SortTitle       SortKey = "title"
	SortVenue       SortKey = "venue"
	SortFirstAuthor SortKey = "firstAuthor"
	SortType        SortKey = "type"
	SortMonth       SortKey = "month"
)

// SortKeys lists the valid sort keys.
var SortKeys = []SortKey{SortNone, SortTitle, SortVenue, SortFirstAuthor, SortType, SortMonth}

// ParseSortKey validates a sort key name. Matching is case-insensitive and
// the empty string means SortNone.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortNone, nil
	}
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (valid: none, title, venue, firstAuthor, type, month)", s)
}

// Next returns the sort key after k, wrapping around.
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortNone
}

// OtherLabel is the group label for records without a year.
const OtherLabel = "Other"

// Group is one year bucket of the result list.
type Group struct {
	Label   string               `json:"label"`
	Year    int                  `json:"year,omitempty"` // 0 for the Other bucket
	Records []publication.Record `json:"records"`
}

// compare returns the ascending comparison for a sort key, or nil for
// SortNone (keep incoming order).
func compare(key SortKey) func(a, b publication.Record) int {
	lower := func(f func(publication.Record) string) func(a, b publication.Record) int {
		return func(a, b publication.Record) int {
			return strings.Compare(strings.ToLower(f(a)), strings.ToLower(f(b)))
		}
	}

	switch key {
	case SortTitle:
		return lower(func(r publication.Record) string { return r.Title })
	case SortVenue:
		return lower(publication.Record.Venue)
	case SortFirstAuthor:
		return lower(publication.Record.FirstAuthor)
	case SortType:
		return lower(func(r publication.Record) string { return publication.NormalizeType(r.ItemType) })
	case SortMonth:
		return func(a, b publication.Record) int {
			return publication.MonthNumber(a.Month) - publication.MonthNumber(b.Month)
		}
	}
	return nil
}

// GroupByYear partitions records into year groups, newest first, with the
// Other bucket last. Within a group records are stably sorted by key;
// desc flips the comparison but never the group order.
func GroupByYear(records []publication.Record, key SortKey, desc bool) []Group {
	byYear := make(map[int][]publication.Record)
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool {
		// 0 (no year) sorts after every real year.
		if years[i] == 0 || years[j] == 0 {
			return years[j] == 0 && years[i] != 0
		}
		return years[i] > years[j]
	})

	cmp := compare(key)
	dir := 1
	if desc {
		dir = -1
	}

	groups := make([]Group, 0, len(years))
	for _, y := range years {
		recs := byYear[y]
		if cmp != nil {
			sort.SliceStable(recs, func(i, j int) bool {
				return dir*cmp(recs[i], recs[j]) < 0
			})
		}
		g := Group{Label: OtherLabel, Year: y, Records: recs}
		if y != 0 {
			g.Label = strconv.Itoa(y)
		}
		groups = append(groups, g)
	}
	return groups
}

// Flatten returns the records of all groups in display order.
func Flatten(groups []Group) []publication.Record {
	var out []publication.Record
	for _, g := range groups {
		out = append(out, g.Records...)
	}
	return out
}

// Featured returns the featured records, newest first. Records without a
// year sort last; equal years keep collection order.
func Featured(records []publication.Record) []publication.Record {
	var out []publication.Record
	for _, r := range records {
		if r.IsFeatured() {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Year > out[j].Year
	})
	return out
}
