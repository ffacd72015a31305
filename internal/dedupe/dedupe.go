// Package dedupe collapses near-duplicate publication records.
//
// Two records are duplicates when they share a DedupKey (normalized title
// plus item type). The surviving variant is chosen greedily: a later record
// replaces the current one only when it is strictly better under Better.
package dedupe

import (
	"github.com/commitlab/pubs/internal/publication"
)

// Better reports whether a should replace b. Links are compared in order
// (url, then doi, then slides); each is consulted only when the previous
// ones tie. Full ties keep b.
func Better(a, b publication.Record) bool {
	if (a.URL != "") != (b.URL != "") {
		return a.URL != ""
	}
	if (a.DOI != "") != (b.DOI != "") {
		return a.DOI != ""
	}
	if (a.Slides != "") != (b.Slides != "") {
		return a.Slides != ""
	}
	return false
}

// Deduplicate returns one record per DedupKey in first-seen key order.
func Deduplicate(records []publication.Record) []publication.Record {
	best := make(map[string]int, len(records)) // key -> index into out
	out := make([]publication.Record, 0, len(records))

	for _, rec := range records {
		key := rec.DedupKey()
		idx, seen := best[key]
		if !seen {
			best[key] = len(out)
			out = append(out, rec)
			continue
		}
		if Better(rec, out[idx]) {
			out[idx] = rec
		}
	}

	return out
}

// Group describes one set of duplicates found in the input.
type Group struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Kept     int    `json:"kept"`               // input index of the surviving record
	Dropped  []int  `json:"dropped"`            // input indexes of the collapsed records
	KeptHas  string `json:"kept_has,omitempty"` // which link decided the winner
	Variants int    `json:"variants"`
}

// FindGroups reports the duplicate groups Deduplicate would collapse, in
// first-seen key order. Keys with a single record are omitted.
func FindGroups(records []publication.Record) []Group {
	type entry struct {
		kept    int
		members []int
	}
	byKey := make(map[string]*entry)
	var order []string

	for i, rec := range records {
		key := rec.DedupKey()
		e, seen := byKey[key]
		if !seen {
			byKey[key] = &entry{kept: i, members: []int{i}}
			order = append(order, key)
			continue
		}
		e.members = append(e.members, i)
		if Better(rec, records[e.kept]) {
			e.kept = i
		}
	}

	var groups []Group
	for _, key := range order {
		e := byKey[key]
		if len(e.members) < 2 {
			continue
		}
		g := Group{
			Key:      key,
			Title:    records[e.kept].Title,
			Kept:     e.kept,
			Variants: len(e.members),
			KeptHas:  deciding(records[e.kept]),
		}
		for _, m := range e.members {
			if m != e.kept {
				g.Dropped = append(g.Dropped, m)
			}
		}
		groups = append(groups, g)
	}
	return groups
}

func deciding(r publication.Record) string {
	switch {
	case r.URL != "":
		return "url"
	case r.DOI != "":
		return "doi"
	case r.Slides != "":
		return "slides"
	}
	return ""
}
