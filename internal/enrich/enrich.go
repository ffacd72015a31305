// Package enrich attaches raw entries from an existing BibTeX library to
// publication documents as their "oldbibtex" field.
package enrich

import (
	"fmt"
	"strings"
)

const (
	keyField = "bibtexKey"
	bibField = "oldbibtex"
)

// Result summarizes an enrichment run.
type Result struct {
	Processed   int      `json:"processed"`
	Matched     int      `json:"matched"`
	Missing     int      `json:"missing"`
	MissingKeys []string `json:"missing_keys,omitempty"`
}

func (r Result) String() string {
	return fmt.Sprintf("Processed %d items: %d matched, %d missing.", r.Processed, r.Matched, r.Missing)
}

// Apply returns docs with oldbibtex set on every document whose bibtexKey is
// found in entries. Documents are copied before modification; a document
// without a key, or with an unknown one, counts as missing and is passed
// through unchanged.
func Apply(docs []map[string]any, entries map[string]string) ([]map[string]any, Result) {
	out := make([]map[string]any, len(docs))
	res := Result{Processed: len(docs)}

	for i, doc := range docs {
		out[i] = doc
		key, _ := doc[keyField].(string)
		key = strings.TrimSpace(key)
		entry, ok := entries[key]
		if key == "" || !ok {
			res.Missing++
			if key != "" {
				res.MissingKeys = append(res.MissingKeys, key)
			}
			continue
		}

		enriched := make(map[string]any, len(doc)+1)
		for k, v := range doc {
			enriched[k] = v
		}
		enriched[bibField] = entry
		out[i] = enriched
		res.Matched++
	}
	return out, res
}
