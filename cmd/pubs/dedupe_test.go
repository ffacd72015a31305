package main

import (
	"reflect"
	"testing"

	"github.com/commitlab/pubs/internal/dedupe"
)

func TestDropIndexes(t *testing.T) {
	docs := []map[string]any{
		{"title": "A"},
		{"title": "A"},
		{"title": "B"},
		{"title": "A"},
		{"title": "C"},
	}

	tests := []struct {
		name   string
		groups []dedupe.Group
		want   []string
	}{
		{"no groups", nil, []string{"A", "A", "B", "A", "C"}},
		{"kept later variant", []dedupe.Group{{Kept: 3, Dropped: []int{0, 1}}}, []string{"B", "A", "C"}},
		{"kept first variant", []dedupe.Group{{Kept: 0, Dropped: []int{1, 3}}}, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, doc := range dropIndexes(docs, tt.groups) {
				got = append(got, doc["title"].(string))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dropIndexes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntryNumbers(t *testing.T) {
	if got := entryNumbers([]int{0, 4}); !reflect.DeepEqual(got, []int{1, 5}) {
		t.Errorf("entryNumbers() = %v", got)
	}
}
