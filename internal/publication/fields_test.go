package publication

import (
	"reflect"
	"testing"
)

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "", "b", "c"); got != "b" {
		t.Errorf("FirstNonEmpty() = %q, want %q", got, "b")
	}
	if got := FirstNonEmpty(); got != "" {
		t.Errorf("FirstNonEmpty() with no values = %q, want empty", got)
	}
}

func TestRecord_Venue(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"journal wins", Record{Journal: "J", BookTitle: "B", Publisher: "P"}, "J"},
		{"booktitle before series", Record{BookTitle: "B", Series: "S"}, "B"},
		{"series before type", Record{Series: "S", Type: "T"}, "S"},
		{"type before publisher", Record{Type: "T", Publisher: "P"}, "T"},
		{"publisher last", Record{Publisher: "P"}, "P"},
		{"none", Record{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Venue(); got != tt.want {
				t.Errorf("Venue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecord_Location(t *testing.T) {
	if got := (Record{PlaceName: "Boston", Address: "Cambridge"}).Location(); got != "Boston" {
		t.Errorf("Location() = %q, want Boston", got)
	}
	if got := (Record{Address: "Cambridge"}).Location(); got != "Cambridge" {
		t.Errorf("Location() = %q, want Cambridge", got)
	}
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "misc"},
		{"   ", "misc"},
		{"Article", "article"},
		{"  InProceedings ", "inproceedings"},
		{"Tech   Report", "tech report"},
		{"patent", "patent"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeType(tt.in); got != tt.want {
				t.Errorf("NormalizeType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"inproceedings", "Conference Pub"},
		{"article", "Journal Article"},
		{"phdthesis", "PhD Thesis"},
		{"sciencethesis", "SM Thesis"},
		{"misc", "Other"},
		{"", "Other"},
		{"patent", "Patent"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TypeLabel(tt.in); got != tt.want {
				t.Errorf("TypeLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"nlp,ml", []string{"nlp", "ml"}},
		{" nlp ; ml ,, vision ", []string{"nlp", "ml", "vision"}},
		{",;", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SplitKeywords(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitKeywords(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"January", 1},
		{"feb", 2},
		{"SEPT", 9},
		{"dec.", 12},
		{"", 0},
		{"Spring", 0},
		{"12", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MonthNumber(tt.in); got != tt.want {
				t.Errorf("MonthNumber(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDedupKey(t *testing.T) {
	a := Record{Title: "A  Study\nof Things", ItemType: "article"}
	b := Record{Title: "a study of things ", ItemType: "ARTICLE"}
	if a.DedupKey() != b.DedupKey() {
		t.Errorf("DedupKey mismatch: %q vs %q", a.DedupKey(), b.DedupKey())
	}

	c := Record{Title: "A Study of Things"}
	if got, want := c.DedupKey(), "a study of things|misc"; got != want {
		t.Errorf("DedupKey() = %q, want %q", got, want)
	}

	if a.DedupKey() == c.DedupKey() {
		t.Error("records with different types should not share a DedupKey")
	}
}

func TestRecord_IsFeatured(t *testing.T) {
	if !(Record{Price: "Best Paper"}).IsFeatured() {
		t.Error("record with price should be featured")
	}
	if !(Record{Featured: true}).IsFeatured() {
		t.Error("record with featured flag should be featured")
	}
	if (Record{}).IsFeatured() {
		t.Error("plain record should not be featured")
	}
}
