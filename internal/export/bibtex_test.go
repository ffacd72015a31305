package export

import (
	"strings"
	"testing"

	"github.com/commitlab/pubs/internal/present"
	"github.com/commitlab/pubs/internal/publication"
)

func TestToBibTeX_BasicArticle(t *testing.T) {
	rec := publication.Record{
		Title:       "Learning to Parse",
		ItemType:    "article",
		AuthorsRaw:  "Jane Smith and Bob Lee",
		Year:        2020,
		Journal:     "JMLR",
		Volume:      "21",
		KeywordsRaw: "nlp, parsing",
		URL:         "http://x.edu/commit/papers/parse.pdf",
	}

	got := ToBibTeX(rec)
	want := strings.Join([]string{
		"@article{learningtoparse2020,",
		"  author = {Jane Smith and Bob Lee},",
		"  title = {{Learning to Parse}},",
		"  journal = {JMLR},",
		"  year = {2020},",
		"  volume = {21},",
		"  keywords = {nlp, parsing},",
		"  url = {papers/parse.pdf}",
		"}",
	}, "\n")

	if got != want {
		t.Errorf("ToBibTeX() =\n%s\nwant:\n%s", got, want)
	}
}

func TestToBibTeX_FieldOrder(t *testing.T) {
	rec := publication.Record{
		Title:       "Full",
		ItemType:    "inproceedings",
		AuthorsRaw:  "A B",
		BookTitle:   "Proc",
		Journal:     "J",
		Series:      "S",
		Publisher:   "P",
		School:      "MIT",
		PlaceName:   "Boston",
		Month:       "June",
		Year:        2019,
		Volume:      "1",
		Number:      "2",
		Pages:       "1--10",
		DOI:         "10.1/x",
		KeywordsRaw: "k",
		URL:         "https://example.org/full.pdf",
		Slides:      "https://x.edu/presentations/full.pdf",
	}

	got := ToBibTeX(rec)
	order := []string{
		"author =", "title =", "booktitle =", "journal =", "series =",
		"publisher =", "school =", "address =", "location =", "month =",
		"year =", "volume =", "number =", "pages =", "doi =", "keywords =",
		"url =", "note =",
	}
	last := -1
	for _, field := range order {
		pos := strings.Index(got, "  "+field)
		if pos < 0 {
			t.Fatalf("missing field %q in:\n%s", field, got)
		}
		if pos < last {
			t.Errorf("field %q out of order in:\n%s", field, got)
		}
		last = pos
	}

	if !strings.Contains(got, "  address = {Boston},\n  location = {Boston},") {
		t.Errorf("address and location should both carry the resolved location:\n%s", got)
	}
	if !strings.Contains(got, "  url = {https://example.org/full.pdf},") {
		t.Errorf("foreign url should be unchanged:\n%s", got)
	}
	if !strings.HasSuffix(got, "  note = {Slides: presentations/full.pdf}\n}") {
		t.Errorf("note should be last without a trailing comma:\n%s", got)
	}
}

func TestToBibTeX_IssuePreferredOverNumber(t *testing.T) {
	got := ToBibTeX(publication.Record{Title: "T", ItemType: "article", Number: "2", Issue: "7"})
	if !strings.Contains(got, "number = {7}") {
		t.Errorf("expected issue to win, got:\n%s", got)
	}
	if strings.Contains(got, "{2}") {
		t.Errorf("number should not be emitted when issue is present:\n%s", got)
	}
}

func TestToBibTeX_OmitsEmptyFields(t *testing.T) {
	got := ToBibTeX(publication.Record{Title: "Only Title", ItemType: "misc"})
	want := "@misc{onlytitle,\n  title = {{Only Title}}\n}"
	if got != want {
		t.Errorf("ToBibTeX() = %q, want %q", got, want)
	}
}

func TestToBibTeX_DefaultsTypeToMisc(t *testing.T) {
	got := ToBibTeX(publication.Record{Title: "X"})
	if !strings.HasPrefix(got, "@misc{") {
		t.Errorf("expected @misc entry, got:\n%s", got)
	}
}

func TestToBibTeX_CollapsesWhitespace(t *testing.T) {
	got := ToBibTeX(publication.Record{Title: "Line\none", ItemType: "misc", AuthorsRaw: "A  B\r\nand C"})
	if !strings.Contains(got, "title = {{Line one}}") {
		t.Errorf("title not flattened:\n%s", got)
	}
	if !strings.Contains(got, "author = {A B and C}") {
		t.Errorf("author not flattened:\n%s", got)
	}
}

func TestCitationKey(t *testing.T) {
	tests := []struct {
		name string
		rec  publication.Record
		want string
	}{
		{"explicit key wins", publication.Record{Title: "Anything", Year: 2020, BibTeXKey: "smith20"}, "smith20"},
		{"slug plus year", publication.Record{Title: "A Study!", Year: 2020}, "astudy2020"},
		{"no year", publication.Record{Title: "A Study"}, "astudy"},
		{"truncated to 24", publication.Record{Title: "Abcdefghij klmnopqrst uvwxyz0123", Year: 2001}, "abcdefghijklmnopqrstuvwx2001"},
		{"untitled", publication.Record{Year: 1999}, "untitled1999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CitationKey(tt.rec); got != tt.want {
				t.Errorf("CitationKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCitationKey_CollisionsAccepted(t *testing.T) {
	a := publication.Record{Title: "Same Title", ItemType: "article", Year: 2020}
	b := publication.Record{Title: "Same Title", ItemType: "inproceedings", Year: 2020}
	if CitationKey(a) != CitationKey(b) {
		t.Errorf("expected identical keys for identical title and year")
	}
}

func TestExportGroups_MatchesDisplayOrder(t *testing.T) {
	records := []publication.Record{
		{Title: "Zeta", Year: 2020},
		{Title: "Alpha", Year: 2021},
		{Title: "Undated"},
		{Title: "Beta", Year: 2020},
	}
	groups := present.GroupByYear(records, present.SortTitle, false)
	dl, err := ExportGroups(groups, "")
	if err != nil {
		t.Fatal(err)
	}
	got := dl.Content

	order := []string{"{{Alpha}}", "{{Beta}}", "{{Zeta}}", "{{Undated}}"}
	last := -1
	for _, title := range order {
		pos := strings.Index(got, title)
		if pos < last || pos < 0 {
			t.Fatalf("title %s out of order in:\n%s", title, got)
		}
		last = pos
	}
	if n := strings.Count(got, "\n\n"); n != 3 {
		t.Errorf("expected 3 blank-line separators, got %d", n)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("batch export should not end with a newline")
	}
}

func TestExportGroups(t *testing.T) {
	groups := present.GroupByYear([]publication.Record{{Title: "One", Year: 2020}}, present.SortNone, false)

	dl, err := ExportGroups(groups, "")
	if err != nil {
		t.Fatalf("ExportGroups() error = %v", err)
	}
	if dl.Filename != DefaultFilename {
		t.Errorf("Filename = %q, want %q", dl.Filename, DefaultFilename)
	}
	if dl.MIMEType != "text/plain" {
		t.Errorf("MIMEType = %q", dl.MIMEType)
	}
	if dl.Count != 1 {
		t.Errorf("Count = %d, want 1", dl.Count)
	}

	dl, err = ExportGroups(groups, "mine.bib")
	if err != nil || dl.Filename != "mine.bib" {
		t.Errorf("ExportGroups() with filename = %+v, %v", dl, err)
	}
}

func TestExportGroups_Empty(t *testing.T) {
	if _, err := ExportGroups(nil, ""); err != ErrNothingToExport {
		t.Errorf("ExportGroups(nil) error = %v, want ErrNothingToExport", err)
	}
}

func TestExportRecord(t *testing.T) {
	dl := ExportRecord(publication.Record{Title: "One", Year: 2020})
	if dl.Filename != "one2020.bib" {
		t.Errorf("Filename = %q", dl.Filename)
	}
	if !strings.HasPrefix(dl.Content, "@misc{one2020,") {
		t.Errorf("Content = %q", dl.Content)
	}
}

func TestExportRecords_KeepsGivenOrder(t *testing.T) {
	records := []publication.Record{
		{Title: "Zeta", Year: 2019},
		{Title: "Alpha", Year: 2021},
	}

	dl, err := ExportRecords(records, "picked.bib")
	if err != nil {
		t.Fatalf("ExportRecords() error = %v", err)
	}
	if dl.Count != 2 || dl.Filename != "picked.bib" {
		t.Errorf("ExportRecords() = %+v", dl)
	}
	if strings.Index(dl.Content, "zeta2019") > strings.Index(dl.Content, "alpha2021") {
		t.Errorf("entries reordered:\n%s", dl.Content)
	}
}
