// Package export serializes publications to BibTeX.
package export

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/commitlab/pubs/internal/publication"
)

// CitationKeyLength is the number of title characters used in generated keys.
const CitationKeyLength = 24

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	lineBreaks = regexp.MustCompile(`[\n\r]+`)
	trailComma = regexp.MustCompile(`,+\s*$`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// CitationKey returns the record's explicit key, or a slug of the first
// CitationKeyLength lowercase alphanumeric title characters followed by the
// year. Generated keys are not guaranteed unique.
func CitationKey(r publication.Record) string {
	if r.BibTeXKey != "" {
		return r.BibTeXKey
	}
	title := r.Title
	if title == "" {
		title = "untitled"
	}
	slug := nonAlnum.ReplaceAllString(strings.ToLower(title), "")
	if len(slug) > CitationKeyLength {
		slug = slug[:CitationKeyLength]
	}
	if r.Year > 0 {
		slug += strconv.Itoa(r.Year)
	}
	return slug
}

// escapeValue flattens line breaks and whitespace runs to single spaces.
func escapeValue(s string) string {
	if s == "" {
		return ""
	}
	s = lineBreaks.ReplaceAllString(s, " ")
	return spaceRun.ReplaceAllString(s, " ")
}

// entryWriter accumulates the lines of one entry.
type entryWriter struct {
	lines []string
}

func (w *entryWriter) field(name, value string) {
	if value == "" {
		return
	}
	w.lines = append(w.lines, "  "+name+" = {"+value+"},")
}

// ToBibTeX converts a record to one BibTeX entry. The title gets an extra
// brace layer to keep its capitalization; url and slides are localized.
func ToBibTeX(r publication.Record) string {
	w := &entryWriter{}
	w.lines = append(w.lines, "@"+publication.NormalizeType(r.ItemType)+"{"+CitationKey(r)+",")

	url := LocalizeAssetURL(r.URL)
	slides := LocalizeAssetURL(r.Slides)
	location := escapeValue(r.Location())

	year := ""
	if r.Year > 0 {
		year = strconv.Itoa(r.Year)
	}

	w.field("author", escapeValue(r.AuthorsRaw))
	w.field("title", "{"+escapeValue(r.DisplayTitle())+"}")
	w.field("booktitle", escapeValue(r.BookTitle))
	w.field("journal", escapeValue(r.Journal))
	w.field("series", escapeValue(r.Series))
	w.field("publisher", escapeValue(r.Publisher))
	w.field("school", escapeValue(r.School))
	w.field("address", location)
	w.field("location", location)
	w.field("month", escapeValue(r.Month))
	w.field("year", year)
	w.field("volume", escapeValue(r.Volume))
	w.field("number", escapeValue(publication.FirstNonEmpty(r.Issue, r.Number)))
	w.field("pages", escapeValue(r.Pages))
	w.field("doi", escapeValue(r.DOI))
	w.field("keywords", escapeValue(r.KeywordsRaw))
	w.field("url", escapeValue(url))
	if slides != "" {
		w.field("note", "Slides: "+slides)
	}

	if n := len(w.lines); n > 1 {
		w.lines[n-1] = trailComma.ReplaceAllString(w.lines[n-1], "")
	}
	w.lines = append(w.lines, "}")
	return strings.Join(w.lines, "\n")
}

// ToBibTeXList converts records to entries separated by a blank line, in
// the given order.
func ToBibTeXList(records []publication.Record) string {
	entries := make([]string, len(records))
	for i, r := range records {
		entries[i] = ToBibTeX(r)
	}
	return strings.Join(entries, "\n\n")
}
