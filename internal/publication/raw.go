package publication

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleString can unmarshal from string, number or list JSON values.
// Lists of scalars are joined with ", "; booleans and objects decode to "".
// Field-level shape problems never fail a record.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	// Handle null
	if string(data) == "null" {
		*f = ""
		return nil
	}

	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	// Try number
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	var list []FlexibleString
	if err := json.Unmarshal(data, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if item != "" {
				parts = append(parts, item.String())
			}
		}
		*f = FlexibleString(strings.Join(parts, ", "))
		return nil
	}

	if !json.Valid(data) {
		return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
	}
	*f = ""
	return nil
}

func (f FlexibleString) String() string {
	return string(f)
}

// FlexibleBool unmarshals JSON truthiness: booleans, non-zero numbers and
// non-empty strings other than "false"/"0" are true.
type FlexibleBool bool

func (f *FlexibleBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("cannot unmarshal %s into FlexibleBool", string(data))
	}
	switch t := v.(type) {
	case bool:
		*f = FlexibleBool(t)
	case float64:
		*f = t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		*f = s != "" && s != "false" && s != "0"
	default:
		*f = v != nil
	}
	return nil
}

// RawRecord is a single entry of the site's publications.json. Every field
// is optional.
type RawRecord struct {
	Title    FlexibleString `json:"title"`
	ItemType FlexibleString `json:"itemType"`

	Author0 FlexibleString `json:"author0"`
	Authors FlexibleString `json:"authors"`
	Author  FlexibleString `json:"author"`

	Year  FlexibleString `json:"year"`
	Month FlexibleString `json:"month"`

	Journal   FlexibleString `json:"journal"`
	BookTitle FlexibleString `json:"booktitle"`
	Series    FlexibleString `json:"series"`
	Type      FlexibleString `json:"type"`
	Publisher FlexibleString `json:"publisher"`

	Location FlexibleString `json:"location"`
	Address  FlexibleString `json:"address"`

	School FlexibleString `json:"school"`
	Volume FlexibleString `json:"volume"`
	Number FlexibleString `json:"number"`
	Issue  FlexibleString `json:"issue"`
	Pages  FlexibleString `json:"pages"`

	Keywords FlexibleString `json:"keywords"`

	URL    FlexibleString `json:"url"`
	Slides FlexibleString `json:"slides"`
	DOI    FlexibleString `json:"doi"`

	Price     FlexibleString `json:"price"`
	Featured  FlexibleBool   `json:"featured"`
	BibTeXKey FlexibleString `json:"bibtexKey"`
	OldBibTeX FlexibleString `json:"oldbibtex"`
}

// Normalize converts a raw entry into a Record. It never fails: missing or
// unparseable fields fall back to their zero value.
func Normalize(raw RawRecord) Record {
	return Record{
		Title:       raw.Title.String(),
		ItemType:    NormalizeType(raw.ItemType.String()),
		AuthorsRaw:  FirstNonEmpty(raw.Author0.String(), raw.Authors.String(), raw.Author.String()),
		Year:        parseYear(raw.Year.String()),
		Month:       raw.Month.String(),
		Journal:     raw.Journal.String(),
		BookTitle:   raw.BookTitle.String(),
		Series:      raw.Series.String(),
		Type:        raw.Type.String(),
		Publisher:   raw.Publisher.String(),
		PlaceName:   raw.Location.String(),
		Address:     raw.Address.String(),
		School:      raw.School.String(),
		Volume:      raw.Volume.String(),
		Number:      raw.Number.String(),
		Issue:       raw.Issue.String(),
		Pages:       raw.Pages.String(),
		KeywordsRaw: raw.Keywords.String(),
		URL:         raw.URL.String(),
		Slides:      raw.Slides.String(),
		DOI:         raw.DOI.String(),
		Price:       raw.Price.String(),
		Featured:    bool(raw.Featured),
		BibTeXKey:   raw.BibTeXKey.String(),
		OldBibTeX:   raw.OldBibTeX.String(),
	}
}

// NormalizeAll normalizes a slice of raw entries, preserving order.
func NormalizeAll(raws []RawRecord) []Record {
	out := make([]Record, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw)
	}
	return out
}

// parseYear accepts "2021", "2021.0" or " 2021 ". Anything else, and
// non-positive years, count as absent.
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if y, err := strconv.Atoi(s); err == nil && y > 0 {
		return y
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f == float64(int(f)) {
		return int(f)
	}
	return 0
}
