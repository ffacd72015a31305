// Package publication defines the normalized publication record and the
// rules that canonicalize raw bibliography entries into it.
package publication

// Record is a normalized publication. Records are treated as immutable once
// produced by Normalize.
type Record struct {
	Title    string `json:"title"`
	ItemType string `json:"itemType"` // canonical: lowercase, never empty

	// AuthorsRaw is the single delimited author field kept from the source.
	AuthorsRaw string `json:"authors"`

	Year  int    `json:"year,omitempty"` // 0 if absent
	Month string `json:"month,omitempty"`

	// Venue candidates, resolved by Venue().
	Journal   string `json:"journal,omitempty"`
	BookTitle string `json:"booktitle,omitempty"`
	Series    string `json:"series,omitempty"`
	Type      string `json:"type,omitempty"`
	Publisher string `json:"publisher,omitempty"`

	// Location candidates, resolved by Location().
	PlaceName string `json:"location,omitempty"`
	Address   string `json:"address,omitempty"`

	School string `json:"school,omitempty"`
	Volume string `json:"volume,omitempty"`
	Number string `json:"number,omitempty"`
	Issue  string `json:"issue,omitempty"`
	Pages  string `json:"pages,omitempty"`

	KeywordsRaw string `json:"keywords,omitempty"`

	URL    string `json:"url,omitempty"` // PDF link
	Slides string `json:"slides,omitempty"`
	DOI    string `json:"doi,omitempty"`

	Price     string `json:"price,omitempty"`
	Featured  bool   `json:"featured,omitempty"`
	BibTeXKey string `json:"bibtexKey,omitempty"`
	OldBibTeX string `json:"oldbibtex,omitempty"`
}

// venueFields and locationFields list the resolution order for the display
// venue and location.
func (r Record) venueFields() []string {
	return []string{r.Journal, r.BookTitle, r.Series, r.Type, r.Publisher}
}

func (r Record) locationFields() []string {
	return []string{r.PlaceName, r.Address}
}

// Venue returns the first non-empty venue field.
func (r Record) Venue() string {
	return FirstNonEmpty(r.venueFields()...)
}

// Location returns the first non-empty location field.
func (r Record) Location() string {
	return FirstNonEmpty(r.locationFields()...)
}

// Authors returns the normalized "First Last" author list.
func (r Record) Authors() []string {
	return ParseAuthors(r.AuthorsRaw)
}

// FirstAuthor returns the first normalized author, or "".
func (r Record) FirstAuthor() string {
	authors := r.Authors()
	if len(authors) == 0 {
		return ""
	}
	return authors[0]
}

// Keywords returns the keyword tokens in source order.
func (r Record) Keywords() []string {
	return SplitKeywords(r.KeywordsRaw)
}

// DisplayTitle returns the title, or "Untitled" when it is blank.
func (r Record) DisplayTitle() string {
	if r.Title == "" {
		return "Untitled"
	}
	return r.Title
}

// IsFeatured reports whether the record belongs on the featured list.
// A non-empty price is the legacy way of marking a featured publication.
func (r Record) IsFeatured() bool {
	return r.Price != "" || r.Featured
}

// DedupKey identifies near-duplicate entries: the normalized title joined
// with the canonical item type.
func (r Record) DedupKey() string {
	return NormalizeTitle(r.Title) + "|" + NormalizeType(r.ItemType)
}
