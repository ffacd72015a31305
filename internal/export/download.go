package export

import (
	"errors"

	"github.com/commitlab/pubs/internal/present"
	"github.com/commitlab/pubs/internal/publication"
)

const (
	// DefaultFilename is the base name of a batch export.
	DefaultFilename = "commit-publications.bib"
	// MIMEType is the content type of every export.
	MIMEType = "text/plain"
)

// ErrNothingToExport is returned when the visible set is empty.
var ErrNothingToExport = errors.New("nothing to export: no publications match the current filters")

// Download is an export ready to be handed to the user.
type Download struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Count    int    `json:"count"`
	Content  string `json:"content"`
}

// ExportGroups serializes the grouped view. An empty filename falls back to
// DefaultFilename.
func ExportGroups(groups []present.Group, filename string) (*Download, error) {
	return ExportRecords(present.Flatten(groups), filename)
}

// ExportRecords serializes records in the given order. An empty filename
// falls back to DefaultFilename.
func ExportRecords(records []publication.Record, filename string) (*Download, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}
	if filename == "" {
		filename = DefaultFilename
	}
	return &Download{
		Filename: filename,
		MIMEType: MIMEType,
		Count:    len(records),
		Content:  ToBibTeXList(records),
	}, nil
}

// ExportRecord serializes a single record as <key>.bib.
func ExportRecord(r publication.Record) *Download {
	return &Download{
		Filename: CitationKey(r) + ".bib",
		MIMEType: MIMEType,
		Count:    1,
		Content:  ToBibTeX(r),
	}
}
