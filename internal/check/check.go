// Package check reports integrity problems in a publication collection:
// missing local assets, colliding citation keys, shared DOIs and DOIs that
// the linked PDFs reveal.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/commitlab/pubs/internal/pdf"
	"github.com/commitlab/pubs/internal/publication"
	"github.com/commitlab/pubs/internal/storage"
)

// Kind classifies an issue.
type Kind string

const (
	MissingAsset Kind = "missing_asset"
	KeyCollision Kind = "key_collision"
	DOICollision Kind = "doi_collision"
	DOIFound     Kind = "doi_found"
	DOIMismatch  Kind = "doi_mismatch"
)

// Severity of an issue. Only warnings make a check fail.
type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
)

// Issue is one finding.
type Issue struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title,omitempty"`
	Value    string   `json:"value"`
	Detail   string   `json:"detail,omitempty"`
}

// Report is the result of a check run.
type Report struct {
	Checked int     `json:"checked"`
	Issues  []Issue `json:"issues"`
}

// Warnings counts issues of Warning severity.
func (r *Report) Warnings() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == Warning {
			n++
		}
	}
	return n
}

// CollisionSource finds values shared between records.
type CollisionSource interface {
	CitationKeyCollisions() ([]storage.Collision, error)
	DOICollisions() ([]storage.Collision, error)
}

// Checker runs integrity checks against a site directory.
type Checker struct {
	opener     *pdf.Opener
	scanPDFs   bool
	extractDOI func(path string) (string, error)
	logger     zerolog.Logger
}

// New returns a checker for the site at siteRoot. When scanPDFs is set,
// local PDFs are read for DOIs.
func New(siteRoot string, scanPDFs bool, logger zerolog.Logger) *Checker {
	return &Checker{
		opener:     pdf.NewOpener(siteRoot),
		scanPDFs:   scanPDFs,
		extractDOI: pdf.ExtractDOI,
		logger:     logger,
	}
}

// Run checks records, which should be the deduplicated collection, and the
// collisions reported by src.
func (c *Checker) Run(records []publication.Record, src CollisionSource) (*Report, error) {
	report := &Report{Checked: len(records), Issues: []Issue{}}

	for _, rec := range records {
		report.Issues = append(report.Issues, c.checkAssets(rec)...)
	}

	keys, err := src.CitationKeyCollisions()
	if err != nil {
		return nil, fmt.Errorf("finding key collisions: %w", err)
	}
	for _, col := range keys {
		report.Issues = append(report.Issues, Issue{
			Kind:     KeyCollision,
			Severity: Info,
			Value:    col.Value,
			Detail:   "shared by: " + strings.Join(col.Titles, "; "),
		})
	}

	dois, err := src.DOICollisions()
	if err != nil {
		return nil, fmt.Errorf("finding DOI collisions: %w", err)
	}
	for _, col := range dois {
		report.Issues = append(report.Issues, Issue{
			Kind:     DOICollision,
			Severity: Warning,
			Value:    col.Value,
			Detail:   "shared by: " + strings.Join(col.Titles, "; "),
		})
	}

	c.logger.Debug().
		Int("records", report.Checked).
		Int("issues", len(report.Issues)).
		Msg("check complete")
	return report, nil
}

func (c *Checker) checkAssets(rec publication.Record) []Issue {
	var issues []Issue
	for _, link := range []string{rec.URL, rec.Slides} {
		if link == "" {
			continue
		}
		path, err := c.opener.LocalPath(link)
		if errors.Is(err, pdf.ErrRemoteAsset) {
			continue
		}
		if errors.Is(err, pdf.ErrOutsideSite) {
			issues = append(issues, Issue{
				Kind:     MissingAsset,
				Severity: Warning,
				Title:    rec.DisplayTitle(),
				Value:    link,
				Detail:   "outside site root",
			})
			continue
		}
		if err != nil {
			c.logger.Debug().Err(err).Str("link", link).Msg("unresolvable link")
			continue
		}
		if _, err := os.Stat(path); err != nil {
			issues = append(issues, Issue{
				Kind:     MissingAsset,
				Severity: Warning,
				Title:    rec.DisplayTitle(),
				Value:    link,
				Detail:   path,
			})
			continue
		}
		if c.scanPDFs && link == rec.URL && strings.EqualFold(filepath.Ext(path), ".pdf") {
			if is, ok := c.checkDOI(rec, path); ok {
				issues = append(issues, is)
			}
		}
	}
	return issues
}

func (c *Checker) checkDOI(rec publication.Record, path string) (Issue, bool) {
	found, err := c.extractDOI(path)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("reading PDF")
		return Issue{}, false
	}
	if found == "" {
		return Issue{}, false
	}
	switch {
	case rec.DOI == "":
		return Issue{Kind: DOIFound, Severity: Info, Title: rec.DisplayTitle(), Value: found, Detail: path}, true
	case !strings.EqualFold(strings.TrimSpace(rec.DOI), found):
		return Issue{
			Kind:     DOIMismatch,
			Severity: Warning,
			Title:    rec.DisplayTitle(),
			Value:    found,
			Detail:   "record has " + rec.DOI,
		}, true
	}
	return Issue{}, false
}
