// Package session is the browsing view model: it owns the deduplicated
// collection, its facet index and the live filter state, and recomputes the
// full view after every action.
package session

import (
	"github.com/rs/zerolog"

	"github.com/commitlab/pubs/internal/dedupe"
	"github.com/commitlab/pubs/internal/export"
	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/present"
	"github.com/commitlab/pubs/internal/publication"
)

// View is everything a renderer needs after one recompute.
type View struct {
	Query    string               `json:"query"`
	SortKey  present.SortKey      `json:"sort_key"`
	SortDesc bool                 `json:"sort_desc"`
	Groups   []present.Group      `json:"groups"`
	Facets   []filter.FacetCounts `json:"facets"`
	Total    int                  `json:"total"`
	Shown    int                  `json:"shown"`
}

// Session holds one browsing session. It is not safe for concurrent use;
// actions are expected to arrive one at a time.
type Session struct {
	records        []publication.Record
	index          *facet.Index
	state          *filter.State
	exportFilename string
	logger         zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithExportFilename sets the batch export file name.
func WithExportFilename(name string) Option {
	return func(s *Session) { s.exportFilename = name }
}

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// New deduplicates records, builds the facet index once and adopts state.
// A nil state starts empty.
func New(records []publication.Record, state *filter.State, opts ...Option) *Session {
	s := &Session{
		state:  state,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state == nil {
		s.state = filter.NewState()
	}
	s.state.Normalize()

	s.records = dedupe.Deduplicate(records)
	s.index = facet.Build(s.records)

	s.logger.Debug().
		Int("input", len(records)).
		Int("unique", len(s.records)).
		Msg("session loaded")
	return s
}

// Records returns the deduplicated collection in source order.
func (s *Session) Records() []publication.Record {
	return s.records
}

// Index returns the facet index built at load.
func (s *Session) Index() *facet.Index {
	return s.index
}

// State returns the live filter state.
func (s *Session) State() *filter.State {
	return s.state
}

// Visible returns the records passing every active filter, ungrouped.
func (s *Session) Visible() []publication.Record {
	return filter.Visible(s.records, s.state, filter.NoExclude)
}

// View recomputes the grouped result and facet counts from scratch.
func (s *Session) View() View {
	visible := s.Visible()
	return View{
		Query:    s.state.Query,
		SortKey:  s.state.SortKey,
		SortDesc: s.state.SortDesc,
		Groups:   present.GroupByYear(visible, s.state.SortKey, s.state.SortDesc),
		Facets:   filter.Counts(s.records, s.index, s.state),
		Total:    len(s.records),
		Shown:    len(visible),
	}
}

// Toggle flips one facet value and returns the new view.
func (s *Session) Toggle(name facet.Name, value string) View {
	on := s.state.Toggle(name, value)
	s.logger.Debug().Str("facet", string(name)).Str("value", value).Bool("selected", on).Msg("toggle")
	return s.View()
}

// SetQuery replaces the title query and returns the new view.
func (s *Session) SetQuery(q string) View {
	s.state.SetQuery(q)
	return s.View()
}

// SetSort replaces the sort key and direction and returns the new view.
func (s *Session) SetSort(key present.SortKey, desc bool) View {
	s.state.SetSort(key, desc)
	return s.View()
}

// Clear drops every selection and the query and returns the new view.
func (s *Session) Clear() View {
	s.state.Clear()
	return s.View()
}

// Export serializes the visible records in display order.
func (s *Session) Export() (*export.Download, error) {
	v := s.View()
	return export.ExportGroups(v.Groups, s.exportFilename)
}

// Featured returns the featured list, newest first. It ignores filters.
func (s *Session) Featured() []publication.Record {
	return present.Featured(s.records)
}
