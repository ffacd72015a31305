package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitlab/pubs/internal/export"
	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/present"
	"github.com/commitlab/pubs/internal/publication"
)

func collection() []publication.Record {
	return []publication.Record{
		{Title: "First", ItemType: "article", Year: 2021, KeywordsRaw: "nlp,ml"},
		{Title: "Second", ItemType: "article", Year: 2020, KeywordsRaw: "nlp"},
		{Title: "Third", ItemType: "misc", Year: 2021, KeywordsRaw: "ml"},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedApp(t *testing.T, opts Options) *App {
	t.Helper()
	opts.Load = func() ([]publication.Record, error) { return collection(), nil }
	a := NewApp(opts)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	msg := a.load()()
	a.Update(msg)
	require.False(t, a.loading)
	return a
}

func TestApp_Load(t *testing.T) {
	a := loadedApp(t, Options{})
	assert.Equal(t, 3, a.view.Total)
	assert.Equal(t, 3, a.view.Shown)
	assert.Contains(t, a.View(), "3 of 3 shown")
}

func TestApp_LoadError(t *testing.T) {
	a := NewApp(Options{Load: func() ([]publication.Record, error) {
		return nil, errors.New("connection refused")
	}})
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a.Update(a.load()())

	assert.False(t, a.loading)
	assert.Equal(t, 0, a.view.Total)
	assert.Contains(t, a.View(), "Could not load publications: connection refused")
}

func TestApp_ToggleFacetValue(t *testing.T) {
	var saved *filter.State
	a := loadedApp(t, Options{SaveState: func(s *filter.State) error {
		saved = s
		return nil
	}})

	// Years facet, first value is the newest year.
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, a.sess.State().IsSelected(facet.Years, "2021"))
	assert.Equal(t, 2, a.view.Shown)
	require.NotNil(t, saved)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, a.sess.State().IsSelected(facet.Years, "2021"))
	assert.Equal(t, 3, a.view.Shown)
}

func TestApp_DisabledValueCannotBeSelected(t *testing.T) {
	a := loadedApp(t, Options{})

	// Only 2020 left, which carries no "ml" keyword.
	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, a.sess.State().IsSelected(facet.Years, "2020"))
	assert.Contains(t, a.View(), "1 of 3 shown, ")
	assert.Contains(t, a.View(), "filtered")

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	vc, ok := a.currentValue()
	require.True(t, ok)
	require.Equal(t, "ml", vc.Value)
	require.True(t, vc.Disabled)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, a.sess.State().IsSelected(facet.Keywords, "ml"))
	assert.Equal(t, 1, a.view.Shown)
	assert.Contains(t, a.status, "ml matches nothing")

	// Selected values stay enabled and can be cleared.
	a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, a.sess.State().IsSelected(facet.Years, "2020"))
	assert.Equal(t, 3, a.view.Shown)
}

func TestApp_FacetNavigation(t *testing.T) {
	a := loadedApp(t, Options{})

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, facet.Keywords, a.currentFacet())

	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a.Update(tea.KeyMsg{Type: tea.KeyDown}) // clamped at the last value
	vc, ok := a.currentValue()
	require.True(t, ok)
	assert.Equal(t, "nlp", vc.Value)

	a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, facet.Years, a.currentFacet())
}

func TestApp_Query(t *testing.T) {
	a := loadedApp(t, Options{})

	a.Update(runes("/"))
	require.Equal(t, focusQuery, a.focus)
	a.Update(runes("s"))
	a.Update(runes("e"))
	a.Update(runes("c"))

	assert.Equal(t, "sec", a.sess.State().Query)
	assert.Equal(t, 1, a.view.Shown)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusFacets, a.focus)

	a.Update(runes("c"))
	assert.Equal(t, "", a.sess.State().Query)
	assert.Equal(t, "", a.query.Value())
	assert.Equal(t, 3, a.view.Shown)
}

func TestApp_Sort(t *testing.T) {
	a := loadedApp(t, Options{})

	a.Update(runes("s"))
	assert.Equal(t, present.SortTitle, a.view.SortKey)
	a.Update(runes("d"))
	assert.True(t, a.view.SortDesc)
	assert.Equal(t, "Third", a.view.Groups[0].Records[0].Title)
}

func TestApp_Export(t *testing.T) {
	var got *export.Download
	a := loadedApp(t, Options{
		ExportFilename: "lab.bib",
		SaveExport: func(dl *export.Download) (string, error) {
			got = dl
			return "/tmp/" + dl.Filename, nil
		},
	})

	a.Update(runes("e"))
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Count)
	assert.Contains(t, a.status, "Exported 3 entries to /tmp/lab.bib")

	got = nil
	a.Update(runes("/"))
	a.Update(runes("zzz"))
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(runes("e"))
	assert.Nil(t, got)
	assert.Contains(t, a.status, "Nothing to export")
}

func TestApp_Copy(t *testing.T) {
	var copied string
	a := loadedApp(t, Options{Copy: func(s string) error {
		copied = s
		return nil
	}})

	a.Update(runes("y"))
	assert.True(t, strings.HasPrefix(copied, "@article{first2021,"), copied)
	assert.Contains(t, a.status, "Copied 3 entries")

	b := loadedApp(t, Options{})
	b.Update(runes("y"))
	assert.Contains(t, b.status, "clipboard is not available")
}

func TestApp_Quit(t *testing.T) {
	a := loadedApp(t, Options{})
	_, cmd := a.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, a.quitting)
	assert.Equal(t, "", a.View())
}

func TestRenderGroups(t *testing.T) {
	groups := present.GroupByYear([]publication.Record{
		{Title: "Alpha", Year: 2020, AuthorsRaw: "Smith, Jane", URL: "http://x.edu/commit/papers/a.pdf"},
		{Title: "Undated"},
	}, present.SortNone, false)

	out := renderGroups(groups, 100)
	assert.Contains(t, out, "2020 (1)")
	assert.Contains(t, out, "Jane Smith")
	assert.Contains(t, out, "[pdf] papers/a.pdf")
	assert.Less(t, strings.Index(out, "2020"), strings.Index(out, "Other (1)"))

	assert.Contains(t, renderGroups(nil, 100), "No publications match")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
