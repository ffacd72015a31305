package session

import (
	"testing"

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

func titles(v View) []string {
	var out []string
	for _, r := range present.Flatten(v.Groups) {
		out = append(out, r.Title)
	}
	return out
}

func TestToggle_KeywordAndYear(t *testing.T) {
	s := New(collection(), nil)

	s.Toggle(facet.Keywords, "nlp")
	v := s.Toggle(facet.Years, "2021")

	assert.Equal(t, []string{"First"}, titles(v))
	assert.Equal(t, 3, v.Total)
	assert.Equal(t, 1, v.Shown)
}

func TestNew_Deduplicates(t *testing.T) {
	records := []publication.Record{
		{Title: "A Study", ItemType: "article", Year: 2020, URL: "http://x.edu/commit/papers/a.pdf"},
		{Title: "A Study", ItemType: "article", Year: 2020},
	}
	s := New(records, nil)

	require.Len(t, s.Records(), 1)
	assert.Equal(t, "papers/a.pdf", export.LocalizeAssetURL(s.Records()[0].URL))
}

func TestView_FacetCountsRecomputed(t *testing.T) {
	s := New(collection(), nil)
	v := s.Toggle(facet.Types, "misc")

	var keywords filter.FacetCounts
	for _, fc := range v.Facets {
		if fc.Name == facet.Keywords {
			keywords = fc
		}
	}
	require.NotEmpty(t, keywords.Values)
	for _, vc := range keywords.Values {
		switch vc.Value {
		case "ml":
			assert.Equal(t, 1, vc.Count)
		case "nlp":
			assert.Equal(t, 0, vc.Count)
			assert.True(t, vc.Disabled)
		}
	}
}

func TestSetQueryAndClear(t *testing.T) {
	s := New(collection(), nil)

	v := s.SetQuery("  SEC ")
	assert.Equal(t, []string{"Second"}, titles(v))

	s.Toggle(facet.Years, "2021")
	v = s.SetSort(present.SortTitle, true)
	assert.Empty(t, titles(v))

	v = s.Clear()
	assert.Equal(t, 3, v.Shown)
	assert.Equal(t, present.SortTitle, v.SortKey, "clear keeps sorting")
	assert.True(t, v.SortDesc)
	assert.Equal(t, []string{"Third", "First", "Second"}, titles(v))
}

func TestExport(t *testing.T) {
	s := New(collection(), nil, WithExportFilename("lab.bib"))
	s.SetSort(present.SortTitle, false)

	dl, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "lab.bib", dl.Filename)
	assert.Equal(t, 3, dl.Count)
	assert.Equal(t, export.ToBibTeXList(present.Flatten(s.View().Groups)), dl.Content)

	s.SetQuery("nothing matches this")
	_, err = s.Export()
	assert.ErrorIs(t, err, export.ErrNothingToExport)
}

func TestNew_AdoptsSavedState(t *testing.T) {
	state := filter.NewState()
	state.Toggle(facet.Keywords, "ml")
	state.SetSort(present.SortTitle, false)

	s := New(collection(), state)
	assert.Equal(t, []string{"First", "Third"}, titles(s.View()))
	assert.Same(t, state, s.State())
}

func TestFeatured(t *testing.T) {
	records := []publication.Record{
		{Title: "Old", Year: 2010, Price: "Best Paper"},
		{Title: "Plain", Year: 2022},
		{Title: "New", Year: 2020, Featured: true},
	}
	s := New(records, nil)
	s.SetQuery("zzz")

	var got []string
	for _, r := range s.Featured() {
		got = append(got, r.Title)
	}
	assert.Equal(t, []string{"New", "Old"}, got)
}

func TestNew_EmptyCollection(t *testing.T) {
	s := New(nil, nil)
	v := s.View()
	assert.Equal(t, 0, v.Total)
	assert.Empty(t, v.Groups)
	_, err := s.Export()
	assert.ErrorIs(t, err, export.ErrNothingToExport)
}
