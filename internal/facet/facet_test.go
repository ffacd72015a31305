package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitlab/pubs/internal/publication"
)

func sample() []publication.Record {
	return []publication.Record{
		{Title: "One", ItemType: "article", Year: 2020, KeywordsRaw: "nlp, ml", AuthorsRaw: "Smith, Jane"},
		{Title: "Two", ItemType: "inproceedings", Year: 2022, KeywordsRaw: "Vision", AuthorsRaw: "Émile Zola and adam Ant"},
		{Title: "Three", ItemType: "misc", KeywordsRaw: "deep learning;nlp", AuthorsRaw: "Bob Lee"},
		{Title: "Four", ItemType: "phdthesis", Year: 2021},
	}
}

func TestBuild_Years(t *testing.T) {
	idx := Build(sample())
	assert.Equal(t, []string{"2022", "2021", "2020"}, idx.Values(Years))
}

func TestBuild_YearsNumericNotLexical(t *testing.T) {
	idx := Build([]publication.Record{{Year: 999}, {Year: 2001}, {Year: 10000}})
	assert.Equal(t, []string{"10000", "2001", "999"}, idx.Values(Years))
}

func TestBuild_KeywordsCollated(t *testing.T) {
	idx := Build(sample())
	// Byte order would put "Vision" first.
	assert.Equal(t, []string{"deep learning", "ml", "nlp", "Vision"}, idx.Values(Keywords))
}

func TestBuild_AuthorsCollated(t *testing.T) {
	idx := Build(sample())
	assert.Equal(t, []string{"adam Ant", "Bob Lee", "Émile Zola", "Jane Smith"}, idx.Values(Authors))
}

func TestBuild_TypesSortedByLabel(t *testing.T) {
	idx := Build(sample())
	// Conference Pub, Journal Article, Other, PhD Thesis
	assert.Equal(t, []string{"inproceedings", "article", "misc", "phdthesis"}, idx.Values(Types))
}

func TestBuild_EveryValueHasProducer(t *testing.T) {
	records := sample()
	idx := Build(records)

	for _, name := range All {
		for _, v := range idx.Values(name) {
			found := false
			for _, r := range records {
				for _, rv := range ValuesOf(r, name) {
					if rv == v {
						found = true
					}
				}
			}
			assert.True(t, found, "facet %s value %q has no producing record", name, v)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	idx := Build(nil)
	for _, name := range All {
		assert.Empty(t, idx.Values(name))
	}
}

func TestParseName(t *testing.T) {
	for in, want := range map[string]Name{"years": Years, "Year": Years, "keyword": Keywords, "authors": Authors, " type ": Types} {
		got, err := ParseName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseName("venue")
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Journal Article", Label(Types, "article"))
	assert.Equal(t, "nlp", Label(Keywords, "nlp"))
}

func TestContains(t *testing.T) {
	idx := Build(sample())
	assert.True(t, idx.Contains(Years, "2021"))
	assert.False(t, idx.Contains(Years, "1999"))
}
