package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"  Domestic   Assistance ", "domestic assistance"},
		{"Café Crème", "cafe creme"},
		{"STRASSE", "strasse"},
		{"tab\tand\nnewline", "tab and newline"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Domestic Assistance", "domestic assistance"))
	assert.True(t, Equal(" Nursing care", "NURSING CARE  "))
	assert.False(t, Equal("Nursing", "Nursing care"))
	assert.False(t, Equal("", ""))
	assert.False(t, Equal("   ", ""))
	assert.False(t, Equal("Domestic  Assistance", "Domestic Assistance"))
	assert.False(t, Equal("Café", "Cafe"))
	assert.Equal(t, "domestic  assistance", Fold("  Domestic  ASSISTANCE\t"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Clinical Care Supports", "clinical care"))
	assert.True(t, Contains("Clinical Care Supports", "Supports"))
	assert.False(t, Contains("Clinical", "Clinical Care"))
	assert.False(t, Contains("Clinical Care", ""))
	assert.False(t, Contains("", "Clinical"))
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   float64
	}{
		{"exact", "Domestic Assistance", "Domestic Assistance", 1},
		{"case insensitive", "domestic assistance", "DOMESTIC ASSISTANCE", 1},
		{"prefix substring", "Domestic", "Domestic assistance coordination", 1},
		{"late substring", "care", "Nursing care", 0.92},
		{"two edits", "kitten", "sitting", 1 - 2.0/6.0},
		{"diacritics", "Café", "cafe", 1},
		{"empty query", "", "anything", 0},
		{"empty target", "anything", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.query, tt.target), 1e-9)
		})
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"xyz", "abc"},
		{"a much longer query than target", "abc"},
		{"abc", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzabc"},
	}
	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
	assert.Equal(t, 0.0, Similarity("xyz", "abc"))
}

type candidate struct {
	name string
}

func candidateName(c candidate) string { return c.name }

func TestIndex_Find(t *testing.T) {
	items := []candidate{
		{"Gym membership"},
		{"Nursing care coordination"},
		{"Nursing care"},
		{"Care plan review"},
	}
	idx := NewIndex(items, candidateName)
	require.Equal(t, 4, idx.Len())
	assert.Equal(t, DefaultMinSimilarity, idx.MinSimilarity())

	results := idx.Find("nursing care", 0)
	require.Len(t, results, 2)
	// Ties keep input order.
	assert.Equal(t, "Nursing care coordination", results[0].Item.name)
	assert.Equal(t, 1, results[0].Index)
	assert.Equal(t, "Nursing care", results[1].Item.name)
	assert.Equal(t, 1.0, results[0].Score)

	limited := idx.Find("nursing care", 1)
	require.Len(t, limited, 1)
	assert.Equal(t, 1, limited[0].Index)

	assert.Empty(t, idx.Find("", 3))
	assert.Empty(t, idx.Find("xyz-nomatch-000", 3))
}

func TestIndex_FindOrdersByScore(t *testing.T) {
	items := []candidate{
		{"Home nursing visit"},
		{"Nursing"},
	}
	results := NewIndex(items, candidateName).Find("nursing", 0)
	require.Len(t, results, 2)
	assert.Equal(t, "Nursing", results[0].Item.name)
	assert.InDelta(t, 1-5.0/100, results[1].Score, 1e-9)
}

func TestIndex_Options(t *testing.T) {
	items := []candidate{{"Nursing care"}}

	strict := NewIndex(items, candidateName, WithMinSimilarity(0.95))
	assert.Empty(t, strict.Find("care", 0))

	noLocation := NewIndex(items, candidateName, WithLocationDistance(0), WithMinSimilarity(0.95))
	results := noLocation.Find("care", 0)
	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].Score)

	// Out of range values are ignored.
	ignored := NewIndex(items, candidateName, WithMinSimilarity(2), WithLocationDistance(-1))
	assert.Equal(t, DefaultMinSimilarity, ignored.MinSimilarity())
}

func TestIndex_Best(t *testing.T) {
	idx := NewIndex([]string{"Meal services", "Nursing care"}, func(s string) string { return s })

	best, ok := idx.Best("Meals")
	require.True(t, ok)
	assert.Equal(t, "Meal services", best.Item)
	assert.InDelta(t, 0.8, best.Score, 1e-9)

	_, ok = idx.Best("xyz-nomatch-000")
	assert.False(t, ok)

	var empty *Index[string]
	assert.Equal(t, 0, empty.Len())
}

func TestFind(t *testing.T) {
	items := []string{"Physiotherapy session", "Gym membership"}
	results := Find("physiotherapy", items, func(s string) string { return s }, DefaultMinSimilarity, 3)
	require.Len(t, results, 1)
	assert.Equal(t, "Physiotherapy session", results[0].Item)
}

func TestIndex_CopiesItems(t *testing.T) {
	items := []string{"Nursing care"}
	idx := NewIndex(items, func(s string) string { return s })
	items[0] = "changed"

	best, ok := idx.Best("nursing care")
	require.True(t, ok)
	assert.Equal(t, "Nursing care", best.Item)
}
