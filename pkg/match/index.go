package match

import (
	"sort"

	"github.com/agentstation/servicemap/pkg/constants"
)

// Result is a ranked fuzzy match.
type Result[T any] struct {
	Item  T       `json:"item" yaml:"item"`
	Index int     `json:"index" yaml:"index"` // position in the candidate slice
	Score float64 `json:"score" yaml:"score"` // similarity in [0, 1], higher is closer
}

// Option configures an Index.
type Option func(*options)

type options struct {
	minSimilarity    float64
	locationDistance int
}

// WithMinSimilarity sets the minimum similarity a candidate needs to be returned.
func WithMinSimilarity(v float64) Option {
	return func(o *options) {
		if v >= 0 && v <= 1 {
			o.minSimilarity = v
		}
	}
}

// WithLocationDistance sets how strongly late matches are penalized.
// Zero disables the location penalty.
func WithLocationDistance(d int) Option {
	return func(o *options) {
		if d >= 0 {
			o.locationDistance = d
		}
	}
}

// Index holds pre-normalized candidate keys so a reference collection is
// prepared once and reused across lookups. An Index is immutable after
// construction and safe for concurrent use.
type Index[T any] struct {
	items []T
	keys  [][]rune
	opts  options
}

// NewIndex builds an index over items using key to extract the matched text.
func NewIndex[T any](items []T, key func(T) string, opts ...Option) *Index[T] {
	o := options{
		minSimilarity:    DefaultMinSimilarity,
		locationDistance: constants.DefaultLocationDistance,
	}
	for _, opt := range opts {
		opt(&o)
	}

	idx := &Index[T]{
		items: make([]T, len(items)),
		keys:  make([][]rune, len(items)),
		opts:  o,
	}
	copy(idx.items, items)
	for i, item := range items {
		idx.keys[i] = []rune(Normalize(key(item)))
	}
	return idx
}

// Len returns the number of candidates in the index.
func (idx *Index[T]) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.items)
}

// MinSimilarity returns the threshold the index was built with.
func (idx *Index[T]) MinSimilarity() float64 {
	return idx.opts.minSimilarity
}

// Find returns candidates scoring at or above the minimum similarity, best
// first. Ties keep input order. A limit <= 0 returns every match.
func (idx *Index[T]) Find(query string, limit int) []Result[T] {
	if idx.Len() == 0 {
		return nil
	}
	q := []rune(Normalize(query))
	if len(q) == 0 {
		return nil
	}

	var results []Result[T]
	for i, key := range idx.keys {
		score := similarity(q, key, idx.opts.locationDistance)
		if score <= 0 || score < idx.opts.minSimilarity {
			continue
		}
		results = append(results, Result[T]{Item: idx.items[i], Index: i, Score: score})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Best returns the single best candidate, if any clears the threshold.
func (idx *Index[T]) Best(query string) (Result[T], bool) {
	results := idx.Find(query, 1)
	if len(results) == 0 {
		return Result[T]{}, false
	}
	return results[0], true
}

// Find ranks items against query without keeping an index around.
// Callers matching many queries against the same items should use NewIndex.
func Find[T any](query string, items []T, key func(T) string, minSimilarity float64, limit int) []Result[T] {
	return NewIndex(items, key, WithMinSimilarity(minSimilarity)).Find(query, limit)
}
