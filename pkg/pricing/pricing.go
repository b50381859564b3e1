// Package pricing resolves an indicative price for a service leaf using a
// fixed fallback chain over the price table: exact service-level, exact
// type-level, fuzzy service-level, fuzzy type-level.
package pricing

import (
	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/match"
)

// MatchType identifies the tier that produced a price match.
type MatchType string

// Resolution tiers in precedence order.
const (
	ExactL3 MatchType = "ExactL3"
	ExactL2 MatchType = "ExactL2"
	FuzzyL3 MatchType = "FuzzyL3"
	FuzzyL2 MatchType = "FuzzyL2"
)

// Label returns the display label of the tier, e.g. "Exact (L3)".
func (t MatchType) Label() string {
	switch t {
	case ExactL3:
		return "Exact (L3)"
	case ExactL2:
		return "Exact (L2)"
	case FuzzyL3:
		return "Fuzzy (L3)"
	case FuzzyL2:
		return "Fuzzy (L2)"
	default:
		return string(t)
	}
}

// IsFuzzy reports whether the tier is approximate.
func (t MatchType) IsFuzzy() bool {
	return t == FuzzyL3 || t == FuzzyL2
}

// Match is a resolved price. Similarity is only set for fuzzy tiers.
type Match struct {
	Service    string    `json:"service" yaml:"service"`
	Unit       string    `json:"unit" yaml:"unit"`
	Median     float64   `json:"median" yaml:"median"`
	Min        float64   `json:"min" yaml:"min"`
	Max        float64   `json:"max" yaml:"max"`
	Level      int       `json:"level" yaml:"level"`
	MatchType  MatchType `json:"match_type" yaml:"match_type"`
	Similarity *float64  `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

// Option configures a Resolver.
type Option func(*config)

type config struct {
	minSimilarity float64
}

// WithMinSimilarity sets the threshold for the fuzzy tiers.
func WithMinSimilarity(v float64) Option {
	return func(c *config) {
		if v >= 0 && v <= 1 {
			c.minSimilarity = v
		}
	}
}

// Resolver indexes a price table by level once and answers lookups without
// further allocation of indexes. It is immutable and safe for concurrent use.
type Resolver struct {
	exact3 map[string]catalogs.Price
	exact2 map[string]catalogs.Price
	fuzzy3 *match.Index[catalogs.Price]
	fuzzy2 *match.Index[catalogs.Price]
}

// NewResolver builds a Resolver over prices. Exact lookups compare names
// ignoring case and surrounding whitespace and keep the first row for a
// name. Rows with a level other than 2 or 3 are
// ignored.
func NewResolver(prices []catalogs.Price, opts ...Option) *Resolver {
	cfg := config{minSimilarity: match.DefaultMinSimilarity}
	for _, opt := range opts {
		opt(&cfg)
	}

	var level3, level2 []catalogs.Price
	r := &Resolver{
		exact3: make(map[string]catalogs.Price),
		exact2: make(map[string]catalogs.Price),
	}
	for _, p := range prices {
		key := match.Fold(p.Service)
		switch p.Level {
		case catalogs.LevelService:
			level3 = append(level3, p)
			if _, ok := r.exact3[key]; !ok && key != "" {
				r.exact3[key] = p
			}
		case catalogs.LevelType:
			level2 = append(level2, p)
			if _, ok := r.exact2[key]; !ok && key != "" {
				r.exact2[key] = p
			}
		}
	}
	r.fuzzy3 = match.NewIndex(level3, priceService, match.WithMinSimilarity(cfg.minSimilarity))
	r.fuzzy2 = match.NewIndex(level2, priceService, match.WithMinSimilarity(cfg.minSimilarity))
	return r
}

func priceService(p catalogs.Price) string {
	return p.Service
}

// Resolve resolves the price of a service leaf. It reports false when the
// node is not a service leaf or no tier matches.
func (r *Resolver) Resolve(leaf *hierarchy.Node) (Match, bool) {
	if !leaf.IsLeaf() || leaf.Meta == nil {
		return Match{}, false
	}
	svc := leaf.Meta.Service
	if svc.Text == "" {
		svc.Text = leaf.Name
	}
	return r.ResolveService(svc)
}

// ResolveService resolves the price of a service record.
func (r *Resolver) ResolveService(svc catalogs.Service) (Match, bool) {
	if r == nil {
		return Match{}, false
	}
	name, typeName := match.Fold(svc.Text), match.Fold(svc.TypeText)

	if p, ok := r.exact3[name]; ok && name != "" {
		return newMatch(p, ExactL3, nil), true
	}
	if p, ok := r.exact2[typeName]; ok && typeName != "" {
		return newMatch(p, ExactL2, nil), true
	}
	if res, ok := r.fuzzy3.Best(svc.Text); ok {
		return newMatch(res.Item, FuzzyL3, &res.Score), true
	}
	if res, ok := r.fuzzy2.Best(svc.TypeText); ok {
		return newMatch(res.Item, FuzzyL2, &res.Score), true
	}
	return Match{}, false
}

func newMatch(p catalogs.Price, t MatchType, similarity *float64) Match {
	return Match{
		Service:    p.Service,
		Unit:       p.Unit,
		Median:     p.Median,
		Min:        p.Min,
		Max:        p.Max,
		Level:      p.Level,
		MatchType:  t,
		Similarity: similarity,
	}
}
