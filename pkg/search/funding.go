package search

import (
	"strings"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/match"
)

// FundingQuery filters the funding source catalog.
type FundingQuery struct {
	Term               string `json:"term,omitempty" yaml:"term,omitempty"`
	ClassificationType string `json:"classification_type,omitempty" yaml:"classification_type,omitempty"`
	EntryCategory      string `json:"entry_category,omitempty" yaml:"entry_category,omitempty"`
}

// FundingFilterOptions holds the option lists of the funding filters.
type FundingFilterOptions struct {
	ClassificationTypes []string `json:"classification_types" yaml:"classification_types"`
	EntryCategories     []string `json:"entry_categories" yaml:"entry_categories"`
}

// FilterFunding returns the sources matching q in input order. The term is
// matched against the funding source text only. Filters require an exact
// classification type or entry category.
func FilterFunding(sources []catalogs.FundingSource, q FundingQuery) []catalogs.FundingSource {
	term := match.Normalize(q.Term)
	out := make([]catalogs.FundingSource, 0, len(sources))
	for _, src := range sources {
		if IsActive(q.ClassificationType) && !hasClassificationType(src, q.ClassificationType) {
			continue
		}
		if IsActive(q.EntryCategory) && !hasEntryCategory(src, q.EntryCategory) {
			continue
		}
		if term != "" && !strings.Contains(match.Normalize(src.Text), term) {
			continue
		}
		out = append(out, src)
	}
	return out
}

// FundingFacets collects the classification types and entry categories of sources.
func FundingFacets(sources []catalogs.FundingSource) FundingFilterOptions {
	types, cats := newValueSet(), newValueSet()
	for _, src := range sources {
		for _, c := range src.Classifications {
			types.add(c.Type)
		}
		for _, e := range src.EntryCategories {
			cats.add(e.Text)
		}
	}
	return FundingFilterOptions{ClassificationTypes: types.values, EntryCategories: cats.values}
}

func hasClassificationType(src catalogs.FundingSource, typ string) bool {
	for _, c := range src.Classifications {
		if c.Type == typ {
			return true
		}
	}
	return false
}

func hasEntryCategory(src catalogs.FundingSource, text string) bool {
	for _, e := range src.EntryCategories {
		if e.Text == text {
			return true
		}
	}
	return false
}
