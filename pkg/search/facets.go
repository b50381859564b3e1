package search

import (
	"fmt"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/hierarchy"
)

// Facets holds the selectable values of each filter field. Every list
// starts with "All" followed by the distinct non-empty values in display
// order.
type Facets struct {
	Groups     []string `json:"groups" yaml:"groups"`
	Types      []string `json:"types" yaml:"types"`
	Categories []string `json:"categories" yaml:"categories"`
	Units      []string `json:"units" yaml:"units"`
}

// FacetsOf collects the filter values present in tree.
func FacetsOf(tree *hierarchy.Tree) Facets {
	sets := make(map[Field]*valueSet, len(Fields))
	for _, f := range Fields {
		sets[f] = newValueSet()
	}
	for _, leaf := range tree.Leaves() {
		if leaf.Meta == nil {
			continue
		}
		for _, f := range Fields {
			sets[f].add(f.Value(leaf.Meta.Service))
		}
	}
	return Facets{
		Groups:     sets[FieldGroup].values,
		Types:      sets[FieldType].values,
		Categories: sets[FieldCategory].values,
		Units:      sets[FieldUnit].values,
	}
}

// Values returns the option list of a field.
func (f Facets) Values(field Field) []string {
	switch field {
	case FieldGroup:
		return f.Groups
	case FieldType:
		return f.Types
	case FieldCategory:
		return f.Categories
	case FieldUnit:
		return f.Units
	}
	return nil
}

// Validate checks that every active filter names a known field and value.
// Unknown values are reported with close alternatives.
func (f Facets) Validate(q Query) error {
	for _, field := range Fields {
		v, ok := q.Filters[field]
		if !ok || !IsActive(v) {
			continue
		}
		if err := validateValue(string(field), v, f.Values(field)); err != nil {
			return err
		}
	}
	for field := range q.Filters {
		if _, err := ParseField(string(field)); err != nil {
			return &errors.ValidationError{Field: string(field), Message: err.Error()}
		}
	}
	return nil
}

func validateValue(field, value string, options []string) error {
	for _, o := range options {
		if o == value {
			return nil
		}
	}
	return &errors.ValidationError{
		Field:       field,
		Value:       value,
		Message:     fmt.Sprintf("unknown value %q", value),
		Suggestions: Suggest(value, options, constants.DefaultSuggestionLimit),
	}
}

// Suggest ranks options against value for "did you mean" hints. "All" is
// never suggested.
func Suggest(value string, options []string, limit int) []string {
	candidates := make([]string, 0, len(options))
	for _, o := range options {
		if IsActive(o) {
			candidates = append(candidates, o)
		}
	}
	matches := fuzzy.Find(value, candidates)
	out := make([]string, 0, limit)
	for _, m := range matches {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// valueSet collects distinct values in first-seen order behind "All".
type valueSet struct {
	seen   map[string]struct{}
	values []string
}

func newValueSet() *valueSet {
	return &valueSet{seen: make(map[string]struct{}), values: []string{constants.FilterAll}}
}

func (s *valueSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

// sorted returns the values with everything after "All" in lexical order.
func (s *valueSet) sorted() []string {
	slices.Sort(s.values[1:])
	return s.values
}
