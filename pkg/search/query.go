// Package search prunes the service hierarchy for a query and annotates
// every surviving node with its lineage. It also filters the funding
// source and activity catalogs the way the explorers do.
package search

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/match"
)

// Field is a categorical filter field.
type Field string

// Filter fields and the service field each one constrains.
const (
	FieldGroup    Field = "group"    // GroupText
	FieldType     Field = "type"     // TypeText
	FieldCategory Field = "category" // ContributionCategory
	FieldUnit     Field = "unit"     // UnitType
)

// Fields lists every filter field in display order.
var Fields = []Field{FieldGroup, FieldType, FieldCategory, FieldUnit}

// ParseField parses a filter field name.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FieldGroup, FieldType, FieldCategory, FieldUnit:
		return f, nil
	}
	return "", fmt.Errorf("unknown filter field %q", s)
}

// Value returns the service value the field constrains.
func (f Field) Value(svc catalogs.Service) string {
	switch f {
	case FieldGroup:
		return svc.GroupText
	case FieldType:
		return svc.TypeText
	case FieldCategory:
		return svc.ContributionCategory
	case FieldUnit:
		return svc.UnitType
	}
	return ""
}

// Query is a search term plus categorical filters. A filter value of "All"
// or "" is inactive.
type Query struct {
	Term    string           `json:"term,omitempty" yaml:"term,omitempty"`
	Filters map[Field]string `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// IsActive reports whether a filter value constrains results.
func IsActive(value string) bool {
	return value != "" && value != constants.FilterAll
}

// Active returns the active filters.
func (q Query) Active() map[Field]string {
	active := make(map[Field]string, len(q.Filters))
	for f, v := range q.Filters {
		if IsActive(v) {
			active[f] = v
		}
	}
	return active
}

// Unconstrained reports whether the query has no term and no active filter.
func (q Query) Unconstrained() bool {
	return strings.TrimSpace(q.Term) == "" && len(q.Active()) == 0
}

// Key returns a canonical representation of the query, suitable as a
// cache key. Values are query-escaped, so no filter value can mimic
// another field.
func (q Query) Key() string {
	v := url.Values{"q": {match.Normalize(q.Term)}}
	for f, value := range q.Active() {
		v.Set(string(f), value)
	}
	return v.Encode()
}
