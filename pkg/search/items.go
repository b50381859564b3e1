package search

import (
	"strings"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/match"
)

// ItemRow is a claimable item with the context of the service it belongs to.
type ItemRow struct {
	catalogs.Item `yaml:",inline"`
	GroupText   string `json:"serviceGroupText" yaml:"serviceGroupText"`
	TypeText    string `json:"serviceTypeText" yaml:"serviceTypeText"`
	ServiceText string `json:"serviceText" yaml:"serviceText"`
}

// ItemQuery filters item rows. Group, Type and Function are exact; "All"
// or "" disables them.
type ItemQuery struct {
	Term     string `json:"term,omitempty" yaml:"term,omitempty"`
	Group    string `json:"group,omitempty" yaml:"group,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Function string `json:"function,omitempty" yaml:"function,omitempty"`
}

// ItemFacets holds the option lists of the item filters.
type ItemFacets struct {
	Groups    []string `json:"groups" yaml:"groups"`
	Types     []string `json:"types" yaml:"types"`
	Functions []string `json:"functions" yaml:"functions"`
}

// ItemGroup, ItemType, ItemFunction and ItemService nest filtered rows as
// group, type, function, service, in first-seen order.
type (
	ItemGroup struct {
		Text  string     `json:"text" yaml:"text"`
		Types []ItemType `json:"types" yaml:"types"`
	}
	ItemType struct {
		Text      string         `json:"text" yaml:"text"`
		Functions []ItemFunction `json:"functions" yaml:"functions"`
	}
	ItemFunction struct {
		Text     string        `json:"text" yaml:"text"`
		Services []ItemService `json:"services" yaml:"services"`
	}
	ItemService struct {
		Text  string    `json:"text" yaml:"text"`
		Items []ItemRow `json:"items" yaml:"items"`
	}
)

// FlattenItems lists every item of every service in catalog order.
// Duplicate items are kept.
func FlattenItems(services []catalogs.Service) []ItemRow {
	var rows []ItemRow
	for _, svc := range services {
		for _, it := range svc.Items {
			rows = append(rows, ItemRow{
				Item:        it,
				GroupText:   svc.GroupText,
				TypeText:    svc.TypeText,
				ServiceText: svc.Text,
			})
		}
	}
	return rows
}

// FilterItems returns the rows matching q in input order. The term is
// matched against the row's group, type, function, service and item
// texts, its item ID and units, and "free text required" when that flag
// is set.
func FilterItems(rows []ItemRow, q ItemQuery) []ItemRow {
	term := match.Normalize(q.Term)
	out := make([]ItemRow, 0, len(rows))
	for _, r := range rows {
		if IsActive(q.Group) && r.GroupText != q.Group {
			continue
		}
		if IsActive(q.Type) && r.TypeText != q.Type {
			continue
		}
		if IsActive(q.Function) && r.FunctionText != q.Function {
			continue
		}
		if term != "" && !strings.Contains(itemHaystack(r), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func itemHaystack(r ItemRow) string {
	parts := []string{r.GroupText, r.TypeText, r.FunctionText, r.ServiceText, r.Text, r.ID.String()}
	parts = append(parts, r.Units...)
	if r.FreeTextRequired {
		parts = append(parts, "free text required")
	}
	return match.Normalize(strings.Join(parts, " "))
}

// ItemFacetsOf collects the groups, types and functions of rows.
func ItemFacetsOf(rows []ItemRow) ItemFacets {
	groups, types, funcs := newValueSet(), newValueSet(), newValueSet()
	for _, r := range rows {
		groups.add(r.GroupText)
		types.add(r.TypeText)
		funcs.add(r.FunctionText)
	}
	return ItemFacets{Groups: groups.values, Types: types.values, Functions: funcs.values}
}

// GroupItems nests rows by group, type, function and service.
func GroupItems(rows []ItemRow) []ItemGroup {
	var groups []ItemGroup
	for _, r := range rows {
		g := findOrAdd(&groups, r.GroupText, func(g ItemGroup) string { return g.Text }, func(s string) ItemGroup { return ItemGroup{Text: s} })
		t := findOrAdd(&g.Types, r.TypeText, func(t ItemType) string { return t.Text }, func(s string) ItemType { return ItemType{Text: s} })
		f := findOrAdd(&t.Functions, r.FunctionText, func(f ItemFunction) string { return f.Text }, func(s string) ItemFunction { return ItemFunction{Text: s} })
		s := findOrAdd(&f.Services, r.ServiceText, func(s ItemService) string { return s.Text }, func(s string) ItemService { return ItemService{Text: s} })
		s.Items = append(s.Items, r)
	}
	return groups
}

// findOrAdd returns the element of *list keyed text, appending one made
// by create when none exists.
func findOrAdd[T any](list *[]T, text string, key func(T) string, create func(string) T) *T {
	for i := range *list {
		if key((*list)[i]) == text {
			return &(*list)[i]
		}
	}
	*list = append(*list, create(text))
	return &(*list)[len(*list)-1]
}
