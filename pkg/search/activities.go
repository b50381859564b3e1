package search

import (
	"sort"
	"strings"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/match"
)

// ActivityQuery filters an activity catalog. Scope is "Included",
// "Excluded" or "All"/"" for both.
type ActivityQuery struct {
	Term     string `json:"term,omitempty" yaml:"term,omitempty"`
	Scope    string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// ActivityGroup is the activities of one category.
type ActivityGroup struct {
	Category   string              `json:"category" yaml:"category"`
	Activities []catalogs.Activity `json:"activities" yaml:"activities"`
}

// FilterActivities returns the activities matching q in input order. The
// term is matched against "<category> <activity>".
func FilterActivities(acts []catalogs.Activity, q ActivityQuery) []catalogs.Activity {
	term := match.Normalize(q.Term)
	out := make([]catalogs.Activity, 0, len(acts))
	for _, a := range acts {
		if IsActive(q.Scope) && string(a.Scope) != q.Scope {
			continue
		}
		if IsActive(q.Category) && a.Category != q.Category {
			continue
		}
		if term != "" && !strings.Contains(match.Normalize(a.Category+" "+a.Activity), term) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ActivityCategories returns "All" followed by the distinct categories of
// acts in lexical order.
func ActivityCategories(acts []catalogs.Activity) []string {
	set := newValueSet()
	for _, a := range acts {
		set.add(a.Category)
	}
	return set.sorted()
}

// GroupByCategory groups activities by category. Groups are sorted by
// category name; activities keep input order within a group.
func GroupByCategory(acts []catalogs.Activity) []ActivityGroup {
	index := make(map[string]int)
	var groups []ActivityGroup
	for _, a := range acts {
		i, ok := index[a.Category]
		if !ok {
			i = len(groups)
			index[a.Category] = i
			groups = append(groups, ActivityGroup{Category: a.Category})
		}
		groups[i].Activities = append(groups[i].Activities, a)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Category < groups[b].Category
	})
	return groups
}
