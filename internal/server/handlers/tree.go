package handlers

import (
	"net/http"

	"github.com/agentstation/utc"

	"github.com/agentstation/servicemap/internal/server/cache"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/search"
)

// TreeView is a (possibly pruned) hierarchy plus build metadata.
type TreeView struct {
	BuildID string          `json:"build_id"`
	BuiltAt utc.Time        `json:"built_at"`
	Root    *hierarchy.Node `json:"root"`
	Matches int             `json:"matches"`
	Stats   hierarchy.Stats `json:"stats"`
}

// Facets lists the filter options of every explorer.
type Facets struct {
	Services    search.Facets               `json:"services"`
	Funding     search.FundingFilterOptions `json:"funding"`
	Care        []string                    `json:"care_categories"`
	Restorative []string                    `json:"restorative_categories"`
	Items       search.ItemFacets           `json:"items"`

	BudgetPeriods map[search.BudgetView][]string `json:"budget_periods"`
}

// HandleTree handles GET /api/v1/tree.
// @Summary Service hierarchy
// @Description Get the linked service hierarchy, pruned by the optional search term and filters. Root is null when nothing matches.
// @Tags tree
// @Accept json
// @Produce json
// @Param q query string false "Search term"
// @Param group query string false "Service group filter"
// @Param type query string false "Service type filter"
// @Param category query string false "Participant contribution category filter"
// @Param unit query string false "Unit type filter"
// @Success 200 {object} response.Response{data=TreeView}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/tree [get].
func (h *Handlers) HandleTree(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	q := parseServiceQuery(r)
	h.cached(w, cache.Key("tree", v.BuildID(), q.Key()), func() (any, error) {
		if err := v.Facets().Validate(q); err != nil {
			return nil, err
		}
		tree := v.Tree()
		result, err := v.Search(q)
		if err != nil {
			return nil, err
		}
		return TreeView{
			BuildID: tree.BuildID,
			BuiltAt: tree.BuiltAt,
			Root:    result.Root,
			Matches: result.Count(),
			Stats:   tree.Stats(),
		}, nil
	})
}

// HandleFacets handles GET /api/v1/facets.
// @Summary Filter options
// @Description Get the filter options of the service, funding, activity, item and budget code explorers. Every list starts with "All".
// @Tags tree
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=Facets}
// @Router /api/v1/facets [get].
func (h *Handlers) HandleFacets(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	h.cached(w, cache.Key("facets", v.BuildID()), func() (any, error) {
		ds := v.Datasets()
		return Facets{
			Services:    v.Facets(),
			Funding:     v.FundingFacets(),
			Care:        search.ActivityCategories(ds.CareActivities),
			Restorative: search.ActivityCategories(ds.RestorativeActivities),
			Items:       v.ItemFacets(),
			BudgetPeriods: map[search.BudgetView][]string{
				search.BudgetEntitlement: v.BudgetPeriods(search.BudgetEntitlement),
				search.BudgetUsage:       v.BudgetPeriods(search.BudgetUsage),
			},
		}, nil
	})
}
