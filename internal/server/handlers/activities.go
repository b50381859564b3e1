package handlers

import (
	"net/http"
	"strconv"

	"github.com/agentstation/servicemap"
	"github.com/agentstation/servicemap/internal/server/cache"
	"github.com/agentstation/servicemap/internal/server/response"
	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/search"
)

// ActivityList is the response of an activity explorer query. Groups is
// only set when grouping was requested.
type ActivityList struct {
	Kind       servicemap.ActivityKind `json:"kind"`
	Query      search.ActivityQuery    `json:"query"`
	Count      int                     `json:"count"`
	Activities []catalogs.Activity     `json:"activities,omitempty"`
	Groups     []search.ActivityGroup  `json:"groups,omitempty"`
}

// HandleListActivities handles GET /api/v1/activities/{kind}.
// @Summary Search activities
// @Description Filter the care management or restorative activity catalog
// @Tags activities
// @Accept json
// @Produce json
// @Param kind path string true "Activity catalog" Enums(care, restorative)
// @Param q query string false "Search term"
// @Param scope query string false "Scope filter (Included, Excluded, All)"
// @Param category query string false "Category filter"
// @Param grouped query bool false "Group results by category"
// @Success 200 {object} response.Response{data=ActivityList}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/activities/{kind} [get].
func (h *Handlers) HandleListActivities(w http.ResponseWriter, r *http.Request, rawKind string) {
	kind, err := servicemap.ParseActivityKind(rawKind)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	grouped, err := parseBool(r, "grouped")
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}

	q := parseActivityQuery(r)
	key := cache.Key("activities", v.BuildID(), string(kind), q.Term, q.Scope, q.Category, strconv.FormatBool(grouped))
	h.cached(w, key, func() (any, error) {
		acts, err := v.Activities(kind, q)
		if err != nil {
			return nil, err
		}
		list := ActivityList{Kind: kind, Query: q, Count: len(acts)}
		if grouped {
			list.Groups = search.GroupByCategory(acts)
		} else {
			list.Activities = acts
		}
		return list, nil
	})
}
