package handlers

import (
	"net/http"
	"strconv"

	"github.com/agentstation/servicemap/internal/server/cache"
	"github.com/agentstation/servicemap/internal/server/response"
	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/search"
)

// ItemList is the response of an item explorer query. Groups is only set
// when grouping was requested.
type ItemList struct {
	Query  search.ItemQuery   `json:"query"`
	Count  int                `json:"count"`
	Items  []search.ItemRow   `json:"items,omitempty"`
	Groups []search.ItemGroup `json:"groups,omitempty"`
}

// BudgetCodeView is a budget code with its headline rate formatted.
type BudgetCodeView struct {
	catalogs.BudgetCode
	Rate string `json:"rate"`
}

// BudgetCodeList is the response of a budget code explorer query.
type BudgetCodeList struct {
	View    search.BudgetView  `json:"view"`
	Query   search.BudgetQuery `json:"query"`
	Count   int                `json:"count"`
	Periods []string           `json:"periods"`
	Codes   []BudgetCodeView   `json:"codes"`
}

// HandleListItems handles GET /api/v1/items.
// @Summary Search items
// @Description Filter the claimable items of every service by term, group, type and function
// @Tags explorers
// @Accept json
// @Produce json
// @Param q query string false "Search term"
// @Param group query string false "Service group filter"
// @Param type query string false "Service type filter"
// @Param function query string false "Function filter"
// @Param grouped query bool false "Nest results by group, type, function and service"
// @Success 200 {object} response.Response{data=ItemList}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/items [get].
func (h *Handlers) HandleListItems(w http.ResponseWriter, r *http.Request) {
	grouped, err := parseBool(r, "grouped")
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	q := parseItemQuery(r)
	key := cache.Key("items", v.BuildID(), q.Term, q.Group, q.Type, q.Function, strconv.FormatBool(grouped))
	h.cached(w, key, func() (any, error) {
		rows := v.Items(q)
		list := ItemList{Query: q, Count: len(rows)}
		if grouped {
			list.Groups = search.GroupItems(rows)
		} else {
			list.Items = rows
		}
		return list, nil
	})
}

// HandleListBudgetCodes handles GET /api/v1/budget-codes/{view}.
// @Summary Search budget codes
// @Description Filter the entitlement or usage budget codes by term and frequency period
// @Tags explorers
// @Accept json
// @Produce json
// @Param view path string true "Budget code list" Enums(entitlement, usage)
// @Param q query string false "Search term"
// @Param period query string false "Frequency period filter"
// @Success 200 {object} response.Response{data=BudgetCodeList}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/budget-codes/{view} [get].
func (h *Handlers) HandleListBudgetCodes(w http.ResponseWriter, r *http.Request, rawView string) {
	view, err := search.ParseBudgetView(rawView)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	q := parseBudgetQuery(r)
	key := cache.Key("budget", v.BuildID(), string(view), q.Term, q.Period)
	h.cached(w, key, func() (any, error) {
		codes := v.BudgetCodes(view, q)
		list := BudgetCodeList{
			View:    view,
			Query:   q,
			Count:   len(codes),
			Periods: v.BudgetPeriods(view),
			Codes:   make([]BudgetCodeView, 0, len(codes)),
		}
		for _, c := range codes {
			cv := BudgetCodeView{BudgetCode: c, Rate: "No rate"}
			if rate, ok := c.FirstRate(); ok {
				cv.Rate = rate.String()
			}
			list.Codes = append(list.Codes, cv)
		}
		return list, nil
	})
}
