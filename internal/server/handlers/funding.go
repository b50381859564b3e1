package handlers

import (
	"net/http"

	"github.com/agentstation/servicemap/internal/server/cache"
	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/search"
)

// FundingSourceView is a funding source with its claiming sequence in
// priority order.
type FundingSourceView struct {
	catalogs.FundingSource
	ClaimingSequence string `json:"claimingSequence,omitempty"`
}

// FundingList is the response of a funding explorer query.
type FundingList struct {
	Query   search.FundingQuery `json:"query"`
	Count   int                 `json:"count"`
	Sources []FundingSourceView `json:"sources"`
}

// HandleListFundingSources handles GET /api/v1/funding-sources.
// @Summary Search funding sources
// @Description Filter funding sources by term, classification type and entry category
// @Tags funding
// @Accept json
// @Produce json
// @Param q query string false "Search term"
// @Param classification_type query string false "Classification type filter"
// @Param entry_category query string false "Entry category filter"
// @Success 200 {object} response.Response{data=FundingList}
// @Router /api/v1/funding-sources [get].
func (h *Handlers) HandleListFundingSources(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	q := parseFundingQuery(r)
	key := cache.Key("funding", v.BuildID(), q.Term, q.ClassificationType, q.EntryCategory)
	h.cached(w, key, func() (any, error) {
		found := v.FundingSources(q)
		list := FundingList{
			Query:   q,
			Count:   len(found),
			Sources: make([]FundingSourceView, 0, len(found)),
		}
		for _, src := range found {
			list.Sources = append(list.Sources, FundingSourceView{
				FundingSource:    src,
				ClaimingSequence: src.FormatClaimingSequence(),
			})
		}
		return list, nil
	})
}
