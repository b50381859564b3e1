package handlers

import (
	"net/http"

	"github.com/agentstation/servicemap/internal/server/cache"
	"github.com/agentstation/servicemap/internal/server/response"
	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/logging"
	"github.com/agentstation/servicemap/pkg/pricing"
	"github.com/agentstation/servicemap/pkg/search"
)

// ServiceSummary is a search hit.
type ServiceSummary struct {
	NodeID      string              `json:"node_id"`
	ServiceID   catalogs.Identifier `json:"service_id"`
	Name        string              `json:"name"`
	Group       string              `json:"group"`
	Type        string              `json:"type"`
	Category    string              `json:"category,omitempty"`
	Unit        string              `json:"unit,omitempty"`
	Breadcrumbs []hierarchy.Crumb   `json:"breadcrumbs"`
}

// ServiceList is the response of a service search.
type ServiceList struct {
	Query    search.Query     `json:"query"`
	Count    int              `json:"count"`
	Services []ServiceSummary `json:"services"`
}

// ServiceDetail is a service leaf with its lineage and reference price.
type ServiceDetail struct {
	Node        *hierarchy.Node   `json:"node"`
	Breadcrumbs []hierarchy.Crumb `json:"breadcrumbs"`
	Price       *pricing.Match    `json:"price"`
}

func summarize(leaf *hierarchy.Node) ServiceSummary {
	s := ServiceSummary{
		NodeID:      leaf.ID,
		Name:        leaf.Name,
		Breadcrumbs: hierarchy.Breadcrumbs(leaf.Lineage),
	}
	if leaf.Meta != nil {
		s.ServiceID = leaf.Meta.ID
		s.Group = leaf.Meta.GroupText
		s.Type = leaf.Meta.TypeText
		s.Category = leaf.Meta.ContributionCategory
		s.Unit = leaf.Meta.UnitType
	}
	return s
}

// HandleListServices handles GET /api/v1/services.
// @Summary Search services
// @Description Search the service hierarchy by term and categorical filters
// @Tags services
// @Accept json
// @Produce json
// @Param q query string false "Search term (case and accent insensitive)"
// @Param group query string false "Service group filter"
// @Param type query string false "Service type filter"
// @Param category query string false "Participant contribution category filter"
// @Param unit query string false "Unit type filter"
// @Success 200 {object} response.Response{data=ServiceList}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/services [get].
func (h *Handlers) HandleListServices(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	q := parseServiceQuery(r)
	if err := v.Facets().Validate(q); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.cached(w, cache.Key("services", v.BuildID(), q.Key()), func() (any, error) {
		result, err := v.Search(q)
		if err != nil {
			return nil, err
		}
		list := ServiceList{
			Query:    q,
			Count:    result.Count(),
			Services: make([]ServiceSummary, 0, len(result.Leaves)),
		}
		for _, leaf := range result.Leaves {
			list.Services = append(list.Services, summarize(leaf))
		}
		return list, nil
	})
}

// HandleGetService handles GET /api/v1/services/{id}.
// @Summary Get service
// @Description Get a service leaf by node ID or service ID, with its breadcrumbs and reference price
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Node ID (svc:G/T/S) or service ID"
// @Success 200 {object} response.Response{data=ServiceDetail}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/services/{id} [get].
func (h *Handlers) HandleGetService(w http.ResponseWriter, r *http.Request, id string) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	ctx := logging.WithService(r.Context(), id)

	h.cached(w, cache.Key("service", v.BuildID(), id), func() (any, error) {
		node, err := v.Service(id)
		if err != nil {
			return nil, err
		}
		lineage, err := v.Lineage(node.ID)
		if err != nil {
			return nil, err
		}

		detail := ServiceDetail{
			Node:        node,
			Breadcrumbs: hierarchy.Breadcrumbs(lineage),
		}
		switch price, err := v.Price(node.ID); {
		case err == nil:
			detail.Price = &price
		case errors.IsNotFound(err):
			logging.FromContext(ctx).Debug().Msg("No reference price for service")
		default:
			return nil, err
		}
		return detail, nil
	})
}

// HandleGetServicePrice handles GET /api/v1/services/{id}/price.
// @Summary Get service price
// @Description Resolve the reference price of a service (exact or fuzzy, service or type level)
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Node ID (svc:G/T/S) or service ID"
// @Success 200 {object} response.Response{data=pricing.Match}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/services/{id}/price [get].
func (h *Handlers) HandleGetServicePrice(w http.ResponseWriter, r *http.Request, id string) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	ctx := logging.WithService(r.Context(), id)

	h.cached(w, cache.Key("price", v.BuildID(), id), func() (any, error) {
		price, err := v.Price(id)
		if err != nil {
			return nil, err
		}
		logging.FromContext(ctx).Debug().
			Str("match_type", string(price.MatchType)).
			Msg("Price resolved")
		return price, nil
	})
}
