package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/search"
)

// parseServiceQuery reads the term and categorical filters of a service
// search from the query string.
func parseServiceQuery(r *http.Request) search.Query {
	values := r.URL.Query()
	q := search.Query{
		Term:    strings.TrimSpace(values.Get("q")),
		Filters: make(map[search.Field]string, len(search.Fields)),
	}
	for _, f := range search.Fields {
		if v := strings.TrimSpace(values.Get(string(f))); v != "" {
			q.Filters[f] = v
		}
	}
	return q
}

// parseFundingQuery reads a funding explorer query.
func parseFundingQuery(r *http.Request) search.FundingQuery {
	values := r.URL.Query()
	return search.FundingQuery{
		Term:               strings.TrimSpace(values.Get("q")),
		ClassificationType: strings.TrimSpace(values.Get("classification_type")),
		EntryCategory:      strings.TrimSpace(values.Get("entry_category")),
	}
}

// parseActivityQuery reads an activity explorer query.
func parseActivityQuery(r *http.Request) search.ActivityQuery {
	values := r.URL.Query()
	return search.ActivityQuery{
		Term:     strings.TrimSpace(values.Get("q")),
		Scope:    strings.TrimSpace(values.Get("scope")),
		Category: strings.TrimSpace(values.Get("category")),
	}
}

// parseItemQuery reads an item explorer query.
func parseItemQuery(r *http.Request) search.ItemQuery {
	values := r.URL.Query()
	return search.ItemQuery{
		Term:     strings.TrimSpace(values.Get("q")),
		Group:    strings.TrimSpace(values.Get("group")),
		Type:     strings.TrimSpace(values.Get("type")),
		Function: strings.TrimSpace(values.Get("function")),
	}
}

// parseBudgetQuery reads a budget code explorer query.
func parseBudgetQuery(r *http.Request) search.BudgetQuery {
	values := r.URL.Query()
	return search.BudgetQuery{
		Term:   strings.TrimSpace(values.Get("q")),
		Period: strings.TrimSpace(values.Get("period")),
	}
}

// parseBool reads an optional boolean query parameter.
func parseBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &errors.ValidationError{
			Field:   name,
			Value:   raw,
			Message: "must be a boolean",
		}
	}
	return v, nil
}
