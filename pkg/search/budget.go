package search

import (
	"strconv"
	"strings"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/match"
)

// BudgetView selects one of the budget code lists.
type BudgetView string

// Budget code lists.
const (
	BudgetEntitlement BudgetView = "entitlement"
	BudgetUsage       BudgetView = "usage"
)

// ParseBudgetView parses a budget code list name.
func ParseBudgetView(s string) (BudgetView, error) {
	switch v := BudgetView(strings.ToLower(strings.TrimSpace(s))); v {
	case BudgetEntitlement, BudgetUsage:
		return v, nil
	case "":
		return BudgetEntitlement, nil
	}
	return "", &errors.ValidationError{
		Field:   "view",
		Value:   s,
		Message: "must be one of: entitlement, usage",
	}
}

// Codes returns the list of codes the view selects.
func (v BudgetView) Codes(codes catalogs.BudgetCodes) []catalogs.BudgetCode {
	if v == BudgetUsage {
		return codes.Usage
	}
	return codes.Entitlement
}

// BudgetQuery filters a budget code list. Period is matched exactly
// against the frequency period of any rate; "All" or "" disables it.
type BudgetQuery struct {
	Term   string `json:"term,omitempty" yaml:"term,omitempty"`
	Period string `json:"period,omitempty" yaml:"period,omitempty"`
}

// FilterBudgetCodes returns the codes matching q in input order. The term
// matches a code's text or code, or the amount or period of any rate.
func FilterBudgetCodes(codes []catalogs.BudgetCode, q BudgetQuery) []catalogs.BudgetCode {
	term := match.Normalize(q.Term)
	out := make([]catalogs.BudgetCode, 0, len(codes))
	for _, c := range codes {
		if IsActive(q.Period) && !hasPeriod(c, q.Period) {
			continue
		}
		if term != "" && !budgetCodeMatches(c, term) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func budgetCodeMatches(c catalogs.BudgetCode, term string) bool {
	if strings.Contains(match.Normalize(c.Text), term) || strings.Contains(match.Normalize(c.Code), term) {
		return true
	}
	for _, r := range c.Rates {
		if strings.Contains(rateValue(r), term) || strings.Contains(match.Normalize(r.FrequencyPeriod), term) {
			return true
		}
	}
	return false
}

// rateValue renders a rate amount the way it is searched: plain digits
// with no grouping, "null" when absent.
func rateValue(r catalogs.Rate) string {
	if r.Rate == nil {
		return "null"
	}
	return strconv.FormatFloat(*r.Rate, 'f', -1, 64)
}

func hasPeriod(c catalogs.BudgetCode, period string) bool {
	for _, r := range c.Rates {
		if r.FrequencyPeriod == period {
			return true
		}
	}
	return false
}

// BudgetPeriods returns "All" followed by the distinct frequency periods
// of codes in first-seen order.
func BudgetPeriods(codes []catalogs.BudgetCode) []string {
	set := newValueSet()
	for _, c := range codes {
		for _, r := range c.Rates {
			set.add(r.FrequencyPeriod)
		}
	}
	return set.values
}
