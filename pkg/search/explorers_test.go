package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/servicemap/pkg/catalogs"
	pkgerrors "github.com/agentstation/servicemap/pkg/errors"
)

func itemServices() []catalogs.Service {
	return []catalogs.Service{
		{
			GroupText: "Everyday Living", TypeText: "Domestic assistance", Text: "Domestic Assistance",
			Items: []catalogs.Item{
				{ID: "101", Text: "General house cleaning", FunctionText: "Cleaning", Units: []string{"Hour"}},
				{ID: "102", Text: "Linen services", FunctionText: "Laundry", FreeTextRequired: true},
			},
		},
		{
			GroupText: "Everyday Living", TypeText: "Meals", Text: "Meal preparation",
			Items: []catalogs.Item{
				{ID: "201", Text: "Meal preparation in the home", FunctionText: "Cooking", Units: []string{"Hour"}},
			},
		},
		{GroupText: "Clinical Supports", TypeText: "Nursing care", Text: "Nursing care"},
		{
			GroupText: "Everyday Living", TypeText: "Domestic assistance", Text: "Gardening",
			Items: []catalogs.Item{
				{ID: "301", Text: "Lawn mowing", FunctionText: "Cleaning", Units: []string{"Visit"}},
			},
		},
	}
}

func itemIDs(rows []ItemRow) []string {
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID.String())
	}
	return ids
}

func TestFlattenItems(t *testing.T) {
	rows := FlattenItems(itemServices())
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"101", "102", "201", "301"}, itemIDs(rows))
	assert.Equal(t, "Gardening", rows[3].ServiceText)
	assert.Equal(t, "Domestic assistance", rows[3].TypeText)
}

func TestFilterItems(t *testing.T) {
	rows := FlattenItems(itemServices())

	tests := []struct {
		name string
		q    ItemQuery
		want []string
	}{
		{name: "all", q: ItemQuery{Group: "All", Type: "All", Function: "All"}, want: []string{"101", "102", "201", "301"}},
		{name: "function", q: ItemQuery{Function: "Cleaning"}, want: []string{"101", "301"}},
		{name: "type and term", q: ItemQuery{Type: "Domestic assistance", Term: "LAWN"}, want: []string{"301"}},
		{name: "item id", q: ItemQuery{Term: "201"}, want: []string{"201"}},
		{name: "unit", q: ItemQuery{Term: "visit"}, want: []string{"301"}},
		{name: "free text flag", q: ItemQuery{Term: "free text required"}, want: []string{"102"}},
		{name: "service text", q: ItemQuery{Term: "gardening"}, want: []string{"301"}},
		{name: "exact filter", q: ItemQuery{Group: "everyday living"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, itemIDs(FilterItems(rows, tt.q)))
		})
	}
}

func TestItemFacetsOf(t *testing.T) {
	f := ItemFacetsOf(FlattenItems(itemServices()))
	assert.Equal(t, []string{"All", "Everyday Living"}, f.Groups)
	assert.Equal(t, []string{"All", "Domestic assistance", "Meals"}, f.Types)
	assert.Equal(t, []string{"All", "Cleaning", "Laundry", "Cooking"}, f.Functions)
}

func TestGroupItems(t *testing.T) {
	groups := GroupItems(FlattenItems(itemServices()))
	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, "Everyday Living", g.Text)
	require.Len(t, g.Types, 2)

	domestic := g.Types[0]
	assert.Equal(t, "Domestic assistance", domestic.Text)
	require.Len(t, domestic.Functions, 2)
	cleaning := domestic.Functions[0]
	assert.Equal(t, "Cleaning", cleaning.Text)
	require.Len(t, cleaning.Services, 2)
	assert.Equal(t, "Domestic Assistance", cleaning.Services[0].Text)
	assert.Equal(t, "Gardening", cleaning.Services[1].Text)
	assert.Equal(t, []string{"301"}, itemIDs(cleaning.Services[1].Items))

	assert.Equal(t, "Meals", g.Types[1].Text)
	assert.Empty(t, GroupItems(nil))
}

func budgetCodes(t *testing.T) []catalogs.BudgetCode {
	return BudgetEntitlement.Codes(catalogs.TestBudgetCodes(t))
}

func codesOf(codes []catalogs.BudgetCode) []string {
	var out []string
	for _, c := range codes {
		out = append(out, c.Code)
	}
	return out
}

func TestFilterBudgetCodes(t *testing.T) {
	codes := budgetCodes(t)

	tests := []struct {
		name string
		q    BudgetQuery
		want []string
	}{
		{name: "all", q: BudgetQuery{Period: "All"}, want: []string{"SAH-L1", "AT-HM", "CM-FEE"}},
		{name: "text", q: BudgetQuery{Term: "home modifications"}, want: []string{"AT-HM"}},
		{name: "code", q: BudgetQuery{Term: "sah"}, want: []string{"SAH-L1"}},
		{name: "rate amount", q: BudgetQuery{Term: "2674.39"}, want: []string{"SAH-L1"}},
		{name: "period term", q: BudgetQuery{Term: "quarter"}, want: []string{"SAH-L1"}},
		{name: "period filter", q: BudgetQuery{Period: "YEAR"}, want: []string{"AT-HM"}},
		{name: "period filter is exact", q: BudgetQuery{Period: "year"}, want: nil},
		{name: "formatted amount not searched", q: BudgetQuery{Term: "2,674"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codesOf(FilterBudgetCodes(codes, tt.q)))
		})
	}

	usage := BudgetUsage.Codes(catalogs.TestBudgetCodes(t))
	assert.Equal(t, []string{"UNRATED"}, codesOf(FilterBudgetCodes(usage, BudgetQuery{Term: "unrated"})))
}

func TestBudgetPeriods(t *testing.T) {
	assert.Equal(t, []string{"All", "QUARTER", "YEAR", "PERCENTAGE"}, BudgetPeriods(budgetCodes(t)))
	assert.Equal(t, []string{"All", "WEEK"}, BudgetPeriods(BudgetUsage.Codes(catalogs.TestBudgetCodes(t))))
}

func TestParseBudgetView(t *testing.T) {
	v, err := ParseBudgetView(" Usage ")
	require.NoError(t, err)
	assert.Equal(t, BudgetUsage, v)

	v, err = ParseBudgetView("")
	require.NoError(t, err)
	assert.Equal(t, BudgetEntitlement, v)

	_, err = ParseBudgetView("claims")
	assert.True(t, pkgerrors.IsValidationError(err))
}
