package catalogs

import "testing"

// TestServices returns a small service catalog spanning two groups.
// The t.Helper() call ensures stack traces point to the test, not this function.
func TestServices(t testing.TB) []Service {
	t.Helper()
	return []Service{
		{
			GroupID: "G1", GroupText: "Everyday Living",
			TypeID: "T1", TypeText: "Domestic assistance",
			ID: "S1", Text: "Domestic Assistance",
			ContributionCategory: "Independence",
			UnitType:             "Hour",
			Classifications:      []Classification{{Type: "Ongoing", Text: "Ongoing"}},
			Items: []Item{
				{ID: "I1", Text: "General house cleaning", Units: []string{"Hour"}},
				{ID: "I2", Text: "General house cleaning "},
				{ID: "I3", Text: "Linen services", FreeTextRequired: true},
			},
		},
		{
			GroupID: "G1", GroupText: "Everyday Living",
			TypeID: "T1", TypeText: "Domestic assistance",
			ID: "S2", Text: "Gardening",
			ContributionCategory: "Everyday Living",
			UnitType:             "Hour",
			Classifications:      []Classification{{Type: "Ongoing", Text: "Ongoing"}},
		},
		{
			GroupID: "G1", GroupText: "Everyday Living",
			TypeID: "T2", TypeText: "Meals",
			ID: "S3", Text: "Meal preparation",
			ContributionCategory: "Everyday Living",
			UnitType:             "Hour",
		},
		{
			GroupID: "G2", GroupText: "Clinical Supports",
			TypeID: "T3", TypeText: "Nursing care",
			ID: "S4", Text: "Nursing care",
			ContributionCategory: "Clinical Care Supports",
			UnitType:             "Hour",
			Classifications:      []Classification{{Type: "Short Term", Text: "Short Term Restorative Care"}},
			HealthProfessionalTypes: []HealthProfessionalType{
				{Code: "RN", Text: "Registered Nurse"},
			},
		},
		{
			GroupID: "G2", GroupText: "Clinical Supports",
			TypeID: "T4", TypeText: "Allied health and therapy",
			ID: "S5", Text: "Physiotherapy",
			ContributionCategory: "Clinical Care Supports",
			UnitType:             "Session",
			WraparoundServices: []WraparoundService{
				{ID: "W1", Text: "Transport to appointment", Units: []string{"Trip"}},
			},
		},
	}
}

// TestFundingSources returns two funding sources covering both linking rules.
func TestFundingSources(t testing.TB) []FundingSource {
	t.Helper()
	return []FundingSource{
		{
			Code: "F1", Text: "Support at Home Ongoing",
			EntryCategories: []EntryCategory{
				{Code: "CC", Text: "Clinical Care"},
				{Code: "IN", Text: "Independence"},
			},
			Classifications: []Classification{{Code: "ON", Type: "Ongoing", Text: "Ongoing"}},
			BudgetClaimingSequence: []BudgetClaim{
				{Priority: 2, BudgetTypeCode: "QB", BudgetTypeText: "Quarterly budget"},
				{Priority: 1, BudgetTypeCode: "CO", BudgetTypeText: "Carryover"},
			},
		},
		{
			Code: "F2", Text: "Restorative Care Pathway",
			EntryCategories: []EntryCategory{{Code: "EL", Text: "Everyday Living"}},
			Classifications: []Classification{{Code: "RC", Type: "Short Term", Text: "Restorative"}},
			BudgetClaimingSequence: []BudgetClaim{
				{Priority: 1, BudgetTypeCode: "RB", BudgetTypeText: "Restorative budget"},
			},
		},
	}
}

// TestCareActivities returns a care management activity catalog.
func TestCareActivities(t testing.TB) []Activity {
	t.Helper()
	return []Activity{
		{Category: "Care planning", Activity: "Care plan review"},
		{Category: "Coordination", Activity: "Domestic assistance coordination"},
		{Category: "Coordination", Activity: "Nursing care coordination"},
	}
}

// TestRestorativeActivities returns a scoped restorative activity catalog.
func TestRestorativeActivities(t testing.TB) []Activity {
	t.Helper()
	return []Activity{
		{Category: "Mobility", Activity: "Physiotherapy session", Scope: ScopeIncluded},
		{Category: "Mobility", Activity: "Gym membership", Scope: ScopeExcluded},
		{Category: "Nutrition", Activity: "Meal preparation training", Scope: ScopeIncluded},
	}
}

// TestPrices returns a price table with rows at both levels.
func TestPrices(t testing.TB) []Price {
	t.Helper()
	return []Price{
		{Service: "Domestic Assistance", Unit: "Hour", Median: 55, Min: 45, Max: 65, Level: LevelService},
		{Service: "Domestic assistance", Unit: "Hour", Median: 50, Min: 40, Max: 60, Level: LevelType},
		{Service: "Nursing care", Unit: "Hour", Median: 110, Min: 95, Max: 130, Level: LevelType},
		{Service: "Meal services", Unit: "Hour", Median: 48, Min: 40, Max: 58, Level: LevelType},
	}
}

// TestBudgetCodes returns entitlement and usage codes with quarterly,
// weekly and percentage rates.
func TestBudgetCodes(t testing.TB) BudgetCodes {
	t.Helper()
	rate := func(v float64) *float64 { return &v }
	return BudgetCodes{
		Entitlement: []BudgetCode{
			{Code: "SAH-L1", Text: "Support at Home level 1", Rates: []Rate{
				{Rate: rate(2674.39), Frequency: 1, FrequencyPeriod: "QUARTER", ValidFrom: "2025-11-01", ValidTo: OpenEndedValidTo},
			}},
			{Code: "AT-HM", Text: "Assistive technology and home modifications", Rates: []Rate{
				{Rate: rate(15000), Frequency: 1, FrequencyPeriod: "YEAR", ValidFrom: "2025-11-01", ValidTo: "2026-06-30"},
			}},
			{Code: "CM-FEE", Text: "Care management", Rates: []Rate{
				{Rate: rate(10), FrequencyPeriod: PeriodPercentage, ValidFrom: "2025-11-01"},
			}},
		},
		Usage: []BudgetCode{
			{Code: "RSP-WK", Text: "Respite", Rates: []Rate{
				{Rate: rate(120.5), Frequency: 2, FrequencyPeriod: "WEEK", ValidFrom: "2025-11-01"},
			}},
			{Code: "UNRATED", Text: "Unrated usage"},
		},
	}
}

// TestDatasets bundles all test collections.
func TestDatasets(t testing.TB) *Datasets {
	t.Helper()
	return &Datasets{
		Services:              TestServices(t),
		FundingSources:        TestFundingSources(t),
		CareActivities:        TestCareActivities(t),
		RestorativeActivities: TestRestorativeActivities(t),
		Prices:                TestPrices(t),
		BudgetCodes:           TestBudgetCodes(t),
	}
}
