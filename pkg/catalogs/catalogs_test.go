package catalogs

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Identifier
	}{
		{"string", `"S-1"`, "S-1"},
		{"padded string", `" 42 "`, "42"},
		{"integer", `42`, "42"},
		{"float", `4.5`, "4.5"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id Identifier
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	var id Identifier
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestIdentifier_UnmarshalYAML(t *testing.T) {
	var svc Service
	err := yaml.Unmarshal([]byte("serviceGroupId: 7\nserviceTypeId: T1\nserviceId: \"003\"\nserviceText: Nursing\n"), &svc)
	require.NoError(t, err)
	assert.Equal(t, Identifier("7"), svc.GroupID)
	assert.Equal(t, Identifier("T1"), svc.TypeID)
	assert.Equal(t, Identifier("003"), svc.ID)
	assert.Equal(t, "Nursing", svc.Text)
}

func TestService_JSONFieldNames(t *testing.T) {
	data := `{
		"serviceGroupId": 1, "serviceGroupText": "Everyday Living",
		"serviceTypeId": 10, "serviceTypeText": "Domestic assistance",
		"serviceId": 100, "serviceText": "Domestic Assistance",
		"participantContributionCategory": "Independence",
		"unitType": "Hour",
		"classifications": [{"classificationType": "Ongoing", "classificationText": "Ongoing"}],
		"items": [{"itemId": 5, "itemText": "Cleaning", "units": ["Hour"], "freeTextRequired": true}]
	}`

	var svc Service
	require.NoError(t, json.Unmarshal([]byte(data), &svc))
	assert.Equal(t, "1/10/100", svc.Key())
	assert.Equal(t, "Independence", svc.ContributionCategory)
	require.Len(t, svc.Items, 1)
	assert.Equal(t, Identifier("5"), svc.Items[0].ID)
	assert.True(t, svc.Items[0].FreeTextRequired)
	assert.Equal(t, []string{"Ongoing"}, svc.ClassificationTexts())
}

func TestService_AppendStrings(t *testing.T) {
	svc := TestServices(t)[4]
	got := svc.AppendStrings(nil)

	assert.Contains(t, got, "Physiotherapy")
	assert.Contains(t, got, "Allied health and therapy")
	assert.Contains(t, got, "Transport to appointment")
	assert.Contains(t, got, "Trip")
	for _, id := range []string{"G2", "T4", "S5", "W1"} {
		assert.NotContains(t, got, id)
	}

	prefix := []string{"keep"}
	got = svc.AppendStrings(prefix)
	assert.Equal(t, "keep", got[0])
}

func TestService_UniqueItems(t *testing.T) {
	svc := TestServices(t)[0]
	svc.Items = append(svc.Items, Item{ID: "I4", Text: "   "})

	items := svc.UniqueItems()
	require.Len(t, items, 2)
	assert.Equal(t, Identifier("I1"), items[0].ID)
	assert.Equal(t, Identifier("I3"), items[1].ID)
}

func TestFundingSource_ClaimingSequence(t *testing.T) {
	src := TestFundingSources(t)[0]

	seq := src.ClaimingSequence()
	require.Len(t, seq, 2)
	assert.Equal(t, 1, seq[0].Priority)
	assert.Equal(t, "Carryover", seq[0].BudgetTypeText)

	// The source record keeps its input order.
	assert.Equal(t, 2, src.BudgetClaimingSequence[0].Priority)

	assert.Equal(t, "1. Carryover → 2. Quarterly budget", src.FormatClaimingSequence())
	assert.Equal(t, "", FundingSource{}.FormatClaimingSequence())
}

func TestDatasets_Counts(t *testing.T) {
	var nilSets *Datasets
	assert.Equal(t, Counts{}, nilSets.Counts())

	counts := TestDatasets(t).Counts()
	assert.Equal(t, Counts{
		Services:              5,
		FundingSources:        2,
		CareActivities:        3,
		RestorativeActivities: 3,
		Prices:                4,
		BudgetCodes:           5,
	}, counts)
}

func TestRate_Format(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	tests := []struct {
		name     string
		rate     Rate
		want     string
		validity string
	}{
		{
			name:     "quarterly",
			rate:     Rate{Rate: v(2674.39), Frequency: 1, FrequencyPeriod: "QUARTER", ValidFrom: "2025-11-01", ValidTo: OpenEndedValidTo},
			want:     "$2,674.39 /quarter",
			validity: "2025-11-01",
		},
		{
			name:     "repeated frequency",
			rate:     Rate{Rate: v(120.5), Frequency: 2, FrequencyPeriod: "WEEK", ValidFrom: "2025-11-01", ValidTo: "2026-06-30"},
			want:     "$120.5 x2 /week",
			validity: "2025-11-01 – 2026-06-30",
		},
		{
			name: "percentage",
			rate: Rate{Rate: v(10), FrequencyPeriod: PeriodPercentage},
			want: "10%",
		},
		{
			name: "no amount",
			rate: Rate{FrequencyPeriod: "YEAR"},
			want: "No rate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rate.String())
			assert.Equal(t, tt.validity, tt.rate.Validity())
		})
	}
}

func TestBudgetCodes_UnmarshalJSON(t *testing.T) {
	var codes BudgetCodes
	err := json.Unmarshal([]byte(`{
		"entitlementCodes": [{"budgetItemCode": "L1", "budgetItemText": "Level 1",
			"rates": [{"rate": null, "frequency": 1, "frequencyPeriod": "QUARTER"}]}],
		"usageCodes": [{"budgetItemCode": "U1", "budgetItemText": "Usage"}]
	}`), &codes)
	require.NoError(t, err)
	assert.Equal(t, 2, codes.Len())

	first, ok := codes.Entitlement[0].FirstRate()
	require.True(t, ok)
	assert.Nil(t, first.Rate)
	_, ok = codes.Usage[0].FirstRate()
	assert.False(t, ok)
}
