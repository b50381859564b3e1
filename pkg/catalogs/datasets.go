package catalogs

// Datasets bundles the collections the hierarchy is built from.
// A nil collection is treated as empty.
type Datasets struct {
	Services              []Service       `json:"services" yaml:"services"`
	FundingSources        []FundingSource `json:"funding_sources" yaml:"funding_sources"`
	CareActivities        []Activity      `json:"care_activities" yaml:"care_activities"`
	RestorativeActivities []Activity      `json:"restorative_activities" yaml:"restorative_activities"`
	Prices                []Price         `json:"prices" yaml:"prices"`
	BudgetCodes           BudgetCodes     `json:"budget_codes" yaml:"budget_codes"`
}

// Counts summarizes the size of each collection.
type Counts struct {
	Services              int `json:"services" yaml:"services"`
	FundingSources        int `json:"funding_sources" yaml:"funding_sources"`
	CareActivities        int `json:"care_activities" yaml:"care_activities"`
	RestorativeActivities int `json:"restorative_activities" yaml:"restorative_activities"`
	Prices                int `json:"prices" yaml:"prices"`
	BudgetCodes           int `json:"budget_codes" yaml:"budget_codes"`
}

// Counts returns the size of each collection.
func (d *Datasets) Counts() Counts {
	if d == nil {
		return Counts{}
	}
	return Counts{
		Services:              len(d.Services),
		FundingSources:        len(d.FundingSources),
		CareActivities:        len(d.CareActivities),
		RestorativeActivities: len(d.RestorativeActivities),
		Prices:                len(d.Prices),
		BudgetCodes:           d.BudgetCodes.Len(),
	}
}
