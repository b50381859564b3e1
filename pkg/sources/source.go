// Package sources loads the service catalog and its reference datasets
// from a filesystem. Files are decoded by extension: JSON (including the
// fixture envelopes the upstream exports use), YAML and CSV.
//
// Example usage:
//
//	ds, err := sources.Load(ctx, os.DirFS("./data"), sources.DefaultPaths())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(ds.Services))
package sources

import (
	"path"
	"slices"
	"strings"

	"github.com/agentstation/servicemap/pkg/constants"
)

// ID identifies a dataset.
type ID string

// String returns the string representation of a dataset ID.
func (id ID) String() string {
	return string(id)
}

// Dataset IDs.
const (
	ServicesID              ID = "services"
	FundingSourcesID        ID = "funding_sources"
	CareActivitiesID        ID = "care_activities"
	RestorativeActivitiesID ID = "restorative_activities"
	PricesID                ID = "prices"
	BudgetCodesID           ID = "budget_codes"
)

// IDs returns all dataset IDs in load order.
func IDs() []ID {
	return []ID{
		ServicesID,
		FundingSourcesID,
		CareActivitiesID,
		RestorativeActivitiesID,
		PricesID,
		BudgetCodesID,
	}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Format is a file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatOf returns the format implied by a file's extension.
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".csv":
		return FormatCSV, true
	}
	return "", false
}

// Paths holds the file of each dataset, relative to the filesystem root.
// An empty path leaves that dataset empty.
type Paths struct {
	Services              string `json:"services" yaml:"services" mapstructure:"services"`
	FundingSources        string `json:"funding_sources" yaml:"funding_sources" mapstructure:"funding_sources"`
	CareActivities        string `json:"care_activities" yaml:"care_activities" mapstructure:"care_activities"`
	RestorativeActivities string `json:"restorative_activities" yaml:"restorative_activities" mapstructure:"restorative_activities"`
	Prices                string `json:"prices" yaml:"prices" mapstructure:"prices"`
	BudgetCodes           string `json:"budget_codes" yaml:"budget_codes" mapstructure:"budget_codes"`
}

// DefaultPaths returns the conventional file names of a data directory.
func DefaultPaths() Paths {
	return Paths{
		Services:              constants.DefaultServicesFile,
		FundingSources:        constants.DefaultFundingSourcesFile,
		CareActivities:        constants.DefaultCareActivitiesFile,
		RestorativeActivities: constants.DefaultRestorativeActivitiesFile,
		Prices:                constants.DefaultPricesFile,
		BudgetCodes:           constants.DefaultBudgetCodesFile,
	}
}

// Get returns the path of a dataset.
func (p Paths) Get(id ID) string {
	switch id {
	case ServicesID:
		return p.Services
	case FundingSourcesID:
		return p.FundingSources
	case CareActivitiesID:
		return p.CareActivities
	case RestorativeActivitiesID:
		return p.RestorativeActivities
	case PricesID:
		return p.Prices
	case BudgetCodesID:
		return p.BudgetCodes
	}
	return ""
}

// Merge returns p with empty fields taken from defaults.
func (p Paths) Merge(defaults Paths) Paths {
	if p.Services == "" {
		p.Services = defaults.Services
	}
	if p.FundingSources == "" {
		p.FundingSources = defaults.FundingSources
	}
	if p.CareActivities == "" {
		p.CareActivities = defaults.CareActivities
	}
	if p.RestorativeActivities == "" {
		p.RestorativeActivities = defaults.RestorativeActivities
	}
	if p.Prices == "" {
		p.Prices = defaults.Prices
	}
	if p.BudgetCodes == "" {
		p.BudgetCodes = defaults.BudgetCodes
	}
	return p
}
