// Package globals provides shared flag structures for CLI commands.
package globals

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/servicemap/pkg/search"
)

// ServiceFlags holds the term and categorical filters of a service search.
type ServiceFlags struct {
	Search   string
	Group    string
	Type     string
	Category string
	Unit     string
	Limit    int
}

// AddServiceFlags adds service search flags to a command.
func AddServiceFlags(cmd *cobra.Command) *ServiceFlags {
	flags := &ServiceFlags{}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Search term (case and accent insensitive)")
	cmd.Flags().StringVarP(&flags.Group, "group", "g", "",
		"Filter by service group")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "",
		"Filter by service type")
	cmd.Flags().StringVar(&flags.Category, "category", "",
		"Filter by participant contribution category")
	cmd.Flags().StringVar(&flags.Unit, "unit", "",
		"Filter by unit type")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}

// Query converts the flags into a search query.
func (f *ServiceFlags) Query() search.Query {
	q := search.Query{
		Term:    strings.TrimSpace(f.Search),
		Filters: make(map[search.Field]string, len(search.Fields)),
	}
	for field, value := range map[search.Field]string{
		search.FieldGroup:    f.Group,
		search.FieldType:     f.Type,
		search.FieldCategory: f.Category,
		search.FieldUnit:     f.Unit,
	} {
		if v := strings.TrimSpace(value); v != "" {
			q.Filters[field] = v
		}
	}
	return q
}

// ActivityFlags holds the filters of an activity explorer query.
type ActivityFlags struct {
	Search   string
	Scope    string
	Category string
	Grouped  bool
}

// AddActivityFlags adds activity explorer flags to a command.
func AddActivityFlags(cmd *cobra.Command) *ActivityFlags {
	flags := &ActivityFlags{}

	cmd.PersistentFlags().StringVarP(&flags.Search, "search", "s", "",
		"Search term")
	cmd.PersistentFlags().StringVar(&flags.Scope, "scope", "",
		"Filter by scope (Included, Excluded, All)")
	cmd.PersistentFlags().StringVar(&flags.Category, "category", "",
		"Filter by category")
	cmd.PersistentFlags().BoolVar(&flags.Grouped, "grouped", false,
		"Group activities by category")

	return flags
}

// Query converts the flags into an activity query.
func (f *ActivityFlags) Query() search.ActivityQuery {
	return search.ActivityQuery{
		Term:     strings.TrimSpace(f.Search),
		Scope:    strings.TrimSpace(f.Scope),
		Category: strings.TrimSpace(f.Category),
	}
}

// FundingFlags holds the filters of a funding explorer query.
type FundingFlags struct {
	Search             string
	ClassificationType string
	EntryCategory      string
}

// AddFundingFlags adds funding explorer flags to a command.
func AddFundingFlags(cmd *cobra.Command) *FundingFlags {
	flags := &FundingFlags{}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Search term")
	cmd.Flags().StringVar(&flags.ClassificationType, "classification-type", "",
		"Filter by classification type")
	cmd.Flags().StringVar(&flags.EntryCategory, "entry-category", "",
		"Filter by entry category")

	return flags
}

// Query converts the flags into a funding query.
func (f *FundingFlags) Query() search.FundingQuery {
	return search.FundingQuery{
		Term:               strings.TrimSpace(f.Search),
		ClassificationType: strings.TrimSpace(f.ClassificationType),
		EntryCategory:      strings.TrimSpace(f.EntryCategory),
	}
}

// ItemFlags holds the filters of an item explorer query.
type ItemFlags struct {
	Search   string
	Group    string
	Type     string
	Function string
	Grouped  bool
}

// AddItemFlags adds item explorer flags to a command.
func AddItemFlags(cmd *cobra.Command) *ItemFlags {
	flags := &ItemFlags{}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Search item text, ID, units and service context")
	cmd.Flags().StringVarP(&flags.Group, "group", "g", "",
		"Filter by service group")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "",
		"Filter by service type")
	cmd.Flags().StringVarP(&flags.Function, "function", "f", "",
		"Filter by function")
	cmd.Flags().BoolVar(&flags.Grouped, "grouped", false,
		"Nest items by group, type, function and service")

	return flags
}

// Query converts the flags into an item query.
func (f *ItemFlags) Query() search.ItemQuery {
	return search.ItemQuery{
		Term:     strings.TrimSpace(f.Search),
		Group:    strings.TrimSpace(f.Group),
		Type:     strings.TrimSpace(f.Type),
		Function: strings.TrimSpace(f.Function),
	}
}

// BudgetFlags holds the filters of a budget code explorer query.
type BudgetFlags struct {
	Search string
	Period string
}

// AddBudgetFlags adds budget code explorer flags to a command.
func AddBudgetFlags(cmd *cobra.Command) *BudgetFlags {
	flags := &BudgetFlags{}

	cmd.PersistentFlags().StringVarP(&flags.Search, "search", "s", "",
		"Search code, text, rate amount and period")
	cmd.PersistentFlags().StringVarP(&flags.Period, "period", "p", "",
		"Filter by frequency period (e.g. QUARTER)")

	return flags
}

// Query converts the flags into a budget code query.
func (f *BudgetFlags) Query() search.BudgetQuery {
	return search.BudgetQuery{
		Term:   strings.TrimSpace(f.Search),
		Period: strings.TrimSpace(f.Period),
	}
}
