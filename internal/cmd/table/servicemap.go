package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/pricing"
	"github.com/agentstation/servicemap/pkg/search"
)

// ServicesToTableData converts service leaves to table format. Wide tables
// add the category, unit and link counts.
func ServicesToTableData(leaves []*hierarchy.Node, wide bool) Data {
	headers := []string{"ID", "Service", "Group", "Type"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Category", "Unit", "Funding", "Care", "Restorative")
		align = append(align, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight)
	}

	rows := make([][]string, 0, len(leaves))
	for _, leaf := range leaves {
		meta := leaf.Meta
		if meta == nil {
			meta = &hierarchy.ServiceMeta{}
		}
		row := []string{
			string(meta.ID),
			leaf.Name,
			OrDash(meta.GroupText),
			OrDash(meta.TypeText),
		}
		if wide {
			row = append(row,
				OrDash(meta.ContributionCategory),
				OrDash(meta.UnitType),
				strconv.Itoa(len(meta.FundingLinks)),
				strconv.Itoa(len(meta.CareActivities)),
				strconv.Itoa(len(meta.RestorativeActivities)),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// TreeToTableData renders a hierarchy as an indented outline.
func TreeToTableData(root *hierarchy.Node) Data {
	var rows [][]string
	if root == nil {
		return Data{Headers: []string{"Name", "Kind", "ID", "Children"}}
	}
	_ = hierarchy.Walk(root, func(n *hierarchy.Node, lineage []*hierarchy.Node) error {
		if n.Kind == hierarchy.KindRoot {
			return nil
		}
		depth := len(lineage) - 2
		count := "-"
		if n.IsBranch() {
			count = strconv.Itoa(len(n.Children))
		}
		rows = append(rows, []string{
			strings.Repeat("  ", max(depth, 0)) + n.Name,
			n.Kind.String(),
			n.ID,
			count,
		})
		return nil
	})

	return Data{
		Headers:         []string{"Name", "Kind", "ID", "Children"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}
}

// ServiceToTableData converts a single service into a key-value table.
func ServiceToTableData(leaf *hierarchy.Node, lineage []*hierarchy.Node, price *pricing.Match) Data {
	meta := leaf.Meta
	if meta == nil {
		meta = &hierarchy.ServiceMeta{}
	}

	crumbs := make([]string, 0, len(lineage))
	for _, c := range hierarchy.Breadcrumbs(lineage) {
		crumbs = append(crumbs, c.Name)
	}

	funding := make([]string, 0, len(meta.FundingLinks))
	for _, l := range meta.FundingLinks {
		funding = append(funding, fmt.Sprintf("%s (%s)", l.FundingSourceText, l.Matched()))
	}

	rows := [][]string{
		{"Node ID", leaf.ID},
		{"Service", leaf.Name},
		{"Path", strings.Join(crumbs, " › ")},
		{"Category", OrDash(meta.ContributionCategory)},
		{"Unit", OrDash(meta.UnitType)},
		{"Price", FormatPrice(price)},
		{"Funding", Join(funding)},
		{"Care Activities", Join(activityNames(meta.CareActivities))},
		{"Restorative Activities", Join(activityNames(meta.RestorativeActivities))},
	}

	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// FormatPrice renders a price match as "median (min–max) per unit [tier]".
func FormatPrice(m *pricing.Match) string {
	if m == nil {
		return "-"
	}
	s := fmt.Sprintf("%s (%s–%s)", FormatMoney(m.Median), FormatMoney(m.Min), FormatMoney(m.Max))
	if m.Unit != "" {
		s += " per " + m.Unit
	}
	s += " [" + m.MatchType.Label()
	if m.Similarity != nil {
		s += fmt.Sprintf(" %.0f%%", *m.Similarity*100)
	}
	return s + "]"
}

// PriceToTableData converts a price match into a key-value table.
func PriceToTableData(m pricing.Match) Data {
	similarity := "-"
	if m.Similarity != nil {
		similarity = fmt.Sprintf("%.2f", *m.Similarity)
	}
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Matched", m.Service},
			{"Unit", OrDash(m.Unit)},
			{"Median", FormatMoney(m.Median)},
			{"Min", FormatMoney(m.Min)},
			{"Max", FormatMoney(m.Max)},
			{"Level", strconv.Itoa(m.Level)},
			{"Match", m.MatchType.Label()},
			{"Similarity", similarity},
		},
	}
}

// FundingToTableData converts funding sources to table format. Wide tables
// add the classifications and the claiming sequence.
func FundingToTableData(sources []catalogs.FundingSource, wide bool) Data {
	headers := []string{"Code", "Funding Source", "Entry Categories"}
	if wide {
		headers = append(headers, "Classifications", "Claiming Sequence")
	}

	rows := make([][]string, 0, len(sources))
	for _, src := range sources {
		entries := make([]string, 0, len(src.EntryCategories))
		for _, e := range src.EntryCategories {
			entries = append(entries, e.Text)
		}
		row := []string{OrDash(src.Code), src.Text, Join(entries)}
		if wide {
			classes := make([]string, 0, len(src.Classifications))
			for _, c := range src.Classifications {
				classes = append(classes, c.Text)
			}
			row = append(row, Join(classes), OrDash(src.FormatClaimingSequence()))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// ActivitiesToTableData converts activities to table format. The scope
// column is shown only when some activity carries a scope.
func ActivitiesToTableData(acts []catalogs.Activity) Data {
	scoped := false
	for _, a := range acts {
		if a.Scope != catalogs.ScopeNone {
			scoped = true
			break
		}
	}

	headers := []string{"Category", "Activity"}
	if scoped {
		headers = append(headers, "Scope")
	}

	rows := make([][]string, 0, len(acts))
	for _, a := range acts {
		row := []string{a.Category, a.Activity}
		if scoped {
			row = append(row, OrDash(string(a.Scope)))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// ItemsToTableData converts item rows to table format. Wide tables add the
// units and the free text flag.
func ItemsToTableData(rows []search.ItemRow, wide bool) Data {
	headers := []string{"Item ID", "Item", "Function", "Service", "Type"}
	if wide {
		headers = append(headers, "Group", "Units", "Free Text")
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{r.ID.String(), r.Text, OrDash(r.FunctionText), r.ServiceText, OrDash(r.TypeText)}
		if wide {
			freeText := "-"
			if r.FreeTextRequired {
				freeText = "required"
			}
			row = append(row, OrDash(r.GroupText), Join(r.Units), freeText)
		}
		out = append(out, row)
	}

	return Data{Headers: headers, Rows: out}
}

// BudgetCodesToTableData converts budget codes to table format, one row per
// code with its headline rate. Wide tables list every rate with its
// validity window.
func BudgetCodesToTableData(codes []catalogs.BudgetCode, wide bool) Data {
	headers := []string{"Code", "Budget Item", "Rate"}
	if wide {
		headers = append(headers, "Valid", "Rates")
	}

	rows := make([][]string, 0, len(codes))
	for _, c := range codes {
		rate, valid := "No rate", "-"
		if r, ok := c.FirstRate(); ok {
			rate, valid = r.String(), OrDash(r.Validity())
		}
		row := []string{c.Code, c.Text, rate}
		if wide {
			all := make([]string, 0, len(c.Rates))
			for _, r := range c.Rates {
				all = append(all, r.String())
			}
			row = append(row, valid, Join(all))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// FacetsToTableData lists the filter options per field.
func FacetsToTableData(f search.Facets) Data {
	rows := make([][]string, 0, len(search.Fields))
	for _, field := range search.Fields {
		values := f.Values(field)
		rows = append(rows, []string{string(field), strconv.Itoa(max(len(values)-1, 0)), Join(values)})
	}
	return Data{
		Headers:         []string{"Filter", "Values", "Options"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
}

// StatsToTableData converts tree statistics to table format.
func StatsToTableData(s hierarchy.Stats) Data {
	rows := [][]string{
		{"Groups", strconv.Itoa(s.Groups)},
		{"Types", strconv.Itoa(s.Types)},
		{"Services", strconv.Itoa(s.Services)},
		{"Duplicates", strconv.Itoa(s.Duplicates)},
		{"Funding Links", strconv.Itoa(s.FundingLinks)},
		{"Care Links", strconv.Itoa(s.CareLinks)},
		{"Restorative Links", strconv.Itoa(s.RestorativeLinks)},
		{"Unlinked Services", strconv.Itoa(s.UnlinkedServices)},
	}
	return Data{
		Headers:         []string{"Metric", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

func activityNames(acts []catalogs.Activity) []string {
	names := make([]string, 0, len(acts))
	for _, a := range acts {
		names = append(names, a.Activity)
	}
	return names
}
