package output

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/servicemap/internal/cmd/table"
	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/pricing"
)

// ServiceReport is the full detail of one service: the leaf, its
// breadcrumbs and its reference price. Price is nil when none resolved.
type ServiceReport struct {
	Node        *hierarchy.Node   `json:"node" yaml:"node"`
	Breadcrumbs []hierarchy.Crumb `json:"breadcrumbs" yaml:"breadcrumbs"`
	Price       *pricing.Match    `json:"price" yaml:"price"`

	lineage []*hierarchy.Node
}

// NewServiceReport creates a report for a service leaf.
func NewServiceReport(node *hierarchy.Node, lineage []*hierarchy.Node, price *pricing.Match) ServiceReport {
	return ServiceReport{
		Node:        node,
		Breadcrumbs: hierarchy.Breadcrumbs(lineage),
		Price:       price,
		lineage:     lineage,
	}
}

// TableData renders the report as a key-value table.
func (r ServiceReport) TableData() Data {
	return table.ServiceToTableData(r.Node, r.lineage, r.Price)
}

// WriteMarkdown renders the report as a markdown document.
func (r ServiceReport) WriteMarkdown(w io.Writer) error {
	meta := r.Node.Meta
	if meta == nil {
		meta = &hierarchy.ServiceMeta{}
	}

	crumbs := make([]string, 0, len(r.Breadcrumbs))
	for _, c := range r.Breadcrumbs {
		crumbs = append(crumbs, c.Name)
	}

	doc := md.NewMarkdown(w).
		H1(r.Node.Name).
		PlainText(md.Italic(strings.Join(crumbs, " › "))).
		LF().
		H2("Overview").
		Table(md.TableSet{
			Header: []string{"Property", "Value"},
			Rows: [][]string{
				{"Node ID", md.Code(r.Node.ID)},
				{"Service ID", md.Code(string(meta.ID))},
				{"Group", table.OrDash(meta.GroupText)},
				{"Type", table.OrDash(meta.TypeText)},
				{"Contribution Category", table.OrDash(meta.ContributionCategory)},
				{"Unit", table.OrDash(meta.UnitType)},
			},
		})

	doc.H2("Reference Price")
	if r.Price == nil {
		doc.PlainText("No reference price matched this service.").LF()
	} else {
		doc.PlainText(md.Bold(table.FormatPrice(r.Price))).LF()
		if r.Price.MatchType.IsFuzzy() {
			doc.Blockquote(fmt.Sprintf("Approximate match against %q.", r.Price.Service))
		}
	}

	if len(meta.Classifications) > 0 {
		items := make([]string, 0, len(meta.Classifications))
		for _, c := range meta.Classifications {
			items = append(items, classificationLine(c))
		}
		doc.H2("Classifications").BulletList(items...)
	}

	if len(meta.Items) > 0 {
		rows := make([][]string, 0, len(meta.Items))
		for _, it := range meta.Items {
			rows = append(rows, []string{string(it.ID), it.Text, table.Join(it.Units)})
		}
		doc.H2("Items").Table(md.TableSet{Header: []string{"ID", "Item", "Units"}, Rows: rows})
	}

	doc.H2("Funding Sources")
	if len(meta.FundingLinks) == 0 {
		doc.PlainText("No funding sources linked.").LF()
	} else {
		rows := make([][]string, 0, len(meta.FundingLinks))
		for _, l := range meta.FundingLinks {
			rows = append(rows, []string{table.OrDash(l.FundingSourceCode), l.FundingSourceText, l.Matched(), string(l.Rule)})
		}
		doc.Table(md.TableSet{Header: []string{"Code", "Funding Source", "Matched", "Rule"}, Rows: rows})
	}

	writeActivities(doc, "Care Management Activities", meta.CareActivities)
	writeActivities(doc, "Restorative Activities", meta.RestorativeActivities)

	return doc.Build()
}

func writeActivities(doc *md.Markdown, title string, acts []catalogs.Activity) {
	if len(acts) == 0 {
		return
	}
	items := make([]string, 0, len(acts))
	for _, a := range acts {
		line := fmt.Sprintf("%s: %s", a.Category, a.Activity)
		if a.Scope != catalogs.ScopeNone {
			line += fmt.Sprintf(" (%s)", a.Scope)
		}
		items = append(items, line)
	}
	doc.H2(title).BulletList(items...)
}

func classificationLine(c catalogs.Classification) string {
	if c.Type == "" || c.Type == c.Text {
		return c.Text
	}
	return fmt.Sprintf("%s (%s)", c.Text, c.Type)
}
