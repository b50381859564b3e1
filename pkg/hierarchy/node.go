// Package hierarchy folds the flat service catalog into an ordered
// Group → Type → Service tree and defines the node types shared by the
// linker, the price resolver and search.
package hierarchy

import (
	"fmt"

	"github.com/agentstation/servicemap/pkg/catalogs"
)

// Kind is the kind of a hierarchy node.
type Kind string

// Node kinds. Every kind except KindService is a branch.
const (
	KindRoot    Kind = "root"
	KindGroup   Kind = "group"
	KindType    Kind = "type"
	KindService Kind = "service"
)

// String returns the kind as a string.
func (k Kind) String() string {
	return string(k)
}

// Node is a node of the service hierarchy. Branches carry children; service
// leaves carry Meta instead.
type Node struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Kind     Kind         `json:"kind" yaml:"kind"`
	Children []*Node      `json:"children,omitempty" yaml:"children,omitempty"`
	Meta     *ServiceMeta `json:"meta,omitempty" yaml:"meta,omitempty"`

	// Lineage holds the canonical ancestors from the root down to and
	// including this node. It is only set on nodes of filtered trees.
	Lineage []*Node `json:"-" yaml:"-"`
}

// IsLeaf reports whether the node is a service leaf.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind == KindService
}

// IsBranch reports whether the node is a root, group or type branch.
func (n *Node) IsBranch() bool {
	return n != nil && n.Kind != KindService
}

// ServiceMeta is the metadata attached to a service leaf: the source record
// plus the links resolved by the linker.
type ServiceMeta struct {
	catalogs.Service `yaml:",inline"`

	FundingLinks          []FundingLink       `json:"fundingLinks" yaml:"fundingLinks"`
	CareActivities        []catalogs.Activity `json:"careActivityLinks" yaml:"careActivityLinks"`
	RestorativeActivities []catalogs.Activity `json:"restorativeActivityLinks" yaml:"restorativeActivityLinks"`
}

// AppendStrings appends the searchable text of the metadata, links
// included, to dst. Record identifiers and funding source codes are not
// part of it.
func (m *ServiceMeta) AppendStrings(dst []string) []string {
	if m == nil {
		return dst
	}
	dst = m.Service.AppendStrings(dst)
	for _, l := range m.FundingLinks {
		dst = append(dst, l.FundingSourceText, l.EntryCategoryText, l.ClassificationText)
	}
	for _, a := range m.CareActivities {
		dst = a.AppendStrings(dst)
	}
	for _, a := range m.RestorativeActivities {
		dst = a.AppendStrings(dst)
	}
	return dst
}

// LinkRule names the rule that produced a funding link.
type LinkRule string

// Funding link rules.
const (
	RuleEntryCategory  LinkRule = "entry_category"
	RuleClassification LinkRule = "classification"
)

// FundingLink links a service to a funding source through either an entry
// category or a classification.
type FundingLink struct {
	FundingSourceCode  string   `json:"fundingSourceCode,omitempty" yaml:"fundingSourceCode,omitempty"`
	FundingSourceText  string   `json:"fundingSourceText" yaml:"fundingSourceText"`
	EntryCategoryText  string   `json:"matchedEntryCategoryText,omitempty" yaml:"matchedEntryCategoryText,omitempty"`
	ClassificationText string   `json:"matchedClassificationText,omitempty" yaml:"matchedClassificationText,omitempty"`
	Rule               LinkRule `json:"rule" yaml:"rule"`
}

// Matched returns the entry category or classification text that matched.
func (l FundingLink) Matched() string {
	if l.Rule == RuleClassification {
		return l.ClassificationText
	}
	return l.EntryCategoryText
}

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Breadcrumbs converts a lineage into a breadcrumb trail.
func Breadcrumbs(lineage []*Node) []Crumb {
	crumbs := make([]Crumb, 0, len(lineage))
	for _, n := range lineage {
		if n == nil {
			continue
		}
		crumbs = append(crumbs, Crumb{ID: n.ID, Name: n.Name, Kind: n.Kind})
	}
	return crumbs
}

// Node ID helpers.

// GroupID returns the node ID of a service group.
func GroupID(group catalogs.Identifier) string {
	return fmt.Sprintf("group:%s", group)
}

// TypeID returns the node ID of a service type within a group.
func TypeID(group, typ catalogs.Identifier) string {
	return fmt.Sprintf("type:%s/%s", group, typ)
}

// ServiceID returns the node ID of a service leaf.
func ServiceID(svc catalogs.Service) string {
	return fmt.Sprintf("svc:%s", svc.Key())
}
