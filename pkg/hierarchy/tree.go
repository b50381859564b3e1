package hierarchy

import (
	"errors"

	"github.com/agentstation/utc"

	"github.com/agentstation/servicemap/pkg/catalogs"
)

// SkipChildren is returned by a WalkFunc to skip the children of a branch.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk. lineage runs from the
// root to n inclusive and must not be retained after the call returns.
type WalkFunc func(n *Node, lineage []*Node) error

// Duplicate records a service key seen more than once during a build.
type Duplicate struct {
	Key        string `json:"key" yaml:"key"`
	NodeID     string `json:"node_id" yaml:"node_id"`
	FirstIndex int    `json:"first_index" yaml:"first_index"` // input position that created the leaf
	Index      int    `json:"index" yaml:"index"`             // input position that overwrote it
}

// Stats summarizes a tree.
type Stats struct {
	Groups           int `json:"groups" yaml:"groups"`
	Types            int `json:"types" yaml:"types"`
	Services         int `json:"services" yaml:"services"`
	Duplicates       int `json:"duplicates" yaml:"duplicates"`
	FundingLinks     int `json:"funding_links" yaml:"funding_links"`
	CareLinks        int `json:"care_links" yaml:"care_links"`
	RestorativeLinks int `json:"restorative_links" yaml:"restorative_links"`
	UnlinkedServices int `json:"unlinked_services" yaml:"unlinked_services"`
}

// Tree is a built service hierarchy together with its lookup indexes.
// After linking it is read-only and safe for concurrent readers.
type Tree struct {
	Root       *Node       `json:"root" yaml:"root"`
	BuildID    string      `json:"build_id" yaml:"build_id"`
	BuiltAt    utc.Time    `json:"built_at" yaml:"built_at"`
	Duplicates []Duplicate `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`

	nodes    map[string]*Node
	parents  map[string]*Node
	services map[catalogs.Identifier]*Node
	leaves   []*Node
}

// Find returns the node with the given node ID.
func (t *Tree) Find(id string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.nodes[id]
	return n, ok
}

// FindService returns the first leaf built from a record with the given
// service ID.
func (t *Tree) FindService(id catalogs.Identifier) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.services[id]
	return n, ok
}

// Leaves returns the service leaves in display order.
func (t *Tree) Leaves() []*Node {
	if t == nil {
		return nil
	}
	out := make([]*Node, len(t.leaves))
	copy(out, t.leaves)
	return out
}

// Lineage returns the path from the root to the node with the given ID,
// inclusive.
func (t *Tree) Lineage(id string) ([]*Node, bool) {
	n, ok := t.Find(id)
	if !ok {
		return nil, false
	}
	var rev []*Node
	for cur := n; cur != nil; cur = t.parents[cur.ID] {
		rev = append(rev, cur)
	}
	lineage := make([]*Node, len(rev))
	for i, node := range rev {
		lineage[len(rev)-1-i] = node
	}
	return lineage, true
}

// Walk visits every node depth first in display order.
func (t *Tree) Walk(fn WalkFunc) error {
	if t == nil || t.Root == nil {
		return nil
	}
	return Walk(t.Root, fn)
}

// Walk visits n and its descendants depth first in display order.
func Walk(n *Node, fn WalkFunc) error {
	err := walk(n, make([]*Node, 0, 4), fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(n *Node, lineage []*Node, fn WalkFunc) error {
	lineage = append(lineage, n)
	if err := fn(n, lineage); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := walk(child, lineage, fn); err != nil {
			if errors.Is(err, SkipChildren) {
				continue
			}
			return err
		}
	}
	return nil
}

// indexLeaves records the service leaves in display order.
func (t *Tree) indexLeaves() {
	t.leaves = t.leaves[:0]
	_ = t.Walk(func(n *Node, _ []*Node) error {
		if n.IsLeaf() {
			t.leaves = append(t.leaves, n)
		}
		return nil
	})
}

// Stats counts nodes and links in the tree.
func (t *Tree) Stats() Stats {
	var s Stats
	if t == nil {
		return s
	}
	s.Duplicates = len(t.Duplicates)
	_ = t.Walk(func(n *Node, _ []*Node) error {
		switch n.Kind {
		case KindGroup:
			s.Groups++
		case KindType:
			s.Types++
		case KindService:
			s.Services++
			if n.Meta == nil {
				s.UnlinkedServices++
				return nil
			}
			s.FundingLinks += len(n.Meta.FundingLinks)
			s.CareLinks += len(n.Meta.CareActivities)
			s.RestorativeLinks += len(n.Meta.RestorativeActivities)
			if len(n.Meta.FundingLinks)+len(n.Meta.CareActivities)+len(n.Meta.RestorativeActivities) == 0 {
				s.UnlinkedServices++
			}
		}
		return nil
	})
	return s
}
