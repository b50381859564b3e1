package search

import (
	"strings"

	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/match"
)

// Filter returns a new tree holding the leaves that satisfy q and the
// branches leading to them. Every returned node carries its lineage of
// canonical nodes. An unconstrained query returns the whole tree. Filter
// returns nil when no leaf matches.
func Filter(root *hierarchy.Node, q Query) *hierarchy.Node {
	if root == nil {
		return nil
	}
	return newPruner(q, haystackOf).node(root, nil)
}

// Haystack returns the normalized text a leaf's search term is matched
// against: the leaf name and every string in its metadata.
func Haystack(leaf *hierarchy.Node) string {
	return haystackOf(leaf)
}

func haystackOf(leaf *hierarchy.Node) string {
	parts := make([]string, 0, 32)
	parts = append(parts, leaf.Name)
	parts = leaf.Meta.AppendStrings(parts)
	return match.Normalize(strings.Join(parts, " "))
}

// pruner holds the per-query state of one filter pass.
type pruner struct {
	term          string
	filters       map[Field]string
	unconstrained bool
	haystack      func(*hierarchy.Node) string
}

func newPruner(q Query, haystack func(*hierarchy.Node) string) *pruner {
	return &pruner{
		term:          match.Normalize(q.Term),
		filters:       q.Active(),
		unconstrained: q.Unconstrained(),
		haystack:      haystack,
	}
}

func (p *pruner) node(n *hierarchy.Node, lineage []*hierarchy.Node) *hierarchy.Node {
	// Full slice expression forces a fresh backing array per node.
	lineage = append(lineage[:len(lineage):len(lineage)], n)

	if n.IsLeaf() {
		if !p.matches(n) {
			return nil
		}
		return &hierarchy.Node{ID: n.ID, Name: n.Name, Kind: n.Kind, Meta: n.Meta, Lineage: lineage}
	}

	var children []*hierarchy.Node
	for _, child := range n.Children {
		if kept := p.node(child, lineage); kept != nil {
			children = append(children, kept)
		}
	}
	if len(children) == 0 && !p.unconstrained {
		return nil
	}
	return &hierarchy.Node{ID: n.ID, Name: n.Name, Kind: n.Kind, Children: children, Lineage: lineage}
}

func (p *pruner) matches(leaf *hierarchy.Node) bool {
	if len(p.filters) > 0 {
		if leaf.Meta == nil {
			return false
		}
		for f, v := range p.filters {
			if f.Value(leaf.Meta.Service) != v {
				return false
			}
		}
	}
	if p.term == "" {
		return true
	}
	return strings.Contains(p.haystack(leaf), p.term)
}

// Leaves returns the service leaves of a filtered tree in display order.
func Leaves(root *hierarchy.Node) []*hierarchy.Node {
	if root == nil {
		return nil
	}
	var leaves []*hierarchy.Node
	_ = hierarchy.Walk(root, func(n *hierarchy.Node, _ []*hierarchy.Node) error {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return nil
	})
	return leaves
}
