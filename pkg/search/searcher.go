package search

import (
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/hierarchy"
)

// Result is the outcome of a search.
type Result struct {
	Root   *hierarchy.Node   `json:"root" yaml:"root"`
	Leaves []*hierarchy.Node `json:"-" yaml:"-"`
}

// Empty reports whether nothing matched.
func (r *Result) Empty() bool {
	return r == nil || r.Root == nil
}

// Count returns the number of matching service leaves.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Leaves)
}

// Searcher answers repeated queries against one linked tree. Leaf haystacks
// are computed once at construction. A Searcher is safe for concurrent use.
type Searcher struct {
	tree      *hierarchy.Tree
	haystacks map[string]string
}

// NewSearcher prepares a Searcher for tree. The tree must already be linked,
// since link texts are part of the haystack.
func NewSearcher(tree *hierarchy.Tree) *Searcher {
	s := &Searcher{tree: tree, haystacks: make(map[string]string)}
	for _, leaf := range tree.Leaves() {
		s.haystacks[leaf.ID] = haystackOf(leaf)
	}
	return s
}

// Search filters the tree for q.
func (s *Searcher) Search(q Query) (*Result, error) {
	if s == nil || s.tree == nil || s.tree.Root == nil {
		return nil, &errors.ValidationError{Field: "tree", Message: "cannot search a nil tree"}
	}
	root := newPruner(q, s.haystack).node(s.tree.Root, nil)
	return &Result{Root: root, Leaves: Leaves(root)}, nil
}

func (s *Searcher) haystack(leaf *hierarchy.Node) string {
	if h, ok := s.haystacks[leaf.ID]; ok {
		return h
	}
	return haystackOf(leaf)
}
