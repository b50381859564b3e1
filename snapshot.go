package servicemap

import (
	"strings"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/pricing"
	"github.com/agentstation/servicemap/pkg/search"
)

// snapshot is everything a query needs. It is immutable once built.
type snapshot struct {
	datasets      *catalogs.Datasets
	tree          *hierarchy.Tree
	resolver      *pricing.Resolver
	searcher      *search.Searcher
	facets        search.Facets
	fundingFacets search.FundingFilterOptions
	items         []search.ItemRow
	itemFacets    search.ItemFacets
}

func newSnapshot(ds *catalogs.Datasets, tree *hierarchy.Tree, minSimilarity float64) *snapshot {
	items := search.FlattenItems(ds.Services)
	return &snapshot{
		datasets:      ds,
		tree:          tree,
		resolver:      pricing.NewResolver(ds.Prices, pricing.WithMinSimilarity(minSimilarity)),
		searcher:      search.NewSearcher(tree),
		facets:        search.FacetsOf(tree),
		fundingFacets: search.FundingFacets(ds.FundingSources),
		items:         items,
		itemFacets:    search.ItemFacetsOf(items),
	}
}

func (s *snapshot) BuildID() string { return s.tree.BuildID }

func (s *snapshot) Tree() *hierarchy.Tree { return s.tree }

// Datasets returns the datasets the tree was built from. The collections
// are shared with the snapshot and must not be modified.
func (s *snapshot) Datasets() catalogs.Datasets { return *s.datasets }

func (s *snapshot) Stats() hierarchy.Stats { return s.tree.Stats() }

func (s *snapshot) Facets() search.Facets { return s.facets }

func (s *snapshot) FundingFacets() search.FundingFilterOptions { return s.fundingFacets }

func (s *snapshot) ItemFacets() search.ItemFacets { return s.itemFacets }

func (s *snapshot) Search(q search.Query) (*search.Result, error) {
	return s.searcher.Search(q)
}

func (s *snapshot) Service(id string) (*hierarchy.Node, error) {
	id = strings.TrimSpace(id)
	if n, ok := s.tree.Find(id); ok && n.IsLeaf() {
		return n, nil
	}
	if n, ok := s.tree.FindService(catalogs.Identifier(id)); ok {
		return n, nil
	}
	return nil, errors.NewNotFoundError("service", id)
}

func (s *snapshot) Price(id string) (pricing.Match, error) {
	n, err := s.Service(id)
	if err != nil {
		return pricing.Match{}, err
	}
	m, ok := s.resolver.Resolve(n)
	if !ok {
		return pricing.Match{}, errors.NewNotFoundError("price", id)
	}
	return m, nil
}

// Lineage accepts service IDs as well as node IDs.
func (s *snapshot) Lineage(id string) ([]*hierarchy.Node, error) {
	if lineage, ok := s.tree.Lineage(id); ok {
		return lineage, nil
	}
	n, err := s.Service(id)
	if err != nil {
		return nil, errors.NewNotFoundError("node", id)
	}
	lineage, _ := s.tree.Lineage(n.ID)
	return lineage, nil
}

func (s *snapshot) FundingSources(q search.FundingQuery) []catalogs.FundingSource {
	return search.FilterFunding(s.datasets.FundingSources, q)
}

func (s *snapshot) Activities(kind ActivityKind, q search.ActivityQuery) ([]catalogs.Activity, error) {
	switch kind {
	case ActivityCare:
		return search.FilterActivities(s.datasets.CareActivities, q), nil
	case ActivityRestorative:
		return search.FilterActivities(s.datasets.RestorativeActivities, q), nil
	}
	return nil, &errors.ValidationError{
		Field:   "kind",
		Value:   string(kind),
		Message: "must be one of: care, restorative",
	}
}

func (s *snapshot) Items(q search.ItemQuery) []search.ItemRow {
	return search.FilterItems(s.items, q)
}

func (s *snapshot) BudgetCodes(view search.BudgetView, q search.BudgetQuery) []catalogs.BudgetCode {
	return search.FilterBudgetCodes(view.Codes(s.datasets.BudgetCodes), q)
}

func (s *snapshot) BudgetPeriods(view search.BudgetView) []string {
	return search.BudgetPeriods(view.Codes(s.datasets.BudgetCodes))
}
