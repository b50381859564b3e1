package servicemap

import (
	"context"
	"strings"
	"sync"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/linker"
	"github.com/agentstation/servicemap/pkg/logging"
	"github.com/agentstation/servicemap/pkg/pricing"
	"github.com/agentstation/servicemap/pkg/search"
	"github.com/agentstation/servicemap/pkg/sources"
)

// Compile-time interface checks.
var (
	_ Servicemap = (*servicemap)(nil)
	_ View       = (*snapshot)(nil)
)

// View answers queries against one build. Every method of a View sees the
// same tree and datasets, however many reloads happen meanwhile.
type View interface {
	// BuildID identifies the build the view reads from.
	BuildID() string

	// Tree returns the linked hierarchy. It must not be modified.
	Tree() *hierarchy.Tree

	// Datasets returns the datasets the tree was built from.
	Datasets() catalogs.Datasets

	// Stats summarizes the tree.
	Stats() hierarchy.Stats

	// Facets returns the distinct filter values of the tree.
	Facets() search.Facets

	// FundingFacets returns the filter options of the funding explorer.
	FundingFacets() search.FundingFilterOptions

	// Search prunes the tree for q.
	Search(q search.Query) (*search.Result, error)

	// Service returns a service leaf by node ID or by service ID.
	Service(id string) (*hierarchy.Node, error)

	// Price resolves the reference price of a service.
	Price(id string) (pricing.Match, error)

	// Lineage returns the path from the root to a node, inclusive.
	Lineage(id string) ([]*hierarchy.Node, error)

	// FundingSources filters the funding source catalog.
	FundingSources(q search.FundingQuery) []catalogs.FundingSource

	// Activities filters one of the activity catalogs.
	Activities(kind ActivityKind, q search.ActivityQuery) ([]catalogs.Activity, error)

	// Items filters the claimable items of every service.
	Items(q search.ItemQuery) []search.ItemRow

	// ItemFacets returns the filter options of the item explorer.
	ItemFacets() search.ItemFacets

	// BudgetCodes filters one of the budget code lists.
	BudgetCodes(view search.BudgetView, q search.BudgetQuery) []catalogs.BudgetCode

	// BudgetPeriods returns the period filter options of a budget code list.
	BudgetPeriods(view search.BudgetView) []string
}

// Servicemap serves queries against a built and linked service hierarchy.
// Its View methods each read the current build; callers that make several
// reads and need them to agree take a Snapshot first. Reload swaps in a
// new build atomically.
type Servicemap interface {
	View

	// Snapshot returns a view pinned to the current build.
	Snapshot() View

	// Reload loads the datasets again and rebuilds the tree.
	Reload(ctx context.Context) error

	// OnBuilt registers a callback for completed builds.
	OnBuilt(BuiltHook)

	AutoReloader
}

// ActivityKind names an activity catalog.
type ActivityKind string

// Activity catalogs.
const (
	ActivityCare        ActivityKind = "care"
	ActivityRestorative ActivityKind = "restorative"
)

// ParseActivityKind parses an activity catalog name.
func ParseActivityKind(s string) (ActivityKind, error) {
	switch k := ActivityKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ActivityCare, ActivityRestorative:
		return k, nil
	}
	return "", &errors.ValidationError{
		Field:   "kind",
		Value:   s,
		Message: "must be one of: care, restorative",
	}
}

// servicemap is the internal implementation of the Servicemap interface
type servicemap struct {
	mu       sync.RWMutex
	current  *snapshot
	reloadMu sync.Mutex

	options *options
	hooks   *hooks

	// auto reload
	autoMu     sync.Mutex
	autoCancel context.CancelFunc
	autoDone   chan struct{}
}

// New loads the configured datasets and builds the first snapshot.
// Without WithDatasets, WithFS or WithDataDir the map starts empty.
func New(ctx context.Context, opts ...Option) (Servicemap, error) {
	s := &servicemap{
		options: defaultOptions(),
		hooks:   newHooks(),
	}
	if err := s.applyOptions(opts...); err != nil {
		return nil, errors.NewConfigError("servicemap", "invalid option", err)
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	if s.options.autoReloadInterval > 0 {
		if err := s.AutoReloadOn(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Reload loads the datasets and swaps in a freshly built snapshot.
// On failure the previous snapshot stays in place.
func (s *servicemap) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	snap, err := s.build(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	s.hooks.triggerBuilt(snap.tree)
	return nil
}

func (s *servicemap) build(ctx context.Context) (*snapshot, error) {
	logger := logging.OrDefault(s.options.logger)

	ds, err := s.load(ctx)
	if err != nil {
		return nil, errors.WrapResource("load", "datasets", "", err)
	}

	buildOpts := []hierarchy.Option{hierarchy.WithLogger(logger)}
	if s.options.strictDuplicates {
		buildOpts = append(buildOpts, hierarchy.WithStrictDuplicates())
	}
	tree, err := hierarchy.Build(ds.Services, buildOpts...)
	if err != nil {
		return nil, errors.WrapResource("build", "tree", "", err)
	}

	ctx = logging.WithBuild(logging.WithLogger(ctx, logger), tree.BuildID)
	logger = logging.FromContext(ctx)

	err = linker.Link(tree, ds.FundingSources, ds.CareActivities, ds.RestorativeActivities,
		linker.WithActivityLimit(s.options.activityLimit),
		linker.WithMinSimilarity(s.options.minSimilarity),
		linker.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.WrapResource("link", "tree", tree.BuildID, err)
	}

	snap := newSnapshot(ds, tree, s.options.minSimilarity)

	stats := tree.Stats()
	logger.Info().
		Int("services", stats.Services).
		Int("duplicates", stats.Duplicates).
		Int("unlinked", stats.UnlinkedServices).
		Int("items", len(snap.items)).
		Int("prices", len(ds.Prices)).
		Int("budget_codes", ds.BudgetCodes.Len()).
		Msg("Service map ready")

	return snap, nil
}

func (s *servicemap) load(ctx context.Context) (*catalogs.Datasets, error) {
	switch {
	case s.options.datasets != nil:
		return s.options.datasets, nil
	case s.options.fsys != nil:
		return sources.Load(ctx, s.options.fsys, s.options.paths, sources.WithLogger(s.options.logger))
	}
	logging.OrDefault(s.options.logger).Warn().Msg("No data source configured, starting with empty datasets")
	return &catalogs.Datasets{}, nil
}

func (s *servicemap) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Snapshot returns a view pinned to the current build.
func (s *servicemap) Snapshot() View {
	return s.snapshot()
}

// BuildID identifies the current build.
func (s *servicemap) BuildID() string {
	return s.snapshot().BuildID()
}

// Tree returns the current linked hierarchy.
func (s *servicemap) Tree() *hierarchy.Tree {
	return s.snapshot().Tree()
}

// Datasets returns the datasets the current tree was built from.
func (s *servicemap) Datasets() catalogs.Datasets {
	return s.snapshot().Datasets()
}

// Stats summarizes the current tree.
func (s *servicemap) Stats() hierarchy.Stats {
	return s.snapshot().Stats()
}

// Facets returns the distinct filter values of the current tree.
func (s *servicemap) Facets() search.Facets {
	return s.snapshot().Facets()
}

// FundingFacets returns the filter options of the funding explorer.
func (s *servicemap) FundingFacets() search.FundingFilterOptions {
	return s.snapshot().FundingFacets()
}

// Search prunes the current tree for q.
func (s *servicemap) Search(q search.Query) (*search.Result, error) {
	return s.snapshot().Search(q)
}

// Service returns a service leaf by node ID or by service ID.
func (s *servicemap) Service(id string) (*hierarchy.Node, error) {
	return s.snapshot().Service(id)
}

// Price resolves the reference price of a service.
func (s *servicemap) Price(id string) (pricing.Match, error) {
	return s.snapshot().Price(id)
}

// Lineage returns the path from the root to a node.
func (s *servicemap) Lineage(id string) ([]*hierarchy.Node, error) {
	return s.snapshot().Lineage(id)
}

// FundingSources filters the funding source catalog.
func (s *servicemap) FundingSources(q search.FundingQuery) []catalogs.FundingSource {
	return s.snapshot().FundingSources(q)
}

// Activities filters one of the activity catalogs.
func (s *servicemap) Activities(kind ActivityKind, q search.ActivityQuery) ([]catalogs.Activity, error) {
	return s.snapshot().Activities(kind, q)
}

// Items filters the claimable items of every service.
func (s *servicemap) Items(q search.ItemQuery) []search.ItemRow {
	return s.snapshot().Items(q)
}

// ItemFacets returns the filter options of the item explorer.
func (s *servicemap) ItemFacets() search.ItemFacets {
	return s.snapshot().ItemFacets()
}

// BudgetCodes filters one of the budget code lists.
func (s *servicemap) BudgetCodes(view search.BudgetView, q search.BudgetQuery) []catalogs.BudgetCode {
	return s.snapshot().BudgetCodes(view, q)
}

// BudgetPeriods returns the period filter options of a budget code list.
func (s *servicemap) BudgetPeriods(view search.BudgetView) []string {
	return s.snapshot().BudgetPeriods(view)
}

// OnBuilt registers a callback for completed builds.
func (s *servicemap) OnBuilt(fn BuiltHook) {
	s.hooks.OnBuilt(fn)
}
