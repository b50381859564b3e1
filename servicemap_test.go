package servicemap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/servicemap/pkg/catalogs"
	pkgerrors "github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/logging"
	"github.com/agentstation/servicemap/pkg/pricing"
	"github.com/agentstation/servicemap/pkg/search"
	"github.com/agentstation/servicemap/pkg/sources"
)

func newTestMap(t *testing.T, opts ...Option) Servicemap {
	t.Helper()
	opts = append([]Option{
		WithDatasets(catalogs.TestDatasets(t)),
		WithLogger(logging.NewNopLogger()),
	}, opts...)
	sm, err := New(context.Background(), opts...)
	require.NoError(t, err)
	return sm
}

func TestNew_WithDatasets(t *testing.T) {
	sm := newTestMap(t)

	tree := sm.Tree()
	require.NotNil(t, tree)
	assert.NotEmpty(t, tree.BuildID)

	stats := sm.Stats()
	assert.Equal(t, 2, stats.Groups)
	assert.Equal(t, 4, stats.Types)
	assert.Equal(t, 5, stats.Services)

	datasets := sm.Datasets()
	assert.Equal(t, 5, datasets.Counts().Services)
	assert.Equal(t, []string{"All", "Everyday Living", "Clinical Supports"}, sm.Facets().Groups)
}

func TestNew_Empty(t *testing.T) {
	sm, err := New(context.Background(), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	assert.Equal(t, 0, sm.Stats().Services)
	res, err := sm.Search(search.Query{})
	require.NoError(t, err)
	assert.False(t, res.Empty())
	assert.Equal(t, 0, res.Count())
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nil datasets", WithDatasets(nil)},
		{"nil fs", WithFS(nil)},
		{"missing dir", WithDataDir("testdata/does-not-exist")},
		{"similarity too high", WithMinSimilarity(1.5)},
		{"negative similarity", WithMinSimilarity(-0.1)},
		{"zero activity limit", WithActivityLimit(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.opt)
			require.Error(t, err)
			var cfgErr *pkgerrors.ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestNew_WithDataDir(t *testing.T) {
	sm, err := New(context.Background(),
		WithDataDir("pkg/sources/testdata/data"),
		WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, sm.Stats().Services)

	m, err := sm.Price("100")
	require.NoError(t, err)
	assert.Equal(t, pricing.ExactL3, m.MatchType)
	assert.Equal(t, 55.0, m.Median)
}

func TestNew_StrictDuplicates(t *testing.T) {
	ds := catalogs.TestDatasets(t)
	ds.Services = append(ds.Services, ds.Services[0])

	_, err := New(context.Background(),
		WithDatasets(ds),
		WithStrictDuplicates(true),
		WithLogger(logging.NewNopLogger()),
	)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsAlreadyExists(err))

	sm := newTestMap(t, WithDatasets(ds))
	assert.Len(t, sm.Tree().Duplicates, 1)
}

func TestService(t *testing.T) {
	sm := newTestMap(t)

	byNode, err := sm.Service("svc:G1/T1/S1")
	require.NoError(t, err)
	assert.Equal(t, "Domestic Assistance", byNode.Name)

	byService, err := sm.Service("S1")
	require.NoError(t, err)
	assert.Same(t, byNode, byService)

	_, err = sm.Service("group:G1")
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = sm.Service("nope")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestPrice(t *testing.T) {
	sm := newTestMap(t)

	m, err := sm.Price("S1")
	require.NoError(t, err)
	assert.Equal(t, pricing.ExactL3, m.MatchType)
	assert.Equal(t, 55.0, m.Median)

	m, err = sm.Price("svc:G1/T1/S2")
	require.NoError(t, err)
	assert.Equal(t, pricing.ExactL2, m.MatchType)
	assert.Equal(t, 50.0, m.Median)

	_, err = sm.Price("missing")
	var nf *pkgerrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "service", nf.Resource)

	ds := catalogs.TestDatasets(t)
	ds.Prices = nil
	_, err = newTestMap(t, WithDatasets(ds)).Price("S1")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "price", nf.Resource)
}

func TestLineage(t *testing.T) {
	sm := newTestMap(t)

	for _, id := range []string{"svc:G2/T3/S4", "S4"} {
		lineage, err := sm.Lineage(id)
		require.NoError(t, err)
		crumbs := hierarchy.Breadcrumbs(lineage)
		require.Len(t, crumbs, 4)
		assert.Equal(t, "root", crumbs[0].ID)
		assert.Equal(t, "Clinical Supports", crumbs[1].Name)
		assert.Equal(t, "Nursing care", crumbs[2].Name)
		assert.Equal(t, "svc:G2/T3/S4", crumbs[3].ID)
	}

	lineage, err := sm.Lineage("group:G1")
	require.NoError(t, err)
	assert.Len(t, lineage, 2)

	_, err = sm.Lineage("missing")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSearch(t *testing.T) {
	sm := newTestMap(t)

	res, err := sm.Search(search.Query{Filters: map[search.Field]string{search.FieldType: "Meals"}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Count())
	assert.Equal(t, "svc:G1/T2/S3", res.Leaves[0].ID)
	assert.Len(t, res.Leaves[0].Lineage, 4)

	res, err = sm.Search(search.Query{Term: "zzz"})
	require.NoError(t, err)
	assert.True(t, res.Empty())
}

func TestFundingSources(t *testing.T) {
	sm := newTestMap(t)

	all := sm.FundingSources(search.FundingQuery{})
	assert.Len(t, all, 2)

	got := sm.FundingSources(search.FundingQuery{EntryCategory: "Everyday Living"})
	require.Len(t, got, 1)
	assert.Equal(t, "F2", got[0].Code)

	assert.Contains(t, sm.FundingFacets().EntryCategories, "Clinical Care")
}

func TestActivities(t *testing.T) {
	sm := newTestMap(t)

	care, err := sm.Activities(ActivityCare, search.ActivityQuery{})
	require.NoError(t, err)
	assert.Len(t, care, 3)

	excluded, err := sm.Activities(ActivityRestorative, search.ActivityQuery{Scope: "Excluded"})
	require.NoError(t, err)
	require.Len(t, excluded, 1)
	assert.Equal(t, "Gym membership", excluded[0].Activity)

	_, err = sm.Activities("other", search.ActivityQuery{})
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestParseActivityKind(t *testing.T) {
	k, err := ParseActivityKind(" Care ")
	require.NoError(t, err)
	assert.Equal(t, ActivityCare, k)

	k, err = ParseActivityKind("restorative")
	require.NoError(t, err)
	assert.Equal(t, ActivityRestorative, k)

	_, err = ParseActivityKind("section7")
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestReload_SwapsSnapshotAndFiresHooks(t *testing.T) {
	fsys := fstest.MapFS{
		"prices.csv": {Data: []byte("Service,Unit,Median,Min,Max,Level\nNursing care,Hour,100,90,110,2\n")},
	}
	sm, err := New(context.Background(),
		WithFS(fsys),
		WithPaths(sources.Paths{Prices: "prices.csv"}),
		WithLogger(logging.NewNopLogger()),
	)
	// the default service list is absent from fsys
	require.Error(t, err)
	assert.Nil(t, sm)

	tl := logging.NewTestLogger(t)
	sm = newTestMap(t, WithLogger(tl.Logger))
	first := sm.Tree()

	var builds []hierarchy.Stats
	sm.OnBuilt(func(tree *hierarchy.Tree, stats hierarchy.Stats) {
		builds = append(builds, stats)
	})

	require.NoError(t, sm.Reload(context.Background()))
	second := sm.Tree()

	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.BuildID, second.BuildID)
	require.Len(t, builds, 1)
	assert.Equal(t, 5, builds[0].Services)
	tl.AssertContains(t, "Service map ready")
}

func TestReload_FailureKeepsSnapshot(t *testing.T) {
	fsys := fstest.MapFS{
		"services.json": {Data: []byte(`[{"serviceGroupId":1,"serviceTypeId":1,"serviceId":1,"serviceText":"A"}]`)},
	}
	sm, err := New(context.Background(),
		WithFS(fsys),
		WithPaths(sources.Paths{Services: "services.json"}),
		WithLogger(logging.NewNopLogger()),
	)
	// other default datasets are missing from fsys
	require.Error(t, err)
	assert.Nil(t, sm)

	impl := newTestMap(t).(*servicemap)
	before := impl.Tree()
	impl.options.datasets = nil
	impl.options.fsys = fstest.MapFS{}

	err = impl.Reload(context.Background())
	require.Error(t, err)
	var resErr *pkgerrors.ResourceError
	assert.True(t, errors.As(err, &resErr))
	assert.Same(t, before, impl.Tree())
}

func TestConcurrentReadsDuringReload(t *testing.T) {
	sm := newTestMap(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			res, err := sm.Search(search.Query{Term: "care"})
			assert.NoError(t, err)
			assert.False(t, res.Empty())
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, sm.Reload(context.Background()))
		}()
	}
	wg.Wait()
}

func TestAutoReload(t *testing.T) {
	sm := newTestMap(t, WithAutoReload(10*time.Millisecond))
	defer func() { _ = sm.AutoReloadOff() }()

	built := make(chan struct{}, 1)
	sm.OnBuilt(func(*hierarchy.Tree, hierarchy.Stats) {
		select {
		case built <- struct{}{}:
		default:
		}
	})

	select {
	case <-built:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an automatic reload")
	}

	require.NoError(t, sm.AutoReloadOff())
	require.NoError(t, sm.AutoReloadOff())
}

func TestAutoReloadOn_RequiresInterval(t *testing.T) {
	sm := newTestMap(t)
	err := sm.AutoReloadOn()
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestSnapshot_PinsOneBuild(t *testing.T) {
	sm := newTestMap(t)

	view := sm.Snapshot()
	before := view.BuildID()
	firstTree := view.Tree()
	assert.Equal(t, sm.BuildID(), before)

	require.NoError(t, sm.Reload(context.Background()))
	assert.NotEqual(t, before, sm.BuildID())

	// The pinned view keeps answering from the build it was taken on.
	assert.Equal(t, before, view.BuildID())
	assert.Same(t, firstTree, view.Tree())

	pinned, err := view.Service("S4")
	require.NoError(t, err)
	want, ok := firstTree.FindService("S4")
	require.True(t, ok)
	assert.Same(t, want, pinned)

	current, err := sm.Service("S4")
	require.NoError(t, err)
	assert.NotSame(t, pinned, current)
}

func TestItemsAndBudgetCodes(t *testing.T) {
	sm := newTestMap(t)

	rows := sm.Items(search.ItemQuery{Term: "linen"})
	require.Len(t, rows, 1)
	assert.Equal(t, "Domestic Assistance", rows[0].ServiceText)
	assert.True(t, rows[0].FreeTextRequired)

	assert.Len(t, sm.Items(search.ItemQuery{}), 3)
	assert.Equal(t, []string{"All", "Everyday Living"}, sm.ItemFacets().Groups)

	codes := sm.BudgetCodes(search.BudgetUsage, search.BudgetQuery{Period: "WEEK"})
	require.Len(t, codes, 1)
	assert.Equal(t, "RSP-WK", codes[0].Code)
	assert.Equal(t, []string{"All", "QUARTER", "YEAR", "PERCENTAGE"}, sm.BudgetPeriods(search.BudgetEntitlement))
}
