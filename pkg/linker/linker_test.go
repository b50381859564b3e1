package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/servicemap/pkg/catalogs"
	pkgerrors "github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/logging"
)

func buildLinked(t *testing.T, opts ...Option) *hierarchy.Tree {
	t.Helper()
	tree, err := hierarchy.Build(catalogs.TestServices(t))
	require.NoError(t, err)
	opts = append([]Option{WithLogger(logging.NewNopLogger())}, opts...)
	require.NoError(t, Link(tree,
		catalogs.TestFundingSources(t),
		catalogs.TestCareActivities(t),
		catalogs.TestRestorativeActivities(t),
		opts...,
	))
	return tree
}

func leaf(t *testing.T, tree *hierarchy.Tree, id string) *hierarchy.Node {
	t.Helper()
	n, ok := tree.Find(id)
	require.True(t, ok, "node %s not found", id)
	return n
}

func activityNames(acts []catalogs.Activity) []string {
	out := make([]string, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.Activity)
	}
	return out
}

func TestLink_FundingLinks(t *testing.T) {
	tree := buildLinked(t)

	tests := []struct {
		id   string
		want []hierarchy.FundingLink
	}{
		{
			id: "svc:G1/T1/S1",
			want: []hierarchy.FundingLink{
				{FundingSourceCode: "F1", FundingSourceText: "Support at Home Ongoing", EntryCategoryText: "Independence", Rule: hierarchy.RuleEntryCategory},
				{FundingSourceCode: "F1", FundingSourceText: "Support at Home Ongoing", ClassificationText: "Ongoing", Rule: hierarchy.RuleClassification},
			},
		},
		{
			id: "svc:G1/T1/S2",
			want: []hierarchy.FundingLink{
				{FundingSourceCode: "F1", FundingSourceText: "Support at Home Ongoing", ClassificationText: "Ongoing", Rule: hierarchy.RuleClassification},
				{FundingSourceCode: "F2", FundingSourceText: "Restorative Care Pathway", EntryCategoryText: "Everyday Living", Rule: hierarchy.RuleEntryCategory},
			},
		},
		{
			// Category text "Clinical Care Supports" contains entry category "Clinical Care".
			id: "svc:G2/T3/S4",
			want: []hierarchy.FundingLink{
				{FundingSourceCode: "F1", FundingSourceText: "Support at Home Ongoing", EntryCategoryText: "Clinical Care", Rule: hierarchy.RuleEntryCategory},
				{FundingSourceCode: "F2", FundingSourceText: "Restorative Care Pathway", ClassificationText: "Restorative", Rule: hierarchy.RuleClassification},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, leaf(t, tree, tt.id).Meta.FundingLinks)
		})
	}
}

func TestLink_BothRulesKeepDuplicateDestinations(t *testing.T) {
	funding := []catalogs.FundingSource{{
		Code:            "F",
		Text:            "Fund",
		EntryCategories: []catalogs.EntryCategory{{Text: "Care"}, {Text: "care"}},
		Classifications: []catalogs.Classification{{Text: "Ongoing"}},
	}}
	svc := catalogs.Service{
		ContributionCategory: "Clinical Care",
		Classifications:      []catalogs.Classification{{Text: "Ongoing"}, {Text: "Ongoing support"}},
	}

	links := New(funding, nil, nil).FundingLinks(svc)
	require.Len(t, links, 3)
	assert.Equal(t, hierarchy.RuleEntryCategory, links[0].Rule)
	assert.Equal(t, hierarchy.RuleEntryCategory, links[1].Rule)
	assert.Equal(t, hierarchy.RuleClassification, links[2].Rule)
}

func TestLink_ActivityLinks(t *testing.T) {
	tree := buildLinked(t)

	domestic := leaf(t, tree, "svc:G1/T1/S1").Meta
	assert.Equal(t, []string{"Domestic assistance coordination"}, activityNames(domestic.CareActivities))
	assert.Empty(t, domestic.RestorativeActivities)

	nursing := leaf(t, tree, "svc:G2/T3/S4").Meta
	assert.Equal(t, []string{"Nursing care coordination"}, activityNames(nursing.CareActivities))

	physio := leaf(t, tree, "svc:G2/T4/S5").Meta
	assert.Empty(t, physio.CareActivities)
	require.Len(t, physio.RestorativeActivities, 1)
	assert.Equal(t, catalogs.ScopeIncluded, physio.RestorativeActivities[0].Scope)

	gardening := leaf(t, tree, "svc:G1/T1/S2").Meta
	assert.Empty(t, gardening.RestorativeActivities)
}

func TestLink_ActivityLimit(t *testing.T) {
	care := []catalogs.Activity{
		{Category: "A", Activity: "Nursing care visit"},
		{Category: "A", Activity: "Nursing care review"},
		{Category: "A", Activity: "Nursing care handover"},
		{Category: "A", Activity: "Nursing care planning"},
		{Category: "A", Activity: "Nursing care"},
	}
	svc := catalogs.Service{Text: "Nursing care"}

	meta := &hierarchy.ServiceMeta{Service: svc}
	New(nil, care, nil).LinkMeta(meta, svc.Text)
	assert.Equal(t, []string{"Nursing care visit", "Nursing care review", "Nursing care handover"}, activityNames(meta.CareActivities))

	New(nil, care, nil, WithActivityLimit(1)).LinkMeta(meta, svc.Text)
	assert.Equal(t, []string{"Nursing care visit"}, activityNames(meta.CareActivities))

	// Invalid values keep the default.
	New(nil, care, nil, WithActivityLimit(0), WithMinSimilarity(-1)).LinkMeta(meta, svc.Text)
	assert.Len(t, meta.CareActivities, 3)
}

func TestLink_MinSimilarity(t *testing.T) {
	care := []catalogs.Activity{{Activity: "Home nursing"}}
	meta := &hierarchy.ServiceMeta{}

	New(nil, care, nil).LinkMeta(meta, "nursing")
	assert.Len(t, meta.CareActivities, 1)

	New(nil, care, nil, WithMinSimilarity(0.99)).LinkMeta(meta, "nursing")
	assert.Empty(t, meta.CareActivities)
}

func TestLink_Idempotent(t *testing.T) {
	tree := buildLinked(t)
	first := make(map[string]hierarchy.ServiceMeta)
	for _, n := range tree.Leaves() {
		first[n.ID] = *n.Meta
	}

	l := New(catalogs.TestFundingSources(t), catalogs.TestCareActivities(t), catalogs.TestRestorativeActivities(t),
		WithLogger(logging.NewNopLogger()))
	require.NoError(t, l.Link(tree))

	for _, n := range tree.Leaves() {
		assert.Equal(t, first[n.ID], *n.Meta, n.ID)
	}
}

func TestLink_Deterministic(t *testing.T) {
	assert.Equal(t, buildLinked(t).Root, buildLinked(t).Root)
}

func TestLink_MissingTextNeverMatches(t *testing.T) {
	tree, err := hierarchy.Build([]catalogs.Service{{GroupID: "G", TypeID: "T", ID: "S"}})
	require.NoError(t, err)

	funding := []catalogs.FundingSource{{
		Text:            "Fund",
		EntryCategories: []catalogs.EntryCategory{{Text: ""}},
		Classifications: []catalogs.Classification{{Text: ""}},
	}}
	require.NoError(t, Link(tree, funding, catalogs.TestCareActivities(t), nil, WithLogger(logging.NewNopLogger())))

	meta := tree.Leaves()[0].Meta
	assert.Empty(t, meta.FundingLinks)
	assert.Empty(t, meta.CareActivities)
	assert.Empty(t, meta.RestorativeActivities)
	assert.NotNil(t, meta.FundingLinks)
}

func TestLink_EmptyCatalogs(t *testing.T) {
	tree, err := hierarchy.Build(nil)
	require.NoError(t, err)
	assert.NoError(t, Link(tree, nil, nil, nil))
}

func TestLink_NilTree(t *testing.T) {
	err := New(nil, nil, nil).Link(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)

	err = Link(&hierarchy.Tree{}, nil, nil, nil)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
}

func TestLink_LogsSummary(t *testing.T) {
	tl := logging.NewTestLogger(t)
	tree, err := hierarchy.Build(catalogs.TestServices(t))
	require.NoError(t, err)

	require.NoError(t, Link(tree, catalogs.TestFundingSources(t), nil, nil, WithLogger(tl.Logger)))
	tl.AssertContains(t, "Hierarchy linked")
	tl.AssertContains(t, `"services":5`)
}
