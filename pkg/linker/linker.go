// Package linker decorates the service leaves of a built hierarchy with
// funding source links and fuzzy activity links.
package linker

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/hierarchy"
	"github.com/agentstation/servicemap/pkg/logging"
	"github.com/agentstation/servicemap/pkg/match"
)

// Option configures a Linker.
type Option func(*config)

type config struct {
	activityLimit int
	minSimilarity float64
	logger        *zerolog.Logger
}

// WithActivityLimit caps the number of activities linked per catalog.
func WithActivityLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.activityLimit = n
		}
	}
}

// WithMinSimilarity sets the fuzzy threshold for activity links.
func WithMinSimilarity(v float64) Option {
	return func(c *config) {
		if v >= 0 && v <= 1 {
			c.minSimilarity = v
		}
	}
}

// WithLogger sets the logger used for link summaries.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Linker holds the reference datasets and their fuzzy indexes. It is
// immutable after New and may link any number of trees.
type Linker struct {
	funding     []catalogs.FundingSource
	care        *match.Index[catalogs.Activity]
	restorative *match.Index[catalogs.Activity]
	cfg         config
}

// New prepares a Linker, indexing both activity catalogs once.
func New(funding []catalogs.FundingSource, care, restorative []catalogs.Activity, opts ...Option) *Linker {
	cfg := config{
		activityLimit: constants.DefaultActivityLimit,
		minSimilarity: match.DefaultMinSimilarity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Linker{
		funding:     funding,
		care:        match.NewIndex(care, activityText, match.WithMinSimilarity(cfg.minSimilarity)),
		restorative: match.NewIndex(restorative, activityText, match.WithMinSimilarity(cfg.minSimilarity)),
		cfg:         cfg,
	}
}

func activityText(a catalogs.Activity) string {
	return a.Activity
}

// Link computes the links of every service leaf in tree, replacing any links
// from a previous run. A nil tree is a contract violation.
func (l *Linker) Link(tree *hierarchy.Tree) error {
	if tree == nil || tree.Root == nil {
		return &errors.ValidationError{Field: "tree", Message: "cannot link a nil tree"}
	}

	var stats hierarchy.Stats
	for _, leaf := range tree.Leaves() {
		if leaf.Meta == nil {
			leaf.Meta = &hierarchy.ServiceMeta{}
		}
		l.LinkMeta(leaf.Meta, leaf.Name)
		stats.Services++
		stats.FundingLinks += len(leaf.Meta.FundingLinks)
		stats.CareLinks += len(leaf.Meta.CareActivities)
		stats.RestorativeLinks += len(leaf.Meta.RestorativeActivities)
	}

	logging.OrDefault(l.cfg.logger).Debug().
		Str("build_id", tree.BuildID).
		Int("services", stats.Services).
		Int("funding_links", stats.FundingLinks).
		Int("care_links", stats.CareLinks).
		Int("restorative_links", stats.RestorativeLinks).
		Msg("Hierarchy linked")
	return nil
}

// LinkMeta replaces the links of a single service's metadata. name is the
// text matched against the activity catalogs.
func (l *Linker) LinkMeta(meta *hierarchy.ServiceMeta, name string) {
	meta.FundingLinks = l.FundingLinks(meta.Service)
	meta.CareActivities = l.activities(l.care, name)
	meta.RestorativeActivities = l.activities(l.restorative, name)
}

// FundingLinks applies both funding rules to svc. For each funding source
// in order, entry category links come first, then classification links.
// Links are not de-duplicated by destination.
func (l *Linker) FundingLinks(svc catalogs.Service) []hierarchy.FundingLink {
	links := []hierarchy.FundingLink{}
	for _, src := range l.funding {
		for _, ec := range src.EntryCategories {
			if match.Contains(svc.ContributionCategory, ec.Text) {
				links = append(links, hierarchy.FundingLink{
					FundingSourceCode: src.Code,
					FundingSourceText: src.Text,
					EntryCategoryText: ec.Text,
					Rule:              hierarchy.RuleEntryCategory,
				})
			}
		}
		for _, fc := range src.Classifications {
			if hasClassification(svc.Classifications, fc.Text) {
				links = append(links, hierarchy.FundingLink{
					FundingSourceCode:  src.Code,
					FundingSourceText:  src.Text,
					ClassificationText: fc.Text,
					Rule:               hierarchy.RuleClassification,
				})
			}
		}
	}
	return links
}

// hasClassification reports whether any of the service's classification
// texts contains text.
func hasClassification(classifications []catalogs.Classification, text string) bool {
	for _, c := range classifications {
		if match.Contains(c.Text, text) {
			return true
		}
	}
	return false
}

func (l *Linker) activities(idx *match.Index[catalogs.Activity], name string) []catalogs.Activity {
	results := idx.Find(name, l.cfg.activityLimit)
	out := make([]catalogs.Activity, 0, len(results))
	for _, r := range results {
		out = append(out, r.Item)
	}
	return out
}

// Link is the one-shot form of New followed by Link.
func Link(tree *hierarchy.Tree, funding []catalogs.FundingSource, care, restorative []catalogs.Activity, opts ...Option) error {
	return New(funding, care, restorative, opts...).Link(tree)
}
