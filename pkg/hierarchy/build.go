package hierarchy

import (
	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/logging"
)

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	strictDuplicates bool
	logger           *zerolog.Logger
}

// WithStrictDuplicates makes Build fail with a *errors.DuplicateError when
// two records share a group/type/service key, instead of keeping the last one.
func WithStrictDuplicates() Option {
	return func(c *buildConfig) {
		c.strictDuplicates = true
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

// Build folds services into a Group → Type → Service tree in a single pass.
// Children keep the first-seen order of their ids. A record whose key was
// already seen overwrites the earlier leaf's name and metadata in place and
// is recorded in Tree.Duplicates. An empty catalog yields a root-only tree.
func Build(services []catalogs.Service, opts ...Option) (*Tree, error) {
	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := logging.OrDefault(cfg.logger)

	b := newBuilder(len(services))
	for i, svc := range services {
		b.add(i, svc)
	}
	tree := b.tree
	tree.indexLeaves()

	for _, d := range tree.Duplicates {
		logger.Warn().
			Str("build_id", tree.BuildID).
			Str("key", d.Key).
			Int("first_index", d.FirstIndex).
			Int("index", d.Index).
			Msg("Duplicate service key, keeping last record")
	}

	if cfg.strictDuplicates && len(tree.Duplicates) > 0 {
		keys := make([]string, 0, len(tree.Duplicates))
		for _, d := range tree.Duplicates {
			keys = append(keys, d.Key)
		}
		return nil, errors.NewDuplicateError("service", keys)
	}

	logger.Debug().
		Str("build_id", tree.BuildID).
		Int("records", len(services)).
		Int("groups", len(b.groups)).
		Int("types", len(b.types)).
		Int("services", len(tree.leaves)).
		Int("duplicates", len(tree.Duplicates)).
		Msg("Hierarchy built")

	return tree, nil
}

// builder owns the temporary id indexes used only during construction.
type builder struct {
	tree   *Tree
	groups map[catalogs.Identifier]*Node
	types  map[string]*Node
	first  map[string]int
}

func newBuilder(capacity int) *builder {
	root := &Node{ID: constants.RootID, Name: constants.RootName, Kind: KindRoot}
	tree := &Tree{
		Root:     root,
		BuildID:  uuid.New().String(),
		BuiltAt:  utc.Now(),
		nodes:    map[string]*Node{root.ID: root},
		parents:  make(map[string]*Node),
		services: make(map[catalogs.Identifier]*Node, capacity),
		leaves:   make([]*Node, 0, capacity),
	}
	return &builder{
		tree:   tree,
		groups: make(map[catalogs.Identifier]*Node),
		types:  make(map[string]*Node),
		first:  make(map[string]int, capacity),
	}
}

func (b *builder) add(index int, svc catalogs.Service) {
	group, ok := b.groups[svc.GroupID]
	if !ok {
		group = &Node{ID: GroupID(svc.GroupID), Name: svc.GroupText, Kind: KindGroup}
		b.groups[svc.GroupID] = group
		b.attach(b.tree.Root, group)
	}

	typeID := TypeID(svc.GroupID, svc.TypeID)
	typ, ok := b.types[typeID]
	if !ok {
		typ = &Node{ID: typeID, Name: svc.TypeText, Kind: KindType}
		b.types[typeID] = typ
		b.attach(group, typ)
	}

	leafID := ServiceID(svc)
	meta := &ServiceMeta{
		Service:               svc,
		FundingLinks:          []FundingLink{},
		CareActivities:        []catalogs.Activity{},
		RestorativeActivities: []catalogs.Activity{},
	}

	if leaf, exists := b.tree.nodes[leafID]; exists {
		leaf.Name = svc.Text
		leaf.Meta = meta
		b.tree.Duplicates = append(b.tree.Duplicates, Duplicate{
			Key:        svc.Key(),
			NodeID:     leafID,
			FirstIndex: b.first[leafID],
			Index:      index,
		})
		return
	}

	leaf := &Node{ID: leafID, Name: svc.Text, Kind: KindService, Meta: meta}
	b.first[leafID] = index
	b.attach(typ, leaf)
	if _, seen := b.tree.services[svc.ID]; !seen {
		b.tree.services[svc.ID] = leaf
	}
}

func (b *builder) attach(parent, child *Node) {
	parent.Children = append(parent.Children, child)
	b.tree.nodes[child.ID] = child
	b.tree.parents[child.ID] = parent
}
