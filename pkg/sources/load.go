package sources

import (
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/logging"
)

// Option configures Load.
type Option func(*loadConfig)

type loadConfig struct {
	logger         *zerolog.Logger
	maxConcurrency int
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithMaxConcurrency caps the number of datasets decoded at once.
func WithMaxConcurrency(n int) Option {
	return func(c *loadConfig) {
		if n > 0 {
			c.maxConcurrency = n
		}
	}
}

// Load reads and decodes every dataset named in paths from fsys. Datasets
// are loaded concurrently; the first failure cancels the rest and is
// returned.
func Load(ctx context.Context, fsys fs.FS, paths Paths, opts ...Option) (*catalogs.Datasets, error) {
	if fsys == nil {
		return nil, &errors.ValidationError{Field: "fsys", Message: "filesystem is required"}
	}
	cfg := &loadConfig{maxConcurrency: constants.MaxConcurrentLoads}
	for _, opt := range opts {
		opt(cfg)
	}
	ctx = logging.WithLogger(ctx, cfg.logger)

	ds := &catalogs.Datasets{}
	p := pool.New().
		WithMaxGoroutines(cfg.maxConcurrency).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, id := range IDs() {
		dctx := logging.WithDataset(ctx, id.String())
		name := paths.Get(id)
		if name == "" {
			logging.FromContext(dctx).Debug().Msg("No path configured, dataset left empty")
			continue
		}
		p.Go(func(ctx context.Context) error {
			ctx = logging.WithLogger(ctx, logging.FromContext(dctx))
			n, err := loadOne(ctx, fsys, id, name, ds)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Debug().
				Str("file", name).
				Int("records", n).
				Msg("Dataset loaded")
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadDir loads the default dataset files from a directory.
func LoadDir(ctx context.Context, dir string, opts ...Option) (*catalogs.Datasets, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.WrapIO("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, &errors.IOError{Operation: "stat", Path: dir, Message: "not a directory"}
	}
	return Load(ctx, os.DirFS(dir), DefaultPaths(), opts...)
}

// loadOne decodes a single dataset into its field of ds. Each dataset owns
// a distinct field, so concurrent calls do not race.
func loadOne(ctx context.Context, fsys fs.FS, id ID, name string, ds *catalogs.Datasets) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	format, ok := FormatOf(name)
	if !ok {
		return 0, errors.NewParseError("unknown", name, "unsupported file extension", nil)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return 0, errors.WrapIO("read", name, err)
	}
	// Reads do not observe ctx; a load that outlived it is discarded.
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	switch id {
	case ServicesID:
		ds.Services, err = DecodeServices(data, format, name)
		return len(ds.Services), err
	case FundingSourcesID:
		ds.FundingSources, err = DecodeFundingSources(data, format, name)
		return len(ds.FundingSources), err
	case CareActivitiesID:
		ds.CareActivities, err = DecodeActivities(data, format, name)
		return len(ds.CareActivities), err
	case RestorativeActivitiesID:
		ds.RestorativeActivities, err = DecodeActivities(data, format, name)
		return len(ds.RestorativeActivities), err
	case PricesID:
		ds.Prices, err = DecodePrices(data, format, name, WithLogger(logging.FromContext(ctx)))
		return len(ds.Prices), err
	case BudgetCodesID:
		ds.BudgetCodes, err = DecodeBudgetCodes(data, format, name)
		return ds.BudgetCodes.Len(), err
	}
	return 0, &errors.ValidationError{Field: "dataset", Value: id, Message: "unknown dataset"}
}
