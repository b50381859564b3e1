package servicemap

import (
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/sources"
)

// Option is a function that configures a Servicemap instance
type Option func(*options) error

// options holds the configuration for a Servicemap instance
type options struct {
	datasets *catalogs.Datasets
	fsys     fs.FS
	paths    sources.Paths

	minSimilarity    float64
	activityLimit    int
	strictDuplicates bool

	autoReloadInterval time.Duration
	reloadTimeout      time.Duration

	logger *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		paths:         sources.DefaultPaths(),
		minSimilarity: constants.DefaultMinSimilarity,
		activityLimit: constants.DefaultActivityLimit,
		reloadTimeout: constants.LoadTimeout,
	}
}

func (s *servicemap) applyOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s.options); err != nil {
			return err
		}
	}
	return nil
}

// WithDatasets uses in-memory datasets instead of loading files.
// Reload rebuilds from the same datasets.
func WithDatasets(ds *catalogs.Datasets) Option {
	return func(o *options) error {
		if ds == nil {
			return &errors.ValidationError{Field: "datasets", Message: "datasets cannot be nil"}
		}
		o.datasets = ds
		return nil
	}
}

// WithFS loads the datasets from fsys.
func WithFS(fsys fs.FS) Option {
	return func(o *options) error {
		if fsys == nil {
			return &errors.ValidationError{Field: "fs", Message: "filesystem cannot be nil"}
		}
		o.fsys = fsys
		return nil
	}
}

// WithDataDir loads the datasets from a directory on disk.
func WithDataDir(dir string) Option {
	return func(o *options) error {
		info, err := os.Stat(dir)
		if err != nil {
			return errors.WrapIO("stat", dir, err)
		}
		if !info.IsDir() {
			return &errors.IOError{Operation: "stat", Path: dir, Message: "not a directory"}
		}
		o.fsys = os.DirFS(dir)
		return nil
	}
}

// WithPaths overrides dataset file names. Empty fields keep their defaults.
func WithPaths(paths sources.Paths) Option {
	return func(o *options) error {
		o.paths = paths.Merge(sources.DefaultPaths())
		return nil
	}
}

// WithMinSimilarity sets the fuzzy matching threshold used for activity
// links and fuzzy price tiers.
func WithMinSimilarity(v float64) Option {
	return func(o *options) error {
		if v < 0 || v > 1 {
			return &errors.ValidationError{
				Field:   "min_similarity",
				Value:   v,
				Message: "must be between 0 and 1",
			}
		}
		o.minSimilarity = v
		return nil
	}
}

// WithActivityLimit caps the activities linked per service per catalog.
func WithActivityLimit(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return &errors.ValidationError{
				Field:   "activity_limit",
				Value:   n,
				Message: "must be positive",
			}
		}
		o.activityLimit = n
		return nil
	}
}

// WithStrictDuplicates makes builds fail on duplicate service keys.
func WithStrictDuplicates(enabled bool) Option {
	return func(o *options) error {
		o.strictDuplicates = enabled
		return nil
	}
}

// WithAutoReload reloads the datasets on a fixed interval.
func WithAutoReload(interval time.Duration) Option {
	return func(o *options) error {
		o.autoReloadInterval = interval
		return nil
	}
}

// WithReloadTimeout bounds each automatic reload. A reload that runs
// longer is abandoned and retried on the next tick.
func WithReloadTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return &errors.ValidationError{
				Field:   "reload_timeout",
				Value:   d,
				Message: "must be positive",
			}
		}
		o.reloadTimeout = d
		return nil
	}
}

// WithLogger sets the logger used for load and build events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
