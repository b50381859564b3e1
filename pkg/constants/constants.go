// Package constants provides shared constants used throughout the servicemap codebase.
// This includes matching thresholds, limits, timeouts, file permissions and default
// paths that should be consistent across the library, the API server and the CLI.
package constants

import "time"

// Matching constants
const (
	// DefaultMinSimilarity is the minimum fuzzy similarity (0..1, higher is closer)
	// a candidate needs to be returned. It corresponds to a normalized edit
	// distance cutoff of 0.4.
	DefaultMinSimilarity = 0.6

	// DefaultLocationDistance scales the penalty applied to matches that start
	// late in the target string.
	DefaultLocationDistance = 100

	// DefaultActivityLimit is the number of activities linked per catalog per service.
	DefaultActivityLimit = 3

	// DefaultSuggestionLimit is the number of "did you mean" suggestions returned
	// for an unknown filter value.
	DefaultSuggestionLimit = 3
)

// Hierarchy constants
const (
	// RootID is the identifier of the hierarchy root node.
	RootID = "root"

	// RootName is the display name of the hierarchy root node.
	RootName = "All Services"

	// FilterAll is the filter value that disables a categorical filter.
	FilterAll = "All"
)

// Timeout constants define various timeout durations used in the application
const (
	// LoadTimeout is the timeout for loading all source datasets
	LoadTimeout = 1 * time.Minute

	// ShutdownTimeout is the grace period for HTTP server shutdown
	ShutdownTimeout = 15 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxConcurrentLoads is the maximum number of datasets loaded concurrently
	MaxConcurrentLoads = 5

	// MaxRequestBodySize is the maximum accepted HTTP request body in bytes
	MaxRequestBodySize = 1 << 20
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached query results
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// Path constants
const (
	// DefaultDataDir is the default directory holding the source datasets
	DefaultDataDir = "./data"

	// DefaultConfigName is the base name of the configuration file
	DefaultConfigName = ".servicemap"

	// DefaultServicesFile is the default file name of the service catalog
	DefaultServicesFile = "service-list.json"

	// DefaultFundingSourcesFile is the default file name of the funding sources
	DefaultFundingSourcesFile = "funding-sources.json"

	// DefaultCareActivitiesFile is the default file name of the care management activities
	DefaultCareActivitiesFile = "section7_care_management.csv"

	// DefaultRestorativeActivitiesFile is the default file name of the restorative activities
	DefaultRestorativeActivitiesFile = "section13_restorative_care.csv"

	// DefaultPricesFile is the default file name of the indicative price table
	DefaultPricesFile = "service-price-reference.csv"

	// DefaultBudgetCodesFile is the default file name of the budget codes
	DefaultBudgetCodesFile = "budget-codes.json"
)

// Server constants
const (
	// DefaultServerHost is the default listen host
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default listen port
	DefaultServerPort = 8080

	// DefaultPathPrefix is the default API path prefix
	DefaultPathPrefix = "/api/v1"
)
