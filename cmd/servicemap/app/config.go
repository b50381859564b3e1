package app

import (
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/sources"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "SERVICEMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Data configuration
	DataDir            string
	Paths              sources.Paths
	MinSimilarity      float64
	ActivityLimit      int
	StrictDuplicates   bool
	AutoReloadInterval time.Duration

	// API server defaults
	Server ServerConfig

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// ServerConfig holds the configured defaults of the serve command.
type ServerConfig struct {
	Host        string
	Port        int
	PathPrefix  string
	CacheTTL    time.Duration
	CORSOrigins []string
	APIKey      string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later with UpdateFromFlags)
// 2. Environment variables (SERVICEMAP_*)
// 3. .env files
// 4. Config file (configFile, or ~/.servicemap.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)

		// A missing default config file is not an error.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot read config file", err)
			}
		}
	}

	var paths sources.Paths
	if err := v.UnmarshalKey("paths", &paths); err != nil {
		return nil, errors.NewConfigError("config", "invalid paths", err)
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:            v.GetString("data_dir"),
		Paths:              paths.Merge(sources.DefaultPaths()),
		MinSimilarity:      v.GetFloat64("min_similarity"),
		ActivityLimit:      v.GetInt("activity_limit"),
		StrictDuplicates:   v.GetBool("strict_duplicates"),
		AutoReloadInterval: v.GetDuration("auto_reload_interval"),

		Server: ServerConfig{
			Host:        v.GetString("server.host"),
			Port:        v.GetInt("server.port"),
			PathPrefix:  v.GetString("server.path_prefix"),
			CacheTTL:    v.GetDuration("server.cache_ttl"),
			CORSOrigins: v.GetStringSlice("server.cors_origins"),
			APIKey:      v.GetString("server.api_key"),
		},

		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		LogOutput: v.GetString("log.output"),
	}

	return config, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no_color", false)
	v.SetDefault("format", "")

	v.SetDefault("data_dir", constants.DefaultDataDir)
	v.SetDefault("min_similarity", constants.DefaultMinSimilarity)
	v.SetDefault("activity_limit", constants.DefaultActivityLimit)
	v.SetDefault("strict_duplicates", false)
	v.SetDefault("auto_reload_interval", time.Duration(0))

	v.SetDefault("server.host", constants.DefaultServerHost)
	v.SetDefault("server.port", constants.DefaultServerPort)
	v.SetDefault("server.path_prefix", constants.DefaultPathPrefix)
	v.SetDefault("server.cache_ttl", constants.CacheTTL)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.api_key", "")

	// log.level stays empty so -v and -q can take effect
	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, dataDir string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is read first so its values win; godotenv never overrides
// variables that are already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
