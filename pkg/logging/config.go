package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap/pkg/constants"
)

// Config describes how a logger is built. The zero value logs info and
// above to stderr, as console output on a terminal and JSON otherwise.
type Config struct {
	Level      string         // trace, debug, info, warn, error, disabled
	Format     string         // auto, console, json
	Output     string         // stderr, stdout, discard, or a file path
	TimeFormat string         // kitchen, rfc3339, unix, or a Go layout
	NoColor    bool           // plain console output
	AddCaller  bool           // file:line on every event
	Fields     map[string]any // attached to every event
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// levelAliases maps accepted spellings onto zerolog levels.
var levelAliases = map[string]zerolog.Level{
	"":         zerolog.InfoLevel,
	"warning":  zerolog.WarnLevel,
	"none":     zerolog.Disabled,
	"off":      zerolog.Disabled,
	"disabled": zerolog.Disabled,
}

// timeLayouts maps named timestamp styles onto layouts. An empty layout
// makes the console writer print unix time.
var timeLayouts = map[string]string{
	"":        time.Kitchen,
	"kitchen": time.Kitchen,
	"rfc3339": time.RFC3339,
	"unix":    "",
	"epoch":   "",
}

// NewLoggerFromConfig builds a logger and sets the zerolog global level to
// match it.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := cfg.level()
	zerolog.SetGlobalLevel(level)

	lc := zerolog.New(cfg.writer()).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		lc = lc.Caller()
	}
	if len(cfg.Fields) > 0 {
		lc = lc.Fields(cfg.Fields)
	}
	return lc.Logger()
}

// Configure replaces the default logger with one built from cfg.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

func (cfg *Config) level() zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(cfg.Level))
	if l, ok := levelAliases[name]; ok {
		return l
	}
	if l, err := zerolog.ParseLevel(name); err == nil {
		return l
	}
	return zerolog.InfoLevel
}

func (cfg *Config) timeLayout() string {
	name := strings.ToLower(cfg.TimeFormat)
	if layout, ok := timeLayouts[name]; ok {
		return layout
	}
	if strings.Contains(cfg.TimeFormat, "2006") || strings.Contains(cfg.TimeFormat, "15:04") {
		return cfg.TimeFormat
	}
	return time.Kitchen
}

// writer resolves the output destination and wraps it in a console writer
// when the format asks for one.
func (cfg *Config) writer() io.Writer {
	out := openOutput(cfg.Output)

	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
	case "", "auto":
		if out != os.Stderr || !isTerminal() {
			return out
		}
	default:
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: cfg.timeLayout(),
		NoColor:    cfg.NoColor,
	}
}

// openOutput returns the writer named by spec. A file path is opened for
// appending, creating its directory first. Files that cannot be opened
// fall back to stderr.
func openOutput(spec string) io.Writer {
	switch strings.ToLower(spec) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	if dir := filepath.Dir(spec); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return os.Stderr
		}
	}
	f, err := os.OpenFile(spec, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}
