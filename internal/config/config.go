// Package config loads the settings shared by the meshedit binaries.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment backed defaults. Flags registered with
// RegisterFlags override them.
type Config struct {
	LogLevel        string  `env:"MESHEDIT_LOG_LEVEL" envDefault:"info"`
	LogFormat       string  `env:"MESHEDIT_LOG_FORMAT" envDefault:"text"`
	ExtrudeDistance float64 `env:"MESHEDIT_EXTRUDE_DISTANCE" envDefault:"0.3"`
	LoopCutT        float64 `env:"MESHEDIT_LOOPCUT_T" envDefault:"0.5"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// RegisterFlags binds the shared settings to fs, using the current values of
// cfg as defaults.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.Float64Var(&cfg.ExtrudeDistance, "distance", cfg.ExtrudeDistance, "extrusion distance")
	fs.Float64Var(&cfg.LoopCutT, "t", cfg.LoopCutT, "loop cut position along the start edge, 0 to 1")
}

// Load reads the environment and then parses args with fs. Flags for cfg are
// registered on fs before parsing.
func Load(cfg *Config, fs *flag.FlagSet, args []string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if err := ParseEnv(cfg); err != nil {
		return err
	}
	cfg.RegisterFlags(fs)
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks value ranges the environment parser cannot.
func (cfg *Config) Validate() error {
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	if cfg.LoopCutT <= 0 || cfg.LoopCutT >= 1 {
		return fmt.Errorf("loop cut t %v outside (0, 1)", cfg.LoopCutT)
	}
	return nil
}

// NewLogger builds the slog logger described by cfg, writing to w.
func (cfg *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
