package config

import (
	"bytes"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, Load(&cfg, newFlagSet(), nil))

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.InDelta(t, 0.3, cfg.ExtrudeDistance, 1e-9)
	assert.InDelta(t, 0.5, cfg.LoopCutT, 1e-9)
}

func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("MESHEDIT_EXTRUDE_DISTANCE", "2.5")
	t.Setenv("MESHEDIT_LOOPCUT_T", "0.25")
	t.Setenv("MESHEDIT_LOG_FORMAT", "json")

	var cfg Config
	require.NoError(t, Load(&cfg, newFlagSet(), []string{"-t", "0.75"}))

	assert.InDelta(t, 2.5, cfg.ExtrudeDistance, 1e-9)
	assert.InDelta(t, 0.75, cfg.LoopCutT, 1e-9, "flags override the environment")
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{"bad env number", map[string]string{"MESHEDIT_EXTRUDE_DISTANCE": "far"}, nil, "parse env:"},
		{"bad level", nil, []string{"-log-level", "loud"}, `unknown log level "loud"`},
		{"bad format", nil, []string{"-log-format", "xml"}, `unknown log format "xml"`},
		{"t out of range", nil, []string{"-t", "1"}, "outside (0, 1)"},
		{"unknown flag", nil, []string{"-nope"}, "flag provided but not defined"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			var cfg Config
			err := Load(&cfg, newFlagSet(), tc.args)
			assert.ErrorContains(t, err, tc.want)
		})
	}

	assert.Error(t, Load(nil, newFlagSet(), nil))
	assert.Error(t, Load(&Config{}, nil, nil))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "warn", LogFormat: "json"}

	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "face", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"face":3`)

	buf.Reset()
	cfg = Config{LogLevel: "DEBUG", LogFormat: "text"}
	logger, err = cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("detail")
	assert.Contains(t, buf.String(), "level=DEBUG msg=detail")
}
