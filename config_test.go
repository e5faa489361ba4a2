package motograph

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motograph.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `
[render]
width = 320
labels = true
node_shape = "square"

[log]
level = "debug"
max_log_size = 5

[run]
workers = 3
max_rounds = 100
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(320, cfg.Render.Width)
	assert.Equal(1024, cfg.Render.Height, "defaults are kept for missing keys")
	assert.True(cfg.Render.Labels)
	assert.True(cfg.Render.Edges)
	assert.Equal("debug", cfg.Log.Level)
	assert.Equal(5, cfg.Log.MaxSize)
	assert.Equal(7, cfg.Log.MaxAge)
	assert.Equal(3, cfg.Run.Workers)

	p := cfg.Processor()
	assert.Equal(Square, p.NodeShape)
	assert.Equal(320, p.Width)
	assert.Equal(100, p.MaxRounds)
	assert.True(p.Labels)
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "[render]\nwidht = 10\n",
		"syntax":        "[render\n",
		"node shape":    "[render]\nnode_shape = \"star\"\n",
		"log level":     "[log]\nlevel = \"loud\"\n",
		"negative size": "[render]\nwidth = -1\n",
		"rounds":        "[run]\nmax_rounds = -2\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLogConfig_NewLogger(t *testing.T) {
	assert := assert.New(t)

	var console bytes.Buffer
	logger, closer, err := LogConfig{Level: "info"}.NewLogger(&console)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("decomposed", "patches", 6)
	assert.NoError(closer.Close())
	assert.NotContains(console.String(), "hidden")
	assert.Contains(console.String(), "patches=6")

	path := filepath.Join(t.TempDir(), "run.log")
	logger, closer, err = LogConfig{File: path, Level: "debug", MaxSize: 1}.NewLogger(&console)
	require.NoError(t, err)
	logger.Debug("round", "live", 4)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(string(data), "live=4")

	_, _, err = LogConfig{Level: "verbose"}.NewLogger(&console)
	assert.Error(err)
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := LogConfig{Level: "debug"}.NewLogger(&buf)
	require.NoError(t, err)

	SetLogger(logger)
	defer SetLogger(nil)

	_, err = Decompose(subdividedTriangle(t))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "round")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
