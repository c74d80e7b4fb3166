package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Afrawles/contribimg/internal/grid"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, grid.DefaultLayout(), cfg.Layout())
	assert.Equal(t, "contributions.png", cfg.Output.Filename)
	assert.Equal(t, "https://github-contributions-api.deno.dev", cfg.Source.BaseURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONTRIBIMG_API_URL", "http://localhost:8080")
	t.Setenv("CONTRIBIMG_OUTPUT_DIR", "/tmp/out")
	t.Setenv("CONTRIBIMG_TIMEOUT", "5s")
	t.Setenv("CONTRIBIMG_CELL_SIZE", "12")
	t.Setenv("CONTRIBIMG_PADDING", "3")
	t.Setenv("CONTRIBIMG_PALETTE", "#000000, #111111,#222222,#333333,#444444")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:8080", cfg.Source.BaseURL)
	assert.Equal(t, "/tmp/out", cfg.Output.Directory)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 12, cfg.Grid.CellSize)
	assert.Equal(t, 3, cfg.Grid.Padding)
	assert.Equal(t, "#111111", cfg.Grid.Palette[1])
}

func TestLoadFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("CONTRIBIMG_CELL_SIZE", "big")
	_, err := LoadFromEnv()
	assert.Error(t, err)

	t.Setenv("CONTRIBIMG_CELL_SIZE", "")
	t.Setenv("CONTRIBIMG_TIMEOUT", "soon")
	_, err = LoadFromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Source.BaseURL = "" }},
		{"zero cell", func(c *Config) { c.Grid.CellSize = 0 }},
		{"negative padding", func(c *Config) { c.Grid.Padding = -1 }},
		{"no columns", func(c *Config) { c.Grid.Cols = 0 }},
		{"short palette", func(c *Config) { c.Grid.Palette = c.Grid.Palette[:3] }},
		{"bad palette color", func(c *Config) { c.Grid.Palette[2] = "green" }},
		{"bad background", func(c *Config) { c.Grid.Background = "#12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRenderer(t *testing.T) {
	cfg := Default()
	cfg.Grid.CellSize = 12
	r, err := cfg.Renderer()
	require.NoError(t, err)

	w, h := r.Layout.Size()
	assert.Equal(t, 53*14, w)
	assert.Equal(t, 7*14, h)
	want, _ := grid.ParseHex("#39d353")
	assert.Equal(t, want, r.Palette[4])
}
