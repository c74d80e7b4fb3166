package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/Afrawles/contribimg/internal/github"
	"github.com/Afrawles/contribimg/internal/grid"
	"github.com/Afrawles/contribimg/internal/report"
)

type Config struct {
	Source   SourceConfig
	Grid     GridConfig
	Output   OutputConfig
	LogLevel string
}

type SourceConfig struct {
	BaseURL string
	Timeout time.Duration
}

type GridConfig struct {
	Cols       int
	Rows       int
	CellSize   int
	Padding    int
	Background string
	Palette    []string
}

type OutputConfig struct {
	Directory string
	Filename  string
}

func Default() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL: github.DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Grid: GridConfig{
			Cols:       grid.DefaultCols,
			Rows:       grid.DefaultRows,
			CellSize:   grid.DefaultCellSize,
			Padding:    grid.DefaultPadding,
			Background: grid.DefaultBackground,
			Palette:    append([]string(nil), grid.DefaultPalette...),
		},
		Output: OutputConfig{
			Directory: ".",
			Filename:  report.DefaultFilename,
		},
		LogLevel: "warn",
	}
}

func LoadFromEnv() (*Config, error) {
	cfg := Default()

	cfg.Source.BaseURL = getEnvOrDefault("CONTRIBIMG_API_URL", cfg.Source.BaseURL)
	cfg.Output.Directory = getEnvOrDefault("CONTRIBIMG_OUTPUT_DIR", cfg.Output.Directory)
	cfg.LogLevel = getEnvOrDefault("CONTRIBIMG_LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("CONTRIBIMG_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "invalid CONTRIBIMG_TIMEOUT %q", v)
		}
		cfg.Source.Timeout = d
	}

	var err error
	if cfg.Grid.CellSize, err = getEnvInt("CONTRIBIMG_CELL_SIZE", cfg.Grid.CellSize); err != nil {
		return nil, err
	}
	if cfg.Grid.Padding, err = getEnvInt("CONTRIBIMG_PADDING", cfg.Grid.Padding); err != nil {
		return nil, err
	}

	if v := os.Getenv("CONTRIBIMG_PALETTE"); v != "" {
		colors := strings.Split(v, ",")
		for i := range colors {
			colors[i] = strings.TrimSpace(colors[i])
		}
		cfg.Grid.Palette = colors
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Source.BaseURL == "" {
		return pkgerrors.New("API base URL is empty")
	}
	if c.Grid.Cols <= 0 || c.Grid.Rows <= 0 {
		return pkgerrors.Errorf("grid must have positive dimensions, got %dx%d", c.Grid.Cols, c.Grid.Rows)
	}
	if c.Grid.CellSize <= 0 {
		return pkgerrors.Errorf("cell size must be positive, got %d", c.Grid.CellSize)
	}
	if c.Grid.Padding < 0 {
		return pkgerrors.Errorf("padding must not be negative, got %d", c.Grid.Padding)
	}
	if _, err := grid.ParseHex(c.Grid.Background); err != nil {
		return pkgerrors.Wrap(err, "background")
	}
	if _, err := grid.ParsePalette(c.Grid.Palette); err != nil {
		return pkgerrors.Wrap(err, "palette")
	}
	return nil
}

// Layout returns the grid geometry described by the config.
func (c *Config) Layout() grid.Layout {
	return grid.Layout{
		Cols:     c.Grid.Cols,
		Rows:     c.Grid.Rows,
		CellSize: c.Grid.CellSize,
		Padding:  c.Grid.Padding,
	}
}

// Renderer builds a renderer from a validated config.
func (c *Config) Renderer() (*grid.Renderer, error) {
	bg, err := grid.ParseHex(c.Grid.Background)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "background")
	}
	palette, err := grid.ParsePalette(c.Grid.Palette)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "palette")
	}
	return grid.NewRenderer(c.Layout(), bg, palette), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "invalid %s %q", key, v)
	}
	return n, nil
}
