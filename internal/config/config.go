// Package config loads and validates the server's tunable settings.
//
// Settings come from three layers, lowest precedence first: built-in
// defaults, an optional YAML config file, and REMBG_MCP_* environment
// variables (dots replaced by underscores, e.g.
// REMBG_MCP_FLOODFILL_COLOR_THRESHOLD).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid wraps all configuration validation failures.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of the server configuration.
type Config struct {
	LogLevel  string    `mapstructure:"log_level"`
	Backend   Backend   `mapstructure:"backend"`
	FloodFill FloodFill `mapstructure:"floodfill"`
	Cache     Cache     `mapstructure:"cache"`
	Output    Output    `mapstructure:"output"`
}

// Backend configures the HTTP segmentation backend.
type Backend struct {
	// URL is the base URL of a rembg-compatible inference server.
	URL string `mapstructure:"url"`

	// Timeout bounds a single backend request, including model warm-up.
	Timeout time.Duration `mapstructure:"timeout"`
}

// FloodFill holds the heuristic tunables for the fast removal path.
type FloodFill struct {
	// ColorThreshold is the maximum redmean distance at which two colors
	// count as the same background color.
	ColorThreshold float64 `mapstructure:"color_threshold"`

	// MinUniformBorder is the fraction of border pixels that must match
	// the representative border color for the background to count as
	// simple.
	MinUniformBorder float64 `mapstructure:"min_uniform_border"`

	// MinTransparentRatio and MaxTransparentRatio bound the plausible
	// transparent fraction of a flood-fill result. Outside this band the
	// result is discarded and the ML path is used instead.
	MinTransparentRatio float64 `mapstructure:"min_transparent_ratio"`
	MaxTransparentRatio float64 `mapstructure:"max_transparent_ratio"`

	// FeatherRadius, when positive, Gaussian-blurs the transparency mask
	// to soften the cut edge. Zero disables feathering and keeps the
	// flood fill exactly idempotent.
	FeatherRadius float64 `mapstructure:"feather_radius"`
}

// Cache configures the model session cache.
type Cache struct {
	// IdleTimeout is how long loaded sessions survive without use before
	// being unloaded automatically. Zero disables auto-unload.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// Output configures result file naming.
type Output struct {
	// Suffix is appended to the input file stem when no output path is
	// given, e.g. "photo.jpg" -> "photo_nobg.png".
	Suffix string `mapstructure:"suffix"`
}

// Load reads configuration from the optional file at path, applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("REMBG_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("backend.url", "http://127.0.0.1:7000")
	v.SetDefault("backend.timeout", "120s")
	v.SetDefault("floodfill.color_threshold", 30.0)
	v.SetDefault("floodfill.min_uniform_border", 0.9)
	v.SetDefault("floodfill.min_transparent_ratio", 0.01)
	v.SetDefault("floodfill.max_transparent_ratio", 0.98)
	v.SetDefault("floodfill.feather_radius", 0.0)
	v.SetDefault("cache.idle_timeout", "5m")
	v.SetDefault("output.suffix", "_nobg")
}

// Validate enforces the policy ranges for every tunable.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("%w: backend.url must not be empty", ErrInvalid)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend.timeout must be positive, got %s", ErrInvalid, c.Backend.Timeout)
	}
	if c.FloodFill.ColorThreshold <= 0 {
		return fmt.Errorf("%w: floodfill.color_threshold must be positive, got %g", ErrInvalid, c.FloodFill.ColorThreshold)
	}
	if c.FloodFill.MinUniformBorder <= 0 || c.FloodFill.MinUniformBorder > 1 {
		return fmt.Errorf("%w: floodfill.min_uniform_border must be in (0, 1], got %g", ErrInvalid, c.FloodFill.MinUniformBorder)
	}
	if c.FloodFill.MinTransparentRatio < 0 || c.FloodFill.MinTransparentRatio > 1 {
		return fmt.Errorf("%w: floodfill.min_transparent_ratio must be in [0, 1], got %g", ErrInvalid, c.FloodFill.MinTransparentRatio)
	}
	if c.FloodFill.MaxTransparentRatio < 0 || c.FloodFill.MaxTransparentRatio > 1 {
		return fmt.Errorf("%w: floodfill.max_transparent_ratio must be in [0, 1], got %g", ErrInvalid, c.FloodFill.MaxTransparentRatio)
	}
	if c.FloodFill.MinTransparentRatio >= c.FloodFill.MaxTransparentRatio {
		return fmt.Errorf("%w: floodfill.min_transparent_ratio (%g) must be below max_transparent_ratio (%g)",
			ErrInvalid, c.FloodFill.MinTransparentRatio, c.FloodFill.MaxTransparentRatio)
	}
	if c.FloodFill.FeatherRadius < 0 {
		return fmt.Errorf("%w: floodfill.feather_radius must not be negative, got %g", ErrInvalid, c.FloodFill.FeatherRadius)
	}
	if c.Cache.IdleTimeout < 0 {
		return fmt.Errorf("%w: cache.idle_timeout must not be negative, got %s", ErrInvalid, c.Cache.IdleTimeout)
	}
	if c.Output.Suffix == "" {
		return fmt.Errorf("%w: output.suffix must not be empty", ErrInvalid)
	}
	return nil
}
