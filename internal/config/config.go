package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anas-shakeel/go-bmp/internal/filters"
)

// Config holds the application configuration
type Config struct {
	IO      IOConfig      `json:"io"`
	Filter  FilterConfig  `json:"filter"`
	Preview PreviewConfig `json:"preview"`
	Logging LoggingConfig `json:"logging"`
}

// LoadOptions holds command-line override options
type LoadOptions struct {
	Input     string
	Output    string
	Radius    string
	Filters   string
	Crop      string
	LogLevel  string
	LogFormat string
	InfoOnly  bool
	Preview   bool
}

// IOConfig holds input and output paths
type IOConfig struct {
	Input    string `json:"input" env:"BMP_INPUT" default:""`
	Output   string `json:"output" env:"BMP_OUTPUT" default:""`
	InfoOnly bool   `json:"infoOnly"`
}

// FilterConfig holds the processing applied between decode and encode
type FilterConfig struct {
	Radius  int    `json:"radius" env:"BLUR_RADIUS" default:"10"`
	Filters string `json:"filters" env:"BMP_FILTERS" default:""`
	Crop    *Rect  `json:"crop,omitempty"`
}

// Rect is a crop region, origin at the top-left
type Rect struct {
	X, Y, Width, Height int
}

// PreviewConfig holds terminal preview configuration
type PreviewConfig struct {
	Enabled  bool `json:"enabled" env:"PREVIEW" default:"false"`
	MaxWidth int  `json:"maxWidth" env:"PREVIEW_MAX_WIDTH" default:"80"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `json:"level" env:"LOG_LEVEL" default:"info"`
	Format string `json:"format" env:"LOG_FORMAT" default:"text"`
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	return LoadWithOverrides(LoadOptions{})
}

// LoadWithOverrides loads configuration with command-line overrides
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	config := &Config{}

	// IO config
	config.IO.Input = getOverrideOrEnv(opts.Input, "BMP_INPUT", "")
	config.IO.Output = getOverrideOrEnv(opts.Output, "BMP_OUTPUT", "")
	config.IO.InfoOnly = opts.InfoOnly

	// Filter config
	radius, err := strconv.Atoi(getOverrideOrEnv(opts.Radius, "BLUR_RADIUS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: radius must be an integer: %w", err)
	}
	config.Filter.Radius = radius
	config.Filter.Filters = getOverrideOrEnv(opts.Filters, "BMP_FILTERS", "")
	if opts.Crop != "" {
		rect, err := ParseRect(opts.Crop)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		config.Filter.Crop = rect
	}

	// Preview config
	config.Preview.Enabled = getBoolWithDefault("PREVIEW", false) || opts.Preview
	config.Preview.MaxWidth = getIntWithDefault("PREVIEW_MAX_WIDTH", 80)

	// Logging config
	config.Logging.Level = getOverrideOrEnv(opts.LogLevel, "LOG_LEVEL", "info")
	config.Logging.Format = getOverrideOrEnv(opts.LogFormat, "LOG_FORMAT", "text")

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Pipeline returns the filter pipeline to run: the explicit filter list if
// one was given, otherwise a single blur with the configured radius.
func (c *Config) Pipeline() string {
	if c.Filter.Filters != "" {
		return c.Filter.Filters
	}
	return fmt.Sprintf("blur:%d", c.Filter.Radius)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate IO config
	if c.IO.Input == "" {
		return fmt.Errorf("input path cannot be empty")
	}

	if c.IO.Output == "" && !c.IO.InfoOnly {
		return fmt.Errorf("output path cannot be empty")
	}

	// Validate filter config
	if c.Filter.Radius < 0 || c.Filter.Radius > filters.MaxRadius {
		return fmt.Errorf("blur radius must be between 0 and %d: %d", filters.MaxRadius, c.Filter.Radius)
	}

	if c.Preview.MaxWidth <= 0 {
		return fmt.Errorf("preview width must be positive")
	}

	// Validate logging config
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}

	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// ParseRect parses "x,y,width,height"
func ParseRect(s string) (*Rect, error) {
	parts := splitString(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("crop must be x,y,width,height: %q", s)
	}

	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("crop must be x,y,width,height: %q", s)
		}
		vals[i] = v
	}

	return &Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// Helper functions for environment variable parsing
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getOverrideOrEnv returns command-line override value, env value, or default
func getOverrideOrEnv(override, envKey, defaultValue string) string {
	if override != "" {
		return override
	}
	return getEnvWithDefault(envKey, defaultValue)
}

func splitString(s, sep string) []string {
	if s == "" {
		return []string{}
	}

	var result []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
