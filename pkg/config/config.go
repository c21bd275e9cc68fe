// Package config loads intes configuration from YAML files and the
// environment.
package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/observability"
	"github.com/odvcencio/intes/pkg/ui/theme"
)

// Default configuration values exported for documentation and validation
const (
	DefaultTitle        = "INTES: A GUI testing application"
	DefaultTheme        = "default"
	DefaultWidth        = 80
	DefaultHeight       = 24
	DefaultCanvasHeight = 0
	DefaultRowSpacing   = 1
	DefaultMargin       = 2
	DefaultA11yFormat   = "yaml"
	DefaultLogLevel     = "info"

	configDirName = ".intes"
)

// Config represents the complete intes configuration
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	MouseTab MouseTabConfig `yaml:"mouse_tab"`
	A11y     A11yConfig     `yaml:"a11y"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Trace    TraceConfig    `yaml:"trace"`
}

// WindowConfig controls the window chrome. Width and Height are only used
// when laying out without a terminal, as in accessibility dumps.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Theme  string `yaml:"theme"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// MouseTabConfig sizes the tracking surfaces, in cells. Zero fills.
type MouseTabConfig struct {
	CanvasWidth  int `yaml:"canvas_width"`
	CanvasHeight int `yaml:"canvas_height"`
	RowSpacing   int `yaml:"row_spacing"`
	Margin       int `yaml:"margin"`
}

// A11yConfig controls the accessibility tree export.
type A11yConfig struct {
	ExportPath string `yaml:"export_path"`
	Format     string `yaml:"format"`
}

// LogConfig controls structured logging. The terminal belongs to the UI, so
// logs go to File or nowhere.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MetricsConfig controls the Prometheus endpoint. Empty Listen disables it.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// TraceConfig controls OpenTelemetry tracing of signal posts. Spans are
// written as JSON to File; empty File disables tracing.
type TraceConfig struct {
	File string `yaml:"file"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	logFile := ""
	if home := homeDir(); home != "" {
		logFile = filepath.Join(home, configDirName, "intes.log")
	}
	return &Config{
		Window: WindowConfig{
			Title:  DefaultTitle,
			Theme:  DefaultTheme,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		MouseTab: MouseTabConfig{
			CanvasHeight: DefaultCanvasHeight,
			RowSpacing:   DefaultRowSpacing,
			Margin:       DefaultMargin,
		},
		A11y: A11yConfig{
			Format: DefaultA11yFormat,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  logFile,
		},
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, ~/.intes/config.yaml, ./.intes/config.yaml, then INTES_*
// environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	if home := homeDir(); home != "" {
		userConfigPath := filepath.Join(home, configDirName, "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	projectConfigPath := filepath.Join(".", configDirName, "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(cfg, configEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path. The file
// must exist.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	if err := loadAndMerge(cfg, path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "config file not found").
				WithContext("path", path)
		}
		return nil, err
	}

	applyEnvOverrides(cfg, configEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Process
// environment wins over ~/.intes/config.env.
func applyEnvOverrides(cfg *Config, configEnv map[string]string) {
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return configEnv[key]
	}

	if v := lookup("INTES_TITLE"); v != "" {
		cfg.Window.Title = v
	}
	if v := lookup("INTES_THEME"); v != "" {
		cfg.Window.Theme = v
	}
	if v, ok := envInt(lookup("INTES_CANVAS_WIDTH")); ok {
		cfg.MouseTab.CanvasWidth = v
	}
	if v, ok := envInt(lookup("INTES_CANVAS_HEIGHT")); ok {
		cfg.MouseTab.CanvasHeight = v
	}
	if v, ok := envInt(lookup("INTES_ROW_SPACING")); ok {
		cfg.MouseTab.RowSpacing = v
	}
	if v, ok := envInt(lookup("INTES_MARGIN")); ok {
		cfg.MouseTab.Margin = v
	}
	if v := lookup("INTES_A11Y_EXPORT"); v != "" {
		cfg.A11y.ExportPath = v
	}
	if v := lookup("INTES_A11Y_FORMAT"); v != "" {
		cfg.A11y.Format = v
	}
	if v := lookup("INTES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := lookup("INTES_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := lookup("INTES_METRICS_LISTEN"); v != "" {
		cfg.Metrics.Listen = v
	}
	if v := lookup("INTES_TRACE_FILE"); v != "" {
		cfg.Trace.File = v
	}

	cfg.Log.File = expandHomeDir(cfg.Log.File)
	cfg.Trace.File = expandHomeDir(cfg.Trace.File)
	cfg.A11y.ExportPath = expandHomeDir(cfg.A11y.ExportPath)
}

func envInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if _, err := theme.ByName(c.Window.Theme); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid window.theme").
			WithContext("theme", c.Window.Theme).
			WithRemediation("valid themes: " + strings.Join(theme.Names(), ", "))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "window size must be positive").
			WithContext("width", c.Window.Width).
			WithContext("height", c.Window.Height)
	}

	for name, v := range map[string]int{
		"mouse_tab.canvas_width":  c.MouseTab.CanvasWidth,
		"mouse_tab.canvas_height": c.MouseTab.CanvasHeight,
		"mouse_tab.row_spacing":   c.MouseTab.RowSpacing,
		"mouse_tab.margin":        c.MouseTab.Margin,
	} {
		if v < 0 {
			return errors.Newf(errors.ErrCodeConfigInvalid, "%s must not be negative", name).
				WithContext("value", v)
		}
	}

	if _, err := a11y.ParseFormat(c.A11y.Format); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid a11y.format")
	}
	if _, err := observability.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid log.level").
			WithRemediation("use debug, info, warn or error")
	}

	if listen := strings.TrimSpace(c.Metrics.Listen); listen != "" {
		if _, _, err := net.SplitHostPort(listen); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid metrics.listen").
				WithContext("listen", listen).
				WithRemediation("use host:port, e.g. 127.0.0.1:9464")
		}
	}
	return nil
}

func loadConfigEnvVars() map[string]string {
	home := homeDir()
	if home == "" {
		return nil
	}

	path := filepath.Join(home, configDirName, "config.env")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	vars := make(map[string]string)
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		line = strings.TrimSpace(line)
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		vars[key] = value
	}
	return vars
}
