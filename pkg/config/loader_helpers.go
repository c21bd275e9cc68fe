package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/intes/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config. A missing
// file is reported with the unwrapped os error so callers can test it with
// os.IsNotExist.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "read config").
			WithContext("path", path)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").
			WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").
			WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Strings override when non-empty;
// numbers override whenever the key is present, so an explicit zero wins.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if override.Window.Title != "" {
		base.Window.Title = override.Window.Title
	}
	if override.Window.Theme != "" {
		base.Window.Theme = override.Window.Theme
	}
	if fieldSet(raw, "window", "width") {
		base.Window.Width = override.Window.Width
	}
	if fieldSet(raw, "window", "height") {
		base.Window.Height = override.Window.Height
	}

	if fieldSet(raw, "mouse_tab", "canvas_width") {
		base.MouseTab.CanvasWidth = override.MouseTab.CanvasWidth
	}
	if fieldSet(raw, "mouse_tab", "canvas_height") {
		base.MouseTab.CanvasHeight = override.MouseTab.CanvasHeight
	}
	if fieldSet(raw, "mouse_tab", "row_spacing") {
		base.MouseTab.RowSpacing = override.MouseTab.RowSpacing
	}
	if fieldSet(raw, "mouse_tab", "margin") {
		base.MouseTab.Margin = override.MouseTab.Margin
	}

	if override.A11y.ExportPath != "" {
		base.A11y.ExportPath = override.A11y.ExportPath
	}
	if override.A11y.Format != "" {
		base.A11y.Format = override.A11y.Format
	}

	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if fieldSet(raw, "log", "file") {
		base.Log.File = override.Log.File
	}

	if fieldSet(raw, "metrics", "listen") {
		base.Metrics.Listen = override.Metrics.Listen
	}
	if fieldSet(raw, "trace", "file") {
		base.Trace.File = override.Trace.File
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		// Fall back to HOME env var if UserHomeDir fails
		return os.Getenv("HOME")
	}
	return home
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home := homeDir(); home != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home := homeDir(); home != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
