// Package theme provides the visual palette for the harness widgets.
// Two themes ship: the dark default and a flat "metro" variant.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/intes/pkg/ui/backend"
)

// Theme defines the styles widgets draw with.
type Theme struct {
	Name string

	// Core palette
	Background    backend.Style // Window canvas
	Surface       backend.Style // Tab pages, panels
	SurfaceRaised backend.Style // Buttons at rest

	// Text hierarchy
	TextPrimary   backend.Style
	TextSecondary backend.Style
	TextMuted     backend.Style

	// Accents
	Accent     backend.Style // Active tab, pressed buttons
	AccentGlow backend.Style // Focus highlight

	// Widget parts
	Border      backend.Style
	BorderFocus backend.Style
	Field       backend.Style // Read-only and editable fields
	FieldFocus  backend.Style
	Canvas      backend.Style // Default fill for custom surfaces
}

// DefaultTheme returns the dark default theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name:          "default",
		Background:    backend.DefaultStyle().Background(backend.ColorRGB(12, 12, 16)),
		Surface:       backend.DefaultStyle().Background(backend.ColorRGB(22, 22, 28)),
		SurfaceRaised: backend.DefaultStyle().Background(backend.ColorRGB(40, 40, 50)).Foreground(backend.ColorRGB(240, 238, 232)),

		TextPrimary:   backend.DefaultStyle().Foreground(backend.ColorRGB(240, 238, 232)),
		TextSecondary: backend.DefaultStyle().Foreground(backend.ColorRGB(160, 158, 150)),
		TextMuted:     backend.DefaultStyle().Foreground(backend.ColorRGB(100, 98, 92)),

		Accent:     backend.DefaultStyle().Background(backend.ColorRGB(255, 183, 77)).Foreground(backend.ColorRGB(12, 12, 16)),
		AccentGlow: backend.DefaultStyle().Foreground(backend.ColorRGB(255, 200, 100)).Bold(true),

		Border:      backend.DefaultStyle().Foreground(backend.ColorRGB(60, 60, 72)),
		BorderFocus: backend.DefaultStyle().Foreground(backend.ColorRGB(255, 183, 77)),
		Field:       backend.DefaultStyle().Background(backend.ColorRGB(32, 32, 40)).Foreground(backend.ColorRGB(240, 238, 232)),
		FieldFocus:  backend.DefaultStyle().Background(backend.ColorRGB(48, 48, 60)).Foreground(backend.ColorRGB(255, 255, 255)).Bold(true),
		Canvas:      backend.DefaultStyle().Background(backend.ColorCyan).Foreground(backend.ColorBlack),
	}
}

// MetroTheme returns a flat, light theme with square accents.
func MetroTheme() *Theme {
	return &Theme{
		Name:          "metro",
		Background:    backend.DefaultStyle().Background(backend.ColorRGB(240, 240, 240)).Foreground(backend.ColorBlack),
		Surface:       backend.DefaultStyle().Background(backend.ColorRGB(250, 250, 250)).Foreground(backend.ColorBlack),
		SurfaceRaised: backend.DefaultStyle().Background(backend.ColorRGB(225, 225, 225)).Foreground(backend.ColorBlack),

		TextPrimary:   backend.DefaultStyle().Foreground(backend.ColorBlack),
		TextSecondary: backend.DefaultStyle().Foreground(backend.ColorRGB(80, 80, 80)),
		TextMuted:     backend.DefaultStyle().Foreground(backend.ColorRGB(140, 140, 140)),

		Accent:     backend.DefaultStyle().Background(backend.ColorRGB(0, 120, 215)).Foreground(backend.ColorWhite),
		AccentGlow: backend.DefaultStyle().Foreground(backend.ColorRGB(0, 120, 215)).Bold(true),

		Border:      backend.DefaultStyle().Foreground(backend.ColorRGB(170, 170, 170)),
		BorderFocus: backend.DefaultStyle().Foreground(backend.ColorRGB(0, 120, 215)),
		Field:       backend.DefaultStyle().Background(backend.ColorWhite).Foreground(backend.ColorBlack),
		FieldFocus:  backend.DefaultStyle().Background(backend.ColorWhite).Foreground(backend.ColorBlack).Underline(true),
		Canvas:      backend.DefaultStyle().Background(backend.ColorCyan).Foreground(backend.ColorBlack),
	}
}

var registry = map[string]func() *Theme{
	"default": DefaultTheme,
	"metro":   MetroTheme,
}

// Names returns the registered theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns the theme registered under name (case-insensitive).
func ByName(name string) (*Theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DefaultTheme(), nil
	}
	ctor, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// Layout defines standard spacing in cells.
var Layout = struct {
	TabBarHeight int
	RowSpacing   int
	Margin       int
	LabelWidth   int
	FieldWidth   int
	ButtonWidth  int
}{
	TabBarHeight: 1,
	RowSpacing:   1,
	Margin:       2,
	LabelWidth:   20,
	FieldWidth:   32,
	ButtonWidth:  12,
}
