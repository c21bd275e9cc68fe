// Package widgets provides the concrete widgets the harness is assembled from:
// labels, text fields, buttons, a generic framed box and a tab container.
package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/theme"
)

// Base provides common functionality for widgets.
// Embed this in widget structs to get default implementations.
type Base struct {
	bounds  runtime.Rect
	focused bool
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds runtime.Rect) {
	b.bounds = bounds
}

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() runtime.Rect {
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// CanFocus returns false by default.
func (b *Base) CanFocus() bool {
	return false
}

// Focus marks the widget as focused.
func (b *Base) Focus() {
	b.focused = true
}

// Blur marks the widget as unfocused.
func (b *Base) Blur() {
	b.focused = false
}

// IsFocused returns whether the widget is focused.
func (b *Base) IsFocused() bool {
	return b.focused
}

// FocusableBase extends Base for focusable widgets.
type FocusableBase struct {
	Base
}

// CanFocus returns true for focusable widgets.
func (f *FocusableBase) CanFocus() bool {
	return true
}

// TextWidth returns the display width of s in terminal columns.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// truncateString shortens s to fit maxWidth columns, marking the cut with
// an ellipsis when there is room for one.
func truncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// centerIn returns the x offset that centers text of width w in bounds.
func centerIn(bounds runtime.Rect, w int) int {
	return bounds.X + max(0, (bounds.Width-w)/2)
}

func themeOf(ctx runtime.RenderContext) *theme.Theme {
	if ctx.Theme != nil {
		return ctx.Theme
	}
	return theme.DefaultTheme()
}
