// Package backend is the boundary between the harness window and whatever
// draws it. The real terminal goes through tcell; tests drive the
// simulation backend, which records cells and accepts injected input.
package backend

import "github.com/odvcencio/intes/pkg/ui/terminal"

// Backend is what the event loop needs from a display: a cell grid to draw
// into and a stream of key, mouse and resize events.
type Backend interface {
	// Init takes over the display and enables mouse reporting.
	Init() error

	// Fini gives the display back.
	Fini()

	// Size reports the grid in cells.
	Size() (width, height int)

	// SetContent stages one cell. comb carries combining runes and may be nil.
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show flushes staged cells.
	Show()

	HideCursor()

	// PollEvent blocks for the next input event. It returns nil once the
	// backend has been finalized.
	PollEvent() terminal.Event

	// PostEvent queues ev as if it had been read from the display.
	PostEvent(ev terminal.Event) error
}
