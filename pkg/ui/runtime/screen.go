package runtime

import "github.com/odvcencio/intes/pkg/ui/theme"

// FocusProvider is implemented by roots that own more than one focus scope,
// such as a tabbed window whose pages each keep their own focus order.
type FocusProvider interface {
	ActiveFocusScope() *FocusScope
}

// Screen owns the root widget, the render buffer and the fallback focus scope.
type Screen struct {
	width, height int
	root          Widget
	focus         *FocusScope
	buffer        *Buffer
	back          *Buffer
	theme         *theme.Theme
}

// NewScreen creates a new screen with the given dimensions.
func NewScreen(w, h int, th *theme.Theme) *Screen {
	if th == nil {
		th = theme.DefaultTheme()
	}
	return &Screen{
		width:  w,
		height: h,
		focus:  NewFocusScope(),
		buffer: NewBuffer(w, h),
		theme:  th,
	}
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions and re-lays out the root.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	if s.root != nil {
		s.root.Layout(Rect{0, 0, w, h})
	}
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// Theme returns the current theme.
func (s *Screen) Theme() *theme.Theme {
	return s.theme
}

// SetRoot sets and lays out the root widget.
func (s *Screen) SetRoot(root Widget) {
	s.root = root
	if root != nil {
		root.Layout(Rect{0, 0, s.width, s.height})
	}
}

// Root returns the root widget.
func (s *Screen) Root() Widget {
	return s.root
}

// FocusScope returns the scope focus commands act on.
func (s *Screen) FocusScope() *FocusScope {
	if p, ok := s.root.(FocusProvider); ok {
		if scope := p.ActiveFocusScope(); scope != nil {
			return scope
		}
	}
	return s.focus
}

// Render draws the root into a scratch buffer and copies it onto the screen
// buffer, so only cells that changed since the last frame are dirty.
func (s *Screen) Render() {
	if s.back == nil {
		s.back = NewBuffer(s.width, s.height)
	} else {
		s.back.Resize(s.width, s.height)
	}
	s.back.Clear()
	if s.root != nil {
		s.root.Render(RenderContext{
			Buffer:  s.back,
			Theme:   s.theme,
			Focused: true,
			Bounds:  Rect{0, 0, s.width, s.height},
		})
	}
	s.buffer.CopyFrom(s.back)
}

// HandleMessage dispatches a message to the root and applies focus
// commands. Other commands are returned to the caller.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	if s.root == nil {
		return Unhandled()
	}
	result := s.root.HandleMessage(msg)

	rest := result.Commands[:0:0]
	for _, cmd := range result.Commands {
		if !s.handleCommand(cmd) {
			rest = append(rest, cmd)
		}
	}
	result.Commands = rest
	return result
}

func (s *Screen) handleCommand(cmd Command) bool {
	switch cmd.(type) {
	case FocusNext:
		s.FocusScope().FocusNext()
		return true
	case FocusPrev:
		s.FocusScope().FocusPrev()
		return true
	}
	return false
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer  *Buffer
	Theme   *theme.Theme
	Focused bool // Is the containing page visible and active?
	Bounds  Rect // Widget's allocated bounds
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer:  ctx.Buffer,
		Theme:   ctx.Theme,
		Focused: ctx.Focused,
		Bounds:  bounds,
	}
}
