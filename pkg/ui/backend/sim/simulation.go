// Package sim provides a simulation backend for testing.
// It lets tests drive the harness with synthetic keyboard and mouse input
// and read back the rendered frame.
package sim

import (
	"strings"
	"sync"
	"unicode/utf8"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/intes/pkg/ui/backend"
	"github.com/odvcencio/intes/pkg/ui/backend/tcell"
	"github.com/odvcencio/intes/pkg/ui/terminal"
)

// Backend is a testable backend using tcell's simulation screen.
type Backend struct {
	*tcell.Backend
	screen        tcellv2.SimulationScreen
	width, height int
	mu            sync.Mutex
}

// New creates a new simulation backend with the given dimensions.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, height)

	return &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
		width:   width,
		height:  height,
	}
}

// Init initializes the simulation screen at the requested size.
// tcell resets simulation screens to 80x25 on Init.
func (s *Backend) Init() error {
	if err := s.Backend.Init(); err != nil {
		return err
	}
	s.mu.Lock()
	s.screen.SetSize(s.width, s.height)
	s.mu.Unlock()
	return nil
}

// Resize changes the simulation screen size.
func (s *Backend) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.screen.SetSize(width, height)
}

// InjectKey injects a key event into the simulation.
func (s *Backend) InjectKey(key terminal.Key, r rune) {
	_ = s.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectKeyRune injects a regular character keypress.
func (s *Backend) InjectKeyRune(r rune) {
	s.InjectKey(terminal.KeyRune, r)
}

// InjectKeyString injects a string as a sequence of key events.
func (s *Backend) InjectKeyString(str string) {
	for _, r := range str {
		s.InjectKeyRune(r)
	}
}

// InjectMouse injects a raw mouse event into the simulation.
func (s *Backend) InjectMouse(ev terminal.MouseEvent) {
	s.screen.InjectMouse(ev.X, ev.Y, tcell.MouseMask(ev), tcell.Modifiers(ev.Alt, ev.Ctrl, ev.Shift))
}

// InjectMove injects pointer motion with no button held.
func (s *Backend) InjectMove(x, y int) {
	s.InjectMouse(terminal.MouseEvent{X: x, Y: y, Action: terminal.MouseMove})
}

// InjectClick injects a press followed by a release at the same position.
func (s *Backend) InjectClick(x, y int, button terminal.MouseButton) {
	s.InjectMouse(terminal.MouseEvent{X: x, Y: y, Button: button, Action: terminal.MousePress})
	s.InjectMouse(terminal.MouseEvent{X: x, Y: y, Button: button, Action: terminal.MouseRelease})
}

// InjectDrag presses button at the first point, moves through the rest
// with the button held and releases at the last point.
func (s *Backend) InjectDrag(button terminal.MouseButton, points ...[2]int) {
	if len(points) == 0 {
		return
	}
	first, last := points[0], points[len(points)-1]
	s.InjectMouse(terminal.MouseEvent{X: first[0], Y: first[1], Button: button, Action: terminal.MousePress})
	for _, p := range points[1:] {
		s.InjectMouse(terminal.MouseEvent{X: p[0], Y: p[1], Button: button, Action: terminal.MouseMove})
	}
	s.InjectMouse(terminal.MouseEvent{X: last[0], Y: last[1], Button: button, Action: terminal.MouseRelease})
}

// InjectResize injects a resize event.
func (s *Backend) InjectResize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.screen.SetSize(width, height)
	s.mu.Unlock()
	_ = s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// Capture returns the whole screen, one line per row.
func (s *Backend) Capture() string {
	s.mu.Lock()
	w, h := s.screen.Size()
	s.mu.Unlock()
	return s.CaptureRegion(0, 0, w, h)
}

// CaptureCell returns the content and style of a single cell.
func (s *Backend) CaptureCell(x, y int) (mainc rune, comb []rune, style backend.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, c, tcStyle, _ := s.screen.GetContent(x, y)
	return m, c, convertTcellStyle(tcStyle)
}

// CaptureRegion returns a rectangle of the screen. Empty cells read as
// spaces; combining runes are kept.
func (s *Backend) CaptureRegion(x, y, w, h int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, h)
	for row := y; row < y+h; row++ {
		var line strings.Builder
		for col := x; col < x+w; col++ {
			mainc, comb, _, _ := s.screen.GetContent(col, row)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// FindText returns the cell of the first occurrence of text, or -1, -1.
// Columns count runes, so box-drawing borders before the text do not
// shift it.
func (s *Backend) FindText(text string) (x, y int) {
	for row, line := range strings.Split(s.Capture(), "\n") {
		if idx := strings.Index(line, text); idx >= 0 {
			return utf8.RuneCountInString(line[:idx]), row
		}
	}
	return -1, -1
}

// ContainsText returns true if the text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	x, _ := s.FindText(text)
	return x >= 0
}

var tcellAttrs = []struct {
	tc  tcellv2.AttrMask
	set func(backend.Style, bool) backend.Style
}{
	{tcellv2.AttrBold, backend.Style.Bold},
	{tcellv2.AttrItalic, backend.Style.Italic},
	{tcellv2.AttrUnderline, backend.Style.Underline},
	{tcellv2.AttrDim, backend.Style.Dim},
	{tcellv2.AttrBlink, backend.Style.Blink},
	{tcellv2.AttrReverse, backend.Style.Reverse},
	{tcellv2.AttrStrikeThrough, backend.Style.StrikeThrough},
}

func convertTcellStyle(ts tcellv2.Style) backend.Style {
	fg, bg, attrs := ts.Decompose()
	style := backend.DefaultStyle().
		Foreground(convertTcellColor(fg)).
		Background(convertTcellColor(bg))
	for _, a := range tcellAttrs {
		if attrs&a.tc != 0 {
			style = a.set(style, true)
		}
	}
	return style
}

func convertTcellColor(tc tcellv2.Color) backend.Color {
	switch {
	case tc == tcellv2.ColorDefault:
		return backend.ColorDefault
	case tc&tcellv2.ColorIsRGB != 0:
		r, g, b := tc.RGB()
		return backend.ColorRGB(uint8(r), uint8(g), uint8(b))
	}
	return backend.Color(tc & 0xFF)
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
