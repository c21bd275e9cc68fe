package runtime

import (
	"time"

	"github.com/odvcencio/intes/pkg/ui/terminal"
)

// Message represents an event flowing into the UI.
// Messages come from terminal input or timers and are delivered on the
// event loop goroutine only.
type Message interface {
	isMessage()
}

// Native message codes. Every message kind the toolkit itself produces
// has a code in [1, NativeCodeMax]; application-defined codes must stay
// above NativeCodeMax.
const (
	CodeKey = iota + 1
	CodeResize
	CodeMouse
	CodeTick

	NativeCodeMax = 0xFF
)

// NativeCode returns the toolkit code of a message, or 0 for messages the
// toolkit does not know about.
func NativeCode(msg Message) int {
	switch msg.(type) {
	case KeyMsg:
		return CodeKey
	case ResizeMsg:
		return CodeResize
	case MouseMsg:
		return CodeMouse
	case TickMsg:
		return CodeTick
	default:
		return 0
	}
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// Event converts the message back to the terminal event it came from.
func (m KeyMsg) Event() terminal.KeyEvent {
	return terminal.KeyEvent{Key: m.Key, Rune: m.Rune, Alt: m.Alt, Ctrl: m.Ctrl, Shift: m.Shift}
}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg represents a mouse input event in screen coordinates.
type MouseMsg struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseMsg) isMessage() {}

// MouseButton identifies which mouse button was involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseMove:
		return "move"
	default:
		return "unknown"
	}
}

// TickMsg is sent on each frame tick when the app has a tick rate.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// messageFromEvent translates a backend event into a message.
func messageFromEvent(ev terminal.Event) Message {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		return KeyMsg{
			Key:   e.Key,
			Rune:  e.Rune,
			Alt:   e.Alt,
			Ctrl:  e.Ctrl,
			Shift: e.Shift,
		}
	case terminal.ResizeEvent:
		return ResizeMsg{Width: e.Width, Height: e.Height}
	case terminal.MouseEvent:
		return MouseMsg{
			X:      e.X,
			Y:      e.Y,
			Button: MouseButton(e.Button),
			Action: MouseAction(e.Action),
			Alt:    e.Alt,
			Ctrl:   e.Ctrl,
			Shift:  e.Shift,
		}
	default:
		return nil
	}
}
