// Package harness assembles the INTES test window: tracking surfaces that
// turn raw input into shared state plus synthetic signals, and read-only
// report fields that redraw themselves from that state.
package harness

import (
	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// MouseButton is the logical button recorded in the action context.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// String returns the display name. ButtonNone has an empty name.
func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonMiddle:
		return "Middle"
	case ButtonRight:
		return "Right"
	default:
		return ""
	}
}

// ResolveButton maps a physical button to a logical one. Wheel and
// unknown buttons resolve to ButtonNone.
func ResolveButton(b runtime.MouseButton) MouseButton {
	switch b {
	case runtime.MouseLeft:
		return ButtonLeft
	case runtime.MouseMiddle:
		return ButtonMiddle
	case runtime.MouseRight:
		return ButtonRight
	default:
		return ButtonNone
	}
}

// Action labels written by the tracking surfaces.
const (
	ActionNone      = ""
	ActionMouseDown = "Mouse Down"
	ActionMouseUp   = "Mouse Up"
	ActionMouseMove = "Mouse Move"
	ActionKeyDown   = "Key Down"
)

// ActionState is the latest observed input of one tab.
type ActionState struct {
	MouseX int
	MouseY int
	Button MouseButton
	Action string
	Key    string
}

// ActionReader gives read access to the context. Report fields get this.
type ActionReader interface {
	Snapshot() ActionState
}

// ActionWriter gives write access. Only surfaces that observe raw input
// get this.
type ActionWriter interface {
	ActionReader
	Update(fn func(*ActionState))
}

// ErrReentrantUpdate is the panic value of an Update issued while another
// Update on the same context is still running.
var ErrReentrantUpdate = errors.New(errors.ErrCodeInternal, "re-entrant action context update")

// ActionContext is the single shared state cell of a tab. It is owned by
// the UI goroutine and is not safe for concurrent use.
type ActionContext struct {
	state    ActionState
	updating bool
}

// NewActionContext creates a zeroed context.
func NewActionContext() *ActionContext {
	return &ActionContext{}
}

// Snapshot returns a copy of the state. During an Update it returns the
// state as it was before the update began.
func (c *ActionContext) Snapshot() ActionState {
	return c.state
}

// Update applies fn to a copy of the state and commits it when fn returns.
func (c *ActionContext) Update(fn func(*ActionState)) {
	if c.updating {
		panic(ErrReentrantUpdate)
	}
	c.updating = true
	defer func() { c.updating = false }()

	next := c.state
	fn(&next)
	c.state = next
}
