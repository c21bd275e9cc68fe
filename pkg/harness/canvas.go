package harness

import (
	"github.com/odvcencio/intes/pkg/observability"
	"github.com/odvcencio/intes/pkg/signal"
	"github.com/odvcencio/intes/pkg/ui/backend"
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/widgets"
)

// MouseTestArea is a mouse tracking surface. It owns a widgets.Box for
// everything generic (color, callback, size, label, bounds) and only
// replaces drawing and input handling. Every pointer event it observes is
// written into the action context and announced on the bus.
type MouseTestArea struct {
	widgets.FocusableBase
	box *widgets.Box
	ctx ActionWriter
	bus *signal.Bus
	log *observability.Logger

	inside   bool
	captured bool
}

// NewMouseTestArea creates a surface of the given size. A zero size on an
// axis fills the available space.
func NewMouseTestArea(label string, width, height int, ctx ActionWriter, bus *signal.Bus) *MouseTestArea {
	box := widgets.NewBox(label)
	box.SetFrame(runtime.FrameDown)
	box.SetColor(backend.ColorCyan)
	box.SetSize(width, height)
	return &MouseTestArea{box: box, ctx: ctx, bus: bus, log: observability.Discard()}
}

// WithLogger logs capture changes to l at debug level.
func (a *MouseTestArea) WithLogger(l *observability.Logger) *MouseTestArea {
	if l != nil {
		a.log = l
	}
	return a
}

func (a *MouseTestArea) Label() string         { return a.box.Label() }
func (a *MouseTestArea) SetLabel(label string) { a.box.SetLabel(label) }

func (a *MouseTestArea) Color() backend.Color     { return a.box.Color() }
func (a *MouseTestArea) SetColor(c backend.Color) { a.box.SetColor(c) }

func (a *MouseTestArea) Size() (w, h int)      { return a.box.Size() }
func (a *MouseTestArea) SetSize(w, h int)      { a.box.SetSize(w, h) }
func (a *MouseTestArea) SetCallback(fn func()) { a.box.SetCallback(fn) }
func (a *MouseTestArea) DoCallback()           { a.box.DoCallback() }

// Captured reports whether a press is being tracked until release.
func (a *MouseTestArea) Captured() bool { return a.captured }

func (a *MouseTestArea) Measure(constraints runtime.Constraints) runtime.Size {
	return a.box.Measure(constraints)
}

func (a *MouseTestArea) Layout(bounds runtime.Rect) { a.box.Layout(bounds) }
func (a *MouseTestArea) Bounds() runtime.Rect       { return a.box.Bounds() }

// Render draws the box frame and fill, then the centered label.
func (a *MouseTestArea) Render(ctx runtime.RenderContext) {
	a.box.DrawBox(ctx)
	a.box.DrawLabel(ctx, a.box.FillStyle(ctx))
}

// HandleMessage tracks the pointer. Enter and leave are derived from motion
// crossing the bounds and are announced before the event that caused them.
// Messages the surface does not consume leave the context and the bus
// untouched.
func (a *MouseTestArea) HandleMessage(msg runtime.Message) runtime.HandleResult {
	m, ok := msg.(runtime.MouseMsg)
	if !ok {
		return runtime.Unhandled()
	}
	inside := a.Bounds().Contains(m.X, m.Y)

	switch m.Action {
	case runtime.MousePress:
		if !inside {
			return runtime.Unhandled()
		}
		a.cross(true)
		button := ResolveButton(m.Button)
		a.ctx.Update(func(s *ActionState) {
			s.MouseX, s.MouseY = m.X, m.Y
			s.Button = button
			s.Action = ActionMouseDown
		})
		// Wheel ticks have no release to wait for.
		a.captured = m.Button == runtime.MouseLeft || m.Button == runtime.MouseMiddle || m.Button == runtime.MouseRight
		if a.captured {
			a.log.Debug("pointer captured", "button", button.String(), "x", m.X, "y", m.Y)
		}
		a.bus.Post(signal.MouseDown)
		return runtime.Handled()

	case runtime.MouseRelease:
		if !a.captured {
			return runtime.Unhandled()
		}
		a.captured = false
		a.log.Debug("pointer released", "x", m.X, "y", m.Y, "inside", inside)
		a.cross(inside)
		a.ctx.Update(func(s *ActionState) {
			s.Action = ActionMouseUp
		})
		a.bus.Post(signal.MouseUp)
		if inside {
			a.box.DoCallback()
		}
		return runtime.Handled()

	case runtime.MouseMove:
		crossed := a.cross(inside)
		if !inside && !a.captured {
			if crossed {
				return runtime.Handled()
			}
			return runtime.Unhandled()
		}
		a.ctx.Update(func(s *ActionState) {
			s.MouseX, s.MouseY = m.X, m.Y
			s.Action = ActionMouseMove
		})
		a.bus.Post(signal.MouseMove)
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

// Leave drops capture and announces MouseOut if the pointer was over the
// surface. The window calls it when the surface's page is hidden.
func (a *MouseTestArea) Leave() {
	if a.captured {
		a.log.Debug("capture dropped on leave")
	}
	a.captured = false
	a.cross(false)
}

// cross records whether the pointer is over the surface and posts MouseIn
// or MouseOut when that changed.
func (a *MouseTestArea) cross(inside bool) bool {
	if inside == a.inside {
		return false
	}
	a.inside = inside
	a.ctx.Update(func(s *ActionState) {
		s.Action = ActionNone
	})
	if inside {
		a.bus.Post(signal.MouseIn)
	} else {
		a.bus.Post(signal.MouseOut)
	}
	return true
}
