package harness

import (
	"github.com/odvcencio/intes/pkg/signal"
	"github.com/odvcencio/intes/pkg/ui/backend"
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/terminal"
	"github.com/odvcencio/intes/pkg/ui/widgets"
)

// KeyTestArea is a key capture surface. While focused it records the name
// of every key into the action context and posts KeyDown.
type KeyTestArea struct {
	widgets.FocusableBase
	box *widgets.Box
	ctx ActionWriter
	bus *signal.Bus
}

// NewKeyTestArea creates a capture surface of the given size.
func NewKeyTestArea(label string, width, height int, ctx ActionWriter, bus *signal.Bus) *KeyTestArea {
	box := widgets.NewBox(label)
	box.SetFrame(runtime.FrameDown)
	box.SetColor(backend.ColorYellow)
	box.SetSize(width, height)
	return &KeyTestArea{box: box, ctx: ctx, bus: bus}
}

func (k *KeyTestArea) Label() string { return k.box.Label() }

func (k *KeyTestArea) Measure(constraints runtime.Constraints) runtime.Size {
	return k.box.Measure(constraints)
}

func (k *KeyTestArea) Layout(bounds runtime.Rect) { k.box.Layout(bounds) }
func (k *KeyTestArea) Bounds() runtime.Rect       { return k.box.Bounds() }

func (k *KeyTestArea) Render(ctx runtime.RenderContext) {
	k.box.DrawBox(ctx)
	style := k.box.FillStyle(ctx)
	if k.IsFocused() && ctx.Focused {
		style = style.Bold(true)
	}
	k.box.DrawLabel(ctx, style)
}

// HandleMessage records keys while focused. Escape and Ctrl+C are recorded
// but left unhandled so the window can still quit.
func (k *KeyTestArea) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.MouseMsg:
		if m.Action == runtime.MousePress && k.Bounds().Contains(m.X, m.Y) {
			return runtime.Handled()
		}
	case runtime.KeyMsg:
		if !k.IsFocused() {
			return runtime.Unhandled()
		}
		name := m.Event().Name()
		if name == "" {
			return runtime.Unhandled()
		}
		k.ctx.Update(func(s *ActionState) {
			s.Key = name
			s.Action = ActionKeyDown
		})
		k.bus.Post(signal.KeyDown)
		if m.Key == terminal.KeyEscape || m.Key == terminal.KeyCtrlC {
			return runtime.Unhandled()
		}
		return runtime.Handled()
	}
	return runtime.Unhandled()
}
