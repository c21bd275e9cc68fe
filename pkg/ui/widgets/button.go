package widgets

import (
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/terminal"
)

// Button is a focusable push button. It clicks on a left press and release
// inside its bounds, or on Enter/Space while focused.
type Button struct {
	FocusableBase
	label   string
	width   int
	pressed bool
	onClick func()
}

// NewButton creates a button with the given label.
func NewButton(label string) *Button {
	return &Button{label: label}
}

// Label returns the button caption.
func (b *Button) Label() string {
	return b.label
}

// SetWidth fixes the button width. Zero sizes to the label.
func (b *Button) SetWidth(w int) *Button {
	b.width = w
	return b
}

// OnClick sets the click callback.
func (b *Button) OnClick(fn func()) *Button {
	b.onClick = fn
	return b
}

// Pressed reports whether a mouse press is being held on the button.
func (b *Button) Pressed() bool {
	return b.pressed
}

// Click activates the button as if the user clicked it.
func (b *Button) Click() {
	if b.onClick != nil {
		b.onClick()
	}
}

// Measure returns the label plus padding and frame, three rows tall.
func (b *Button) Measure(constraints runtime.Constraints) runtime.Size {
	w := b.width
	if w <= 0 {
		w = TextWidth(b.label) + 4
	}
	return constraints.Constrain(runtime.Size{Width: w, Height: 3})
}

// Render draws the button frame and centered caption.
func (b *Button) Render(ctx runtime.RenderContext) {
	bounds := b.bounds
	if bounds.Empty() {
		return
	}
	th := themeOf(ctx)

	body := th.SurfaceRaised
	if b.pressed {
		body = th.Accent
	}
	border := th.Border
	if b.focused && ctx.Focused {
		border = th.BorderFocus
	}
	frame := runtime.FrameUp
	if b.pressed {
		frame = runtime.FrameDown
	}

	ctx.Buffer.Fill(bounds, ' ', body)
	ctx.Buffer.DrawFrame(bounds, frame, border.Background(body.BG()))

	inner := bounds.Inset(1, 1, 1, 1)
	if inner.Empty() {
		inner = bounds
	}
	text := truncateString(b.label, inner.Width)
	ctx.Buffer.SetString(centerIn(inner, TextWidth(text)), inner.Y+(inner.Height-1)/2, text, body)
}

// HandleMessage processes mouse clicks and activation keys.
func (b *Button) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.MouseMsg:
		inside := b.bounds.Contains(m.X, m.Y)
		switch {
		case m.Action == runtime.MousePress && m.Button == runtime.MouseLeft && inside:
			b.pressed = true
			return runtime.Handled()
		case m.Action == runtime.MouseRelease && b.pressed:
			b.pressed = false
			if inside {
				b.Click()
			}
			return runtime.Handled()
		case m.Action == runtime.MouseMove && b.pressed:
			return runtime.Handled()
		}
	case runtime.KeyMsg:
		if !b.focused {
			return runtime.Unhandled()
		}
		if m.Key == terminal.KeyEnter || (m.Key == terminal.KeyRune && m.Rune == ' ') {
			b.Click()
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}
