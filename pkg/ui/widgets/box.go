package widgets

import (
	"github.com/odvcencio/intes/pkg/ui/backend"
	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// Box is the generic toolkit widget: a framed, filled rectangle with a
// centered label, a color, a preferred size and a callback. Custom widgets
// hold a Box and forward these generic operations to it.
type Box struct {
	Base
	label    string
	color    backend.Color
	frame    runtime.Frame
	width    int
	height   int
	callback func()
}

// NewBox creates a box with a flat frame and the theme's surface color.
func NewBox(label string) *Box {
	return &Box{
		label: label,
		color: backend.ColorDefault,
		frame: runtime.FrameFlat,
	}
}

func (b *Box) Label() string         { return b.label }
func (b *Box) SetLabel(label string) { b.label = label }

// Color returns the fill color; ColorDefault means the theme surface.
func (b *Box) Color() backend.Color     { return b.color }
func (b *Box) SetColor(c backend.Color) { b.color = c }

func (b *Box) Frame() runtime.Frame     { return b.frame }
func (b *Box) SetFrame(f runtime.Frame) { b.frame = f }

// SetSize sets the preferred size. Zero on an axis means fill.
func (b *Box) SetSize(w, h int) {
	b.width, b.height = w, h
}

// Size returns the preferred size.
func (b *Box) Size() (w, h int) {
	return b.width, b.height
}

// SetCallback sets the function DoCallback runs.
func (b *Box) SetCallback(fn func()) {
	b.callback = fn
}

// DoCallback runs the callback if one is set.
func (b *Box) DoCallback() {
	if b.callback != nil {
		b.callback()
	}
}

// Measure returns the preferred size, filling unset axes.
func (b *Box) Measure(constraints runtime.Constraints) runtime.Size {
	w, h := b.width, b.height
	if w <= 0 {
		w = constraints.MaxWidth
	}
	if h <= 0 {
		h = constraints.MaxHeight
	}
	return constraints.Constrain(runtime.Size{Width: w, Height: h})
}

// FillStyle returns the style the box fills its interior with.
func (b *Box) FillStyle(ctx runtime.RenderContext) backend.Style {
	style := themeOf(ctx).Surface
	if b.color != backend.ColorDefault {
		style = style.Background(b.color).Foreground(backend.ColorBlack)
	}
	return style
}

// DrawBox draws the fill and the frame.
func (b *Box) DrawBox(ctx runtime.RenderContext) {
	if b.bounds.Empty() {
		return
	}
	fill := b.FillStyle(ctx)
	ctx.Buffer.Fill(b.bounds, ' ', fill)
	ctx.Buffer.DrawFrame(b.bounds, b.frame, fill)
}

// DrawLabel draws the label centered in the box interior.
func (b *Box) DrawLabel(ctx runtime.RenderContext, style backend.Style) {
	inner := b.bounds
	if b.frame != runtime.FrameNone {
		inner = inner.Inset(1, 1, 1, 1)
	}
	if inner.Empty() || b.label == "" {
		return
	}
	text := truncateString(b.label, inner.Width)
	ctx.Buffer.SetString(centerIn(inner, TextWidth(text)), inner.Y+(inner.Height-1)/2, text, style)
}

// Render draws the box and its label.
func (b *Box) Render(ctx runtime.RenderContext) {
	b.DrawBox(ctx)
	b.DrawLabel(ctx, b.FillStyle(ctx))
}
