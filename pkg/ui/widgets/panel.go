package widgets

import (
	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// Panel is a container with a rounded border and a title centered in the
// top edge. The window chrome is a Panel.
type Panel struct {
	Base
	child runtime.Widget
	title string
}

// NewPanel creates a new panel widget.
func NewPanel(child runtime.Widget) *Panel {
	return &Panel{child: child}
}

// WithTitle sets title and returns for chaining.
func (p *Panel) WithTitle(title string) *Panel {
	p.title = title
	return p
}

// Title returns the panel title.
func (p *Panel) Title() string {
	return p.title
}

// Child returns the wrapped widget.
func (p *Panel) Child() runtime.Widget {
	return p.child
}

// ChildWidgets returns the panel's child.
func (p *Panel) ChildWidgets() []runtime.Widget {
	if p.child == nil {
		return nil
	}
	return []runtime.Widget{p.child}
}

// Measure returns the child's size plus the border.
func (p *Panel) Measure(constraints runtime.Constraints) runtime.Size {
	if p.child == nil {
		return constraints.Constrain(runtime.Size{Width: 2, Height: 2})
	}
	childSize := p.child.Measure(runtime.Constraints{
		MinWidth:  max(0, constraints.MinWidth-2),
		MaxWidth:  max(0, constraints.MaxWidth-2),
		MinHeight: max(0, constraints.MinHeight-2),
		MaxHeight: max(0, constraints.MaxHeight-2),
	})
	return constraints.Constrain(runtime.Size{Width: childSize.Width + 2, Height: childSize.Height + 2})
}

// Layout positions the panel and insets its child inside the border.
func (p *Panel) Layout(bounds runtime.Rect) {
	p.Base.Layout(bounds)
	if p.child != nil {
		p.child.Layout(bounds.Inset(1, 1, 1, 1))
	}
}

// Render draws the panel.
func (p *Panel) Render(ctx runtime.RenderContext) {
	bounds := p.bounds
	if bounds.Empty() {
		return
	}
	th := themeOf(ctx)

	ctx.Buffer.Fill(bounds, ' ', th.Background)
	ctx.Buffer.DrawFrame(bounds, runtime.FrameRounded, th.Border)

	if p.title != "" && bounds.Width > 4 {
		title := truncateString(" "+p.title+" ", bounds.Width-4)
		ctx.Buffer.SetString(centerIn(bounds, TextWidth(title)), bounds.Y, title, th.TextPrimary)
	}

	if p.child != nil {
		p.child.Render(ctx.Sub(bounds.Inset(1, 1, 1, 1)))
	}
}

// HandleMessage delegates to child.
func (p *Panel) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if p.child != nil {
		return p.child.HandleMessage(msg)
	}
	return runtime.Unhandled()
}
