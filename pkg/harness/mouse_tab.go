package harness

import (
	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/signal"
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/theme"
	"github.com/odvcencio/intes/pkg/ui/widgets"
)

const (
	MouseTabName = "Mouse Test"
	CanvasLabel  = "Mouse Test Canvas"
)

// MouseTab holds two action buttons, the tracking surface and the two
// report fields.
type MouseTab struct {
	*Tab

	ButtonA     *widgets.Button
	ButtonB     *widgets.Button
	Canvas      *MouseTestArea
	ActionField *widgets.Input
	InfoField   *widgets.Input
}

// NewMouseTab builds the mouse test page.
func NewMouseTab(cfg Config) *MouseTab {
	m := &MouseTab{}
	m.Tab = NewTab(MouseTabName, []RowSpec{
		{Name: "buttons", Height: 3, Build: m.buttonRow},
		{Name: "canvas", Height: cfg.CanvasHeight, Build: m.canvasRow},
		{Name: "action", Height: 1, Build: m.actionRow},
		{Name: "info", Height: 1, Build: m.infoRow},
	}, cfg)
	return m
}

func (m *MouseTab) buttonRow(env *Env) (runtime.Widget, []a11y.Descriptor) {
	post := func(code signal.Code) func() {
		return func() { env.Bus.Post(code) }
	}
	m.ButtonA = widgets.NewButton("Button A").SetWidth(theme.Layout.ButtonWidth).OnClick(post(signal.ButtonAClicked))
	m.ButtonB = widgets.NewButton("Button B").SetWidth(theme.Layout.ButtonWidth).OnClick(post(signal.ButtonBClicked))

	row := runtime.HBox(runtime.Fixed(m.ButtonA), runtime.Fixed(m.ButtonB)).WithGap(2)
	return row, []a11y.Descriptor{
		env.Interactive(m.ButtonA, "button-a", a11y.RoleButton, m.ButtonA.Label()),
		env.Interactive(m.ButtonB, "button-b", a11y.RoleButton, m.ButtonB.Label()),
	}
}

func (m *MouseTab) canvasRow(env *Env) (runtime.Widget, []a11y.Descriptor) {
	cfg := env.Config
	m.Canvas = NewMouseTestArea(CanvasLabel, cfg.CanvasWidth, cfg.CanvasHeight, env.Context, env.Bus).
		WithLogger(cfg.Logger.WithWidget("canvas"))

	child := runtime.Expanded(m.Canvas)
	if cfg.CanvasWidth > 0 {
		child = runtime.Fixed(m.Canvas)
	}
	return runtime.HBox(child), []a11y.Descriptor{
		env.Interactive(m.Canvas, "canvas", a11y.RoleCanvas, CanvasLabel),
	}
}

func (m *MouseTab) actionRow(env *Env) (runtime.Widget, []a11y.Descriptor) {
	m.ActionField = NewActionField(env.Context, env.Bus)
	return labelled("Mouse action:", m.ActionField), []a11y.Descriptor{
		env.Interactive(m.ActionField, "mouse-action", a11y.RoleTextInput, "Mouse action"),
	}
}

func (m *MouseTab) infoRow(env *Env) (runtime.Widget, []a11y.Descriptor) {
	m.InfoField = NewInfoField(env.Context, env.Bus)
	return labelled("Mouse information:", m.InfoField), []a11y.Descriptor{
		env.Interactive(m.InfoField, "mouse-info", a11y.RoleTextInput, "Mouse information"),
	}
}

// labelled places a fixed-width caption left of a field.
func labelled(caption string, field runtime.Widget) runtime.Widget {
	return runtime.HBox(
		runtime.Sized(widgets.NewLabel(caption), theme.Layout.LabelWidth),
		runtime.Expanded(field),
	)
}
