package harness

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/observability"
	"github.com/odvcencio/intes/pkg/signal"
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/theme"
)

// Config sizes the tabs and carries their ambient dependencies.
type Config struct {
	// CanvasWidth and CanvasHeight size the tracking surfaces in cells.
	// Zero fills the row.
	CanvasWidth  int
	CanvasHeight int
	RowSpacing   int
	Margin       int

	Logger   *observability.Logger
	Observer signal.Observer
	// Tracer, when set, records a span for every post on every tab's bus.
	Tracer trace.Tracer
}

// DefaultConfig returns the standard layout with logging discarded.
func DefaultConfig() Config {
	return Config{
		RowSpacing: theme.Layout.RowSpacing,
		Margin:     theme.Layout.Margin,
		Logger:     observability.Discard(),
	}
}

// Env is what a row builder receives: the tab's shared cells.
type Env struct {
	Context *ActionContext
	Bus     *signal.Bus
	Scope   *runtime.FocusScope
	Config  Config
}

// InteractiveWidget is a focusable widget that reports its own bounds, so
// its descriptor can answer bounds queries live.
type InteractiveWidget interface {
	runtime.Focusable
	runtime.Bounded
}

// Interactive registers w in the tab's focus order and returns its
// descriptor. Builders call it for every interactive widget they create so
// that descriptors and focus order are the same list.
func (e *Env) Interactive(w InteractiveWidget, id string, role a11y.Role, name string) a11y.Descriptor {
	e.Scope.Register(w)
	return a11y.Describe(id, role, name, w)
}

// RowSpec declares one row of a tab. Height is in cells; zero takes the
// remaining height.
type RowSpec struct {
	Name   string
	Height int
	Build  func(env *Env) (runtime.Widget, []a11y.Descriptor)
}

// LayoutRows builds rows top to bottom with the configured spacing and
// margin. Descriptors are concatenated in row order.
func LayoutRows(env *Env, rows []RowSpec) (runtime.Widget, []a11y.Descriptor) {
	body := runtime.VBox().WithGap(env.Config.RowSpacing)
	var descriptors []a11y.Descriptor
	for _, row := range rows {
		w, ds := row.Build(env)
		descriptors = append(descriptors, ds...)
		if row.Height > 0 {
			body.Add(runtime.Sized(w, row.Height))
		} else {
			body.Add(runtime.Expanded(w))
		}
	}

	m := env.Config.Margin
	if m <= 0 {
		return body, descriptors
	}
	return runtime.VBox(
		runtime.FixedSpace(m/2),
		runtime.Expanded(runtime.HBox(
			runtime.FixedSpace(m),
			runtime.Expanded(body),
			runtime.FixedSpace(m),
		)),
		runtime.FixedSpace(m/2),
	), descriptors
}
