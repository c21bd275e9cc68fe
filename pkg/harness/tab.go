package harness

import (
	"fmt"

	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/observability"
	"github.com/odvcencio/intes/pkg/signal"
	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// TabState is the lifecycle of a tab. There are no transitions back.
type TabState int

const (
	StateUninitialized TabState = iota
	StateLayingOut
	StateReady
)

func (s TabState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLayingOut:
		return "laying_out"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("TabState(%d)", int(s))
	}
}

// Tab is one page of the window: its rows, its action context, its signal
// bus and its focus order. The bus stays closed until Ready.
type Tab struct {
	name    string
	env     *Env
	content runtime.Widget
	tree    *a11y.Tree
	state   TabState
	logger  *observability.Logger
}

// NewTab creates the tab's shared cells and builds its rows.
func NewTab(name string, rows []RowSpec, cfg Config) *Tab {
	if cfg.Logger == nil {
		cfg.Logger = observability.Discard()
	}
	logger := cfg.Logger.WithTab(name)
	cfg.Logger = logger

	opts := []signal.Option{signal.WithLogger(logger)}
	if cfg.Observer != nil {
		opts = append(opts, signal.WithObserver(cfg.Observer))
	}
	if cfg.Tracer != nil {
		opts = append(opts, signal.WithTracer(cfg.Tracer))
	}

	t := &Tab{
		name: name,
		env: &Env{
			Context: NewActionContext(),
			Bus:     signal.NewBus(opts...),
			Scope:   runtime.NewFocusScope(),
			Config:  cfg,
		},
		tree:   a11y.NewTree(),
		logger: logger,
	}

	t.transition(StateLayingOut)
	content, descriptors := LayoutRows(t.env, rows)
	t.content = content
	t.tree.Add(descriptors...)
	return t
}

func (t *Tab) Name() string                   { return t.name }
func (t *Tab) State() TabState                { return t.state }
func (t *Tab) Content() runtime.Widget        { return t.content }
func (t *Tab) Scope() *runtime.FocusScope     { return t.env.Scope }
func (t *Tab) Bus() *signal.Bus               { return t.env.Bus }
func (t *Tab) Context() *ActionContext        { return t.env.Context }
func (t *Tab) Descriptors() []a11y.Descriptor { return t.tree.Descriptors() }

// Ready checks the descriptors against the focus order, freezes them,
// opens the bus and focuses the first widget. Calling Ready twice panics.
func (t *Tab) Ready() error {
	if t.state != StateLayingOut {
		panic(errors.New(errors.ErrCodeInternal, "tab is not laying out").
			WithContext("tab", t.name).
			WithContext("state", t.state.String()))
	}
	if err := a11y.Verify(t.tree.Descriptors(), t.env.Scope.Widgets()); err != nil {
		return errors.Wrap(err, errors.ErrCodeA11yMismatch, "tab descriptors").
			WithContext("tab", t.name)
	}
	t.tree.Freeze()
	t.env.Bus.Open()
	t.env.Scope.FocusFirst()
	t.transition(StateReady)
	return nil
}

// Close stops signal delivery.
func (t *Tab) Close() {
	t.env.Bus.Close()
}

func (t *Tab) transition(to TabState) {
	from := t.state
	t.state = to
	t.logger.TabStateChanged(from.String(), to.String())
}
