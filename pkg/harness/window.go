package harness

import (
	"fmt"
	"strings"

	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/observability"
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/terminal"
	"github.com/odvcencio/intes/pkg/ui/widgets"
)

//go:generate mockgen -package=harness -destination=mock_host_test.go github.com/odvcencio/intes/pkg/a11y Host

// Title is the default window title.
const Title = "INTES: A GUI testing application"

// Window is the root widget: a titled panel around the tab container.
type Window struct {
	panel    *widgets.Panel
	tabs     *widgets.Tabs
	pages    []*Tab
	tree     *a11y.Tree
	logger   *observability.Logger
	attached bool

	Mouse    *MouseTab
	Keyboard *KeyboardTab
}

// NewWindow builds both tabs. An empty title uses Title.
func NewWindow(title string, cfg Config) *Window {
	if title == "" {
		title = Title
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.Discard()
	}

	w := &Window{
		tabs:   widgets.NewTabs(),
		tree:   a11y.NewTree(),
		logger: cfg.Logger,
	}
	w.Mouse = NewMouseTab(cfg)
	w.Keyboard = NewKeyboardTab(cfg)
	w.pages = []*Tab{w.Mouse.Tab, w.Keyboard.Tab}

	for _, p := range w.pages {
		w.tabs.AddPage(p.Name(), p.Content(), p.Scope())
	}
	w.tabs.OnSwitch(func(from, to int) {
		w.logger.Info("tab switched", "from", w.pages[from].Name(), "to", w.pages[to].Name())
		// A hidden canvas cannot see the pointer leave, so it leaves now.
		if w.pages[from] == w.Mouse.Tab && w.Mouse.Bus().IsOpen() {
			w.Mouse.Canvas.Leave()
		}
	})
	w.panel = widgets.NewPanel(w.tabs).WithTitle(title)
	return w
}

func (w *Window) Title() string                  { return w.panel.Title() }
func (w *Window) Tabs() *widgets.Tabs            { return w.tabs }
func (w *Window) Pages() []*Tab                  { return w.pages }
func (w *Window) Descriptors() []a11y.Descriptor { return w.tree.Descriptors() }

// Ready brings every tab to Ready, then hands the aggregate descriptor list
// to host. Each tab header gets a descriptor ahead of its page's widgets.
// The window must have been laid out.
//
// A tab that fails verification leaves the window unattached, and Ready may
// be called again once the tab's focus order is fixed; tabs already ready
// are not readied twice. After the tabs are ready, calling Ready again
// panics, whether or not the host accepted the tree.
func (w *Window) Ready(host a11y.Host) error {
	if w.attached {
		panic(errors.New(errors.ErrCodeInternal, "window attached twice"))
	}

	for _, p := range w.pages {
		if p.State() == StateReady {
			continue
		}
		if err := p.Ready(); err != nil {
			return err
		}
	}
	w.attached = true

	for i, p := range w.pages {
		w.tree.Add(a11y.Describe("tab-"+slug(p.Name()), a11y.RoleTab, p.Name(), headerOf{w.tabs, i}))
		w.tree.Add(p.Descriptors()...)
	}
	w.tree.Freeze()

	if host == nil {
		return nil
	}
	if err := host.Attach(w, w.tree.Descriptors()); err != nil {
		return err
	}
	w.logger.TreeAttached(fmt.Sprint(host), w.tree.Len())
	return nil
}

// Close stops signal delivery on every tab.
func (w *Window) Close() {
	for _, p := range w.pages {
		p.Close()
	}
}

// ActiveFocusScope returns the focus order of the visible tab.
func (w *Window) ActiveFocusScope() *runtime.FocusScope {
	return w.tabs.ActiveFocusScope()
}

func (w *Window) ChildWidgets() []runtime.Widget { return []runtime.Widget{w.panel} }
func (w *Window) Bounds() runtime.Rect           { return w.panel.Bounds() }

func (w *Window) Measure(constraints runtime.Constraints) runtime.Size {
	return w.panel.Measure(constraints)
}

func (w *Window) Layout(bounds runtime.Rect)       { w.panel.Layout(bounds) }
func (w *Window) Render(ctx runtime.RenderContext) { w.panel.Render(ctx) }

// HandleMessage offers msg to the tabs first. Quit keys only quit when
// nothing consumed them.
func (w *Window) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if result := w.panel.HandleMessage(msg); result.Handled {
		return result
	}
	if key, ok := msg.(runtime.KeyMsg); ok && isQuitKey(key) {
		return runtime.WithCommand(runtime.Quit{})
	}
	return runtime.Unhandled()
}

func isQuitKey(k runtime.KeyMsg) bool {
	switch k.Key {
	case terminal.KeyEscape, terminal.KeyCtrlC:
		return true
	case terminal.KeyRune:
		return k.Rune == 'q' && !k.Ctrl && !k.Alt
	}
	return false
}

// headerOf reports the live bounds of a tab header.
type headerOf struct {
	tabs  *widgets.Tabs
	index int
}

func (h headerOf) Bounds() runtime.Rect { return h.tabs.HeaderBounds(h.index) }

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
