package widgets

import (
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/terminal"
)

// TabPage is one page of a Tabs container. Each page keeps its own focus
// scope so switching tabs restores the page's focus.
type TabPage struct {
	Title   string
	Content runtime.Widget
	Scope   *runtime.FocusScope
}

// Tabs shows one page at a time under a one-row header of titles.
// The header switches pages on click or Ctrl+Left/Right; Tab and Shift+Tab
// move focus within the active page.
type Tabs struct {
	Base
	pages    []TabPage
	active   int
	headers  []runtime.Rect
	content  runtime.Rect
	onSwitch func(from, to int)
}

// NewTabs creates an empty tab container.
func NewTabs() *Tabs {
	return &Tabs{}
}

// AddPage appends a page. A nil scope gets an empty one.
func (t *Tabs) AddPage(title string, content runtime.Widget, scope *runtime.FocusScope) int {
	if scope == nil {
		scope = runtime.NewFocusScope()
	}
	t.pages = append(t.pages, TabPage{Title: title, Content: content, Scope: scope})
	return len(t.pages) - 1
}

// OnSwitch sets a callback run after the active page changes.
func (t *Tabs) OnSwitch(fn func(from, to int)) {
	t.onSwitch = fn
}

// Pages returns the pages in order.
func (t *Tabs) Pages() []TabPage {
	return t.pages
}

// Active returns the index of the visible page.
func (t *Tabs) Active() int {
	return t.active
}

// HeaderBounds returns the header cell of page i after layout.
func (t *Tabs) HeaderBounds(i int) runtime.Rect {
	if i < 0 || i >= len(t.headers) {
		return runtime.Rect{}
	}
	return t.headers[i]
}

// Select makes page i visible. Out of range indexes are ignored.
func (t *Tabs) Select(i int) bool {
	if i < 0 || i >= len(t.pages) || i == t.active {
		return false
	}
	from := t.active
	t.active = i
	if t.onSwitch != nil {
		t.onSwitch(from, i)
	}
	return true
}

// ActiveFocusScope returns the focus scope of the visible page.
func (t *Tabs) ActiveFocusScope() *runtime.FocusScope {
	if t.active >= len(t.pages) {
		return nil
	}
	return t.pages[t.active].Scope
}

// ChildWidgets returns every page's content, visible or not.
func (t *Tabs) ChildWidgets() []runtime.Widget {
	children := make([]runtime.Widget, 0, len(t.pages))
	for _, p := range t.pages {
		children = append(children, p.Content)
	}
	return children
}

func (t *Tabs) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.MaxSize()
}

// Layout places the header row and lays out every page in the same content
// area so hidden pages have valid bounds.
func (t *Tabs) Layout(bounds runtime.Rect) {
	t.Base.Layout(bounds)

	t.headers = make([]runtime.Rect, len(t.pages))
	x := bounds.X
	for i, p := range t.pages {
		w := TextWidth(p.Title) + 2
		t.headers[i] = runtime.Rect{X: x, Y: bounds.Y, Width: w, Height: 1}
		x += w + 1
	}

	t.content = bounds.Inset(1, 0, 0, 0)
	for _, p := range t.pages {
		p.Content.Layout(t.content)
	}
}

// Render draws the header row and the active page.
func (t *Tabs) Render(ctx runtime.RenderContext) {
	if t.bounds.Empty() {
		return
	}
	th := themeOf(ctx)

	header := runtime.Rect{X: t.bounds.X, Y: t.bounds.Y, Width: t.bounds.Width, Height: 1}
	ctx.Buffer.Fill(header, '─', th.Border)
	for i, p := range t.pages {
		style := th.TextSecondary
		if i == t.active {
			style = th.Accent
		}
		r := t.headers[i]
		ctx.Buffer.SetString(r.X, r.Y, truncateString(" "+p.Title+" ", max(0, t.bounds.X+t.bounds.Width-r.X)), style)
	}

	if t.active < len(t.pages) {
		ctx.Buffer.Fill(t.content, ' ', th.Surface)
		t.pages[t.active].Content.Render(ctx.Sub(t.content))
	}
}

// HandleMessage handles tab navigation and forwards everything else to the
// active page.
func (t *Tabs) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if len(t.pages) == 0 {
		return runtime.Unhandled()
	}
	scope := t.pages[t.active].Scope

	switch m := msg.(type) {
	case runtime.KeyMsg:
		switch {
		case m.Key == terminal.KeyLeft && m.Ctrl:
			t.Select((t.active - 1 + len(t.pages)) % len(t.pages))
			return runtime.Handled()
		case m.Key == terminal.KeyRight && m.Ctrl:
			t.Select((t.active + 1) % len(t.pages))
			return runtime.Handled()
		case m.Key == terminal.KeyTab && !m.Shift:
			scope.FocusNext()
			return runtime.Handled()
		case m.Key == terminal.KeyBacktab || (m.Key == terminal.KeyTab && m.Shift):
			scope.FocusPrev()
			return runtime.Handled()
		}
	case runtime.MouseMsg:
		if m.Action == runtime.MousePress {
			for i, r := range t.headers {
				if r.Contains(m.X, m.Y) {
					t.Select(i)
					return runtime.Handled()
				}
			}
			focusUnder(scope, t.pages[t.active].Content, m.X, m.Y)
		}
	}

	return t.pages[t.active].Content.HandleMessage(msg)
}

// focusUnder moves focus to the registered widget under (x, y), if any.
func focusUnder(scope *runtime.FocusScope, root runtime.Widget, x, y int) {
	runtime.Walk(root, func(w runtime.Widget) bool {
		f, ok := w.(runtime.Focusable)
		if !ok {
			return true
		}
		if b, ok := w.(runtime.Bounded); ok && b.Bounds().Contains(x, y) {
			scope.SetFocus(f)
			return false
		}
		return true
	})
}
