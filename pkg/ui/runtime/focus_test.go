package runtime

import "testing"

type focusableWidget struct {
	canFocus bool
	focused  bool
	id       string
}

func newFocusable(id string) *focusableWidget {
	return &focusableWidget{canFocus: true, id: id}
}

func (f *focusableWidget) Measure(c Constraints) Size { return Size{10, 1} }
func (f *focusableWidget) Layout(bounds Rect)         {}
func (f *focusableWidget) Render(ctx RenderContext)   {}
func (f *focusableWidget) HandleMessage(msg Message) HandleResult {
	return Unhandled()
}
func (f *focusableWidget) CanFocus() bool  { return f.canFocus }
func (f *focusableWidget) Focus()          { f.focused = true }
func (f *focusableWidget) Blur()           { f.focused = false }
func (f *focusableWidget) IsFocused() bool { return f.focused }

func TestFocusScope_RegisterDoesNotFocus(t *testing.T) {
	fs := NewFocusScope()
	w := newFocusable("w")

	fs.Register(w)
	fs.Register(w)

	if fs.Count() != 1 {
		t.Errorf("Count() = %d, want 1", fs.Count())
	}
	if fs.Current() != nil || w.focused {
		t.Error("registration must not move focus")
	}
}

func TestFocusScope_NextPrevWrap(t *testing.T) {
	fs := NewFocusScope()
	a, b, c := newFocusable("a"), newFocusable("b"), newFocusable("c")
	b.canFocus = false
	fs.Register(a)
	fs.Register(b)
	fs.Register(c)

	steps := []struct {
		next bool
		want *focusableWidget
	}{
		{true, a},
		{true, c},
		{true, a},
		{false, c},
		{false, a},
	}
	for i, step := range steps {
		if step.next {
			fs.FocusNext()
		} else {
			fs.FocusPrev()
		}
		if fs.Current() != step.want {
			t.Fatalf("step %d: focused %v, want %s", i, fs.Current(), step.want.id)
		}
	}
	if !a.focused || c.focused {
		t.Error("exactly one widget should hold focus")
	}
}

func TestFocusScope_PrevFromNothingFocusesLast(t *testing.T) {
	fs := NewFocusScope()
	a, b := newFocusable("a"), newFocusable("b")
	fs.Register(a)
	fs.Register(b)

	if !fs.FocusPrev() || fs.Current() != b {
		t.Errorf("FocusPrev from empty should focus last, got %v", fs.Current())
	}
}

func TestFocusScope_SetFocusAndClear(t *testing.T) {
	fs := NewFocusScope()
	a, b := newFocusable("a"), newFocusable("b")
	fs.Register(a)
	fs.Register(b)

	if !fs.SetFocus(b) {
		t.Fatal("SetFocus(b) should change focus")
	}
	if fs.SetFocus(b) {
		t.Error("SetFocus on the focused widget should report no change")
	}
	if fs.SetFocus(newFocusable("stranger")) {
		t.Error("SetFocus on unregistered widget should fail")
	}

	fs.ClearFocus()
	if fs.Current() != nil || b.focused {
		t.Error("ClearFocus should blur")
	}
	if !fs.FocusFirst() || fs.Current() != a {
		t.Error("FocusFirst should focus a")
	}
}

func TestFocusScope_Empty(t *testing.T) {
	fs := NewFocusScope()
	if fs.FocusNext() || fs.FocusPrev() || fs.FocusFirst() {
		t.Error("empty scope cannot move focus")
	}
}

func TestFocusScope_WidgetsKeepsOrder(t *testing.T) {
	fs := NewFocusScope()
	a, b := newFocusable("a"), newFocusable("b")
	fs.Register(a)
	fs.Register(b)

	got := fs.Widgets()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("Widgets() = %v", got)
	}
	got[0] = b
	if fs.Widgets()[0] != a {
		t.Error("Widgets() must return a copy")
	}
}
