package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/widgets"
)

// interactive walks root and returns every widget that can take focus, in
// tree order.
func interactive(root runtime.Widget) []runtime.Focusable {
	var out []runtime.Focusable
	runtime.Walk(root, func(w runtime.Widget) bool {
		if f, ok := w.(runtime.Focusable); ok && f.CanFocus() {
			out = append(out, f)
		}
		return true
	})
	return out
}

func descriptorIDs(ds []a11y.Descriptor) []string {
	ids := make([]string, len(ds))
	for i, d := range ds {
		ids[i] = d.ID()
	}
	return ids
}

func TestTabState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "laying_out", StateLayingOut.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "TabState(7)", TabState(7).String())
}

func TestMouseTab_Lifecycle(t *testing.T) {
	tab := NewMouseTab(DefaultConfig())

	assert.Equal(t, StateLayingOut, tab.State())
	assert.False(t, tab.Bus().IsOpen())

	require.NoError(t, tab.Ready())

	assert.Equal(t, StateReady, tab.State())
	assert.True(t, tab.Bus().IsOpen())
	assert.Same(t, tab.ButtonA, tab.Scope().Current())
	assert.Panics(t, func() { _ = tab.Ready() })
}

func TestMouseTab_PostBeforeReadyPanics(t *testing.T) {
	tab := NewMouseTab(DefaultConfig())

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.IsCode(err, errors.ErrCodeDispatchNotReady))
	}()
	tab.ButtonA.Click()
}

func TestTabs_DescriptorCountMatchesInteractiveWidgets(t *testing.T) {
	mouse := NewMouseTab(DefaultConfig())
	keyboard := NewKeyboardTab(DefaultConfig())

	tests := []struct {
		tab  *Tab
		want []string
	}{
		{mouse.Tab, []string{"button-a", "button-b", "canvas", "mouse-action", "mouse-info"}},
		{keyboard.Tab, []string{"key-area", "last-key", "type-here"}},
	}
	for _, tc := range tests {
		t.Run(tc.tab.Name(), func(t *testing.T) {
			descriptors := tc.tab.Descriptors()
			widgetsInTree := interactive(tc.tab.Content())

			assert.Len(t, descriptors, len(widgetsInTree))
			assert.Equal(t, tc.want, descriptorIDs(descriptors))
			assert.NoError(t, a11y.Verify(descriptors, widgetsInTree), "descriptor order is tree order")
			assert.NoError(t, tc.tab.Ready())
		})
	}
}

func TestMouseTab_Roles(t *testing.T) {
	tab := NewMouseTab(DefaultConfig())

	var roles []a11y.Role
	for _, d := range tab.Descriptors() {
		roles = append(roles, d.Role())
	}
	assert.Equal(t, []a11y.Role{
		a11y.RoleButton, a11y.RoleButton, a11y.RoleCanvas, a11y.RoleTextInput, a11y.RoleTextInput,
	}, roles)
}

func TestTab_ReadyRejectsMissingDescriptor(t *testing.T) {
	tab := NewTab("broken", []RowSpec{{
		Name:   "undescribed",
		Height: 3,
		Build: func(env *Env) (runtime.Widget, []a11y.Descriptor) {
			b := widgets.NewButton("hidden")
			env.Scope.Register(b)
			return b, nil
		},
	}}, DefaultConfig())

	err := tab.Ready()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeA11yMismatch))
	assert.Equal(t, StateLayingOut, tab.State())
	assert.False(t, tab.Bus().IsOpen())
}

func TestLayoutRows_SpacingAndMargin(t *testing.T) {
	first := widgets.NewLabel("first")
	second := widgets.NewLabel("second")
	fill := widgets.NewLabel("fill")
	cfg := DefaultConfig()
	cfg.Margin, cfg.RowSpacing = 2, 1
	env := &Env{Context: NewActionContext(), Scope: runtime.NewFocusScope(), Config: cfg}

	root, descriptors := LayoutRows(env, []RowSpec{
		{Name: "first", Height: 3, Build: func(*Env) (runtime.Widget, []a11y.Descriptor) { return first, nil }},
		{Name: "fill", Build: func(*Env) (runtime.Widget, []a11y.Descriptor) { return fill, nil }},
		{Name: "second", Height: 1, Build: func(*Env) (runtime.Widget, []a11y.Descriptor) { return second, nil }},
	})
	root.Layout(runtime.NewRect(0, 0, 40, 20))

	assert.Empty(t, descriptors)
	assert.Equal(t, runtime.NewRect(2, 1, 36, 3), first.Bounds())
	// 18 rows inside the margin, minus 3 + 1 fixed and two gaps.
	assert.Equal(t, runtime.NewRect(2, 5, 36, 12), fill.Bounds())
	assert.Equal(t, runtime.NewRect(2, 18, 36, 1), second.Bounds())
}

func TestEnv_InteractiveDescribesLiveBounds(t *testing.T) {
	env := &Env{Scope: runtime.NewFocusScope()}
	button := widgets.NewButton("Go")

	d := env.Interactive(button, "go", a11y.RoleButton, "Go")
	require.Len(t, env.Scope.Widgets(), 1)
	assert.Same(t, button, env.Scope.Widgets()[0])
	assert.Equal(t, runtime.Rect{}, d.Bounds())

	button.Layout(runtime.NewRect(4, 2, 8, 3))
	assert.Equal(t, runtime.NewRect(4, 2, 8, 3), d.Bounds())
	assert.Equal(t, "go", d.ID())
	assert.Equal(t, a11y.RoleButton, d.Role())
}
