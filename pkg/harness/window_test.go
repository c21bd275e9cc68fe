package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/observability"
	"github.com/odvcencio/intes/pkg/signal"
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/terminal"
	"github.com/odvcencio/intes/pkg/ui/widgets"
)

// newReadyWindow lays out a window on a 200x100 screen and brings it to
// Ready without a host.
func newReadyWindow(t *testing.T) (*Window, *runtime.Screen) {
	t.Helper()
	w := NewWindow("", DefaultConfig())
	screen := runtime.NewScreen(200, 100, nil)
	screen.SetRoot(w)
	require.NoError(t, w.Ready(nil))
	t.Cleanup(w.Close)
	return w, screen
}

func center(r runtime.Rect) (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func TestWindow_AttachesAggregateOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := NewWindow("", DefaultConfig())
	w.Layout(runtime.NewRect(0, 0, 120, 40))

	var attached []a11y.Descriptor
	host := NewMockHost(ctrl)
	host.EXPECT().Attach(w, gomock.Len(10)).DoAndReturn(func(_ runtime.Widget, ds []a11y.Descriptor) error {
		attached = ds
		return nil
	}).Times(1)

	require.NoError(t, w.Ready(host))

	assert.Equal(t, []string{
		"tab-mouse-test", "button-a", "button-b", "canvas", "mouse-action", "mouse-info",
		"tab-keyboard-test", "key-area", "last-key", "type-here",
	}, descriptorIDs(attached))
	assert.Equal(t, a11y.RoleTab, attached[0].Role())
	assert.Equal(t, w.Tabs().HeaderBounds(1), attached[6].Bounds())
	assert.Equal(t, "INTES: A GUI testing application", w.Title())
	for _, p := range w.Pages() {
		assert.Equal(t, StateReady, p.State())
	}

	assert.Panics(t, func() { _ = w.Ready(host) })
}

func TestWindow_AttachErrorIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	host := NewMockHost(ctrl)
	host.EXPECT().Attach(gomock.Any(), gomock.Any()).Return(assert.AnError)

	w := NewWindow("custom", DefaultConfig())
	assert.ErrorIs(t, w.Ready(host), assert.AnError)
	assert.Equal(t, "custom", w.Title())
}

func TestWindow_PressAndReleaseOnCanvas(t *testing.T) {
	w, screen := newReadyWindow(t)
	require.True(t, w.Mouse.Canvas.Bounds().Contains(120, 80))

	screen.HandleMessage(press(120, 80, runtime.MouseLeft))
	screen.HandleMessage(release(120, 80))

	s := w.Mouse.Context().Snapshot()
	assert.Equal(t, 120, s.MouseX)
	assert.Equal(t, 80, s.MouseY)
	assert.Equal(t, ButtonLeft, s.Button)
	assert.Equal(t, "X: 120, y: 80, button: Left", w.Mouse.InfoField.Text())
	assert.Equal(t, "Mouse Up", w.Mouse.ActionField.Text())
	assert.Same(t, w.Mouse.Canvas, w.Mouse.Scope().Current(), "pressing focuses the canvas")
}

func TestWindow_ButtonClicksLeaveInfoUnchanged(t *testing.T) {
	w, screen := newReadyWindow(t)
	screen.HandleMessage(press(120, 80, runtime.MouseLeft))
	screen.HandleMessage(release(120, 80))
	before := w.Mouse.Context().Snapshot()

	for _, tc := range []struct {
		name string
		rect runtime.Rect
		want string
	}{
		{"Button A", w.Mouse.ButtonA.Bounds(), "Button A clicked"},
		{"Button B", w.Mouse.ButtonB.Bounds(), "Button B clicked"},
	} {
		x, y := center(tc.rect)
		screen.HandleMessage(move(x, y))
		screen.HandleMessage(press(x, y, runtime.MouseLeft))
		screen.HandleMessage(release(x, y))

		assert.Equal(t, tc.want, w.Mouse.ActionField.Text(), tc.name)
		assert.Equal(t, "X: 120, y: 80, button: Left", w.Mouse.InfoField.Text(), tc.name)
	}

	after := w.Mouse.Context().Snapshot()
	assert.Equal(t, before.MouseX, after.MouseX)
	assert.Equal(t, before.MouseY, after.MouseY)
	assert.Equal(t, before.Button, after.Button)
}

func TestWindow_LeavingCanvasClearsAction(t *testing.T) {
	w, screen := newReadyWindow(t)

	screen.HandleMessage(move(50, 50))
	assert.Equal(t, "Mouse Move", w.Mouse.ActionField.Text())
	assert.Equal(t, "X: 50, y: 50, button: ", w.Mouse.InfoField.Text())

	x, y := center(w.Mouse.ButtonA.Bounds())
	screen.HandleMessage(move(x, y))
	assert.Equal(t, "", w.Mouse.ActionField.Text())
	assert.Equal(t, "X: 50, y: 50, button: ", w.Mouse.InfoField.Text())
}

func TestWindow_FocusTraversal(t *testing.T) {
	w, screen := newReadyWindow(t)
	scope := screen.FocusScope()
	require.Same(t, w.Mouse.Scope(), scope)

	var order []runtime.Focusable
	for i, n := 0, w.Mouse.Scope().Count(); i < n; i++ {
		order = append(order, scope.Current())
		screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyTab})
	}
	assert.Equal(t, interactive(w.Mouse.Content()), order)
	assert.Same(t, w.Mouse.ButtonA, scope.Current(), "traversal wraps")

	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyBacktab})
	assert.Same(t, w.Mouse.InfoField, scope.Current())
}

func TestWindow_EnterActivatesFocusedButton(t *testing.T) {
	w, screen := newReadyWindow(t)
	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyTab})
	require.Same(t, w.Mouse.ButtonB, w.Mouse.Scope().Current())

	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEnter})

	assert.Equal(t, "Button B clicked", w.Mouse.ActionField.Text())
}

func TestWindow_KeyboardTab(t *testing.T) {
	w, screen := newReadyWindow(t)

	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRight, Ctrl: true})
	require.Equal(t, 1, w.Tabs().Active())
	require.Same(t, w.Keyboard.Scope(), screen.FocusScope())

	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'x'})
	assert.Equal(t, "x", w.Keyboard.LastKeyField.Text())
	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyUp, Shift: true})
	assert.Equal(t, "Shift+Up", w.Keyboard.LastKeyField.Text())

	// The mouse tab keeps its own state.
	assert.Equal(t, "", w.Mouse.Context().Snapshot().Key)

	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyTab})
	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyTab})
	require.Same(t, w.Keyboard.TypeField, w.Keyboard.Scope().Current())
	result := screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'q'})
	assert.True(t, result.Handled)
	assert.Empty(t, result.Commands, "q typed into a field does not quit")
	assert.Equal(t, "q", w.Keyboard.TypeField.Text())
	assert.Equal(t, "Shift+Up", w.Keyboard.LastKeyField.Text())
}

func TestWindow_HeaderClickSwitchesTab(t *testing.T) {
	w, screen := newReadyWindow(t)

	x, y := center(w.Tabs().HeaderBounds(1))
	screen.HandleMessage(press(x, y, runtime.MouseLeft))

	assert.Equal(t, 1, w.Tabs().Active())
}

func TestWindow_QuitKeys(t *testing.T) {
	for _, msg := range []runtime.KeyMsg{
		{Key: terminal.KeyRune, Rune: 'q'},
		{Key: terminal.KeyEscape},
		{Key: terminal.KeyCtrlC},
	} {
		_, screen := newReadyWindow(t)

		result := screen.HandleMessage(msg)

		require.Len(t, result.Commands, 1, msg.Event().Name())
		assert.IsType(t, runtime.Quit{}, result.Commands[0])
	}

	_, screen := newReadyWindow(t)
	result := screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'q', Alt: true})
	assert.Empty(t, result.Commands)
}

func TestWindow_EscapeQuitsFromKeyArea(t *testing.T) {
	w, screen := newReadyWindow(t)
	w.Tabs().Select(1)

	result := screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEscape})

	assert.Equal(t, "Escape", w.Keyboard.LastKeyField.Text())
	require.Len(t, result.Commands, 1)
	assert.IsType(t, runtime.Quit{}, result.Commands[0])
}

func TestWindow_SwitchingTabsLeavesCanvas(t *testing.T) {
	w, screen := newReadyWindow(t)
	got := record(w.Mouse.Bus())

	screen.HandleMessage(press(120, 80, runtime.MouseLeft))
	require.True(t, w.Mouse.Canvas.Captured())
	require.Equal(t, "Mouse Down", w.Mouse.ActionField.Text())

	w.Tabs().Select(1)

	assert.Equal(t, []signal.Code{signal.MouseIn, signal.MouseDown, signal.MouseOut}, *got)
	assert.False(t, w.Mouse.Canvas.Captured())
	assert.Equal(t, ActionNone, w.Mouse.Context().Snapshot().Action)
	assert.Equal(t, "", w.Mouse.ActionField.Text())
	assert.Equal(t, "X: 120, y: 80, button: Left", w.Mouse.InfoField.Text())

	// The release lands on the keyboard page and never reaches the canvas.
	screen.HandleMessage(release(120, 80))
	w.Tabs().Select(0)
	w.Tabs().Select(1)
	assert.Len(t, *got, 3)
}

func TestWindow_SwitchingTabsOutsideCanvasIsSilent(t *testing.T) {
	w, screen := newReadyWindow(t)
	got := record(w.Mouse.Bus())

	x, y := center(w.Mouse.ButtonA.Bounds())
	screen.HandleMessage(move(x, y))
	w.Tabs().Select(1)

	assert.Empty(t, *got)
}

func TestWindow_ReadyRetriesAfterMismatch(t *testing.T) {
	w := NewWindow("", DefaultConfig())
	t.Cleanup(w.Close)
	w.Layout(runtime.NewRect(0, 0, 120, 40))

	extra := widgets.NewButton("Extra")
	w.Keyboard.Scope().Register(extra)

	err := w.Ready(nil)
	require.True(t, errors.IsCode(err, errors.ErrCodeA11yMismatch), "got %v", err)
	assert.Equal(t, StateReady, w.Mouse.State())
	assert.Equal(t, StateLayingOut, w.Keyboard.State())
	assert.False(t, w.Keyboard.Bus().IsOpen())

	// Still failing: reported again rather than treated as a second attach.
	require.NotPanics(t, func() { err = w.Ready(nil) })
	require.True(t, errors.IsCode(err, errors.ErrCodeA11yMismatch))

	w.Keyboard.tree.Add(a11y.Describe("extra", a11y.RoleButton, "Extra", extra))
	require.NoError(t, w.Ready(nil))
	assert.Equal(t, StateReady, w.Keyboard.State())
	assert.Len(t, w.Descriptors(), 11)

	assert.Panics(t, func() { _ = w.Ready(nil) })
}

func TestWindow_CanvasLogsCapture(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logger = observability.NewLogger("intes", slog.LevelDebug, &buf)
	w := NewWindow("", cfg)
	t.Cleanup(w.Close)
	screen := runtime.NewScreen(200, 100, nil)
	screen.SetRoot(w)
	require.NoError(t, w.Ready(nil))

	screen.HandleMessage(press(120, 80, runtime.MouseRight))
	screen.HandleMessage(release(120, 80))

	var msgs []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["widget"] != "canvas" {
			continue
		}
		assert.Equal(t, MouseTabName, rec["tab"])
		msgs = append(msgs, rec["msg"].(string))
	}
	assert.Equal(t, []string{"pointer captured", "pointer released"}, msgs)
}

func TestWindow_TracesBusPosts(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	cfg := DefaultConfig()
	cfg.Tracer = tp.Tracer("harness-test")
	w := NewWindow("", cfg)
	t.Cleanup(w.Close)
	screen := runtime.NewScreen(200, 100, nil)
	screen.SetRoot(w)
	require.NoError(t, w.Ready(nil))

	screen.HandleMessage(press(120, 80, runtime.MouseLeft))

	var names []string
	for _, span := range rec.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{"MouseIn", "MouseDown"}, names)
}
