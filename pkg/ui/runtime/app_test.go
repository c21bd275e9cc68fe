package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/odvcencio/intes/pkg/ui/backend"
	"github.com/odvcencio/intes/pkg/ui/backend/sim"
	"github.com/odvcencio/intes/pkg/ui/terminal"
)

type testCommand struct{}

func (testCommand) isCommand() {}

type appTestWidget struct {
	keyCommands map[rune]Command
	renderChar  rune
	boundsCh    chan Rect
	mouseCh     chan MouseMsg
}

func (w *appTestWidget) Measure(c Constraints) Size {
	return c.MaxSize()
}

func (w *appTestWidget) Layout(bounds Rect) {
	if w.boundsCh == nil {
		return
	}
	select {
	case w.boundsCh <- bounds:
	default:
	}
}

func (w *appTestWidget) Render(ctx RenderContext) {
	if w.renderChar == 0 || ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Set(ctx.Bounds.X, ctx.Bounds.Y, w.renderChar, backend.DefaultStyle())
}

func (w *appTestWidget) HandleMessage(msg Message) HandleResult {
	switch m := msg.(type) {
	case MouseMsg:
		if w.mouseCh != nil {
			w.mouseCh <- m
		}
		return Handled()
	case KeyMsg:
		if cmd, ok := w.keyCommands[m.Rune]; ok {
			return WithCommand(cmd)
		}
	}
	return Unhandled()
}

func startApp(t *testing.T, app *App) <-chan error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()
	waitForScreen(t, app)
	return done
}

func quitApp(t *testing.T, app *App, done <-chan error) {
	t.Helper()

	app.Post(KeyMsg{Key: terminal.KeyRune, Rune: 'q'})
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not exit after Quit command")
	}
}

func TestApp_RunQuit(t *testing.T) {
	app := NewApp(AppConfig{
		Backend: sim.New(5, 3),
		Root:    &appTestWidget{keyCommands: map[rune]Command{'q': Quit{}}, renderChar: 'X'},
	})

	done := startApp(t, app)
	quitApp(t, app, done)
}

func TestApp_RequiresBackend(t *testing.T) {
	if err := NewApp(AppConfig{}).Run(context.Background()); err == nil {
		t.Fatal("expected error without backend")
	}
}

func TestApp_OnReadyRunsBeforeInput(t *testing.T) {
	ready := make(chan *Screen, 1)
	app := NewApp(AppConfig{
		Backend: sim.New(5, 3),
		Root:    &appTestWidget{keyCommands: map[rune]Command{'q': Quit{}}},
		OnReady: func(s *Screen) { ready <- s },
	})

	done := startApp(t, app)

	select {
	case s := <-ready:
		if s.Root() == nil {
			t.Error("OnReady should see the laid out root")
		}
	default:
		t.Fatal("OnReady did not run before the screen was published")
	}
	quitApp(t, app, done)
}

func TestApp_CommandHandler(t *testing.T) {
	handled := make(chan struct{}, 1)
	app := NewApp(AppConfig{
		Backend: sim.New(5, 3),
		Root:    &appTestWidget{keyCommands: map[rune]Command{'c': testCommand{}, 'q': Quit{}}},
		CommandHandler: func(cmd Command) bool {
			if _, ok := cmd.(testCommand); ok {
				handled <- struct{}{}
				return true
			}
			return false
		},
	})

	done := startApp(t, app)
	app.Post(KeyMsg{Key: terminal.KeyRune, Rune: 'c'})

	select {
	case <-handled:
	case <-time.After(time.Second):
		t.Fatal("CommandHandler did not receive testCommand")
	}
	quitApp(t, app, done)
}

func TestApp_Resize(t *testing.T) {
	boundsCh := make(chan Rect, 4)
	app := NewApp(AppConfig{
		Backend: sim.New(5, 3),
		Root:    &appTestWidget{keyCommands: map[rune]Command{'q': Quit{}}, boundsCh: boundsCh},
	})

	done := startApp(t, app)
	drainBounds(boundsCh)

	app.Post(ResizeMsg{Width: 12, Height: 7})
	waitForBounds(t, boundsCh, 12, 7)

	quitApp(t, app, done)
}

func TestApp_BackendMouseReachesRoot(t *testing.T) {
	be := sim.New(20, 10)
	mouseCh := make(chan MouseMsg, 4)
	app := NewApp(AppConfig{
		Backend: be,
		Root:    &appTestWidget{keyCommands: map[rune]Command{'q': Quit{}}, mouseCh: mouseCh},
	})

	done := startApp(t, app)
	be.InjectMouse(terminal.MouseEvent{X: 4, Y: 2, Button: terminal.MouseLeft, Action: terminal.MousePress})

	select {
	case m := <-mouseCh:
		if m.X != 4 || m.Y != 2 || m.Button != MouseLeft || m.Action != MousePress {
			t.Errorf("mouse msg = %+v", m)
		}
	case <-time.After(time.Second):
		t.Fatal("mouse event did not reach the root")
	}
	quitApp(t, app, done)
}

func waitForScreen(t *testing.T, app *App) {
	t.Helper()

	deadline := time.After(time.Second)
	for app.Screen() == nil {
		select {
		case <-deadline:
			t.Fatal("screen did not initialize in time")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func drainBounds(ch <-chan Rect) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func waitForBounds(t *testing.T, ch <-chan Rect, width, height int) {
	t.Helper()

	deadline := time.After(time.Second)
	for {
		select {
		case bounds := <-ch:
			if bounds.Width == width && bounds.Height == height {
				return
			}
		case <-deadline:
			t.Fatalf("layout with %dx%d not observed", width, height)
		}
	}
}
