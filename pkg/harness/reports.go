package harness

import (
	"fmt"

	"github.com/odvcencio/intes/pkg/signal"
	"github.com/odvcencio/intes/pkg/ui/widgets"
)

// Report fields are read-only outputs that subscribe at construction and
// recompute their text from the action context on every delivery, so a
// repeated signal leaves them unchanged.

// Texts shown for button clicks.
const (
	ButtonAClickedText = "Button A clicked"
	ButtonBClickedText = "Button B clicked"
)

// NewActionField shows the latest mouse action or which button was clicked.
func NewActionField(ctx ActionReader, bus *signal.Bus) *widgets.Input {
	field := widgets.NewOutput()
	bus.Subscribe(signal.ButtonAClicked, func(signal.Code) bool {
		field.SetText(ButtonAClickedText)
		return true
	})
	bus.Subscribe(signal.ButtonBClicked, func(signal.Code) bool {
		field.SetText(ButtonBClickedText)
		return true
	})
	bus.SubscribeMany(func(signal.Code) bool {
		field.SetText(ctx.Snapshot().Action)
		return true
	}, signal.MouseCodes...)
	return field
}

// NewInfoField shows the pointer coordinates and button.
func NewInfoField(ctx ActionReader, bus *signal.Bus) *widgets.Input {
	field := widgets.NewOutput()
	bus.SubscribeMany(func(signal.Code) bool {
		field.SetText(FormatInfo(ctx.Snapshot()))
		return true
	}, signal.MouseCodes...)
	return field
}

// NewLastKeyField shows the name of the last key captured.
func NewLastKeyField(ctx ActionReader, bus *signal.Bus) *widgets.Input {
	field := widgets.NewOutput()
	bus.Subscribe(signal.KeyDown, func(signal.Code) bool {
		field.SetText(ctx.Snapshot().Key)
		return true
	})
	return field
}

// FormatInfo renders the info field text.
func FormatInfo(s ActionState) string {
	return fmt.Sprintf("X: %d, y: %d, button: %s", s.MouseX, s.MouseY, s.Button)
}
