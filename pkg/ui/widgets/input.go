package widgets

import (
	"unicode"

	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/terminal"
)

// Input is a single-line text field. A read-only input is a report field:
// it can take focus and move its cursor but rejects edits.
type Input struct {
	FocusableBase

	text        []rune
	cursorPos   int
	readOnly    bool
	placeholder string

	onSubmit func(text string)
	onChange func(text string)
}

// NewInput creates a new editable input widget.
func NewInput() *Input {
	return &Input{}
}

// NewOutput creates a read-only report field.
func NewOutput() *Input {
	return &Input{readOnly: true}
}

// SetReadOnly toggles edit rejection.
func (i *Input) SetReadOnly(readOnly bool) {
	i.readOnly = readOnly
}

// ReadOnly reports whether the field rejects edits.
func (i *Input) ReadOnly() bool {
	return i.readOnly
}

// SetPlaceholder sets the placeholder text shown when empty and unfocused.
func (i *Input) SetPlaceholder(text string) {
	i.placeholder = text
}

// OnSubmit sets the callback for when Enter is pressed.
func (i *Input) OnSubmit(fn func(text string)) {
	i.onSubmit = fn
}

// OnChange sets the callback for when the user edits the text.
func (i *Input) OnChange(fn func(text string)) {
	i.onChange = fn
}

// Text returns the current input text.
func (i *Input) Text() string {
	return string(i.text)
}

// SetText replaces the text and moves the cursor to the end. Programmatic
// updates do not fire OnChange.
func (i *Input) SetText(text string) {
	i.text = []rune(text)
	i.cursorPos = len(i.text)
}

// Clear clears the input text.
func (i *Input) Clear() {
	i.SetText("")
}

// CursorPos returns the cursor position in runes.
func (i *Input) CursorPos() int {
	return i.cursorPos
}

// Measure fills the available width at one line tall.
func (i *Input) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: 1})
}

// Render draws the input field.
func (i *Input) Render(ctx runtime.RenderContext) {
	bounds := i.bounds
	if bounds.Empty() {
		return
	}
	th := themeOf(ctx)
	style := th.Field
	if i.focused {
		style = th.FieldFocus
	}
	line := runtime.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: 1}
	ctx.Buffer.Fill(line, ' ', style)

	if len(i.text) == 0 && !i.focused && i.placeholder != "" {
		ctx.Buffer.SetString(bounds.X, bounds.Y, truncateString(i.placeholder, bounds.Width), style.Dim(true))
		return
	}

	// Scroll so the cursor stays visible.
	start := 0
	if i.cursorPos >= bounds.Width {
		start = i.cursorPos - bounds.Width + 1
	}
	visible := i.text[start:]
	ctx.Buffer.SetString(bounds.X, bounds.Y, truncateString(string(visible), bounds.Width), style)

	if i.focused && !i.readOnly {
		cursorX := bounds.X + TextWidth(string(i.text[start:i.cursorPos]))
		if cursorX < bounds.X+bounds.Width {
			ch := ' '
			if i.cursorPos < len(i.text) {
				ch = i.text[i.cursorPos]
			}
			ctx.Buffer.Set(cursorX, bounds.Y, ch, style.Reverse(true))
		}
	}
}

// HandleMessage processes keyboard input while focused.
func (i *Input) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !i.focused {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}

	switch key.Key {
	case terminal.KeyLeft:
		if key.Ctrl {
			return runtime.Unhandled()
		}
		if i.cursorPos > 0 {
			i.cursorPos--
		}
		return runtime.Handled()
	case terminal.KeyRight:
		if key.Ctrl {
			return runtime.Unhandled()
		}
		if i.cursorPos < len(i.text) {
			i.cursorPos++
		}
		return runtime.Handled()
	case terminal.KeyHome:
		i.cursorPos = 0
		return runtime.Handled()
	case terminal.KeyEnd:
		i.cursorPos = len(i.text)
		return runtime.Handled()
	}

	if i.readOnly {
		return runtime.Unhandled()
	}

	switch key.Key {
	case terminal.KeyEnter:
		if i.onSubmit != nil {
			i.onSubmit(i.Text())
		}
		return runtime.Handled()

	case terminal.KeyBackspace:
		if i.cursorPos > 0 {
			i.text = append(i.text[:i.cursorPos-1], i.text[i.cursorPos:]...)
			i.cursorPos--
			i.notifyChange()
		}
		return runtime.Handled()

	case terminal.KeyDelete:
		if i.cursorPos < len(i.text) {
			i.text = append(i.text[:i.cursorPos], i.text[i.cursorPos+1:]...)
			i.notifyChange()
		}
		return runtime.Handled()

	case terminal.KeyRune:
		if key.Ctrl || key.Alt || !unicode.IsPrint(key.Rune) {
			return runtime.Unhandled()
		}
		i.text = append(i.text[:i.cursorPos], append([]rune{key.Rune}, i.text[i.cursorPos:]...)...)
		i.cursorPos++
		i.notifyChange()
		return runtime.Handled()
	}

	return runtime.Unhandled()
}

func (i *Input) notifyChange() {
	if i.onChange != nil {
		i.onChange(i.Text())
	}
}
