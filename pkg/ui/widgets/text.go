package widgets

import (
	"strings"

	"github.com/odvcencio/intes/pkg/ui/backend"
	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// Text is a multi-line text display widget.
type Text struct {
	Base
	text  string
	style *backend.Style
	lines []string
}

// NewText creates a new text widget.
func NewText(text string) *Text {
	t := &Text{}
	t.SetText(text)
	return t
}

// SetText updates the displayed text.
func (t *Text) SetText(text string) {
	t.text = text
	t.lines = strings.Split(text, "\n")
}

// Text returns the current text.
func (t *Text) Text() string {
	return t.text
}

// WithStyle overrides the theme's muted text style.
func (t *Text) WithStyle(style backend.Style) *Text {
	t.style = &style
	return t
}

// Measure returns the size needed to display the text.
func (t *Text) Measure(constraints runtime.Constraints) runtime.Size {
	width := 0
	for _, line := range t.lines {
		width = max(width, TextWidth(line))
	}
	return constraints.Constrain(runtime.Size{Width: width, Height: max(1, len(t.lines))})
}

// Render draws the text, clipping each line to the bounds.
func (t *Text) Render(ctx runtime.RenderContext) {
	bounds := t.bounds
	if bounds.Empty() {
		return
	}
	style := themeOf(ctx).TextMuted
	if t.style != nil {
		style = *t.style
	}
	for i, line := range t.lines {
		if i >= bounds.Height {
			break
		}
		ctx.Buffer.SetString(bounds.X, bounds.Y+i, truncateString(line, bounds.Width), style)
	}
}

// Alignment specifies text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Label is a single-line decorative caption. Labels never take focus and
// never consume messages.
type Label struct {
	Base
	text      string
	style     *backend.Style
	alignment Alignment
}

// NewLabel creates a new label widget.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// SetText updates the label text.
func (l *Label) SetText(text string) {
	l.text = text
}

// Text returns the label text.
func (l *Label) Text() string {
	return l.text
}

// WithStyle overrides the theme's secondary text style.
func (l *Label) WithStyle(style backend.Style) *Label {
	l.style = &style
	return l
}

// WithAlignment sets alignment and returns for chaining.
func (l *Label) WithAlignment(align Alignment) *Label {
	l.alignment = align
	return l
}

// Measure returns the size needed for the label.
func (l *Label) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: TextWidth(l.text), Height: 1})
}

// Render draws the label.
func (l *Label) Render(ctx runtime.RenderContext) {
	bounds := l.bounds
	if bounds.Empty() {
		return
	}
	style := themeOf(ctx).TextSecondary
	if l.style != nil {
		style = *l.style
	}

	text := truncateString(l.text, bounds.Width)
	w := TextWidth(text)
	x := bounds.X
	switch l.alignment {
	case AlignCenter:
		x = centerIn(bounds, w)
	case AlignRight:
		x = bounds.X + bounds.Width - w
	}
	ctx.Buffer.SetString(x, bounds.Y+(bounds.Height-1)/2, text, style)
}
