package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/intes/pkg/ui/backend"
)

// Cell represents a single character cell in the buffer.
type Cell struct {
	Rune  rune
	Style backend.Style
}

// Buffer is a 2D grid of cells for rendering widgets.
// Widgets render to the buffer, then the buffer is flushed to the backend.
// Supports dirty-region tracking for partial redraws.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	dirty      []bool // Parallel to cells, true if cell changed
	dirtyCount int
	dirtyRect  Rect
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the buffer dimensions, preserving content where possible.
func (b *Buffer) Resize(w, h int) {
	if w == b.width && h == b.height {
		return
	}
	newCells := make([]Cell, w*h)
	for y := 0; y < min(h, b.height); y++ {
		for x := 0; x < min(w, b.width); x++ {
			newCells[y*w+x] = b.cells[y*b.width+x]
		}
	}
	b.cells = newCells
	b.dirty = make([]bool, w*h)
	b.width = w
	b.height = h
	b.MarkAllDirty()
}

// Clear fills the buffer with spaces and default style.
func (b *Buffer) Clear() {
	b.Fill(Rect{0, 0, b.width, b.height}, ' ', backend.DefaultStyle())
}

// Get returns the cell at position (x, y).
// Returns a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune with style at position (x, y).
// No-op if out of bounds. Marks the cell as dirty if changed.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	cell := Cell{Rune: r, Style: s}
	if b.cells[idx] != cell {
		b.cells[idx] = cell
		b.markCellDirty(x, y, idx)
	}
}

// CopyFrom overwrites b with src cell by cell. Cells that already match
// stay clean. Both buffers must have the same size.
func (b *Buffer) CopyFrom(src *Buffer) {
	if src.width != b.width || src.height != b.height {
		return
	}
	for idx, cell := range src.cells {
		b.Set(idx%b.width, idx/b.width, cell.Rune, cell.Style)
	}
}

// SetString writes a string starting at (x, y) and returns the number of
// columns used. Wide runes occupy two columns.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	if y < 0 || y >= b.height {
		return 0
	}
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > b.width {
			break
		}
		b.Set(col, y, r, style)
		if w == 2 {
			b.Set(col+1, y, ' ', style)
		}
		col += w
	}
	return col - x
}

// Fill fills a rectangular region with a rune and style.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	x0 := max(0, r.X)
	y0 := max(0, r.Y)
	x1 := min(b.width, r.X+r.Width)
	y1 := min(b.height, r.Y+r.Height)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.Set(x, y, ch, s)
		}
	}
}

// Frame selects the glyph set a box border is drawn with.
type Frame int

const (
	FrameNone    Frame = iota
	FrameFlat          // ┌─┐
	FrameRounded       // ╭─╮
	FrameDown          // heavy bottom/right edge, reads as a sunken box
	FrameUp            // heavy top/left edge, reads as a raised box
)

type frameGlyphs struct {
	tl, tr, bl, br rune
	top, bottom    rune
	left, right    rune
}

var frames = map[Frame]frameGlyphs{
	FrameFlat:    {'┌', '┐', '└', '┘', '─', '─', '│', '│'},
	FrameRounded: {'╭', '╮', '╰', '╯', '─', '─', '│', '│'},
	FrameDown:    {'┏', '┓', '┗', '┛', '━', '─', '┃', '│'},
	FrameUp:      {'┌', '┒', '┕', '┛', '─', '━', '│', '┃'},
}

// DrawFrame draws a border around r with the given frame type.
func (b *Buffer) DrawFrame(r Rect, f Frame, s backend.Style) {
	g, ok := frames[f]
	if !ok || r.Width < 2 || r.Height < 2 {
		return
	}

	right := r.X + r.Width - 1
	bottom := r.Y + r.Height - 1

	b.Set(r.X, r.Y, g.tl, s)
	b.Set(right, r.Y, g.tr, s)
	b.Set(r.X, bottom, g.bl, s)
	b.Set(right, bottom, g.br, s)

	for x := r.X + 1; x < right; x++ {
		b.Set(x, r.Y, g.top, s)
		b.Set(x, bottom, g.bottom, s)
	}
	for y := r.Y + 1; y < bottom; y++ {
		b.Set(r.X, y, g.left, s)
		b.Set(right, y, g.right, s)
	}
}

// DrawBox draws a flat border around a rect.
func (b *Buffer) DrawBox(r Rect, s backend.Style) {
	b.DrawFrame(r, FrameFlat, s)
}

func (b *Buffer) markCellDirty(x, y, idx int) {
	if b.dirty[idx] {
		return
	}
	b.dirty[idx] = true
	b.dirtyCount++

	if b.dirtyCount == 1 {
		b.dirtyRect = Rect{X: x, Y: y, Width: 1, Height: 1}
		return
	}
	if x < b.dirtyRect.X {
		b.dirtyRect.Width += b.dirtyRect.X - x
		b.dirtyRect.X = x
	} else if x >= b.dirtyRect.X+b.dirtyRect.Width {
		b.dirtyRect.Width = x - b.dirtyRect.X + 1
	}
	if y < b.dirtyRect.Y {
		b.dirtyRect.Height += b.dirtyRect.Y - y
		b.dirtyRect.Y = y
	} else if y >= b.dirtyRect.Y+b.dirtyRect.Height {
		b.dirtyRect.Height = y - b.dirtyRect.Y + 1
	}
}

// MarkAllDirty marks the entire buffer as dirty.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
	b.dirtyRect = Rect{X: 0, Y: 0, Width: b.width, Height: b.height}
}

// ClearDirty resets all dirty flags.
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
}

// IsDirty returns true if any cells have changed.
func (b *Buffer) IsDirty() bool {
	return b.dirtyCount > 0
}

// DirtyCount returns the number of dirty cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of dirty cells.
func (b *Buffer) DirtyRect() Rect {
	return b.dirtyRect
}

// ForEachDirtyCell calls fn for each dirty cell within the dirty rect.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	if b.dirtyCount == 0 {
		return
	}
	r := b.dirtyRect
	for y := r.Y; y < r.Y+r.Height && y < b.height; y++ {
		for x := r.X; x < r.X+r.Width && x < b.width; x++ {
			idx := y*b.width + x
			if b.dirty[idx] {
				fn(x, y, b.cells[idx])
			}
		}
	}
}

// Row returns the runes of row y as a string, for tests and snapshots.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	out := make([]rune, b.width)
	for x := 0; x < b.width; x++ {
		r := b.cells[y*b.width+x].Rune
		if r == 0 {
			r = ' '
		}
		out[x] = r
	}
	return string(out)
}
