package runtime

// FlexDirection specifies the main axis of a flex container.
type FlexDirection int

const (
	Column FlexDirection = iota // Vertical (VBox)
	Row                         // Horizontal (HBox)
)

// FlexChild wraps a widget with flex layout properties.
type FlexChild struct {
	Widget Widget
	Grow   float64 // 0 = fixed, otherwise proportional share of free space
	Basis  int     // Base size on the main axis (-1 = use measured size)
}

// Fixed creates a child that keeps its measured size.
func Fixed(w Widget) FlexChild {
	return FlexChild{Widget: w, Basis: -1}
}

// Flexible creates a child that grows with the given factor.
func Flexible(w Widget, grow float64) FlexChild {
	return FlexChild{Widget: w, Grow: grow, Basis: -1}
}

// Expanded creates a child that grows to fill available space.
func Expanded(w Widget) FlexChild {
	return Flexible(w, 1)
}

// Sized creates a child with a fixed main-axis size.
func Sized(w Widget, basis int) FlexChild {
	return FlexChild{Widget: w, Basis: basis}
}

// Flex lays out children along an axis. Messages are offered to children
// in order and the first child that handles one wins.
type Flex struct {
	Direction FlexDirection
	Children  []FlexChild
	Gap       int

	bounds      Rect
	childBounds []Rect
}

// VBox creates a vertical flex container.
func VBox(children ...FlexChild) *Flex {
	return &Flex{Direction: Column, Children: children}
}

// HBox creates a horizontal flex container.
func HBox(children ...FlexChild) *Flex {
	return &Flex{Direction: Row, Children: children}
}

// WithGap sets the gap between children.
func (f *Flex) WithGap(gap int) *Flex {
	f.Gap = gap
	return f
}

// Add appends a child to the flex container.
func (f *Flex) Add(child FlexChild) {
	f.Children = append(f.Children, child)
}

// Measure calculates the desired size of the flex container.
func (f *Flex) Measure(constraints Constraints) Size {
	if len(f.Children) == 0 {
		return constraints.MinSize()
	}

	var childConstraints Constraints
	if f.Direction == Column {
		childConstraints = Constraints{MinWidth: constraints.MinWidth, MaxWidth: constraints.MaxWidth, MaxHeight: maxInt}
	} else {
		childConstraints = Constraints{MaxWidth: maxInt, MinHeight: constraints.MinHeight, MaxHeight: constraints.MaxHeight}
	}

	main, cross := f.gaps(), 0
	for _, child := range f.Children {
		s := f.measureChild(child, childConstraints)
		main += f.mainSize(s)
		cross = max(cross, f.crossSize(s))
	}
	return constraints.Constrain(f.compose(main, cross))
}

// Layout positions all children within the given bounds.
func (f *Flex) Layout(bounds Rect) {
	f.bounds = bounds
	f.childBounds = make([]Rect, len(f.Children))
	if len(f.Children) == 0 {
		return
	}

	childConstraints := Loose(bounds.Width, maxInt)
	if f.Direction == Row {
		childConstraints = Loose(maxInt, bounds.Height)
	}

	sizes := make([]int, len(f.Children))
	fixed := f.gaps()
	totalGrow := 0.0
	for i, child := range f.Children {
		sizes[i] = f.mainSize(f.measureChild(child, childConstraints))
		if child.Grow == 0 {
			fixed += sizes[i]
		}
		totalGrow += child.Grow
	}
	available := max(0, f.mainSize(bounds.Size())-fixed)

	offset := 0
	for i, child := range f.Children {
		size := sizes[i]
		if child.Grow > 0 && totalGrow > 0 {
			size = int(float64(available) * child.Grow / totalGrow)
		}

		r := Rect{X: bounds.X, Y: bounds.Y + offset, Width: bounds.Width, Height: size}
		if f.Direction == Row {
			r = Rect{X: bounds.X + offset, Y: bounds.Y, Width: size, Height: bounds.Height}
		}
		f.childBounds[i] = r
		child.Widget.Layout(r)
		offset += size + f.Gap
	}
}

// Bounds returns the assigned bounds for the flex container.
func (f *Flex) Bounds() Rect {
	return f.bounds
}

// ChildWidgets returns the flex container's child widgets.
func (f *Flex) ChildWidgets() []Widget {
	children := make([]Widget, 0, len(f.Children))
	for _, child := range f.Children {
		if child.Widget != nil {
			children = append(children, child.Widget)
		}
	}
	return children
}

// Render draws all children.
func (f *Flex) Render(ctx RenderContext) {
	for i, child := range f.Children {
		if i < len(f.childBounds) {
			child.Widget.Render(ctx.Sub(f.childBounds[i]))
		}
	}
}

// HandleMessage dispatches to children; first handler wins.
func (f *Flex) HandleMessage(msg Message) HandleResult {
	for _, child := range f.Children {
		if result := child.Widget.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return Unhandled()
}

func (f *Flex) measureChild(child FlexChild, c Constraints) Size {
	if child.Basis >= 0 {
		return f.compose(child.Basis, 0)
	}
	return child.Widget.Measure(c)
}

func (f *Flex) gaps() int {
	if len(f.Children) < 2 {
		return 0
	}
	return f.Gap * (len(f.Children) - 1)
}

func (f *Flex) mainSize(s Size) int {
	if f.Direction == Column {
		return s.Height
	}
	return s.Width
}

func (f *Flex) crossSize(s Size) int {
	if f.Direction == Column {
		return s.Width
	}
	return s.Height
}

func (f *Flex) compose(main, cross int) Size {
	if f.Direction == Column {
		return Size{Width: cross, Height: main}
	}
	return Size{Width: main, Height: cross}
}

// Spacer is an empty widget for adding space in flex layouts.
type Spacer struct {
	bounds Rect
}

// NewSpacer creates a spacer widget.
func NewSpacer() *Spacer {
	return &Spacer{}
}

func (s *Spacer) Measure(constraints Constraints) Size { return constraints.MinSize() }
func (s *Spacer) Layout(bounds Rect)                   { s.bounds = bounds }
func (s *Spacer) Bounds() Rect                         { return s.bounds }
func (s *Spacer) Render(ctx RenderContext)             {}
func (s *Spacer) HandleMessage(msg Message) HandleResult {
	return Unhandled()
}

// Space creates a flexible spacer that expands to fill available space.
func Space() FlexChild {
	return Expanded(NewSpacer())
}

// FixedSpace creates a fixed-size spacer.
func FixedSpace(size int) FlexChild {
	return Sized(NewSpacer(), size)
}
