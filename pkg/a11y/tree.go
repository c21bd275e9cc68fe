package a11y

import (
	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// Tree is an append-only descriptor list. Once frozen it never changes.
type Tree struct {
	items  []Descriptor
	frozen bool
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Add appends descriptors in order. Adding to a frozen tree panics.
func (t *Tree) Add(ds ...Descriptor) {
	if t.frozen {
		panic(errors.New(errors.ErrCodeInternal, "descriptor added after tree was attached").
			WithContext("count", len(ds)))
	}
	t.items = append(t.items, ds...)
}

// Freeze makes the tree read-only.
func (t *Tree) Freeze() {
	t.frozen = true
}

// Frozen reports whether Freeze was called.
func (t *Tree) Frozen() bool {
	return t.frozen
}

// Len returns the number of descriptors.
func (t *Tree) Len() int {
	return len(t.items)
}

// Descriptors returns a copy of the list.
func (t *Tree) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.items))
	copy(out, t.items)
	return out
}

// Verify checks that there is exactly one descriptor per focusable widget
// and that descriptors follow focus traversal order. Descriptors that do
// not expose their target are checked by count only.
func Verify(descriptors []Descriptor, focus []runtime.Focusable) error {
	if len(descriptors) != len(focus) {
		return errors.Newf(errors.ErrCodeA11yMismatch,
			"%d descriptors for %d interactive widgets", len(descriptors), len(focus)).
			WithRemediation("every row builder must return one descriptor per widget it registers")
	}
	for i, d := range descriptors {
		t, ok := d.(Targeted)
		if !ok {
			continue
		}
		if w, ok := t.Target().(runtime.Focusable); !ok || w != focus[i] {
			return errors.New(errors.ErrCodeA11yMismatch, "descriptor order differs from focus order").
				WithContext("index", i).
				WithContext("descriptor", d.ID())
		}
	}
	return nil
}
