// Package a11y keeps the accessibility shadow tree: one descriptor per
// interactive widget, handed once to a Host after layout.
package a11y

import (
	"fmt"

	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// Role classifies an interactive widget.
type Role int

const (
	RoleButton Role = iota + 1
	RoleTextInput
	RoleCanvas
	RoleTab
)

var roleCodes = map[Role]string{
	RoleButton:    "btn",
	RoleTextInput: "input",
	RoleCanvas:    "canvas",
	RoleTab:       "tab",
}

// String returns the compact role code used in exports.
func (r Role) String() string {
	if code, ok := roleCodes[r]; ok {
		return code
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Descriptor describes one interactive widget to assistive technology.
// Bounds is queried live, so it is only meaningful after layout.
type Descriptor interface {
	ID() string
	Role() Role
	Name() string
	Bounds() runtime.Rect
}

// Targeted is implemented by descriptors that know the widget they describe.
type Targeted interface {
	Target() runtime.Bounded
}

// Describe returns a descriptor backed by a live widget.
func Describe(id string, role Role, name string, target runtime.Bounded) Descriptor {
	return &widgetDescriptor{id: id, role: role, name: name, target: target}
}

type widgetDescriptor struct {
	id     string
	role   Role
	name   string
	target runtime.Bounded
}

func (d *widgetDescriptor) ID() string              { return d.id }
func (d *widgetDescriptor) Role() Role              { return d.role }
func (d *widgetDescriptor) Name() string            { return d.name }
func (d *widgetDescriptor) Target() runtime.Bounded { return d.target }

func (d *widgetDescriptor) Bounds() runtime.Rect {
	if d.target == nil {
		return runtime.Rect{}
	}
	return d.target.Bounds()
}

// Element is the exported form of a descriptor, with compact keys.
type Element struct {
	Index  int    `json:"i" yaml:"i"`
	ID     string `json:"id" yaml:"id"`
	Role   string `json:"r" yaml:"r"`
	Name   string `json:"t,omitempty" yaml:"t,omitempty"`
	Bounds [4]int `json:"b" yaml:"b,flow"`
}

// ElementOf converts d into its export form.
func ElementOf(index int, d Descriptor) Element {
	b := d.Bounds()
	return Element{
		Index:  index,
		ID:     d.ID(),
		Role:   d.Role().String(),
		Name:   d.Name(),
		Bounds: [4]int{b.X, b.Y, b.Width, b.Height},
	}
}
