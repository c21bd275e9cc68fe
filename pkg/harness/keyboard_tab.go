package harness

import (
	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/widgets"
)

const (
	KeyboardTabName = "Keyboard Test"
	KeyAreaLabel    = "Key Test Area"
)

// KeyboardTab holds the key capture surface, its report field and a plain
// text field that edits normally.
type KeyboardTab struct {
	*Tab

	KeyArea      *KeyTestArea
	LastKeyField *widgets.Input
	TypeField    *widgets.Input
}

// NewKeyboardTab builds the keyboard test page.
func NewKeyboardTab(cfg Config) *KeyboardTab {
	k := &KeyboardTab{}
	k.Tab = NewTab(KeyboardTabName, []RowSpec{
		{Name: "keys", Height: cfg.CanvasHeight, Build: k.keyRow},
		{Name: "last key", Height: 1, Build: k.lastKeyRow},
		{Name: "type", Height: 1, Build: k.typeRow},
	}, cfg)
	return k
}

func (k *KeyboardTab) keyRow(env *Env) (runtime.Widget, []a11y.Descriptor) {
	cfg := env.Config
	k.KeyArea = NewKeyTestArea(KeyAreaLabel, cfg.CanvasWidth, cfg.CanvasHeight, env.Context, env.Bus)

	child := runtime.Expanded(k.KeyArea)
	if cfg.CanvasWidth > 0 {
		child = runtime.Fixed(k.KeyArea)
	}
	return runtime.HBox(child), []a11y.Descriptor{
		env.Interactive(k.KeyArea, "key-area", a11y.RoleCanvas, KeyAreaLabel),
	}
}

func (k *KeyboardTab) lastKeyRow(env *Env) (runtime.Widget, []a11y.Descriptor) {
	k.LastKeyField = NewLastKeyField(env.Context, env.Bus)
	return labelled("Last key:", k.LastKeyField), []a11y.Descriptor{
		env.Interactive(k.LastKeyField, "last-key", a11y.RoleTextInput, "Last key"),
	}
}

func (k *KeyboardTab) typeRow(env *Env) (runtime.Widget, []a11y.Descriptor) {
	k.TypeField = widgets.NewInput()
	k.TypeField.SetPlaceholder("type here")
	return labelled("Type here:", k.TypeField), []a11y.Descriptor{
		env.Interactive(k.TypeField, "type-here", a11y.RoleTextInput, "Type here"),
	}
}
