package a11y

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/widgets"
)

func TestRole_String(t *testing.T) {
	assert.Equal(t, "btn", RoleButton.String())
	assert.Equal(t, "input", RoleTextInput.String())
	assert.Equal(t, "canvas", RoleCanvas.String())
	assert.Equal(t, "tab", RoleTab.String())
	assert.Equal(t, "Role(99)", Role(99).String())
}

func TestDescribe_BoundsAreLive(t *testing.T) {
	btn := widgets.NewButton("OK")
	d := Describe("ok", RoleButton, "OK", btn)

	assert.Equal(t, runtime.Rect{}, d.Bounds())

	btn.Layout(runtime.NewRect(2, 3, 8, 3))
	assert.Equal(t, runtime.NewRect(2, 3, 8, 3), d.Bounds())
	assert.Same(t, btn, d.(Targeted).Target())
}

func TestTree_AddAfterFreezePanics(t *testing.T) {
	tree := NewTree()
	tree.Add(Describe("a", RoleButton, "A", widgets.NewButton("A")))
	tree.Freeze()

	require.True(t, tree.Frozen())
	assert.Equal(t, 1, tree.Len())
	assert.Panics(t, func() {
		tree.Add(Describe("b", RoleButton, "B", widgets.NewButton("B")))
	})
	assert.Equal(t, 1, tree.Len())
}

func TestTree_DescriptorsIsCopy(t *testing.T) {
	tree := NewTree()
	tree.Add(Describe("a", RoleButton, "A", nil))

	list := tree.Descriptors()
	list[0] = nil

	assert.NotNil(t, tree.Descriptors()[0])
}

func TestVerify(t *testing.T) {
	a := widgets.NewButton("A")
	field := widgets.NewOutput()
	descs := []Descriptor{
		Describe("a", RoleButton, "A", a),
		Describe("field", RoleTextInput, "Field", field),
	}

	t.Run("matching", func(t *testing.T) {
		assert.NoError(t, Verify(descs, []runtime.Focusable{a, field}))
	})

	t.Run("count mismatch", func(t *testing.T) {
		err := Verify(descs[:1], []runtime.Focusable{a, field})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeA11yMismatch))
	})

	t.Run("order mismatch", func(t *testing.T) {
		err := Verify(descs, []runtime.Focusable{field, a})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeA11yMismatch))
		assert.Contains(t, err.Error(), "index: 0")
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": FormatYAML, " JSON ": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func testDescriptors() []Descriptor {
	btn := widgets.NewButton("Button A")
	btn.Layout(runtime.NewRect(1, 2, 12, 3))
	canvas := widgets.NewBox("Canvas")
	canvas.Layout(runtime.NewRect(1, 6, 40, 10))
	return []Descriptor{
		Describe("button-a", RoleButton, "Button A", btn),
		Describe("canvas", RoleCanvas, "Canvas", canvas),
	}
}

func TestSnapshotHost_JSON(t *testing.T) {
	var buf bytes.Buffer
	host := NewSnapshotHost(&buf, FormatJSON, "01RUN", "INTES")

	require.NoError(t, host.Attach(nil, testDescriptors()))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
	assert.Equal(t, "01RUN", snap.Run)
	require.Len(t, snap.Elements, 2)
	assert.Equal(t, Element{Index: 0, ID: "button-a", Role: "btn", Name: "Button A", Bounds: [4]int{1, 2, 12, 3}}, snap.Elements[0])
	assert.Contains(t, buf.String(), `"r":"canvas"`)
}

func TestSnapshotHost_YAML(t *testing.T) {
	var buf bytes.Buffer
	host := NewSnapshotHost(&buf, "", "01RUN", "INTES")

	require.NoError(t, host.Attach(nil, testDescriptors()))

	assert.Contains(t, buf.String(), "b: [1, 6, 40, 10]")
	var snap Snapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &snap))
	assert.Equal(t, "INTES", snap.Window)
	assert.Equal(t, "canvas", snap.Elements[1].Role)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestSnapshotHost_WriteError(t *testing.T) {
	host := NewSnapshotHost(failingWriter{}, FormatJSON, "", "")

	err := host.Attach(nil, testDescriptors())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeA11yExport))
	assert.Equal(t, "snapshot(json)", host.String())
}
