package a11y

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// Host receives the accessibility tree of a window exactly once, after the
// window has been laid out.
type Host interface {
	Attach(root runtime.Widget, descriptors []Descriptor) error
}

// Format selects the export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates an export format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown accessibility export format").
		WithContext("format", name).
		WithRemediation("use yaml or json")
}

// Snapshot is the exported accessibility tree.
type Snapshot struct {
	Run      string    `json:"run,omitempty" yaml:"run,omitempty"`
	Window   string    `json:"window,omitempty" yaml:"window,omitempty"`
	Elements []Element `json:"elements" yaml:"elements"`
}

// SnapshotHost writes the attached tree to w.
type SnapshotHost struct {
	w      io.Writer
	format Format
	run    string
	window string
}

// NewSnapshotHost creates a host that exports to w. run stamps the export
// with the process run id.
func NewSnapshotHost(w io.Writer, format Format, run, window string) *SnapshotHost {
	if format == "" {
		format = FormatYAML
	}
	return &SnapshotHost{w: w, format: format, run: run, window: window}
}

// Attach exports the descriptors with their current bounds.
func (h *SnapshotHost) Attach(_ runtime.Widget, descriptors []Descriptor) error {
	snap := Snapshot{Run: h.run, Window: h.window, Elements: make([]Element, 0, len(descriptors))}
	for i, d := range descriptors {
		snap.Elements = append(snap.Elements, ElementOf(i, d))
	}
	if err := Encode(h.w, h.format, snap); err != nil {
		return errors.Wrap(err, errors.ErrCodeA11yExport, "export accessibility tree").
			WithContext("format", string(h.format))
	}
	return nil
}

// String names the host in logs.
func (h *SnapshotHost) String() string {
	return fmt.Sprintf("snapshot(%s)", h.format)
}

// Encode writes snap in the given format.
func Encode(w io.Writer, format Format, snap Snapshot) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}
