package telemetry

import (
	"fmt"

	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// observedHost records the tree size before handing it on.
type observedHost struct {
	metrics *Metrics
	next    a11y.Host
}

// ObserveHost wraps next so every attach updates the descriptors gauge.
// A nil next only records.
func (m *Metrics) ObserveHost(next a11y.Host) a11y.Host {
	return &observedHost{metrics: m, next: next}
}

func (h *observedHost) Attach(root runtime.Widget, descriptors []a11y.Descriptor) error {
	h.metrics.SetDescriptors(len(descriptors))
	if h.next == nil {
		return nil
	}
	return h.next.Attach(root, descriptors)
}

func (h *observedHost) String() string {
	if h.next == nil {
		return "metrics"
	}
	return fmt.Sprintf("metrics(%v)", h.next)
}
