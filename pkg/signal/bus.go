package signal

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/observability"
)

// Handler observes a posted signal and reports whether it consumed it.
// Handlers recompute what they show from shared state rather than
// accumulating, so delivering the same code twice is the same as once.
type Handler func(code Code) bool

// Observer is notified after every post. Telemetry implements it.
type Observer interface {
	SignalPosted(code Code, delivered int, handled bool)
}

// Subscription represents an active subscription that can be cancelled.
type Subscription interface {
	// Unsubscribe stops delivery to the handler. It is safe to call more
	// than once and from inside a handler.
	Unsubscribe()

	// Code returns the code this subscription listens for.
	Code() Code
}

// Bus delivers synthetic signals to subscribers synchronously, in
// subscription order, before Post returns. Subscription order is widget
// construction order, which is tree order.
//
// A bus starts closed: posting before Open or after Close panics, since a
// signal with nobody able to receive it is a wiring bug. Handlers may post
// other signals; nothing in intes posts recursively, and the bus does not
// guard against cycles.
type Bus struct {
	mu       sync.Mutex
	subs     []*subscription
	open     bool
	closed   bool
	logger   *observability.Logger
	observer Observer
	tracer   trace.Tracer

	// posting is the span context of the innermost Post in flight, so a
	// post made from a handler becomes a child span.
	posting context.Context
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger logs every post at debug level.
func WithLogger(l *observability.Logger) Option {
	return func(b *Bus) { b.logger = l }
}

// WithObserver reports every post to o.
func WithObserver(o Observer) Option {
	return func(b *Bus) { b.observer = o }
}

// WithTracer records a span per post. Posts made from inside a handler are
// recorded as children of the post that delivered to that handler.
func WithTracer(t trace.Tracer) Option {
	return func(b *Bus) { b.tracer = t }
}

// NewBus creates a closed bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{logger: observability.Discard()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for code. Subscribing to a code outside the
// synthetic range panics.
func (b *Bus) Subscribe(code Code, handler Handler) Subscription {
	if !code.IsSynthetic() {
		panic(errors.New(errors.ErrCodeInvalidInput, "subscribe to non-synthetic code").
			WithContext("code", code.String()))
	}
	if handler == nil {
		panic(errors.New(errors.ErrCodeInvalidInput, "nil signal handler").
			WithContext("code", code.String()))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &subscription{bus: b, code: code, handler: handler, active: true}
	b.subs = append(b.subs, sub)
	return sub
}

// SubscribeMany registers one handler for several codes.
func (b *Bus) SubscribeMany(handler Handler, codes ...Code) []Subscription {
	subs := make([]Subscription, 0, len(codes))
	for _, code := range codes {
		subs = append(subs, b.Subscribe(code, handler))
	}
	return subs
}

// Open enables posting. Opening twice is a no-op; reopening after Close
// is not allowed.
func (b *Bus) Open() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		panic(errors.New(errors.ErrCodeInternal, "reopen of closed signal bus"))
	}
	b.open = true
}

// Close disables posting and drops all subscriptions.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = false
	b.closed = true
	for _, s := range b.subs {
		s.active = false
	}
	b.subs = nil
}

// IsOpen reports whether Post may be called.
func (b *Bus) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Subscribers returns the number of active subscriptions for code.
func (b *Bus) Subscribers(code Code) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, s := range b.subs {
		if s.code == code && s.active {
			n++
		}
	}
	return n
}

// Post delivers code to every subscriber and reports whether any of them
// consumed it. Post panics with a DISPATCH_NOT_READY error when the bus is
// not open.
func (b *Bus) Post(code Code) bool {
	b.mu.Lock()
	if !b.open {
		closed := b.closed
		b.mu.Unlock()
		panic(errors.New(errors.ErrCodeDispatchNotReady, "signal posted while bus is not open").
			WithContext("signal", code.String()).
			WithContext("closed", closed))
	}
	targets := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.code == code {
			targets = append(targets, s)
		}
	}
	b.mu.Unlock()

	handled := false
	delivered := 0
	end := b.startSpan(code)
	defer func() { end(delivered, handled) }()
	for _, s := range targets {
		if !s.isActive() {
			continue
		}
		delivered++
		if s.handler(code) {
			handled = true
		}
	}

	b.logger.SignalPosted(code.String(), delivered, handled)
	if b.observer != nil {
		b.observer.SignalPosted(code, delivered, handled)
	}
	return handled
}

// startSpan opens a span for code under the innermost post in flight and
// returns the func that closes it.
func (b *Bus) startSpan(code Code) func(delivered int, handled bool) {
	if b.tracer == nil {
		return func(int, bool) {}
	}
	b.mu.Lock()
	parent := b.posting
	if parent == nil {
		parent = context.Background()
	}
	ctx, span := b.tracer.Start(parent, code.String(),
		trace.WithAttributes(attribute.Int("signal.code", int(code))))
	b.posting = ctx
	b.mu.Unlock()

	return func(delivered int, handled bool) {
		span.SetAttributes(
			attribute.Int("signal.delivered", delivered),
			attribute.Bool("signal.handled", handled),
		)
		span.End()
		b.mu.Lock()
		b.posting = parent
		b.mu.Unlock()
	}
}

func (b *Bus) remove(target *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	target.active = false
	for i, s := range b.subs {
		if s == target {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

type subscription struct {
	bus     *Bus
	code    Code
	handler Handler
	active  bool
}

func (s *subscription) Unsubscribe() {
	s.bus.remove(s)
}

func (s *subscription) Code() Code {
	return s.code
}

func (s *subscription) isActive() bool {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	return s.active
}
