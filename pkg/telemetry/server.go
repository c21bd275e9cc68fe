package telemetry

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// Router returns the metrics routes. Only GET /metrics is served.
func (m *Metrics) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/metrics", m.Handler().ServeHTTP)
	return r
}

// Serve exposes m on /metrics over ln until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, ln net.Listener, logger *observability.Logger) error {
	if logger == nil {
		logger = observability.Discard()
	}
	srv := &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}()

	logger.Info("metrics server listening", "addr", ln.Addr().String())
	err := srv.Serve(ln)
	if err == http.ErrServerClosed {
		<-done
		return nil
	}
	return errors.Wrap(err, errors.ErrCodeInternal, "metrics server").
		WithContext("addr", ln.Addr().String())
}

// ListenAndServe is Serve on a new TCP listener bound to addr.
func (m *Metrics) ListenAndServe(ctx context.Context, addr string, logger *observability.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "listen for metrics").
			WithContext("addr", addr)
	}
	return m.Serve(ctx, ln, logger)
}
