package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/odvcencio/intes/pkg/a11y"
	"github.com/odvcencio/intes/pkg/config"
	intesErrors "github.com/odvcencio/intes/pkg/errors"
	"github.com/odvcencio/intes/pkg/harness"
	"github.com/odvcencio/intes/pkg/observability"
	"github.com/odvcencio/intes/pkg/telemetry"
	"github.com/odvcencio/intes/pkg/ui/backend"
	"github.com/odvcencio/intes/pkg/ui/backend/tcell"
	uiruntime "github.com/odvcencio/intes/pkg/ui/runtime"
	"github.com/odvcencio/intes/pkg/ui/theme"
)

// Version information - set via ldflags during build
var (
	version   = "1.0.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// newBackendFn and isTerminalFn let tests run the event loop against the
// simulation backend.
var (
	newBackendFn = func() (backend.Backend, error) {
		b, err := tcell.New()
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	isTerminalFn = func() bool {
		return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
	}
)

type options struct {
	configPath  string
	theme       string
	a11yDump    string
	a11yFormat  string
	metricsAddr string
	logLevel    string
	traceFile   string
	version     bool
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("intes", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file (default: ~/.intes/config.yaml then ./.intes/config.yaml)")
	fs.StringVar(&opts.theme, "theme", "", "widget theme ("+strings.Join(theme.Names(), ", ")+")")
	fs.StringVar(&opts.a11yDump, "a11y-dump", "", "write the accessibility tree to `path` (- for stdout) and exit")
	fs.StringVar(&opts.a11yFormat, "a11y-format", "", "accessibility export format (yaml, json)")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on `host:port`")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.traceFile, "trace-file", "", "append signal spans as JSON to `path`")
	fs.BoolVar(&opts.version, "version", false, "show version information")
	if err := fs.Parse(args); err != nil {
		return opts, withExitCode(err, exitUsage)
	}
	if fs.NArg() > 0 {
		return opts, withExitCode(fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " ")), exitUsage)
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCodeForError(err)
	}
	if opts.version {
		printVersion(stdout)
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	s, err := newSession(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCodeForError(err)
	}
	defer s.Close()

	if opts.a11yDump != "" {
		err = s.dump(opts.a11yDump, stdout)
	} else {
		err = s.runTUI(ctx)
	}
	if err != nil {
		s.logger.Error("intes exited with error", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCodeForError(err)
	}
	return exitOK
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "intes %s\n", version)
	if commit != "unknown" {
		fmt.Fprintf(w, "  Commit:     %s\n", commit)
	}
	if buildDate != "unknown" {
		fmt.Fprintf(w, "  Built:      %s\n", buildDate)
	}
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// loadConfig loads the config file hierarchy and applies flag overrides,
// which win over both files and environment.
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.theme != "" {
		cfg.Window.Theme = opts.theme
	}
	if opts.a11yFormat != "" {
		cfg.A11y.Format = opts.a11yFormat
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Listen = opts.metricsAddr
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.traceFile != "" {
		cfg.Trace.File = opts.traceFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session holds what one invocation needs regardless of mode.
type session struct {
	cfg     *config.Config
	runID   string
	logger  *observability.Logger
	metrics *telemetry.Metrics
	tracing *telemetry.Tracing
	theme   *theme.Theme
	format  a11y.Format
	closers []io.Closer
}

func newSession(cfg *config.Config) (*session, error) {
	s := &session{
		cfg:     cfg,
		runID:   ulid.Make().String(),
		metrics: telemetry.New(),
	}

	level, err := observability.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if s.theme, err = theme.ByName(cfg.Window.Theme); err != nil {
		return nil, intesErrors.Wrap(err, intesErrors.ErrCodeConfigInvalid, "invalid theme")
	}
	if s.format, err = a11y.ParseFormat(cfg.A11y.Format); err != nil {
		return nil, err
	}

	var logOut io.Writer
	if cfg.Log.File != "" {
		f, err := observability.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, f)
		logOut = f
	}
	s.logger = observability.NewLogger("intes", level, logOut).WithRun(s.runID)

	if cfg.Trace.File != "" {
		f, err := observability.OpenFile(cfg.Trace.File)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, f)
		if s.tracing, err = telemetry.NewTracing(f, version, s.runID); err != nil {
			s.Close()
			return nil, err
		}
		// Closers run in reverse, so spans are flushed before the file closes.
		s.closers = append(s.closers, closerFunc(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), traceFlushTimeout)
			defer cancel()
			return s.tracing.Shutdown(ctx)
		}))
	}
	return s, nil
}

const traceFlushTimeout = 5 * time.Second

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Close flushes traces and releases log, trace and export files.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && s.logger != nil {
			s.logger.Warn("close", "error", err)
		}
	}
	s.closers = nil
}

func (s *session) newWindow() *harness.Window {
	hc := harness.DefaultConfig()
	hc.CanvasWidth = s.cfg.MouseTab.CanvasWidth
	hc.CanvasHeight = s.cfg.MouseTab.CanvasHeight
	hc.RowSpacing = s.cfg.MouseTab.RowSpacing
	hc.Margin = s.cfg.MouseTab.Margin
	hc.Logger = s.logger
	hc.Observer = s.metrics
	if s.tracing != nil {
		hc.Tracer = s.tracing.Tracer()
	}
	return harness.NewWindow(s.cfg.Window.Title, hc)
}

// exportWriter opens path for an accessibility export. "-" is stdout.
func (s *session) exportWriter(path string, stdout io.Writer) (io.Writer, error) {
	if path == "-" {
		return stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, intesErrors.Wrap(err, intesErrors.ErrCodeA11yExport, "create export file").
			WithContext("path", path)
	}
	s.closers = append(s.closers, f)
	return f, nil
}

// dump lays the window out at the configured size, attaches a snapshot
// host and exits. No terminal is needed.
func (s *session) dump(path string, stdout io.Writer) error {
	out, err := s.exportWriter(path, stdout)
	if err != nil {
		return err
	}

	window := s.newWindow()
	defer window.Close()
	window.Layout(uiruntime.NewRect(0, 0, s.cfg.Window.Width, s.cfg.Window.Height))

	host := a11y.NewSnapshotHost(out, s.format, s.runID, window.Title())
	return window.Ready(s.metrics.ObserveHost(host))
}

// runTUI runs the event loop, and the metrics endpoint when configured,
// until the user quits or ctx is cancelled.
func (s *session) runTUI(ctx context.Context) error {
	if !isTerminalFn() {
		return withExitCode(intesErrors.New(intesErrors.ErrCodeBackendInit, "intes needs an interactive terminal").
			WithRemediation("use -a11y-dump to export the accessibility tree without one"), exitUsage)
	}

	var next a11y.Host
	if path := s.cfg.A11y.ExportPath; path != "" {
		if path == "-" {
			return intesErrors.New(intesErrors.ErrCodeInvalidInput, "cannot export to stdout while the terminal UI owns it").
				WithRemediation("use -a11y-dump - instead")
		}
		out, err := s.exportWriter(path, nil)
		if err != nil {
			return err
		}
		next = a11y.NewSnapshotHost(out, s.format, s.runID, s.cfg.Window.Title)
	}
	host := s.metrics.ObserveHost(next)

	be, err := newBackendFn()
	if err != nil {
		return intesErrors.Wrap(err, intesErrors.ErrCodeBackendInit, "create terminal backend")
	}

	window := s.newWindow()
	defer window.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var readyErr error
	app := uiruntime.NewApp(uiruntime.AppConfig{
		Backend: be,
		Root:    window,
		Theme:   s.theme,
		OnReady: func(*uiruntime.Screen) {
			if readyErr = window.Ready(host); readyErr != nil {
				cancel()
			}
		},
	})

	s.logger.Info("intes starting", "title", s.cfg.Window.Title, "theme", s.theme.Name)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := app.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if listen := s.cfg.Metrics.Listen; listen != "" {
		g.Go(func() error {
			return s.metrics.ListenAndServe(gctx, listen, s.logger)
		})
	}

	err = g.Wait()
	if readyErr != nil {
		return readyErr
	}
	if err != nil {
		return intesErrors.Wrap(err, intesErrors.ErrCodeInternal, "event loop")
	}
	s.logger.Info("intes stopped")
	return nil
}
