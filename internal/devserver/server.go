package devserver

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
	"github.com/wayfarer-games/sitegen/internal/logfields"
	"github.com/wayfarer-games/sitegen/internal/metrics"
)

// BuildFunc rebuilds the site into the served directory.
type BuildFunc func(ctx context.Context) error

// Options configures a Server.
type Options struct {
	// Root is the directory being served.
	Root string
	Addr string
	// WatchDirs are watched recursively; a change under any of them triggers Build.
	WatchDirs []string
	// Ignore lists files whose changes never trigger a rebuild, typically build outputs
	// that live inside a watched directory.
	Ignore   []string
	Build    BuildFunc
	Debounce time.Duration
	Logger   *slog.Logger
	Recorder metrics.Recorder
	// Registry, when set, is exposed on /metrics.
	Registry *prom.Registry
}

// buildStatus tracks the current build state for error display.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.hasGoodBuild = true
}

func (bs *buildStatus) getStatus() (hasGoodBuild bool, err error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.hasGoodBuild, bs.lastError
}

// Server is the development server.
type Server struct {
	opts     Options
	logger   *slog.Logger
	recorder metrics.Recorder
	ignored  map[string]struct{}
	status   *buildStatus
}

// New constructs a Server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ignored := make(map[string]struct{}, len(opts.Ignore))
	for _, p := range opts.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			ignored[abs] = struct{}{}
		}
		ignored[filepath.Clean(p)] = struct{}{}
	}
	return &Server{
		opts:     opts,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		ignored:  ignored,
		status:   &buildStatus{},
	}
}

// Handler returns the HTTP handler: /metrics when a registry is configured, otherwise
// directory indexes and static files under Root. Until a build has succeeded, a failed
// build is reported with 503.
func (s *Server) Handler() http.Handler {
	files := DirIndex(s.opts.Root, http.FileServer(http.Dir(s.opts.Root)))

	mux := http.NewServeMux()
	if s.opts.Registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.opts.Registry))
	}
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if good, err := s.status.getStatus(); err != nil && !good {
			http.Error(w, "build failed: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		files.ServeHTTP(w, r)
	}))
	return Chain(s.logger, s.recorder)(mux)
}

// rebuild runs Build and records the outcome.
func (s *Server) rebuild(ctx context.Context, trigger string) {
	if s.opts.Build == nil {
		return
	}
	s.recorder.IncRebuild(trigger)
	if err := s.opts.Build(ctx); err != nil {
		s.logger.Warn("Build failed", slog.String("trigger", trigger), logfields.Error(err))
		s.status.setError(err)
		return
	}
	s.status.setSuccess()
}

// startRebuildWorker processes rebuild requests one at a time, coalescing requests that
// arrive while a build is running into a single follow-up build.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				s.logger.Info("Change detected; rebuilding site")
				s.rebuild(ctx, "watch")
			}
		}
	}()
	return &wg
}

// Run builds once, then serves and rebuilds on change until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.rebuild(ctx, "initial")

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryServer, "failed to listen").
			WithContext("addr", s.opts.Addr).
			Build()
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	s.logger.Info("Dev server listening", logfields.URL(fmt.Sprintf("http://%s/", ln.Addr())))

	watcher, err := setupFileWatcher(s.opts.WatchDirs, s.logger)
	if err != nil {
		_ = srv.Close()
		return err
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq, trigger := newDebouncer(s.opts.Debounce)
	workerCtx, stopWorker := context.WithCancel(ctx)
	worker := s.startRebuildWorker(workerCtx, rebuildReq)
	defer func() {
		stopWorker()
		worker.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shutting down dev server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Warn("HTTP server shutdown error", logfields.Error(err))
			}
			return nil
		case err, ok := <-serveErr:
			if ok && err != nil {
				return errors.WrapError(err, errors.CategoryServer, "dev server stopped").Build()
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}
