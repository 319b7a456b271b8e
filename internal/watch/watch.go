// Package watch keeps a cleaned build output in sync with a source site tree.
// It rebuilds on filesystem changes (debounced), optionally on a fixed
// interval, and can expose run metrics for scraping.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/kadeem-campbell/siteclean/internal/config"
	"github.com/kadeem-campbell/siteclean/internal/logfields"
	"github.com/kadeem-campbell/siteclean/internal/observability"
	"github.com/kadeem-campbell/siteclean/internal/pipeline"
)

// Options configure a watch session.
type Options struct {
	SourceDir string
	OutDir    string
	RenameAll bool

	// Interval triggers a periodic rebuild in addition to change-driven ones.
	// Zero disables the schedule.
	Interval time.Duration

	// MetricsAddr exposes Prometheus metrics on /metrics when non-empty.
	MetricsAddr string

	// Debounce coalesces rapid change bursts into one rebuild.
	Debounce time.Duration

	// OnResult, when set, observes every completed rebuild (for the run ledger).
	OnResult func(*pipeline.Result, error)
}

// Watcher drives rebuilds for one source tree.
type Watcher struct {
	cfg     *config.Config
	opts    Options
	metrics *observability.Metrics
	fsw     *fsnotify.Watcher
	rebuild chan struct{}
}

// New creates a watcher. The source directory is watched recursively;
// directories created later are picked up from their create events.
func New(cfg *config.Config, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		cfg:     cfg,
		opts:    opts,
		metrics: observability.NewMetrics(),
		fsw:     fsw,
		rebuild: make(chan struct{}, 1),
	}
	if err := w.watchRecursive(opts.SourceDir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run performs an initial build and then rebuilds until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if w.opts.MetricsAddr != "" {
		w.serveMetrics(ctx)
	}

	scheduler, err := w.startSchedule()
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	w.runBuild()

	debounce := time.NewTimer(w.opts.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watch stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.ignore(event.Name) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories need their own watch.
				_ = w.watchRecursive(event.Name)
			}
			slog.Debug("Source changed", logfields.Path(event.Name))
			debounce.Reset(w.opts.Debounce)

		case <-debounce.C:
			w.runBuild()

		case <-w.rebuild:
			w.runBuild()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

// runBuild executes one full copy-and-clean build and records metrics.
// Build failures are logged and counted, never fatal to the watch loop.
func (w *Watcher) runBuild() {
	w.metrics.RunsTotal.Inc()
	result, err := pipeline.Build(w.cfg, w.opts.SourceDir, w.opts.OutDir, pipeline.BuildOptions{
		RenameAll: w.opts.RenameAll,
	})
	if err != nil {
		w.metrics.RunsFailedTotal.Inc()
		slog.Error("Rebuild failed", logfields.Error(err))
	} else {
		w.metrics.RenamesApplied.Add(float64(len(result.Mapping)))
		w.metrics.FilesRewritten.Add(float64(len(result.Rewritten)))
		w.metrics.LastRunUnix.SetToCurrentTime()
	}
	if w.opts.OnResult != nil {
		w.opts.OnResult(result, err)
	}
}

// startSchedule registers the optional periodic rebuild.
func (w *Watcher) startSchedule() (gocron.Scheduler, error) {
	if w.opts.Interval <= 0 {
		return nil, nil
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(w.opts.Interval),
		gocron.NewTask(func() {
			select {
			case w.rebuild <- struct{}{}:
			default: // a rebuild is already pending
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule periodic rebuild: %w", err)
	}
	scheduler.Start()
	slog.Info("Periodic rebuild scheduled", slog.Duration("interval", w.opts.Interval))
	return scheduler, nil
}

func (w *Watcher) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", w.metrics.Handler())
	server := &http.Server{Addr: w.opts.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("Serving metrics", slog.String("addr", w.opts.MetricsAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}

// watchRecursive adds root and every directory below it to the watcher.
// Non-directories are ignored; fsnotify watches files via their parent.
func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // a path vanishing mid-walk is routine here
		}
		if w.ignore(p) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// ignore filters events from the build output, which may nest under the source.
func (w *Watcher) ignore(p string) bool {
	out, err := filepath.Abs(w.opts.OutDir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	return abs == out || strings.HasPrefix(abs, out+string(filepath.Separator))
}
