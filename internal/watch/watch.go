// Package watch reports changes to source files beneath a set of paths.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ErrRunning is returned by Watch when the watcher is already running.
var ErrRunning = errors.New("watcher already running")

// Config controls which changes a Watcher reports.
type Config struct {
	// Paths are the files and directories to watch. Directories are watched
	// recursively.
	Paths []string

	// DebounceInterval is the quiet period after the last change before the
	// accumulated changes are reported (default: 100ms).
	DebounceInterval time.Duration

	// Extensions lists the file extensions to report (default: ".js").
	Extensions []string

	// SkipHidden skips files and directories whose name starts with a dot.
	SkipHidden bool

	// Exclude reports whether a path should be ignored, e.g. an output
	// directory beneath a watched one.
	Exclude func(path string) bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() Config {
	return Config{
		DebounceInterval: 100 * time.Millisecond,
		Extensions:       []string{".js"},
		SkipHidden:       true,
	}
}

// Watcher watches source files and reports batches of changed paths.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  zerolog.Logger
	config  Config

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher. Zero fields of cfg take their default values.
func New(cfg Config, logger zerolog.Logger) (*Watcher, error) {
	defaults := DefaultConfig()
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = defaults.DebounceInterval
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = defaults.Extensions
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		watcher: w,
		logger:  logger,
		config:  cfg,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called. After each burst
// of changes it calls onChange with the changed paths in sorted order.
// Calls to onChange never overlap. A Watcher runs at most once.
func (w *Watcher) Watch(ctx context.Context, onChange func(paths []string)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrRunning
	}
	w.running = true
	w.mu.Unlock()
	defer close(w.doneCh)

	for _, path := range w.config.Paths {
		if err := w.addPath(path); err != nil {
			return fmt.Errorf("failed to watch %q: %w", path, err)
		}
	}

	var callMu sync.Mutex
	debounce := NewDebouncer(w.config.DebounceInterval, func(paths []string) {
		callMu.Lock()
		defer callMu.Unlock()
		w.logger.Debug().Strs("paths", paths).Msg("files changed")
		onChange(paths)
	})
	defer debounce.Stop()

	w.logger.Info().
		Strs("paths", w.config.Paths).
		Int64("debounce_ms", w.config.DebounceInterval.Milliseconds()).
		Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCh:
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if event.Has(fsnotify.Create) && w.watchNewDirectory(event.Name) {
				continue
			}
			if !w.shouldProcessEvent(event) {
				continue
			}
			w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("file event")
			debounce.Add(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error().Err(err).Msg("file watcher error")
		}
	}
}

// Stop stops a running watcher and releases its resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()
	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}
	return w.addDirectory(path)
}

func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skip(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug().Str("path", path).Msg("watching directory")
		return nil
	})
}

// watchNewDirectory starts watching path if it is a newly created
// directory, and reports whether it was one.
func (w *Watcher) watchNewDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if w.skip(path) {
		return true
	}
	if err := w.addDirectory(path); err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("failed to watch new directory")
	}
	return true
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if !w.hasValidExtension(event.Name) {
		return false
	}
	return !w.skip(event.Name)
}

func (w *Watcher) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(w.config.Extensions, func(valid string) bool {
		return ext == strings.ToLower(valid)
	})
}

func (w *Watcher) skip(path string) bool {
	if w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	return w.config.Exclude != nil && w.config.Exclude(path)
}

// Debouncer collects paths and hands them to a callback once no new path
// has arrived for the configured interval.
type Debouncer struct {
	interval time.Duration
	fire     func([]string)

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	stopped bool
}

// NewDebouncer creates a debouncer that calls fire with the accumulated
// paths, sorted and without duplicates.
func NewDebouncer(interval time.Duration, fire func([]string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		fire:     fire,
		pending:  map[string]struct{}{},
	}
}

// Add records a path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path)
	}
	d.pending = map[string]struct{}{}
	d.mu.Unlock()

	slices.Sort(paths)
	d.fire(paths)
}

// Stop cancels any pending callback. Paths added afterwards are dropped.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}
