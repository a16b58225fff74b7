package linter

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jsxray/jsxray/pkg/parser"
	"github.com/jsxray/jsxray/pkg/report"
)

// WatchOptions configures watch mode.
type WatchOptions struct {
	// DebounceMs groups rapid saves of the same file into one relint.
	DebounceMs int
}

// DefaultWatchOptions returns the default debounce window.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200}
}

// ResultFunc receives the issues of one relinted file.
type ResultFunc func(path string, issues []report.Issue)

// Watcher relints files as they change on disk. Events are debounced
// per file; each relint invalidates the source cache entry first so the
// new content is read.
type Watcher struct {
	watcher *fsnotify.Watcher
	linter  *Linter
	options WatchOptions
	onLint  ResultFunc
	logger  *slog.Logger

	timers   map[string]*time.Timer
	timersMu sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher delivering per-file lint results to
// onLint.
func NewWatcher(l *Linter, options WatchOptions, onLint ResultFunc, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = DefaultWatchOptions().DebounceMs
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		watcher:  fsw,
		linter:   l,
		options:  options,
		onLint:   onLint,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
		stopChan: make(chan struct{}),
	}, nil
}

// Start watches rootPath and its subdirectories and begins the event
// loop in a background goroutine.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(rootPath, path)
		if rerr == nil && matchesAny(w.linter.cfg.Exclude, filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		if werr := w.watcher.Add(path); werr != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", werr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set up watches: %w", err)
	}

	w.logger.Info("watching for changes", "root", rootPath)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.timersMu.Lock()
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.timersMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if parser.DetectLanguage(path) == parser.LanguageUnknown {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
		w.debounceRelint(path)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.linter.Invalidate(path)
	}
}

// debounceRelint schedules a relint after the debounce window; rapid
// successive saves reset the timer so only the final state is linted.
func (w *Watcher) debounceRelint(path string) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.relint(path)
			w.timersMu.Lock()
			delete(w.timers, path)
			w.timersMu.Unlock()
		},
	)
}

func (w *Watcher) relint(path string) {
	if _, err := os.Stat(path); err != nil {
		w.linter.Invalidate(path)
		return
	}
	w.linter.Invalidate(path)

	collector := report.NewCollector()
	if err := w.linter.LintFile(path, collector); err != nil {
		w.logger.Warn("relint failed", "file", path, "error", err)
		return
	}
	if w.onLint != nil {
		w.onLint(path, collector.Issues())
	}
}
