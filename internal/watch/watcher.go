// Package watch re-runs the analysis pipeline when watched files change.
// Each change triggers a full single-file analysis; there is no incremental
// re-use of previous runs.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/astrolabe-dev/astrolabe/internal/batch"
	"github.com/astrolabe-dev/astrolabe/internal/config"
	"github.com/astrolabe-dev/astrolabe/internal/debug"
	"github.com/astrolabe-dev/astrolabe/internal/lang"
)

// Watcher monitors files and directories and re-analyzes changed files after
// a debounce window, so editors that write multiple events per save trigger
// one run.
type Watcher struct {
	watcher  *fsnotify.Watcher
	runner   *batch.Runner
	debounce time.Duration

	onReport func(*batch.FileReport)
	onError  func(path string, err error)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[string]time.Time
}

// New creates a watcher that feeds reports and errors to the given callbacks
func New(cfg *config.Config, runner *batch.Runner, onReport func(*batch.FileReport), onError func(string, error)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		watcher:  fsWatcher,
		runner:   runner,
		debounce: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		onReport: onReport,
		onError:  onError,
		ctx:      ctx,
		cancel:   cancel,
		pending:  make(map[string]time.Time),
	}, nil
}

// Add registers a file or directory (non-recursive) for watching
func (w *Watcher) Add(path string) error {
	return w.watcher.Add(path)
}

// Start launches the event loop. Stop must be called to release resources.
func (w *Watcher) Start() {
	w.wg.Add(2)
	go w.eventLoop()
	go w.flushLoop()
}

// Stop shuts the watcher down and waits for in-flight analysis to finish
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if l, ok := lang.FromPath(event.Name); !ok || !l.Analyzable() {
				continue
			}
			if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
				continue
			}
			w.mu.Lock()
			w.pending[filepath.Clean(event.Name)] = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.Logf("watch error: %v", err)
		}
	}
}

// flushLoop re-analyzes files whose last event is older than the debounce
// window
func (w *Watcher) flushLoop() {
	defer w.wg.Done()
	interval := w.debounce / 2
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			var ready []string
			w.mu.Lock()
			for path, last := range w.pending {
				if now.Sub(last) >= w.debounce {
					ready = append(ready, path)
					delete(w.pending, path)
				}
			}
			w.mu.Unlock()

			for _, path := range ready {
				rep, err := w.runner.AnalyzeFile(path)
				if err != nil {
					if w.onError != nil {
						w.onError(path, err)
					}
					continue
				}
				if w.onReport != nil {
					w.onReport(rep)
				}
			}
		}
	}
}
