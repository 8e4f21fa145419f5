// Package watch re-runs a configure pass when one of its input files
// changes. Only the explicit input set triggers a pass, so files the pass
// itself writes never cause a loop.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Options tune a Watcher.
type Options struct {
	Debounce time.Duration
	// Ignore holds doublestar patterns matched against the changed path and
	// against its base name.
	Ignore []string
}

// Watcher observes a set of files through their parent directories.
type Watcher struct {
	opts Options
	fs   *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New starts watching files. Directories are watched rather than the files
// themselves so that editors replacing a file by rename are noticed.
func New(files []string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		opts:  opts,
		fs:    fsw,
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}
	if err := w.SetFiles(files); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// SetFiles replaces the watched file set. New parent directories are added;
// directories no longer needed stay watched until Close.
func (w *Watcher) SetFiles(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		next[abs] = true

		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files = next
	return nil
}

// Files returns the number of watched files.
func (w *Watcher) Files() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

// Run calls pass after every settled burst of changes to the watched files
// until ctx is cancelled. Errors from pass are logged and do not stop the
// loop.
func (w *Watcher) Run(ctx context.Context, pass func(ctx context.Context) error) error {
	logger := ctxlog.FromContext(ctx)
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("Watch stopped.")
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Input changed.", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-fire:
			fire = nil
			logger.Info("Inputs changed; re-running configure pass.")
			if err := pass(ctx); err != nil {
				logger.Error("Configure pass failed.", "error", err)
			}
		}
	}
}

// Close releases the underlying watcher. Run closes it on exit as well.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	for _, pattern := range w.opts.Ignore {
		if match, _ := doublestar.Match(pattern, filepath.ToSlash(event.Name)); match {
			return false
		}
		if match, _ := doublestar.Match(pattern, filepath.Base(event.Name)); match {
			return false
		}
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs]
}
