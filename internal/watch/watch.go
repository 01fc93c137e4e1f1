// Package watch calls a function when watched files change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Files are the files to watch. Their directories are watched so that
	// editors that replace files on save are still noticed.
	Files    []string
	Debounce time.Duration
	// OnChange is called once per burst of changes with the last file
	// that changed. Calls never overlap.
	OnChange func(file string)
	Logger   *slog.Logger
}

// Watcher watches a set of files.
type Watcher struct {
	files    []string
	debounce time.Duration
	onChange func(string)
	logger   *slog.Logger
}

// New creates a Watcher. Files are made absolute.
func New(cfg Config) (*Watcher, error) {
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("watch: OnChange is required")
	}
	files := make([]string, 0, len(cfg.Files))
	for _, f := range cfg.Files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
		files = append(files, abs)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{files: files, debounce: debounce, onChange: cfg.OnChange, logger: logger}, nil
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	var dirs []string
	for _, f := range w.files {
		dir := filepath.Dir(f)
		if slices.Contains(dirs, dir) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs = append(dirs, dir)
	}
	w.logger.Debug("watching files", "files", w.files)

	// Debounce timer. Only this goroutine touches it; the callback runs on
	// the timer's goroutine and is serialized by fire.
	var debounceTimer *time.Timer
	fire := make(chan string, 1)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !slices.Contains(w.files, filepath.Clean(event.Name)) {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- name:
				default:
				}
			})

		case name := <-fire:
			w.logger.Debug("file changed", "file", name)
			w.onChange(name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}
