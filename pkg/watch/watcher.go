package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/chatlens/pkg/config"
	"mercator-hq/chatlens/pkg/loader"
)

// Config contains configuration for the file watcher.
type Config struct {
	// Path is the export file or directory to watch.
	Path string

	// Debounce is the quiet period after the last event for a file before
	// the callback runs.
	Debounce time.Duration

	// Extensions filters files inside a watched directory. An explicitly
	// watched file is never filtered by extension.
	Extensions []string

	// SkipHidden ignores dot files and dot directories.
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:   config.DefaultWatchDebounce,
		Extensions: config.DefaultExtensions(),
		SkipHidden: true,
	}
}

// FromConfig builds a watcher configuration for path from the application
// config.
func FromConfig(path string, cfg *config.Config) *Config {
	return &Config{
		Path:       path,
		Debounce:   cfg.Watch.Debounce,
		Extensions: cfg.Loader.Extensions,
		SkipHidden: cfg.Watch.SkipHidden,
	}
}

// FileWatcher watches chat exports and reports changed paths.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	filter   *loader.Loader
	debounce *Debouncer

	// target is set when a single file is watched through its directory.
	target string

	// State
	mu       sync.Mutex
	running  bool
	started  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(cfg *Config, logger *slog.Logger) (*FileWatcher, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: watcher,
		logger:  logger.With("component", "watch"),
		config:  cfg,
		filter: loader.New(loader.Config{
			Extensions: cfg.Extensions,
			SkipHidden: cfg.SkipHidden,
		}),
		debounce: NewDebouncer(cfg.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is canceled or Stop is called, invoking onChange
// with the path of every created or rewritten export. Callback errors are
// logged and do not stop the watcher. It returns only after any running
// callback has finished.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(path string) error) error {
	fw.mu.Lock()
	if fw.started {
		fw.mu.Unlock()
		return errors.New("watcher already started")
	}
	fw.started = true
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.debounce.Stop()
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		close(fw.doneCh)
	}()

	if err := fw.addPath(fw.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	fw.logger.Info("file watcher started",
		"path", fw.config.Path,
		"debounce_ms", fw.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			fw.handleEvent(event, onChange)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops the file watcher and releases the fsnotify handle.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	running := fw.running
	fw.mu.Unlock()

	fw.stopOnce.Do(func() { close(fw.stopCh) })
	if running {
		<-fw.doneCh
	}

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event, onChange func(path string) error) {
	if event.Has(fsnotify.Create) && fw.target == "" {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fw.addDirectory(event.Name); err != nil {
				fw.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !fw.shouldProcessEvent(event) {
		return
	}

	fw.logger.Debug("file event detected",
		"path", event.Name,
		"op", event.Op.String(),
	)

	path := event.Name
	fw.debounce.Trigger(path, func() {
		if err := onChange(path); err != nil {
			fw.logger.Error("export re-analysis failed", "path", path, "error", err)
		}
	})
}

// shouldProcessEvent accepts create and write events for matching files.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	if fw.target != "" {
		return filepath.Clean(event.Name) == fw.target
	}

	return fw.filter.Matches(event.Name)
}

// addPath watches a directory tree, or the parent directory of a file.
func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fw.addDirectory(path)
	}

	fw.target = filepath.Clean(path)
	return fw.watcher.Add(filepath.Dir(fw.target))
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (fw *FileWatcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if fw.config.SkipHidden && path != dir && loader.IsHidden(d.Name()) {
			return filepath.SkipDir
		}

		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		fw.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// IsRunning reports whether Watch is active.
func (fw *FileWatcher) IsRunning() bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.running
}
