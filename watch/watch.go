package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay coalesces the bursts of events editors and bundlers emit for
// a single save.
const DefaultDelay = 200 * time.Millisecond

// Watcher calls a function after a file changes.
type Watcher struct {
	path     string
	delay    time.Duration
	onChange func()
	logger   zerolog.Logger
}

// New watches path. onChange runs on the debounce goroutine.
func New(path string, delay time.Duration, onChange func(), logger zerolog.Logger) *Watcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Watcher{
		path:     path,
		delay:    delay,
		onChange: onChange,
		logger:   logger,
	}
}

// Run blocks until ctx is canceled. The parent directory is watched so
// that files replaced by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	debounced := debounce.New(w.delay)
	w.logger.Info().Str("path", abs).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("source changed")
			debounced(w.onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}
