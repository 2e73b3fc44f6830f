// Package watcher monitors the transcripts directory and hands newly
// created markdown files to a handler, one at a time.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventHandler handles one new transcript file.
type EventHandler func(ctx context.Context, path string) error

// Watcher watches a single directory for new transcript files.
type Watcher struct {
	dir     string
	handler EventHandler
	logger  *zap.Logger
	fs      *fsnotify.Watcher
}

// New creates a Watcher over dir.
func New(dir string, handler EventHandler, logger *zap.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{dir: dir, handler: handler, logger: logger, fs: fs}, nil
}

// Start blocks processing events until the context is cancelled. Transcripts
// are analyzed sequentially: one outstanding backend call at a time.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("transcript watcher started", zap.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("transcript watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isTranscriptFile(event.Name) {
				w.logger.Debug("ignoring non-transcript file", zap.String("path", event.Name))
				continue
			}

			w.logger.Info("new transcript detected", zap.String("path", event.Name))

			// Small delay so the file is fully written before reading.
			time.Sleep(500 * time.Millisecond)

			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error("failed to process transcript", zap.String("path", event.Name), zap.Error(err))
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.fs.Close()
}

func isTranscriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".md"
}
