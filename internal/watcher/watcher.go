package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"interview-questions-go/internal/logger"
)

// Handler processes one newly created video file.
type Handler func(ctx context.Context, path string) error

// Filter decides whether a created file is worth handling.
type Filter func(path string) bool

// Watcher keeps the processor running after the initial scan, picking up
// videos dropped into the directory. Files are handled sequentially; the
// LLM service cannot take concurrent work anyway.
type Watcher struct {
	dir         string
	handler     Handler
	filter      Filter
	settleDelay time.Duration
	log         *logger.Logger
	fsw         *fsnotify.Watcher
}

// New builds a Watcher over dir. settleDelay is how long to wait after a
// create event before handling the file, so partially copied videos are
// not picked up mid-write.
func New(dir string, handler Handler, filter Filter, settleDelay time.Duration, log *logger.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:         dir,
		handler:     handler,
		filter:      filter,
		settleDelay: settleDelay,
		log:         log,
		fsw:         fsw,
	}, nil
}

// Start blocks until ctx is cancelled, handling each created video file
// in turn. Handler errors are logged, never propagated; watching always
// continues.
func (w *Watcher) Start(ctx context.Context) error {
	log := w.log.WithField("component", "watcher").WithField("dir", w.dir)
	log.Info("watching for new videos")

	for {
		select {
		case <-ctx.Done():
			log.Info("watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) || !w.filter(event.Name) {
				continue
			}

			log.WithField("path", event.Name).Info("new video detected")
			time.Sleep(w.settleDelay)

			if err := w.handler(ctx, event.Name); err != nil {
				log.WithField("path", event.Name).WithField("error", err.Error()).Error("failed to process new video")
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.WithField("error", err.Error()).Error("watcher error")
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}
