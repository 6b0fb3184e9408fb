package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"interview-questions-go/internal/logger"
)

func TestWatcherHandlesNewVideo(t *testing.T) {
	dir := t.TempDir()
	handled := make(chan string, 1)

	handler := func(ctx context.Context, path string) error {
		handled <- path
		return nil
	}
	filter := func(path string) bool {
		return strings.HasSuffix(path, ".mp4")
	}

	w, err := New(dir, handler, filter, 10*time.Millisecond, logger.New())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// ignored by the filter
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	videoPath := filepath.Join(dir, "new.mp4")
	if err := os.WriteFile(videoPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-handled:
		if got != videoPath {
			t.Errorf("handled %s, want %s", got, videoPath)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not invoked for new video")
	}
}
