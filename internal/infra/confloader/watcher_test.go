package confloader

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

func newTestWatcher(t *testing.T, opts ...WatcherOption) *Watcher {
	t.Helper()
	opts = append([]WatcherOption{WithWatcherLogger(logger.NewNop())}, opts...)
	w, err := NewWatcher(opts...)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestWatcher_Watch_NonexistentDir(t *testing.T) {
	w := newTestWatcher(t)
	if err := w.Watch("/nonexistent/path/cli.yaml"); err == nil {
		t.Error("Watch() expected error for nonexistent directory")
	}
}

func TestWatcher_StopTwice(t *testing.T) {
	w := newTestWatcher(t)
	w.StartAsync()
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestWatcher_OnChange_MultipleCallbacks(t *testing.T) {
	w := newTestWatcher(t)

	var count atomic.Int32
	for i := 0; i < 3; i++ {
		w.OnChange(func(string) { count.Add(1) })
	}
	w.notifyCallbacks("/test/path")

	if got := count.Load(); got != 3 {
		t.Errorf("callbacks called %d times, want 3", got)
	}
}

func TestWatcher_FileChange(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "cli.yaml")
	if err := os.WriteFile(configFile, []byte("log:\n  level: warn\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w := newTestWatcher(t, WithDebounce(20*time.Millisecond))
	if err := w.Watch(configFile); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	changed := make(chan string, 10)
	w.OnChange(func(path string) {
		select {
		case changed <- path:
		default:
		}
	})
	w.StartAsync()

	// Unwatched siblings are ignored.
	if err := os.WriteFile(filepath.Join(dir, "history"), []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.WriteFile(configFile, []byte("log:\n  level: debug\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case path := <-changed:
		if path != filepath.Clean(configFile) {
			t.Errorf("changed path = %q, want %q", path, configFile)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}
