package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "franken-ui.css")
	require.NoError(t, os.WriteFile(path, []byte(".uk-theme-a{--x:1;}"), 0o644))

	var calls atomic.Int32
	w := New(path, 50*time.Millisecond, func() { calls.Add(1) }, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// Give the watcher a moment to register.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(".uk-theme-a{--x:2;}"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.css"), []byte("x"), 0o644))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "franken-ui.css"), 0, func() {}, zerolog.Nop())
	require.Error(t, w.Run(context.Background()))
}
