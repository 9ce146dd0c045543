package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, opts ...Option) (chan struct{}, *Watcher, context.CancelFunc) {
	t.Helper()
	rebuilds := make(chan struct{}, 16)
	w := New(dir, func(context.Context) error {
		rebuilds <- struct{}{}
		return nil
	}, append([]Option{WithDebounce(30 * time.Millisecond)}, opts...)...)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = w.Run(ctx) }()
	// Give the watcher a moment to register directories.
	time.Sleep(100 * time.Millisecond)
	return rebuilds, w, cancel
}

func waitRebuild(t *testing.T, rebuilds chan struct{}) {
	t.Helper()
	select {
	case <-rebuilds:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a rebuild")
	}
}

func TestTriggerBurstCoalesced(t *testing.T) {
	rebuilds, w, cancel := startWatcher(t, t.TempDir())
	defer cancel()

	for range 5 {
		w.Trigger()
	}
	waitRebuild(t, rebuilds)

	// The burst must have collapsed into one rebuild.
	select {
	case <-rebuilds:
		t.Fatal("burst produced more than one rebuild")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFileChangeTriggersRebuild(t *testing.T) {
	dir := t.TempDir()
	rebuilds, _, cancel := startWatcher(t, dir)
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "post.md"), []byte("x"), 0o644))
	waitRebuild(t, rebuilds)
}

func TestRunStopsOnCancel(t *testing.T) {
	w := New(t.TempDir(), func(context.Context) error { return nil })
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
