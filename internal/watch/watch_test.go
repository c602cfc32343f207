package watch

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoopWatcher(debounce time.Duration) *Watcher {
	return &Watcher{
		debounce: debounce,
		logger:   log.New(io.Discard, "", 0),
		skip:     func(string) bool { return false },
	}
}

func TestLoop_CoalescesBurst(t *testing.T) {
	w := newLoopWatcher(50 * time.Millisecond)
	events := make(chan fsnotify.Event)
	errs := make(chan error)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.loop(ctx, events, errs, func() { calls.Add(1) }) }()

	for i := 0; i < 5; i++ {
		events <- fsnotify.Event{Name: "/nowhere/file", Op: fsnotify.Write}
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Quiet period: no further calls
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestLoop_SeparateBursts(t *testing.T) {
	w := newLoopWatcher(20 * time.Millisecond)
	events := make(chan fsnotify.Event)
	errs := make(chan error)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.loop(ctx, events, errs, func() { calls.Add(1) })

	events <- fsnotify.Event{Name: "/nowhere/a", Op: fsnotify.Create}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	events <- fsnotify.Event{Name: "/nowhere/a", Op: fsnotify.Remove}
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestLoop_IgnoresChmodAndErrors(t *testing.T) {
	w := newLoopWatcher(10 * time.Millisecond)
	events := make(chan fsnotify.Event)
	errs := make(chan error)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.loop(ctx, events, errs, func() { calls.Add(1) })

	events <- fsnotify.Event{Name: "/nowhere/a", Op: fsnotify.Chmod}
	errs <- os.ErrClosed

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestLoop_ClosedEventsEndsRun(t *testing.T) {
	w := newLoopWatcher(time.Millisecond)
	events := make(chan fsnotify.Event)
	close(events)

	err := w.loop(context.Background(), events, make(chan error), func() {})
	assert.NoError(t, err)
}

func TestWatcher_NotifiesOnFileChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))

	w, err := New([]string{root}, Options{Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()

	changed := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, func() { changed <- struct{}{} })

	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "new.txt"), []byte("x"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, Options{})
	assert.Error(t, err)
}
