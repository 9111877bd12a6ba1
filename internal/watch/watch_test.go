package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerBatchesPaths(t *testing.T) {
	fired := make(chan []string, 1)
	d := NewDebouncer(20*time.Millisecond, func(paths []string) { fired <- paths })
	defer d.Stop()

	d.Add("b.js")
	d.Add("a.js")
	d.Add("b.js")

	select {
	case paths := <-fired:
		assert.Equal(t, []string{"a.js", "b.js"}, paths)
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer did not fire")
	}
}

func TestDebouncerStop(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	d := NewDebouncer(20*time.Millisecond, func([]string) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	d.Add("a.js")
	d.Stop()
	d.Add("b.js")
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestShouldProcessEvent(t *testing.T) {
	w, err := New(Config{
		SkipHidden: true,
		Exclude:    func(path string) bool { return filepath.Dir(path) == "out" },
	}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Stop()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "src/a.js", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "src/a.js", Op: fsnotify.Create}, true},
		{"upper case extension", fsnotify.Event{Name: "src/A.JS", Op: fsnotify.Write}, true},
		{"chmod", fsnotify.Event{Name: "src/a.js", Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: "src/a.js", Op: fsnotify.Remove}, false},
		{"other extension", fsnotify.Event{Name: "src/a.ts", Op: fsnotify.Write}, false},
		{"hidden", fsnotify.Event{Name: "src/.a.js", Op: fsnotify.Write}, false},
		{"excluded", fsnotify.Event{Name: "out/a.js", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.shouldProcessEvent(tt.event))
		})
	}
}

func TestDefaults(t *testing.T) {
	w, err := New(Config{}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Stop()
	assert.Equal(t, 100*time.Millisecond, w.config.DebounceInterval)
	assert.Equal(t, []string{".js"}, w.config.Extensions)
}

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	w, err := New(Config{Paths: []string{dir}, DebounceInterval: 20 * time.Millisecond}, zerolog.Nop())
	require.NoError(t, err)

	changed := make(chan []string, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, func(paths []string) { changed <- paths }) }()

	target := filepath.Join(sub, "main.js")
	// The watcher registers its directories asynchronously; keep writing
	// until a change is reported.
	deadline := time.After(5 * time.Second)
	var got []string
	for got == nil {
		require.NoError(t, os.WriteFile(target, []byte("a.b"), 0o644))
		select {
		case got = <-changed:
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("no change reported")
		}
	}
	assert.Equal(t, []string{target}, got)

	require.NoError(t, w.Stop())
	assert.NoError(t, <-done)
}

func TestWatchTwice(t *testing.T) {
	w, err := New(Config{Paths: []string{t.TempDir()}}, zerolog.Nop())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, func([]string) {}) }()

	assert.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.running
	}, 2*time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, w.Watch(ctx, func([]string) {}), ErrRunning)

	cancel()
	assert.NoError(t, <-done)
	assert.NoError(t, w.Stop())
}

func TestWatchMissingPath(t *testing.T) {
	w, err := New(Config{Paths: []string{filepath.Join(t.TempDir(), "missing")}}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Stop()
	err = w.Watch(context.Background(), func([]string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
