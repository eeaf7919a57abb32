package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescope/internal/index"
)

func analyzed(t *testing.T, mgr *index.Manager, path string) {
	t.Helper()
	_, err := mgr.Analyze(path, false)
	require.NoError(t, err)
}

func waitForEviction(t *testing.T, mgr *index.Manager, want int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if mgr.Stats().FilesAnalyzed == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, want, mgr.Stats().FilesAnalyzed)
}

func TestWatcher_EvictsOnWrite(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "app.js")
	require.NoError(t, os.WriteFile(path, []byte("const a = 1;\n"), 0644))

	mgr := index.NewManager()
	analyzed(t, mgr, path)
	require.Equal(t, 1, mgr.Stats().FilesAnalyzed)

	w, err := New(mgr, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(root))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("const a = 2;\n"), 0644))
	waitForEviction(t, mgr, 0)
}

func TestWatcher_EvictsOnRemove(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "util.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))

	mgr := index.NewManager()
	analyzed(t, mgr, path)

	w, err := New(mgr, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(root))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.Remove(path))
	waitForEviction(t, mgr, 0)
}

func TestWatcher_IgnoresUnknownLanguage(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "app.js")
	require.NoError(t, os.WriteFile(src, []byte("const a = 1;\n"), 0644))

	mgr := index.NewManager()
	analyzed(t, mgr, src)

	w, err := New(mgr, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(root))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Touching an unrelated file must not evict the analyzed one.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, mgr.Stats().FilesAnalyzed)
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	mgr := index.NewManager()
	w, err := New(mgr, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
