package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesMarkdownChanges(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 8)

	w, err := NewWatcher(dir, 50*time.Millisecond, func(context.Context) {
		changed <- struct{}{}
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Ignored: not markdown.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Index"), 0o644))
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after markdown change")
	}

	select {
	case <-changed:
		t.Fatal("burst of writes should trigger a single rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 8)

	w, err := NewWatcher(dir, 50*time.Millisecond, func(context.Context) {
		changed <- struct{}{}
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	sub := filepath.Join(dir, "guide")
	require.NoError(t, os.Mkdir(sub, 0o755))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after directory creation")
	}

	require.NoError(t, os.WriteFile(filepath.Join(sub, "setup.md"), []byte("# Setup"), 0o644))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after change in new directory")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), 0, nil, nil)
	require.Error(t, err)
}
