package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsTargetWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "machine.yaml")
	require.NoError(t, os.WriteFile(target, []byte("a: 1\n"), 0o644))

	w, err := New(target)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(target, []byte("a: 2\n"), 0o644))

	select {
	case got := <-w.Events:
		abs, _ := filepath.Abs(target)
		assert.Equal(t, abs, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for a write to the watched file")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "machine.yaml")
	require.NoError(t, os.WriteFile(target, []byte("a: 1\n"), 0o644))

	w, err := New(target)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("b: 1\n"), 0o644))

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event for sibling file: %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "machine.yaml")
	require.NoError(t, os.WriteFile(target, []byte("a: 1\n"), 0o644))

	w, err := New(target)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_CloseDuringWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "machine.yaml")
	require.NoError(t, os.WriteFile(target, []byte("a: 1\n"), 0o644))

	w, err := New(target)
	require.NoError(t, err)

	// Hammer the file while closing mid-stream. The run loop must not
	// panic on a send, and both channels must end up closed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = os.WriteFile(target, []byte("a: 2\n"), 0o644)
		}
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Close())
	<-done

	for range w.Events {
	}
	for range w.Errors {
	}
}
