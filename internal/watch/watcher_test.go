package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDirectory(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	dir := t.TempDir()
	require.NoError(t, w.AddDirectory(dir))
	assert.Equal(t, []string{dir}, w.GetDirectories())

	// Registering twice must not duplicate the bookkeeping.
	require.NoError(t, w.AddDirectory(dir))
	assert.Len(t, w.GetDirectories(), 1)
}

func TestAddDirectoryRejectsFiles(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Error(t, w.AddDirectory(file))
	assert.Error(t, w.AddDirectory(filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, w.GetDirectories())
}

func TestWatcherDeliversEvents(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, w.AddDirectory(dir))
	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())
	defer w.Stop()

	path := filepath.Join(dir, "fresh.dat")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	select {
	case ev := <-w.Events():
		assert.Equal(t, path, ev.Path)
		assert.True(t, ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write))
		assert.WithinDuration(t, time.Now(), ev.Time, 5*time.Second)
	case <-time.After(5 * time.Second):
		t.Fatal("no event arrived for a created file")
	}
}

func TestStartTwice(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start())
	assert.Error(t, w.Start())
}

func TestStopClosesEvents(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	require.NoError(t, w.Start())
	w.Stop()
	assert.False(t, w.IsRunning())

	select {
	case _, ok := <-w.Events():
		assert.False(t, ok, "events channel should be closed after Stop")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after Stop")
	}

	// A second Stop is a no-op.
	w.Stop()
}
