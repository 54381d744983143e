package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, file string) *Watcher {
	t.Helper()
	w, err := New(file, nil)
	require.NoError(t, err)
	w.Debounce = 20 * time.Millisecond
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	return w
}

func nextChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes:
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a change")
		return Change{}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "opening.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"creates":[]}`), 0o644))

	w := startWatcher(t, file)

	require.NoError(t, os.WriteFile(file, []byte(`{"creates":[{"time":0,"unit":"SCV","parent":-2}]}`), 0o644))
	c := nextChange(t, w)
	assert.Equal(t, ChangeModified, c.Kind)
	assert.Equal(t, w.File, c.File)

	require.NoError(t, os.Remove(file))
	c = nextChange(t, w)
	assert.Equal(t, ChangeRemoved, c.Kind)
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "opening.json")
	require.NoError(t, os.WriteFile(file, []byte(`{}`), 0o644))

	w := startWatcher(t, file)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))
	select {
	case c := <-w.Changes:
		t.Fatalf("unexpected change %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "opening.json")
	require.NoError(t, os.WriteFile(file, []byte(`{}`), 0o644))

	w, err := New(file, nil)
	require.NoError(t, err)
	w.Debounce = 150 * time.Millisecond
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	for range 5 {
		require.NoError(t, os.WriteFile(file, []byte(`{"creates":[]}`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	nextChange(t, w)
	select {
	case c := <-w.Changes:
		t.Fatalf("burst should collapse into one change, got another %+v", c)
	case <-time.After(400 * time.Millisecond):
	}
}
