package keystore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	kr, err := NewFile(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = kr.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kr.Set(ctx, "k", []byte(`{"a":1}`)))
	value, err := kr.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"a":1}`), value)

	require.NoError(t, kr.Set(ctx, "k", []byte(`{"a":2}`)))
	value, err = kr.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"a":2}`), value)

	require.NoError(t, kr.Delete(ctx, "k"))
	_, err = kr.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)

	// deleting again is not an error
	require.NoError(t, kr.Delete(ctx, "k"))
}

func TestFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	kr, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, kr.Set(context.Background(), "k", []byte("v")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "k.json", entries[0].Name())
	require.Equal(t, filepath.Ext(entries[0].Name()), ".json")
}

func TestFileWatchSeesChanges(t *testing.T) {
	kr, err := NewFile(t.TempDir())
	require.NoError(t, err)
	kr.pollInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 8)
	go func() {
		_ = kr.Watch(ctx, []string{"k"}, func() {
			changes <- struct{}{}
		})
	}()

	// give the watcher a baseline before mutating
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, kr.Set(ctx, "k", []byte("v")))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher missed key creation")
	}

	require.NoError(t, kr.Delete(ctx, "k"))
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher missed key deletion")
	}
}
