package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMonitor_Watch(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "salary.csv")
	require.NoError(t, os.WriteFile(watched, []byte("Год\n"), 0644))

	m, err := NewFileMonitor(dir, 50*time.Millisecond, "salary.csv")
	require.NoError(t, err)
	defer m.Close()

	var (
		mu    sync.Mutex
		calls []string
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Watch(ctx, func(path string) {
			mu.Lock()
			calls = append(calls, path)
			mu.Unlock()
		})
	}()

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	// a burst of writes is reported once
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(watched, []byte("Год\n2000\n"), 0644))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) > 0
	}, 3*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{watched}, calls)
	mu.Unlock()
	assert.Equal(t, watched, m.LastFile())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not return after cancel")
	}
}

func TestNewFileMonitor_MissingDir(t *testing.T) {
	_, err := NewFileMonitor(filepath.Join(t.TempDir(), "nope"), time.Millisecond)
	assert.Error(t, err)
}
