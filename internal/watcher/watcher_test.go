package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
)

type collector struct {
	mu    sync.Mutex
	paths []string
	seen  chan string
}

func (c *collector) handle(_ context.Context, path string) error {
	c.mu.Lock()
	c.paths = append(c.paths, path)
	c.mu.Unlock()
	c.seen <- path
	return nil
}

func TestIsDocumentFile(t *testing.T) {
	assert.True(t, isDocumentFile("/inbox/lecture.pdf"))
	assert.True(t, isDocumentFile("/inbox/LECTURE.PDF"))
	assert.False(t, isDocumentFile("/inbox/notes.txt"))
	assert.False(t, isDocumentFile("/inbox/video.mp4"))
}

func TestWatcher_HandlesExistingAndNewPDFs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.pdf"), []byte("%PDF"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("text"), 0644))

	c := &collector{seen: make(chan string, 4)}
	w, err := New(dir, c.handle, logger.NewNop(), 1, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	select {
	case p := <-c.seen:
		assert.Equal(t, filepath.Join(dir, "existing.pdf"), p)
	case <-time.After(5 * time.Second):
		t.Fatal("existing document was not handled")
	}

	// Give the watch loop a moment to be waiting on events.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.docx"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.pdf"), []byte("%PDF"), 0644))

	select {
	case p := <-c.seen:
		assert.Equal(t, filepath.Join(dir, "new.pdf"), p)
	case <-time.After(5 * time.Second):
		t.Fatal("new document was not handled")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Len(t, c.paths, 2)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), func(context.Context, string) error { return nil }, logger.NewNop(), 1, 0)
	assert.Error(t, err)
}
