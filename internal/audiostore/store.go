package audiostore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const lockRetryDelay = 50 * time.Millisecond

// Save writes data to a uniquely named temp file and renames it over the
// output file. Saves are serialized in-process by a mutex and across
// processes by a file lock, so the last completed save wins.
func (s *implStore) Save(ctx context.Context, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("acquire audio lock: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("could not acquire audio lock")
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn(ctx, "Failed to release audio lock: %v", err)
		}
	}()

	tmpPath := filepath.Join(s.dir, fmt.Sprintf(".%s-%s.tmp", s.fileName, uuid.NewString()))
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write audio temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("replace audio file: %w", err)
	}

	s.logger.Debug(ctx, "Saved %d bytes of audio to %s", len(data), s.Path())
	return s.Ref(), nil
}

func (s *implStore) Path() string {
	return filepath.Join(s.dir, s.fileName)
}

func (s *implStore) Ref() string {
	return "/" + s.fileName
}
