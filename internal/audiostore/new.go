package audiostore

import (
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
)

type implStore struct {
	dir      string
	fileName string
	logger   logger.Logger

	mu   sync.Mutex
	lock *flock.Flock
}

// New creates a Store writing fileName inside dir. The public reference is
// "/" + fileName.
func New(dir, fileName string, log logger.Logger) Store {
	return &implStore{
		dir:      dir,
		fileName: fileName,
		logger:   log,
		lock:     flock.New(filepath.Join(dir, "."+fileName+".lock")),
	}
}
