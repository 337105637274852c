package audiostore

import "context"

// Store owns the single overwritable audio output file.
type Store interface {
	// Save replaces the output file with data and returns its public reference.
	Save(ctx context.Context, data []byte) (string, error)
	// Path is the filesystem location of the output file.
	Path() string
	// Ref is the public reference clients use to fetch the output file.
	Ref() string
}
