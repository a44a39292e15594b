package invoice

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the durable sink for rendered invoices. A failed render calls
// Remove so no half-written document survives.
type Store interface {
	Create(filename string) (io.WriteCloser, error)
	Remove(filename string) error
}

// FileStore keeps invoices on the local filesystem under a single directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create invoice dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Create(filename string) (io.WriteCloser, error) {
	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("create invoice file: %w", err)
	}
	return f, nil
}

// Remove discards a stored invoice. Removing a file that was never written
// is not an error.
func (s *FileStore) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove invoice file: %w", err)
	}
	return nil
}
