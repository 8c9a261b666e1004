package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const attachmentsDir = "attachments"

// FileStore keeps uploaded attachment files on local disk under an
// attachments/ namespace. Stored names carry a uuid prefix so two
// uploads of the same file name never collide.
type FileStore struct {
	baseDir string
}

func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, attachmentsDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save writes the file and returns its path relative to the store
// root, which is what gets persisted on the attachment row.
func (s *FileStore) Save(filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + "_" + filepath.Base(filename)
	relPath := filepath.Join(attachmentsDir, name)

	f, err := os.Create(filepath.Join(s.baseDir, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write attachment file: %w", err)
	}

	return relPath, nil
}

func (s *FileStore) Open(relPath string) (*os.File, error) {
	return os.Open(filepath.Join(s.baseDir, relPath))
}

func (s *FileStore) Remove(relPath string) error {
	err := os.Remove(filepath.Join(s.baseDir, relPath))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
