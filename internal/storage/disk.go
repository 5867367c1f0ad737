package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded document content. Keys are generated stored
// names, never client-supplied filenames.
type FileStore interface {
	// Save writes the content under a fresh generated name derived from the
	// original filename's extension and returns that name.
	Save(originalName string, content io.Reader) (string, error)
	Remove(storedName string) error
	// Open returns the content for a stored name; os.ErrNotExist when the
	// physical file is missing.
	Open(storedName string) (io.ReadSeekCloser, error)
	Exists(storedName string) bool
}

type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(originalName string, content io.Reader) (string, error) {
	storedName := uuid.NewString() + sanitizeExt(originalName)
	path := filepath.Join(s.dir, storedName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return storedName, nil
}

func (s *DiskStore) Remove(storedName string) error {
	return os.Remove(s.path(storedName))
}

func (s *DiskStore) Open(storedName string) (io.ReadSeekCloser, error) {
	return os.Open(s.path(storedName))
}

func (s *DiskStore) Exists(storedName string) bool {
	_, err := os.Stat(s.path(storedName))
	return err == nil
}

// path confines stored names to the upload dir; Base strips any separators a
// corrupted row could carry.
func (s *DiskStore) path(storedName string) string {
	return filepath.Join(s.dir, filepath.Base(storedName))
}

func sanitizeExt(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
