package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxFileSize = 5 * 1024 * 1024 // 5 MB

var ErrFileNotFound = errors.New("file not found")

// UploadError is a rejection the uploader themselves can fix, surfaced
// verbatim to the client.
type UploadError string

func (e UploadError) Error() string { return string(e) }

// Store persists uploaded files under a single root directory. Files are
// written once with a random name; there is no deduplication and no cleanup
// of orphans from abandoned bookings.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &Store{root: abs}
}

func (s *Store) Root() string {
	return s.root
}

// Persist writes the upload to disk and returns its absolute path. tag is
// "resume" or "jd" and is used in the generated filename and error messages.
func (s *Store) Persist(src io.Reader, size int64, origName, tag string) (string, error) {
	if src == nil || size == 0 {
		return "", UploadError(fmt.Sprintf("Please upload a valid %s file.", tagLabel(tag)))
	}
	if size > MaxFileSize {
		return "", UploadError(fmt.Sprintf("Each file must be 5 MB or less. Please compress your %s file.", tagLabel(tag)))
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := "dat"
	if i := strings.LastIndex(origName, "."); i >= 0 && i < len(origName)-1 {
		ext = origName[i+1:]
	}
	fileName := fmt.Sprintf("%s-%s.%s", tag, uuid.NewString(), ext)
	filePath := filepath.Join(s.root, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return filePath, nil
}

// Resolve maps a client-supplied filename to a path inside the upload root.
// Any directory component is stripped before resolving, so traversal input
// like "../../etc/passwd" reduces to "passwd" and misses.
func (s *Store) Resolve(name string) (string, error) {
	safeName := filepath.Base(name)
	filePath := filepath.Join(s.root, safeName)
	if _, err := os.Stat(filePath); err != nil {
		return "", ErrFileNotFound
	}
	return filePath, nil
}

// Remove deletes a previously persisted file. Paths outside the upload root
// are refused without touching the filesystem.
func (s *Store) Remove(path string) error {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(resolved, s.root+string(filepath.Separator)) {
		return nil
	}
	return os.Remove(resolved)
}

func tagLabel(tag string) string {
	if tag == "resume" {
		return "resume"
	}
	return "job description"
}
