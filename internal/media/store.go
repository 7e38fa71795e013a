// Package media persists uploaded files under a root directory.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ProfilePicsDir is the sub-directory avatars are written to.
const ProfilePicsDir = "profile_pics"

// URLPrefix is where the HTTP layer mounts the media root.
const URLPrefix = "/media/"

var errEscapesRoot = errors.New("path escapes media root")

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the directory the store writes into.
func (s *Store) Root() string { return s.root }

// Save copies r into dir under a fresh uuid name keeping the extension of
// filename, and returns the stored path relative to the root.
func (s *Store) Save(dir, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	rel := path.Join(dir, uuid.NewString()+ext)

	abs, err := s.Path(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", rel, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(abs)
		return "", fmt.Errorf("write %q: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("close %q: %w", rel, err)
	}
	return rel, nil
}

// Path resolves a stored relative path to a filesystem path inside the root.
func (s *Store) Path(rel string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(rel))
	if clean == "/" {
		return "", errEscapesRoot
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// Remove deletes a stored file; missing files are not an error.
func (s *Store) Remove(rel string) error {
	abs, err := s.Path(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", rel, err)
	}
	return nil
}

// URL is the public address of a stored file.
func URL(rel string) string {
	return URLPrefix + strings.TrimPrefix(path.Clean("/"+rel), "/")
}
