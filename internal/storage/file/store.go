// Package file implements the FileStore port over a flat directory of
// source documents.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
	"github.com/crosscheck-hq/crosscheck-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.FileStore = (*Store)(nil)

// Store manages a flat directory of source documents.
type Store struct {
	dir string
}

// NewStore creates a store over the given directory. The directory is
// created lazily on the first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path resolves a file name inside the store. Any path components in
// the name are stripped.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// List returns the files in the store in sorted name order with
// 1-based serial numbers and human-readable sizes.
func (s *Store) List(_ context.Context) ([]domain.FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input directory %s: %w", s.dir, domain.ErrPathNotFound)
		}
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	var files []domain.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		files = append(files, domain.FileInfo{
			ID:        len(files) + 1,
			Name:      entry.Name(),
			Extension: ext,
			Size:      humanize.Bytes(uint64(info.Size())),
			Bytes:     info.Size(),
		})
	}
	return files, nil
}

// Save writes an uploaded file into the store, creating the directory
// if needed, and returns the stored path.
func (s *Store) Save(_ context.Context, name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", s.dir, err)
	}

	path := s.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	logger.Debug("saved %s", path)
	return path, nil
}

// Delete removes files by their 1-based serial numbers in sorted
// listing order. Serials that do not resolve to a file are counted as
// missing rather than failing the whole operation.
func (s *Store) Delete(ctx context.Context, serials []int) (int, int, error) {
	files, err := s.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	deleted, missing := 0, 0
	for _, serial := range serials {
		idx := serial - 1
		if idx < 0 || idx >= len(files) {
			missing++
			continue
		}
		if err := os.Remove(s.Path(files[idx].Name)); err != nil {
			missing++
			continue
		}
		deleted++
	}
	return deleted, missing, nil
}
