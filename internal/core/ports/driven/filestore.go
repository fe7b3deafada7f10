package driven

import (
	"context"
	"io"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
)

// FileStoreFactory opens a FileStore over the given directory.
type FileStoreFactory func(dir string) FileStore

// FileStore manages the flat directory of source documents.
type FileStore interface {
	// List returns the files in the store in sorted name order, with
	// 1-based serial numbers. Returns domain.ErrPathNotFound if the
	// directory does not exist.
	List(ctx context.Context) ([]domain.FileInfo, error)

	// Save writes an uploaded file into the store, creating the
	// directory if needed, and returns the stored path.
	Save(ctx context.Context, name string, r io.Reader) (string, error)

	// Delete removes files by their 1-based serial numbers in sorted
	// listing order. Unknown serials are counted, not fatal.
	Delete(ctx context.Context, serials []int) (deleted, missing int, err error)

	// Path resolves a file name inside the store.
	Path(name string) string

	// Dir returns the store's directory.
	Dir() string
}
