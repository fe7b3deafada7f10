package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{"txt"}
}

// Extract reads the file and tokenizes it on whitespace.
func (e *Extractor) Extract(_ context.Context, path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.Fields(string(content)), nil
}
