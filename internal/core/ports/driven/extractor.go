package driven

import "context"

// Extractor turns a source file of one specific format into a token
// sequence. Each extractor handles a fixed set of file extensions.
type Extractor interface {
	// Extensions returns the lower-case file extensions (without dot)
	// this extractor handles.
	Extensions() []string

	// Extract reads the file and returns its ordered token sequence.
	Extract(ctx context.Context, path string) ([]string, error)
}

// ExtractorRegistry dispatches extraction by file extension.
// Unknown extensions yield domain.ErrUnsupportedFormat.
type ExtractorRegistry interface {
	// Extract selects the extractor for the file's extension and runs it.
	Extract(ctx context.Context, path string) ([]string, error)

	// Register adds an extractor to the registry.
	Register(e Extractor)

	// SupportedExtensions returns all registered extensions, sorted.
	SupportedExtensions() []string
}
