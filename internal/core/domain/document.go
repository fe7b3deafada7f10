package domain

// Document represents one unit under comparison.
// It is the canonical representation after text extraction.
type Document struct {
	// ID is the unique identifier for the document within a run.
	ID string

	// Name is the stable identifier derived from the source filename
	// minus its extension. Rows and columns of the score matrix are
	// labelled with it.
	Name string

	// Source is the original file path.
	Source string

	// Tokens is the ordered word sequence extracted from the source.
	// It is immutable once produced.
	Tokens []string
}

// FileInfo describes one file in the input directory listing.
type FileInfo struct {
	// ID is the 1-based serial number in sorted listing order.
	ID int `json:"id"`

	// Name is the file name including extension.
	Name string `json:"file_name"`

	// Extension is the upper-cased extension without the dot.
	Extension string `json:"file_extension"`

	// Size is the human-readable file size.
	Size string `json:"file_size"`

	// Bytes is the raw file size.
	Bytes int64 `json:"-"`
}
