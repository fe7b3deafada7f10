package domain

import "errors"

// Domain errors represent comparison-run failures.
// These are distinct from infrastructure errors.
var (
	// ErrPathNotFound indicates a required input location does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrMinimumDocuments indicates fewer than two documents are available
	// for a full comparison run.
	ErrMinimumDocuments = errors.New("at least two documents are required for comparison")

	// ErrNoCandidates indicates a targeted run has no comparable candidates
	// left after exclusions and extraction failures.
	ErrNoCandidates = errors.New("no candidate documents to compare against")

	// ErrUnsupportedFormat indicates a file's format cannot be extracted.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidBlockSize indicates a non-positive highlight block size.
	ErrInvalidBlockSize = errors.New("block size must be positive")

	// ErrReportNotPersisted indicates the summary report did not appear on
	// disk within the polling deadline.
	ErrReportNotPersisted = errors.New("summary report was not persisted")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
