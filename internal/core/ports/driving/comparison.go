package driving

import (
	"context"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
)

// RunOptions configures one comparison run.
type RunOptions struct {
	// OutputDir is where pairwise reports and the summary are written.
	OutputDir string

	// BlockSize is the highlight granularity: matched and unmatched
	// spans are grouped into chunks of at most this many tokens.
	BlockSize int
}

// ComparisonRunner drives comparison runs over a document directory.
type ComparisonRunner interface {
	// RunFull compares every document in inputDir against every other
	// one. Fails with domain.ErrMinimumDocuments when fewer than two
	// documents are present and aborts on the first file that cannot
	// be extracted.
	RunFull(ctx context.Context, inputDir string, opts RunOptions) (*domain.RunResult, error)

	// RunTargeted compares the document at targetPath against every
	// document in inputDir except itself. Candidates that fail
	// extraction are skipped with a recorded warning; fails with
	// domain.ErrNoCandidates when none remain.
	RunTargeted(ctx context.Context, targetPath, inputDir string, opts RunOptions) (*domain.RunResult, error)
}
