package driven

import (
	"context"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
)

// PairWriter renders one pairwise comparison report.
type PairWriter interface {
	// WritePair renders the side-by-side diff of left against right
	// into outDir and returns the report, including its unique file
	// name. A non-positive blockSize fails with
	// domain.ErrInvalidBlockSize before anything is written.
	WritePair(ctx context.Context, outDir string, index, row, col int,
		left, right *domain.Document, blocks []domain.MatchingBlock, blockSize int) (domain.PairReport, error)
}

// SummaryWriter renders the run summary report.
type SummaryWriter interface {
	// WriteSummary writes the score matrix table to _results.html in
	// outDir, waits for the file to be observable on disk, then
	// patches in hyperlinks to the pairwise reports. Returns the
	// summary path, or domain.ErrReportNotPersisted if the file never
	// appeared within the deadline.
	WriteSummary(ctx context.Context, outDir string, matrix *domain.ScoreMatrix, reports []domain.PairReport) (string, error)
}
