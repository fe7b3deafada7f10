package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driving"
	"github.com/crosscheck-hq/crosscheck-cli/internal/logger"
)

// Ensure ComparisonService implements the interface.
var _ driving.ComparisonRunner = (*ComparisonService)(nil)

// ComparisonService assembles score matrices and drives report
// rendering over a directory of documents.
type ComparisonService struct {
	stores   driven.FileStoreFactory
	registry driven.ExtractorRegistry
	pairs    driven.PairWriter
	summary  driven.SummaryWriter
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(
	stores driven.FileStoreFactory,
	registry driven.ExtractorRegistry,
	pairs driven.PairWriter,
	summary driven.SummaryWriter,
) *ComparisonService {
	return &ComparisonService{
		stores:   stores,
		registry: registry,
		pairs:    pairs,
		summary:  summary,
	}
}

// pairJob is one unit of comparison work: the unordered pair {row, col}
// with the running indices of its two ordered reports.
type pairJob struct {
	row, col          int
	forwardIx, backIx int
}

// pairCell is the result a worker hands back for a single merge.
type pairCell struct {
	row, col int
	score    float64
	reports  []domain.PairReport
	err      error
}

// RunFull compares all documents in inputDir pairwise.
//
// Extraction is strict: the run aborts on the first file that cannot be
// extracted, before any scoring begins. Scoring and rendering fan out
// to a bounded worker pool; each unordered pair is scored once and both
// report directions rendered by the same worker. Render failures are
// collected and surfaced after every worker has reported.
func (s *ComparisonService) RunFull(ctx context.Context, inputDir string, opts driving.RunOptions) (*domain.RunResult, error) {
	if opts.BlockSize <= 0 {
		return nil, fmt.Errorf("block size %d: %w", opts.BlockSize, domain.ErrInvalidBlockSize)
	}

	docs, err := s.loadAll(ctx, inputDir)
	if err != nil {
		return nil, err
	}
	if len(docs) < 2 {
		return nil, fmt.Errorf("%d document(s) in %s: %w", len(docs), inputDir, domain.ErrMinimumDocuments)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	matrix := domain.NewScoreMatrix(names, names)

	// Ordered pairs are indexed row-major, skipping the diagonal, so
	// report file names are stable across runs.
	index := make(map[[2]int]int, len(docs)*(len(docs)-1))
	n := 0
	for i := range docs {
		for j := range docs {
			if i != j {
				index[[2]int{i, j}] = n
				n++
			}
		}
	}

	var jobs []pairJob
	for i := range docs {
		for j := i + 1; j < len(docs); j++ {
			jobs = append(jobs, pairJob{
				row:       i,
				col:       j,
				forwardIx: index[[2]int{i, j}],
				backIx:    index[[2]int{j, i}],
			})
		}
	}

	cells := s.comparePairs(ctx, docs, jobs, opts)

	reports := make([]domain.PairReport, n)
	var firstErr error
	for _, cell := range cells {
		matrix.Cells[cell.row][cell.col] = cell.score
		matrix.Cells[cell.col][cell.row] = cell.score
		for _, r := range cell.reports {
			reports[r.Index] = r
		}
		if cell.err != nil && firstErr == nil {
			firstErr = cell.err
		}
	}
	if firstErr != nil {
		return nil, fmt.Errorf("render pairwise reports: %w", firstErr)
	}

	summaryPath, err := s.summary.WriteSummary(ctx, opts.OutputDir, matrix, reports)
	if err != nil {
		// Scores are complete at this point; return them alongside the
		// reporting failure.
		return &domain.RunResult{Matrix: matrix, Reports: reports}, err
	}

	logger.Info("full comparison of %d documents complete, summary at %s", len(docs), summaryPath)

	return &domain.RunResult{
		Matrix:      matrix,
		Reports:     reports,
		SummaryPath: summaryPath,
	}, nil
}

// RunTargeted compares the document at targetPath against every
// document in inputDir except itself.
//
// Extraction of candidates is lenient: files that cannot be extracted
// are skipped with a warning. Render failures are likewise logged and
// skipped; the score stays in the matrix, only the link is lost.
func (s *ComparisonService) RunTargeted(ctx context.Context, targetPath, inputDir string, opts driving.RunOptions) (*domain.RunResult, error) {
	if opts.BlockSize <= 0 {
		return nil, fmt.Errorf("block size %d: %w", opts.BlockSize, domain.ErrInvalidBlockSize)
	}

	info, err := os.Stat(targetPath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("target %s: %w", targetPath, domain.ErrPathNotFound)
	}

	target, err := s.loadDocument(ctx, targetPath)
	if err != nil {
		return nil, fmt.Errorf("extract target %s: %w", targetPath, err)
	}

	candidates, skipped, err := s.loadCandidates(ctx, inputDir, filepath.Base(targetPath))
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("directory %s: %w", inputDir, domain.ErrNoCandidates)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	names := make([]string, len(candidates))
	for i, d := range candidates {
		names[i] = d.Name
	}
	matrix := domain.NewScoreMatrix([]string{target.Name}, names)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	cells := make([]pairCell, len(candidates))

	for i := range candidates {
		g.Go(func() error {
			score, blocks := Match(target.Tokens, candidates[i].Tokens)
			report, rerr := s.pairs.WritePair(ctx, opts.OutputDir, i, 0, i, target, candidates[i], blocks, opts.BlockSize)
			cell := pairCell{row: 0, col: i, score: score, err: rerr}
			if rerr == nil {
				cell.reports = []domain.PairReport{report}
			}
			cells[i] = cell
			return nil
		})
	}
	_ = g.Wait()

	var reports []domain.PairReport
	for _, cell := range cells {
		matrix.Cells[0][cell.col] = cell.score
		if cell.err != nil {
			logger.Warn("report for %s vs %s failed, skipping: %v", target.Name, names[cell.col], cell.err)
			skipped = append(skipped, fmt.Sprintf("%s: report not rendered: %v", names[cell.col], cell.err))
			continue
		}
		reports = append(reports, cell.reports...)
	}

	summaryPath, err := s.summary.WriteSummary(ctx, opts.OutputDir, matrix, reports)
	if err != nil {
		return &domain.RunResult{Matrix: matrix, Reports: reports, Skipped: skipped}, err
	}

	logger.Info("targeted comparison of %s against %d candidates complete, summary at %s",
		target.Name, len(candidates), summaryPath)

	return &domain.RunResult{
		Matrix:      matrix,
		Reports:     reports,
		SummaryPath: summaryPath,
		Skipped:     skipped,
	}, nil
}

// comparePairs fans the pair jobs out to a bounded worker pool. Each
// worker reads only its two token sequences and writes only its own
// result slot; the caller performs the single merge.
func (s *ComparisonService) comparePairs(ctx context.Context, docs []*domain.Document, jobs []pairJob, opts driving.RunOptions) []pairCell {
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	cells := make([]pairCell, len(jobs))

	for k, job := range jobs {
		g.Go(func() error {
			left, right := docs[job.row], docs[job.col]
			score, blocks := Match(left.Tokens, right.Tokens)

			cell := pairCell{row: job.row, col: job.col, score: score}

			forward, err := s.pairs.WritePair(ctx, opts.OutputDir, job.forwardIx, job.row, job.col, left, right, blocks, opts.BlockSize)
			if err != nil {
				cell.err = err
			} else {
				cell.reports = append(cell.reports, forward)
			}

			swapped := make([]domain.MatchingBlock, len(blocks))
			for i, blk := range blocks {
				swapped[i] = blk.Swap()
			}
			back, err := s.pairs.WritePair(ctx, opts.OutputDir, job.backIx, job.col, job.row, right, left, swapped, opts.BlockSize)
			if err != nil && cell.err == nil {
				cell.err = err
			} else if err == nil {
				cell.reports = append(cell.reports, back)
			}

			cells[k] = cell
			return nil
		})
	}
	_ = g.Wait()

	return cells
}

// loadAll extracts every file in the directory, strictly: the first
// extraction failure aborts the load.
func (s *ComparisonService) loadAll(ctx context.Context, dir string) ([]*domain.Document, error) {
	store := s.stores(dir)
	files, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]*domain.Document, 0, len(files))
	for _, f := range files {
		doc, err := s.loadDocument(ctx, store.Path(f.Name))
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// loadCandidates extracts every file in the directory except the one
// named exclude, leniently: failures are recorded and skipped.
func (s *ComparisonService) loadCandidates(ctx context.Context, dir, exclude string) ([]*domain.Document, []string, error) {
	store := s.stores(dir)
	files, err := store.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	var docs []*domain.Document
	var skipped []string
	for _, f := range files {
		if f.Name == exclude {
			continue
		}
		doc, err := s.loadDocument(ctx, store.Path(f.Name))
		if err != nil {
			logger.Warn("skipping candidate %s: %v", f.Name, err)
			skipped = append(skipped, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, skipped, nil
}

// loadDocument extracts one file into a Document.
func (s *ComparisonService) loadDocument(ctx context.Context, path string) (*domain.Document, error) {
	tokens, err := s.registry.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return &domain.Document{
		ID:     uuid.New().String(),
		Name:   name,
		Source: path,
		Tokens: tokens,
	}, nil
}
