package domain

// SelfScore is the sentinel value marking a diagonal matrix cell.
// It means "self-pair, not applicable" and is never used for a failed
// comparison.
const SelfScore = -1

// MatchingBlock identifies a common contiguous run of tokens between two
// sequences: Tokens_a[A : A+Length] == Tokens_b[B : B+Length].
type MatchingBlock struct {
	A      int
	B      int
	Length int
}

// Swap mirrors the block for the reverse pair orientation.
func (m MatchingBlock) Swap() MatchingBlock {
	return MatchingBlock{A: m.B, B: m.A, Length: m.Length}
}

// ScoreMatrix is the assembled result of a comparison run. In full mode
// it is square with RowNames == ColNames and SelfScore on the diagonal;
// in targeted mode it degenerates to a single row labelled with the
// target document's name.
type ScoreMatrix struct {
	RowNames []string
	ColNames []string
	Cells    [][]float64
}

// NewScoreMatrix builds a matrix of the given shape with every cell
// initialised to SelfScore.
func NewScoreMatrix(rows, cols []string) *ScoreMatrix {
	cells := make([][]float64, len(rows))
	for i := range cells {
		cells[i] = make([]float64, len(cols))
		for j := range cells[i] {
			cells[i][j] = SelfScore
		}
	}
	return &ScoreMatrix{RowNames: rows, ColNames: cols, Cells: cells}
}

// PairReport records one rendered pairwise report file.
type PairReport struct {
	// Index is the running pair index within the run, unique per
	// ordered pair.
	Index int

	// Row and Col locate the matrix cell this report belongs to.
	Row int
	Col int

	// Left and Right are the document names in presentation order.
	Left  string
	Right string

	// Filename is the report file name relative to the output
	// directory.
	Filename string
}

// RunResult is the outcome of one comparison run.
type RunResult struct {
	Matrix *ScoreMatrix

	// Reports lists the rendered pairwise reports in index order.
	Reports []PairReport

	// SummaryPath is the absolute path of the summary report.
	SummaryPath string

	// Skipped lists candidates dropped in targeted mode, with the
	// reason each was dropped.
	Skipped []string
}
