package report

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
	"github.com/crosscheck-hq/crosscheck-cli/internal/logger"
)

// SummaryFileName is the fixed name of the summary report.
const SummaryFileName = "_results.html"

// Ensure MatrixWriter implements the interface.
var _ driven.SummaryWriter = (*MatrixWriter)(nil)

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Comparison results</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #444; padding: 0.4em 0.8em; text-align: center; }
th { background-color: #eee; }
</style>
</head>
<body>
<h1>Comparison results</h1>
<table>
<tr><th></th>{{range .ColNames}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr><th>{{.Name}}</th>{{range .Cells}}{{.Cell}}{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

// summaryCell is one rendered matrix cell.
type summaryCell struct {
	Cell template.HTML
}

type summaryRow struct {
	Name  string
	Cells []summaryCell
}

type summaryData struct {
	ColNames []string
	Rows     []summaryRow
}

// Option configures the matrix writer.
type Option func(*MatrixWriter)

// WithWaitTimeout sets the deadline for the summary file to appear.
func WithWaitTimeout(d time.Duration) Option {
	return func(w *MatrixWriter) {
		if d > 0 {
			w.waitTimeout = d
		}
	}
}

// WithPollInterval sets the existence poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(w *MatrixWriter) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// MatrixWriter renders the score matrix summary report.
type MatrixWriter struct {
	waitTimeout  time.Duration
	pollInterval time.Duration
}

// NewMatrixWriter creates a summary writer with the given options.
func NewMatrixWriter(opts ...Option) *MatrixWriter {
	w := &MatrixWriter{
		waitTimeout:  60 * time.Second,
		pollInterval: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteSummary writes the matrix table to _results.html in outDir,
// waits for the file to be observable on disk, then patches in the
// hyperlinks to the pairwise reports.
func (w *MatrixWriter) WriteSummary(ctx context.Context, outDir string, matrix *domain.ScoreMatrix, reports []domain.PairReport) (string, error) {
	path := filepath.Join(outDir, SummaryFileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := summaryTemplate.Execute(f, buildSummaryData(matrix)); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	if err := w.waitForFile(ctx, path); err != nil {
		return "", err
	}

	if err := patchLinks(path, matrix, reports); err != nil {
		return "", fmt.Errorf("patch summary links: %w", err)
	}

	logger.Debug("summary written to %s", path)
	return path, nil
}

// buildSummaryData formats the matrix into template cells. Each cell
// carries a stable id so the link patching step can find it later.
func buildSummaryData(matrix *domain.ScoreMatrix) summaryData {
	data := summaryData{ColNames: matrix.ColNames}
	for i, name := range matrix.RowNames {
		row := summaryRow{Name: name}
		for j := range matrix.ColNames {
			row.Cells = append(row.Cells, summaryCell{
				Cell: template.HTML(cellMarkup(i, j, matrix.Cells[i][j])),
			})
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// cellMarkup renders one td element. Scores are percentages; the
// SelfScore sentinel renders as a dash with no link target.
func cellMarkup(i, j int, score float64) string {
	return fmt.Sprintf(`<td id="cell-%d-%d">%s</td>`, i, j, cellText(score))
}

func cellText(score float64) string {
	if score == domain.SelfScore {
		return "---"
	}
	return fmt.Sprintf("%.2f %%", score*100)
}

// patchLinks rewrites the already-written summary so each scored cell
// links to its pairwise report. It is idempotent: a cell that already
// carries a link is left alone.
func patchLinks(path string, matrix *domain.ScoreMatrix, reports []domain.PairReport) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := string(raw)

	for _, r := range reports {
		score := matrix.Cells[r.Row][r.Col]
		if score == domain.SelfScore {
			continue
		}
		plain := cellMarkup(r.Row, r.Col, score)
		linked := fmt.Sprintf(`<td id="cell-%d-%d"><a href="%s">%s</a></td>`,
			r.Row, r.Col, template.HTMLEscapeString(r.Filename), cellText(score))
		content = strings.Replace(content, plain, linked, 1)
	}

	return os.WriteFile(path, []byte(content), 0644)
}

// waitForFile blocks until the summary file is observable on disk. A
// directory watcher wakes the loop early; a poll ticker is the
// fallback, bounded by the configured deadline.
func (w *MatrixWriter) waitForFile(ctx context.Context, path string) error {
	deadline := time.NewTimer(w.waitTimeout)
	defer deadline.Stop()

	var events chan fsnotify.Event
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(path)); err == nil {
			events = watcher.Events
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%s did not appear within %s: %w", path, w.waitTimeout, domain.ErrReportNotPersisted)
		case <-events:
		case <-ticker.C:
		}
	}
}
