package report

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
)

// Ensure PairwiseWriter implements the interface.
var _ driven.PairWriter = (*PairwiseWriter)(nil)

var pairTemplate = template.Must(template.New("pair").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Left}} vs {{.Right}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.columns { display: flex; gap: 2em; }
.column { flex: 1; overflow-wrap: anywhere; }
span.match { background-color: #aaffaa; }
span.diff { background-color: #ffaaaa; }
</style>
</head>
<body>
<h1>{{.Left}} vs {{.Right}}</h1>
<div class="columns">
<div class="column">
<h2>{{.Left}}</h2>
<p>{{range .LeftSpans}}<span class="{{if .Matched}}match{{else}}diff{{end}}">{{.Text}}</span>
{{end}}</p>
</div>
<div class="column">
<h2>{{.Right}}</h2>
<p>{{range .RightSpans}}<span class="{{if .Matched}}match{{else}}diff{{end}}">{{.Text}}</span>
{{end}}</p>
</div>
</div>
</body>
</html>
`))

// textSpan is one highlighted chunk of at most blockSize tokens.
type textSpan struct {
	Text    string
	Matched bool
}

// pairData is the template payload for one pairwise report.
type pairData struct {
	Left       string
	Right      string
	LeftSpans  []textSpan
	RightSpans []textSpan
}

// PairwiseWriter renders pairwise diff reports to HTML files.
type PairwiseWriter struct{}

// NewPairwiseWriter creates a new pairwise report writer.
func NewPairwiseWriter() *PairwiseWriter {
	return &PairwiseWriter{}
}

// WritePair renders the diff of left against right into outDir.
// The file name combines the running pair index with both document
// names, so it is unique within a run.
func (w *PairwiseWriter) WritePair(_ context.Context, outDir string, index, row, col int,
	left, right *domain.Document, blocks []domain.MatchingBlock, blockSize int) (domain.PairReport, error) {
	if blockSize <= 0 {
		return domain.PairReport{}, fmt.Errorf("block size %d: %w", blockSize, domain.ErrInvalidBlockSize)
	}

	data := pairData{
		Left:       left.Name,
		Right:      right.Name,
		LeftSpans:  chunkSpans(left.Tokens, blocks, blockSize, func(b domain.MatchingBlock) int { return b.A }),
		RightSpans: chunkSpans(right.Tokens, blocks, blockSize, func(b domain.MatchingBlock) int { return b.B }),
	}

	filename := fmt.Sprintf("%03d_%s_vs_%s.html", index, sanitizeName(left.Name), sanitizeName(right.Name))
	path := filepath.Join(outDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return domain.PairReport{}, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := pairTemplate.Execute(f, data); err != nil {
		return domain.PairReport{}, fmt.Errorf("render %s: %w", path, err)
	}

	return domain.PairReport{
		Index:    index,
		Row:      row,
		Col:      col,
		Left:     left.Name,
		Right:    right.Name,
		Filename: filename,
	}, nil
}

// chunkSpans converts one side of a block decomposition into highlight
// spans. Gaps between blocks are unmatched; every span holds at most
// blockSize tokens.
func chunkSpans(toks []string, blocks []domain.MatchingBlock, blockSize int, offset func(domain.MatchingBlock) int) []textSpan {
	var spans []textSpan
	pos := 0
	for _, blk := range blocks {
		start := offset(blk)
		spans = appendChunked(spans, toks[pos:start], false, blockSize)
		spans = appendChunked(spans, toks[start:start+blk.Length], true, blockSize)
		pos = start + blk.Length
	}
	// The sentinel block closes both sequences, but guard against a
	// decomposition without one.
	spans = appendChunked(spans, toks[pos:], false, blockSize)
	return spans
}

// appendChunked splits a token region into spans of at most blockSize
// tokens.
func appendChunked(spans []textSpan, toks []string, matched bool, blockSize int) []textSpan {
	for start := 0; start < len(toks); start += blockSize {
		end := start + blockSize
		if end > len(toks) {
			end = len(toks)
		}
		spans = append(spans, textSpan{
			Text:    strings.Join(toks[start:end], " "),
			Matched: matched,
		})
	}
	return spans
}

// sanitizeName makes a document name safe for use in a file name.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
