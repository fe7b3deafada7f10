package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
)

func testDocs() (*domain.Document, *domain.Document, []domain.MatchingBlock) {
	left := &domain.Document{
		Name:   "left",
		Tokens: []string{"the", "cat", "sat", "on", "the", "mat"},
	}
	right := &domain.Document{
		Name:   "right",
		Tokens: []string{"the", "cat", "ran", "on", "the", "mat"},
	}
	blocks := []domain.MatchingBlock{
		{A: 0, B: 0, Length: 2},
		{A: 3, B: 3, Length: 3},
		{A: 6, B: 6, Length: 0},
	}
	return left, right, blocks
}

func TestWritePair_InvalidBlockSize(t *testing.T) {
	out := t.TempDir()
	left, right, blocks := testDocs()
	w := NewPairwiseWriter()

	for _, size := range []int{0, -3} {
		_, err := w.WritePair(context.Background(), out, 0, 0, 1, left, right, blocks, size)
		assert.ErrorIs(t, err, domain.ErrInvalidBlockSize)
	}

	// Nothing may be written on invalid configuration.
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWritePair_WritesFile(t *testing.T) {
	out := t.TempDir()
	left, right, blocks := testDocs()
	w := NewPairwiseWriter()

	report, err := w.WritePair(context.Background(), out, 7, 1, 2, left, right, blocks, 2)
	require.NoError(t, err)

	assert.Equal(t, 7, report.Index)
	assert.Equal(t, 1, report.Row)
	assert.Equal(t, 2, report.Col)
	assert.Equal(t, "left", report.Left)
	assert.Equal(t, "right", report.Right)
	assert.Equal(t, "007_left_vs_right.html", report.Filename)

	raw, err := os.ReadFile(filepath.Join(out, report.Filename))
	require.NoError(t, err)
	content := string(raw)

	assert.Contains(t, content, `class="match"`)
	assert.Contains(t, content, `class="diff"`)
	assert.Contains(t, content, "the cat")
	assert.Contains(t, content, "sat")
	assert.Contains(t, content, "ran")
}

func TestWritePair_UniqueNames(t *testing.T) {
	out := t.TempDir()
	left, right, blocks := testDocs()
	w := NewPairwiseWriter()

	first, err := w.WritePair(context.Background(), out, 0, 0, 1, left, right, blocks, 2)
	require.NoError(t, err)

	swapped := make([]domain.MatchingBlock, len(blocks))
	for i, b := range blocks {
		swapped[i] = b.Swap()
	}
	second, err := w.WritePair(context.Background(), out, 1, 1, 0, right, left, swapped, 2)
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
	assert.FileExists(t, filepath.Join(out, first.Filename))
	assert.FileExists(t, filepath.Join(out, second.Filename))
}

func TestWritePair_EscapesTokens(t *testing.T) {
	out := t.TempDir()
	left := &domain.Document{Name: "a", Tokens: []string{"<script>"}}
	right := &domain.Document{Name: "b", Tokens: []string{"safe"}}
	blocks := []domain.MatchingBlock{{A: 1, B: 1, Length: 0}}
	w := NewPairwiseWriter()

	report, err := w.WritePair(context.Background(), out, 0, 0, 1, left, right, blocks, 2)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(out, report.Filename))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "<script>")
	assert.Contains(t, string(raw), "&lt;script&gt;")
}

func TestChunkSpans(t *testing.T) {
	toks := []string{"a", "b", "c", "d", "e"}
	blocks := []domain.MatchingBlock{
		{A: 1, B: 0, Length: 2},
		{A: 5, B: 2, Length: 0},
	}

	spans := chunkSpans(toks, blocks, 1, func(b domain.MatchingBlock) int { return b.A })

	// a | b c matched | d e, all split to single tokens.
	require.Len(t, spans, 5)
	assert.Equal(t, textSpan{Text: "a", Matched: false}, spans[0])
	assert.Equal(t, textSpan{Text: "b", Matched: true}, spans[1])
	assert.Equal(t, textSpan{Text: "c", Matched: true}, spans[2])
	assert.Equal(t, textSpan{Text: "d", Matched: false}, spans[3])
	assert.Equal(t, textSpan{Text: "e", Matched: false}, spans[4])
}

func TestChunkSpans_GroupsByBlockSize(t *testing.T) {
	toks := []string{"a", "b", "c", "d", "e", "f"}
	blocks := []domain.MatchingBlock{{A: 6, B: 0, Length: 0}}

	spans := chunkSpans(toks, blocks, 4, func(b domain.MatchingBlock) int { return b.A })

	require.Len(t, spans, 2)
	assert.Equal(t, "a b c d", spans[0].Text)
	assert.Equal(t, "e f", spans[1].Text)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{"with space", "with_space"},
		{"path/slash", "path_slash"},
		{"dots.and-dashes_ok", "dots.and-dashes_ok"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, sanitizeName(tc.in))
	}
}
