package services

import (
	"sort"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
)

// Match computes the matching-block decomposition of two token sequences
// and their overlap ratio.
//
// The ratio is 2*M/T where M is the total length of all matched blocks
// and T the combined length of both sequences: 1.0 for identical
// sequences, 0.0 for fully disjoint ones. Two empty sequences score 0.0
// since there is nothing to compare.
//
// The returned decomposition is ordered, non-overlapping, and terminated
// by the zero-length sentinel block (len(a), len(b), 0). Ties between
// equally long candidate matches are broken by the earliest offset in a,
// then the earliest offset in b, so results are deterministic.
func Match(a, b []string) (float64, []domain.MatchingBlock) {
	blocks := matchingBlocks(a, b)

	matched := 0
	for _, blk := range blocks {
		matched += blk.Length
	}

	total := len(a) + len(b)
	if total == 0 {
		return 0, blocks
	}
	return 2 * float64(matched) / float64(total), blocks
}

// span is a pending sub-range pair on the matching worklist.
type span struct {
	alo, ahi, blo, bhi int
}

// matchingBlocks finds all matching blocks between a and b using an
// explicit worklist instead of recursion: find the longest match in a
// range pair, then queue the ranges to its left and right.
func matchingBlocks(a, b []string) []domain.MatchingBlock {
	b2j := make(map[string][]int, len(b))
	for j, tok := range b {
		b2j[tok] = append(b2j[tok], j)
	}

	queue := []span{{0, len(a), 0, len(b)}}
	var blocks []domain.MatchingBlock

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, b2j, s)
		if m.Length == 0 {
			continue
		}
		blocks = append(blocks, m)
		if s.alo < m.A && s.blo < m.B {
			queue = append(queue, span{s.alo, m.A, s.blo, m.B})
		}
		if m.A+m.Length < s.ahi && m.B+m.Length < s.bhi {
			queue = append(queue, span{m.A + m.Length, s.ahi, m.B + m.Length, s.bhi})
		}
	}

	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].A != blocks[j].A {
			return blocks[i].A < blocks[j].A
		}
		return blocks[i].B < blocks[j].B
	})

	// Merge runs that ended up adjacent in both sequences.
	merged := blocks[:0]
	for _, blk := range blocks {
		if n := len(merged); n > 0 &&
			merged[n-1].A+merged[n-1].Length == blk.A &&
			merged[n-1].B+merged[n-1].Length == blk.B {
			merged[n-1].Length += blk.Length
			continue
		}
		merged = append(merged, blk)
	}

	return append(merged, domain.MatchingBlock{A: len(a), B: len(b)})
}

// longestMatch finds the longest matching block within the range pair.
// j2len[j] holds the length of the longest match ending at a[i-1], b[j];
// one row of that table is carried between iterations.
func longestMatch(a []string, b2j map[string][]int, s span) domain.MatchingBlock {
	best := domain.MatchingBlock{A: s.alo, B: s.blo}
	j2len := map[int]int{}

	for i := s.alo; i < s.ahi; i++ {
		next := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > best.Length {
				best = domain.MatchingBlock{A: i - k + 1, B: j - k + 1, Length: k}
			}
		}
		j2len = next
	}

	return best
}
