// Package report renders comparison results as HTML: one side-by-side
// diff file per compared pair, and the _results.html summary matrix
// that links to them.
package report
