// Package span provides source offsets and ranges used across the front end.
package span

import (
	"fmt"
	"strings"
)

// Pos is a byte offset from the beginning of the source buffer.
type Pos int

// Span represents a range in source code [Start, End).
type Span struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Text slices the span out of source.
func (s Span) Text(source string) string {
	return source[s.Start:s.End]
}

// Line returns the 1-based line containing offset p, counting newlines in
// source up to p. Offsets past the end of source are clamped.
func Line(source string, p Pos) int {
	if p < 0 {
		p = 0
	}
	if int(p) > len(source) {
		p = Pos(len(source))
	}
	return strings.Count(source[:p], "\n") + 1
}

// Column returns the 1-based byte column of offset p.
func Column(source string, p Pos) int {
	if p < 0 {
		p = 0
	}
	if int(p) > len(source) {
		p = Pos(len(source))
	}
	return int(p) - strings.LastIndexByte(source[:p], '\n')
}
