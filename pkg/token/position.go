package token

import (
	"fmt"
	"sort"
)

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 0-based byte column within the line
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes strictly before q in the source.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// LineIndex converts byte offsets into line/column positions.
type LineIndex struct {
	starts []int // byte offset of the first byte of each line
}

// NewLineIndex builds a LineIndex over src.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts}
}

// Position returns the position of the given byte offset.
// Offsets past the end are clamped to the last line.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	return Position{
		Line:   line + 1,
		Column: offset - li.starts[line],
		Offset: offset,
	}
}

// Offset returns the byte offset of a line/column pair, or -1 if the line
// does not exist.
func (li *LineIndex) Offset(line, column int) int {
	if line < 1 || line > len(li.starts) {
		return -1
	}
	return li.starts[line-1] + column
}

// Lines returns the number of lines in the indexed source.
func (li *LineIndex) Lines() int {
	return len(li.starts)
}
