package text

import (
	"fmt"
	"slices"
)

// LineIndex maps byte offsets to line/column locations over a UTF-8
// source buffer. Line numbers are 0-based and columns are byte columns.
type LineIndex struct {
	src        string
	lineStarts []ByteOffset
}

// NewLineIndex builds an index over src.
func NewLineIndex(src string) *LineIndex {
	starts := []ByteOffset{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return &LineIndex{
		src:        src,
		lineStarts: starts,
	}
}

// SourceLen returns the source length in bytes.
func (li *LineIndex) SourceLen() ByteOffset {
	if li == nil {
		return 0
	}
	return ByteOffset(len(li.src))
}

// LineCount returns the number of logical lines in the source.
func (li *LineIndex) LineCount() int {
	if li == nil {
		return 0
	}
	return len(li.lineStarts)
}

// OffsetToPoint converts a byte offset to a line/column point. Offsets
// past the end of the source resolve to the end of the last line.
func (li *LineIndex) OffsetToPoint(off ByteOffset) Point {
	if li == nil || off <= 0 {
		return Point{}
	}
	if off > ByteOffset(len(li.src)) {
		off = ByteOffset(len(li.src))
	}

	line := li.lineForOffset(off)
	start := li.lineStarts[line]
	return Point{
		Line:   line,
		Column: int(off - start),
	}
}

// LineContent returns the text of the given 0-based line without its
// terminator.
func (li *LineIndex) LineContent(line int) (string, error) {
	if li == nil {
		return "", fmt.Errorf("nil LineIndex")
	}
	if line < 0 || line >= li.LineCount() {
		return "", fmt.Errorf("line out of range: %d", line)
	}
	start, _, contentEnd := li.lineBounds(line)
	return li.src[start:contentEnd], nil
}

func (li *LineIndex) lineForOffset(off ByteOffset) int {
	// largest i such that lineStarts[i] <= off
	i, found := slices.BinarySearch(li.lineStarts, off)
	if found {
		return i
	}
	return i - 1
}

func (li *LineIndex) lineBounds(line int) (start ByteOffset, nextStart ByteOffset, contentEnd ByteOffset) {
	start = li.lineStarts[line]
	if line+1 < len(li.lineStarts) {
		nextStart = li.lineStarts[line+1]
	} else {
		nextStart = ByteOffset(len(li.src))
	}
	contentEnd = nextStart
	if contentEnd > start && li.src[contentEnd-1] == '\n' {
		contentEnd--
		if contentEnd > start && li.src[contentEnd-1] == '\r' {
			contentEnd--
		}
	}
	return start, nextStart, contentEnd
}
