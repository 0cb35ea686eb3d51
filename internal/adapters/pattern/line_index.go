package pattern

import "sort"

// LineIndex maps byte offsets in a buffer to 1-indexed line numbers. It is
// computed once per buffer and reused for every pattern checked against it,
// so repeated matches never re-scan the buffer from the start.
type LineIndex struct {
	buf []byte
	// starts holds the byte offset of the first byte of each line.
	starts []int
}

// NewLineIndex precomputes the newline offsets of buf.
func NewLineIndex(buf []byte) *LineIndex {
	starts := make([]int, 1, 64)
	starts[0] = 0
	for i, b := range buf {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{buf: buf, starts: starts}
}

// Line returns the 1-indexed line containing the given byte offset, found by
// binary search over the precomputed line starts.
func (ix *LineIndex) Line(offset int) int {
	// First line start strictly greater than offset; the line is the one
	// before it.
	return sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	})
}

// LineContent returns the full text of the 1-indexed line, without its
// trailing newline.
func (ix *LineIndex) LineContent(line int) string {
	if line < 1 || line > len(ix.starts) {
		return ""
	}
	start := ix.starts[line-1]
	end := len(ix.buf)
	if line < len(ix.starts) {
		end = ix.starts[line] - 1 // drop '\n'
	}
	if end > start && ix.buf[end-1] == '\r' {
		end--
	}
	return string(ix.buf[start:end])
}
