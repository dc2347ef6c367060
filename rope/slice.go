package rope

import "strings"

// Slice is a zero-copy, read-only view of a byte range of a rope. It
// carries cached newline and character counts so line and character
// queries inside the window stay O(log n).
//
// A slice borrows from its rope and is valid until the rope's next
// mutation; it never copies text. Materializing a string is the explicit
// String operation.
type Slice struct {
	rope       *Rope
	start, end int

	// newlinesBefore counts newlines strictly before start;
	// numNewlines counts newlines within [start, end).
	newlinesBefore int
	numNewlines    int

	// charsBefore and numChars track characters the same way.
	charsBefore int
	numChars    int
}

// LenBytes returns the byte length of the slice.
func (s Slice) LenBytes() int {
	return s.end - s.start
}

// LenChars returns the character count of the slice.
func (s Slice) LenChars() int {
	return s.numChars
}

// LenLines returns the logical line count of the slice: newlines plus one.
func (s Slice) LenLines() int {
	return s.numNewlines + 1
}

// Slice narrows the view to [start, end), given in slice-relative byte
// offsets. The cached counts are recomputed for the narrowed window; no
// text is copied. Both ends must be in bounds and on character boundaries.
func (s Slice) Slice(start, end int) Slice {
	if start < 0 || start > end {
		panic("rope: slice start cannot be after end")
	}
	if end > s.LenBytes() {
		panic("rope: slice range out of bounds")
	}
	root := s.rope.root.read()
	a, b := s.start+start, s.start+end
	if !root.isCharBoundary(a) || !root.isCharBoundary(b) {
		panic("rope: slice range splits a UTF-8 character")
	}
	newlinesBefore := root.newlinesUpTo(a)
	charsBefore := root.charsUpTo(a)
	return Slice{
		rope:           s.rope,
		start:          a,
		end:            b,
		newlinesBefore: newlinesBefore,
		numNewlines:    root.newlinesUpTo(b) - newlinesBefore,
		charsBefore:    charsBefore,
		numChars:       root.charsUpTo(b) - charsBefore,
	}
}

// Line returns the i-th logical line of the slice, bounded by the newline
// before it and the newline at its end (included). The terminal line has
// no trailing newline but is still addressable.
func (s Slice) Line(i int) Slice {
	if i < 0 || i >= s.LenLines() {
		panic("rope: line index out of bounds")
	}
	root := s.rope.root.read()
	start := 0
	if i > 0 {
		start = root.offsetForNewline(s.newlinesBefore+i-1) + 1 - s.start
	}
	end := s.end - s.start
	if i < s.LenLines()-1 {
		end = root.offsetForNewline(s.newlinesBefore+i) + 1 - s.start
	}
	return s.Slice(start, end)
}

// LineToByte returns the slice-relative byte offset at which line n
// starts: immediately after the n-th newline, or the slice start for n==0.
func (s Slice) LineToByte(n int) int {
	if n < 0 || n >= s.LenLines() {
		panic("rope: line index out of bounds")
	}
	if n == 0 {
		return 0
	}
	return s.rope.root.read().offsetForNewline(s.newlinesBefore+n-1) + 1 - s.start
}

// ByteToLine returns the line number containing slice-relative byte offset
// i: the number of newlines in the slice strictly before i.
func (s Slice) ByteToLine(i int) int {
	if i < 0 || i > s.LenBytes() {
		panic("rope: byte index out of bounds")
	}
	return s.rope.root.read().newlinesUpTo(s.start+i) - s.newlinesBefore
}

// CharToByte converts a slice-relative character offset to a byte offset.
func (s Slice) CharToByte(i int) int {
	if i < 0 || i > s.LenChars() {
		panic("rope: char index out of bounds")
	}
	if i == s.LenChars() {
		return s.LenBytes()
	}
	return s.rope.root.read().offsetForChar(s.charsBefore+i) - s.start
}

// ByteToChar converts a slice-relative byte offset to a character offset.
// The offset must fall on a character boundary.
func (s Slice) ByteToChar(i int) int {
	if i < 0 || i > s.LenBytes() {
		panic("rope: byte index out of bounds")
	}
	if i == s.LenBytes() {
		return s.LenChars()
	}
	root := s.rope.root.read()
	if !root.isCharBoundary(s.start + i) {
		panic("rope: byte offset splits a UTF-8 character")
	}
	return root.charsUpTo(s.start+i) - s.charsBefore
}

// LineToChar returns the character offset at which line n starts.
func (s Slice) LineToChar(n int) int {
	return s.ByteToChar(s.LineToByte(n))
}

// CharToLine returns the line number containing character offset i.
func (s Slice) CharToLine(i int) int {
	return s.ByteToLine(s.CharToByte(i))
}

// String materializes the slice's text, concatenating every chunk the
// window touches. This is the slice's only allocating operation.
func (s Slice) String() string {
	var sb strings.Builder
	sb.Grow(s.LenBytes())
	it := s.Chunks()
	for it.Next() {
		sb.WriteString(it.Text())
	}
	return sb.String()
}
