package rope

import (
	"io"
	"unicode/utf8"
)

// Rope is a tree-structured representation of a UTF-8 text document that
// supports sub-linear edits and O(1) cloning with structural sharing.
//
// All offsets are byte offsets into the document and must fall on UTF-8
// character boundaries. Violating an offset precondition indicates a bug in
// the caller's bookkeeping and panics rather than silently corrupting text;
// hosts that want checked variants should wrap the rope (see the buffer
// package).
type Rope struct {
	root handle
}

// New creates an empty rope.
func New() *Rope {
	return &Rope{root: newHandle(newLeaf(""))}
}

// FromString creates a rope from a string, chunked into bounded leaves.
// The string must be valid UTF-8.
func FromString(s string) *Rope {
	return &Rope{root: newHandle(makeNode(s))}
}

// FromReader creates a rope by reading the stream to completion. Input that
// is not valid UTF-8 yields ErrInvalidUTF8 and no rope is constructed.
func FromReader(r io.Reader) (*Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return nil, err
	}
	return b.Build()
}

// Clone returns a new rope sharing this rope's tree. The two ropes are
// fully independent: mutating one never changes what the other observes,
// at the cost of privately copying only the nodes on mutated paths.
func (r *Rope) Clone() *Rope {
	return &Rope{root: r.root.retain()}
}

// Insert splices text into the document at the given byte offset.
// The offset must be within bounds and on a character boundary.
func (r *Rope) Insert(offset int, text string) {
	if offset < 0 || offset > r.LenBytes() {
		panic("rope: insert offset out of bounds")
	}
	if len(text) == 0 {
		return
	}
	r.root.insert(offset, text)
}

// InsertRune inserts a single character at the given byte offset.
func (r *Rope) InsertRune(offset int, c rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], c)
	r.Insert(offset, string(buf[:n]))
}

// Remove deletes the byte range [start, end) from the document. Both ends
// must be within bounds and on character boundaries. Removing the whole
// document resets the tree to a single empty leaf in O(1).
func (r *Rope) Remove(start, end int) {
	n := r.LenBytes()
	if start < 0 || start > end {
		panic("rope: remove start cannot be after end")
	}
	if end > n {
		panic("rope: remove range out of bounds")
	}
	if start == 0 && end == n {
		old := r.root
		r.root = newHandle(newLeaf(""))
		old.release()
		return
	}
	if start == end {
		return
	}
	root := r.root.read()
	if !root.isCharBoundary(start) || !root.isCharBoundary(end) {
		panic("rope: remove range splits a UTF-8 character")
	}
	r.root.remove(start, end)
}

// LenBytes returns the total byte length of the document.
func (r *Rope) LenBytes() int {
	return r.root.read().lenBytes()
}

// LenChars returns the total character (Unicode scalar) count.
func (r *Rope) LenChars() int {
	return r.root.read().numChars()
}

// LenLines returns the number of logical lines: newline count plus one.
// An empty document has one line.
func (r *Rope) LenLines() int {
	return r.root.read().numNewlines() + 1
}

// Summary returns the aggregate metrics for the entire document.
func (r *Rope) Summary() Summary {
	return r.root.read().summary()
}

// IsCharBoundary reports whether the byte offset falls on a UTF-8
// character boundary of the document.
func (r *Rope) IsCharBoundary(offset int) bool {
	if offset < 0 || offset > r.LenBytes() {
		return false
	}
	return r.root.read().isCharBoundary(offset)
}

// Slice returns a zero-copy view of the byte range [start, end).
// The slice is valid until the next mutation of the rope.
func (r *Rope) Slice(start, end int) Slice {
	return r.wholeSlice().Slice(start, end)
}

// Line returns the i-th logical line as a slice, including its trailing
// newline if present. The terminal line without a newline is addressable.
func (r *Rope) Line(i int) Slice {
	return r.wholeSlice().Line(i)
}

// LineToByte returns the byte offset at which line n starts.
func (r *Rope) LineToByte(n int) int {
	return r.wholeSlice().LineToByte(n)
}

// ByteToLine returns the line number containing byte offset i, defined as
// the number of newlines strictly before i.
func (r *Rope) ByteToLine(i int) int {
	return r.wholeSlice().ByteToLine(i)
}

// CharToByte converts a character offset to a byte offset.
func (r *Rope) CharToByte(i int) int {
	return r.wholeSlice().CharToByte(i)
}

// ByteToChar converts a byte offset to a character offset.
func (r *Rope) ByteToChar(i int) int {
	return r.wholeSlice().ByteToChar(i)
}

// LineToChar returns the character offset at which line n starts.
func (r *Rope) LineToChar(n int) int {
	return r.wholeSlice().LineToChar(n)
}

// CharToLine returns the line number containing character offset i.
func (r *Rope) CharToLine(i int) int {
	return r.wholeSlice().CharToLine(i)
}

// String materializes the whole document. This is the one allocating read;
// prefer Chunks for streaming access.
func (r *Rope) String() string {
	return r.wholeSlice().String()
}

// Chunks returns an iterator over the document's text fragments.
func (r *Rope) Chunks() *ChunkIterator {
	return r.wholeSlice().Chunks()
}

// Runes returns an iterator over the document's characters and their byte
// offsets.
func (r *Rope) Runes() *RuneIterator {
	return r.wholeSlice().Runes()
}

// Lines returns an iterator over the document's logical lines.
func (r *Rope) Lines() *LineIterator {
	return r.wholeSlice().Lines()
}

// wholeSlice returns the view covering the entire document.
func (r *Rope) wholeSlice() Slice {
	root := r.root.read()
	return Slice{
		rope:        r,
		start:       0,
		end:         root.lenBytes(),
		numNewlines: root.numNewlines(),
		numChars:    root.numChars(),
	}
}
