package rope

import "unicode/utf8"

// ChunkIterator walks the leaf fragments covered by a slice in document
// order. Chunks are yielded zero-copy as substrings of the leaves; only the
// first and last chunk may be trimmed to the slice window. Every yielded
// chunk is non-empty and ends on a character boundary.
//
// The iterator borrows from the rope and must not outlive the next
// mutation.
type ChunkIterator struct {
	stack     []*node // pending right subtrees, deepest last
	leaf      *node
	skip      int // bytes to drop from the front of the next leaf
	remaining int
	text      string
	offset    int
	pos       int
}

// Chunks returns an iterator over the slice's text fragments.
func (s Slice) Chunks() *ChunkIterator {
	it := &ChunkIterator{remaining: s.LenBytes(), skip: s.start}
	if it.remaining > 0 {
		it.descend(s.rope.root.read())
	}
	return it
}

// descend walks to the leaf containing the skip offset, stashing right
// subtrees for later. A skip landing exactly on a left-subtree boundary
// resolves into the right subtree, so no empty head chunk is produced.
func (it *ChunkIterator) descend(n *node) {
	for !n.isLeaf() {
		if it.skip >= n.leftSum.Bytes {
			it.skip -= n.leftSum.Bytes
			n = n.right.read()
		} else {
			it.stack = append(it.stack, n.right.read())
			n = n.left.read()
		}
	}
	it.leaf = n
}

// Next advances to the next chunk. It returns false when the window is
// exhausted.
func (it *ChunkIterator) Next() bool {
	for it.remaining > 0 {
		if it.leaf == nil {
			if len(it.stack) == 0 {
				return false
			}
			next := it.stack[len(it.stack)-1]
			it.stack = it.stack[:len(it.stack)-1]
			it.descend(next)
		}
		chunk := it.leaf.data[it.skip:]
		it.leaf = nil
		it.skip = 0
		if len(chunk) > it.remaining {
			chunk = chunk[:it.remaining]
		}
		if len(chunk) == 0 {
			continue
		}
		it.remaining -= len(chunk)
		it.text = chunk
		it.offset = it.pos
		it.pos += len(chunk)
		return true
	}
	return false
}

// Text returns the current chunk.
func (it *ChunkIterator) Text() string {
	return it.text
}

// Offset returns the slice-relative byte offset of the current chunk.
func (it *ChunkIterator) Offset() int {
	return it.offset
}

// RuneIterator walks the characters of a slice in document order, yielding
// each character with its slice-relative byte offset. It decodes straight
// out of the chunk stream without materializing text.
type RuneIterator struct {
	chunks *ChunkIterator
	cur    string
	base   int // slice-relative offset of cur's start
	pos    int // decode position within cur
	r      rune
	size   int
	offset int
}

// Runes returns an iterator over the slice's characters.
func (s Slice) Runes() *RuneIterator {
	return &RuneIterator{chunks: s.Chunks()}
}

// Next advances to the next character. It returns false at the end of the
// slice.
func (it *RuneIterator) Next() bool {
	if it.pos >= len(it.cur) {
		if !it.chunks.Next() {
			return false
		}
		it.cur = it.chunks.Text()
		it.base = it.chunks.Offset()
		it.pos = 0
	}
	r, size := utf8.DecodeRuneInString(it.cur[it.pos:])
	it.r, it.size = r, size
	it.offset = it.base + it.pos
	it.pos += size
	return true
}

// Rune returns the current character.
func (it *RuneIterator) Rune() rune {
	return it.r
}

// Size returns the encoded byte length of the current character.
func (it *RuneIterator) Size() int {
	return it.size
}

// Offset returns the slice-relative byte offset of the current character.
func (it *RuneIterator) Offset() int {
	return it.offset
}

// LineIterator walks the logical lines of a slice in order. Each line
// includes its trailing newline when present; a slice ending in a newline
// yields a final empty line after it. An empty slice yields no lines.
type LineIterator struct {
	slice Slice
	index int
	line  Slice
}

// Lines returns an iterator over the slice's logical lines.
func (s Slice) Lines() *LineIterator {
	return &LineIterator{slice: s, index: -1}
}

// Next advances to the next line. It returns false when the slice's lines
// are exhausted.
func (it *LineIterator) Next() bool {
	if it.slice.LenBytes() == 0 {
		return false
	}
	if it.index+1 >= it.slice.LenLines() {
		return false
	}
	it.index++
	it.line = it.slice.Line(it.index)
	return true
}

// Slice returns the current line as a zero-copy view.
func (it *LineIterator) Slice() Slice {
	return it.line
}

// Text materializes the current line.
func (it *LineIterator) Text() string {
	return it.line.String()
}

// Index returns the current line number within the slice.
func (it *LineIterator) Index() int {
	return it.index
}
