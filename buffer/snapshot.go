package buffer

import (
	"unicode/utf8"

	"github.com/dshills/textrope/rope"
)

// Snapshot provides a read-only view of a buffer at a specific point in
// time. It holds its own clone of the buffer's rope, so it is safe for
// concurrent access and will not change even as the original buffer is
// edited; unmodified subtrees remain shared with the live buffer.
type Snapshot struct {
	rope       *rope.Rope
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.rope.String()
}

// TextRange returns text in the given byte range.
func (s *Snapshot) TextRange(start, end ByteOffset) (string, error) {
	if start < 0 || start > end || end > s.rope.LenBytes() {
		return "", ErrRangeInvalid
	}
	if !s.rope.IsCharBoundary(start) || !s.rope.IsCharBoundary(end) {
		return "", ErrNotCharBoundary
	}
	return s.rope.Slice(start, end).String(), nil
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return s.rope.LenBytes()
}

// LenChars returns the total character count of the snapshot.
func (s *Snapshot) LenChars() int {
	return s.rope.LenChars()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return s.rope.LenLines()
}

// LineText returns the text of a specific line, without its line ending.
func (s *Snapshot) LineText(line int) (string, error) {
	if line < 0 || line >= s.rope.LenLines() {
		return "", ErrOffsetOutOfRange
	}
	return trimLineEnding(s.rope.Line(line).String()), nil
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if the offset is out of range or not on
// a character boundary.
func (s *Snapshot) RuneAt(offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= s.rope.LenBytes() || !s.rope.IsCharBoundary(offset) {
		return utf8.RuneError, 0
	}
	end := min(offset+utf8.UTFMax, s.rope.LenBytes())
	for !s.rope.IsCharBoundary(end) {
		end--
	}
	return utf8.DecodeRuneInString(s.rope.Slice(offset, end).String())
}

// OffsetToPoint converts a byte offset to line/column.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) (Point, error) {
	if offset < 0 || offset > s.rope.LenBytes() {
		return Point{}, ErrOffsetOutOfRange
	}
	line := s.rope.ByteToLine(offset)
	return Point{Line: line, Column: offset - s.rope.LineToByte(line)}, nil
}

// PointToOffset converts line/column to byte offset.
func (s *Snapshot) PointToOffset(point Point) (ByteOffset, error) {
	if point.Line < 0 || point.Line >= s.rope.LenLines() || point.Column < 0 {
		return 0, ErrOffsetOutOfRange
	}
	start := s.rope.LineToByte(point.Line)
	offset := start + point.Column
	if offset > start+s.rope.Line(point.Line).LenBytes() {
		return 0, ErrOffsetOutOfRange
	}
	return offset, nil
}

// LineStartOffset returns the byte offset of the start of a line.
func (s *Snapshot) LineStartOffset(line int) (ByteOffset, error) {
	if line < 0 || line >= s.rope.LenLines() {
		return 0, ErrOffsetOutOfRange
	}
	return s.rope.LineToByte(line), nil
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return s.rope.LenBytes() == 0
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}

// LineWidth returns the display width of a line in terminal cells.
func (s *Snapshot) LineWidth(line int) (int, error) {
	text, err := s.LineText(line)
	if err != nil {
		return 0, err
	}
	return DisplayWidth(text, s.tabWidth), nil
}

// Chunks returns an iterator over all chunks in the snapshot.
func (s *Snapshot) Chunks() *rope.ChunkIterator {
	return s.rope.Chunks()
}

// Lines returns an iterator over all lines in the snapshot.
func (s *Snapshot) Lines() *rope.LineIterator {
	return s.rope.Lines()
}

// Runes returns an iterator over all runes in the snapshot.
func (s *Snapshot) Runes() *rope.RuneIterator {
	return s.rope.Runes()
}
