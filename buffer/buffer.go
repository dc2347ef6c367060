package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dshills/textrope/rope"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrNotCharBoundary  = errors.New("offset splits a UTF-8 character")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer wraps a rope with the checked interface hosts edit through. The
// rope panics on offset violations; the buffer validates every offset and
// returns an error instead, so callers never see a panic from here.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	rope       *rope.Rope
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		rope:       rope.New(),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer with initial content. The content must be
// valid UTF-8.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.rope = rope.FromString(b.normalizeLineEndings(s))
	return b
}

// NewFromReader creates a buffer from an io.Reader. Input that is not valid
// UTF-8 yields rope.ErrInvalidUTF8.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := New(opts...)

	// Read everything before normalizing: a CRLF pair may straddle a read
	// boundary.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, rope.ErrInvalidUTF8
	}
	b.rope = rope.FromString(b.normalizeLineEndings(string(data)))
	return b, nil
}

// normalizeLineEndings converts all line endings to the buffer's preferred
// style.
func (b *Buffer) normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if seq := b.lineEnding.Sequence(); seq != "\n" {
		s = strings.ReplaceAll(s, "\n", seq)
	}
	return s
}

// Read Operations

// Text returns the full buffer content as a string.
// For large buffers, prefer TextRange or a snapshot's iterators.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// TextRange returns text in the given byte range.
func (b *Buffer) TextRange(start, end ByteOffset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkRange(start, end); err != nil {
		return "", err
	}
	return b.rope.Slice(start, end).String(), nil
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LenBytes()
}

// LenChars returns the total character count of the buffer.
func (b *Buffer) LenChars() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LenChars()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LenLines()
}

// LineText returns the text of a specific line, without its line ending.
func (b *Buffer) LineText(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= b.rope.LenLines() {
		return "", ErrOffsetOutOfRange
	}
	return trimLineEnding(b.rope.Line(line).String()), nil
}

// LineLen returns the length of a specific line in bytes, without its line
// ending.
func (b *Buffer) LineLen(line int) (int, error) {
	text, err := b.LineText(line)
	if err != nil {
		return 0, err
	}
	return len(text), nil
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if the offset is out of range or not on
// a character boundary.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= b.rope.LenBytes() || !b.rope.IsCharBoundary(offset) {
		return utf8.RuneError, 0
	}
	end := min(offset+utf8.UTFMax, b.rope.LenBytes())
	for !b.rope.IsCharBoundary(end) {
		end--
	}
	return utf8.DecodeRuneInString(b.rope.Slice(offset, end).String())
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) (Point, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset > b.rope.LenBytes() {
		return Point{}, ErrOffsetOutOfRange
	}
	line := b.rope.ByteToLine(offset)
	return Point{Line: line, Column: offset - b.rope.LineToByte(line)}, nil
}

// PointToOffset converts line/column to byte offset.
func (b *Buffer) PointToOffset(point Point) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if point.Line < 0 || point.Line >= b.rope.LenLines() || point.Column < 0 {
		return 0, ErrOffsetOutOfRange
	}
	start := b.rope.LineToByte(point.Line)
	offset := start + point.Column
	if offset > start+b.rope.Line(point.Line).LenBytes() {
		return 0, ErrOffsetOutOfRange
	}
	return offset, nil
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line int) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= b.rope.LenLines() {
		return 0, ErrOffsetOutOfRange
	}
	return b.rope.LineToByte(line), nil
}

// LineEndOffset returns the byte offset of the end of a line, before its
// line ending.
func (b *Buffer) LineEndOffset(line int) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= b.rope.LenLines() {
		return 0, ErrOffsetOutOfRange
	}
	l := b.rope.Line(line)
	return b.rope.LineToByte(line) + len(trimLineEnding(l.String())), nil
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.rope.LenBytes() {
		return 0, ErrOffsetOutOfRange
	}
	if !b.rope.IsCharBoundary(offset) {
		return 0, ErrNotCharBoundary
	}

	text = b.normalizeLineEndings(text)
	b.rope.Insert(offset, text)
	b.revisionID = NewRevisionID()

	return offset + len(text), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRange(start, end); err != nil {
		return err
	}

	b.rope.Remove(start, end)
	b.revisionID = NewRevisionID()
	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	newEnd, err := b.replaceLocked(start, end, text)
	if err != nil {
		return 0, err
	}
	b.revisionID = NewRevisionID()
	return newEnd, nil
}

func (b *Buffer) replaceLocked(start, end ByteOffset, text string) (ByteOffset, error) {
	if err := b.checkRange(start, end); err != nil {
		return 0, err
	}
	text = b.normalizeLineEndings(text)
	b.rope.Remove(start, end)
	b.rope.Insert(start, text)
	return start + len(text), nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRange(edit.Range.Start, edit.Range.End); err != nil {
		return EditResult{}, err
	}

	oldText := b.rope.Slice(edit.Range.Start, edit.Range.End).String()
	newEnd, err := b.replaceLocked(edit.Range.Start, edit.Range.End, edit.NewText)
	if err != nil {
		return EditResult{}, err
	}
	b.revisionID = NewRevisionID()

	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    (newEnd - edit.Range.Start) - edit.Range.Len(),
	}, nil
}

// ApplyEdits applies multiple edits atomically.
// Edits must be in reverse order (highest offset first) so earlier edits do
// not shift the offsets of later ones.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}
	for _, edit := range edits {
		if err := b.checkRange(edit.Range.Start, edit.Range.End); err != nil {
			return err
		}
	}

	for _, edit := range edits {
		if _, err := b.replaceLocked(edit.Range.Start, edit.Range.End, edit.NewText); err != nil {
			return err
		}
	}

	b.revisionID = NewRevisionID()
	return nil
}

// checkRange validates a [start, end) byte range against the current rope.
// Callers must hold at least a read lock.
func (b *Buffer) checkRange(start, end ByteOffset) error {
	if start < 0 || start > end || end > b.rope.LenBytes() {
		return ErrRangeInvalid
	}
	if !b.rope.IsCharBoundary(start) || !b.rope.IsCharBoundary(end) {
		return ErrNotCharBoundary
	}
	return nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LenBytes() == 0
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width > 0 {
		b.tabWidth = width
	}
}

// LineWidth returns the display width of a line in terminal cells, counting
// grapheme clusters and expanding tabs.
func (b *Buffer) LineWidth(line int) (int, error) {
	b.mu.RLock()
	tabWidth := b.tabWidth
	b.mu.RUnlock()
	text, err := b.LineText(line)
	if err != nil {
		return 0, err
	}
	return DisplayWidth(text, tabWidth), nil
}

// Snapshot returns a read-only snapshot of the current buffer state. The
// snapshot shares tree structure with the live buffer, so taking one costs
// a clone of the rope root, not a copy of the text. Safe for concurrent
// access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		rope:       b.rope.Clone(),
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}

// trimLineEnding strips a trailing LF, CRLF, or CR from a line.
func trimLineEnding(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
