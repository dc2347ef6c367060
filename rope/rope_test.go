package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func mustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected panic, got none")
		}
	}()
	fn()
}

func TestNew(t *testing.T) {
	r := New()
	if r.LenBytes() != 0 {
		t.Errorf("new rope should have 0 bytes, got %d", r.LenBytes())
	}
	if r.LenChars() != 0 {
		t.Errorf("new rope should have 0 chars, got %d", r.LenChars())
	}
	if r.LenLines() != 1 {
		t.Errorf("new rope should have 1 line, got %d", r.LenLines())
	}
	if r.String() != "" {
		t.Errorf("new rope String() should be empty, got %q", r.String())
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"short string", "hello"},
		{"with newline", "hello\nworld"},
		{"multiple newlines", "a\nb\nc\nd"},
		{"unicode", "hello 世界 🌍"},
		{"long string", strings.Repeat("abcdefghij", 100)},
		{"larger than one leaf", strings.Repeat("x", MaxLeafSize*3+17)},
		{"multibyte across leaves", strings.Repeat("héllo wörld\n", 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if got := r.String(); got != tt.input {
				t.Errorf("String() = %q, want %q", got, tt.input)
			}
			if got := r.LenBytes(); got != len(tt.input) {
				t.Errorf("LenBytes() = %d, want %d", got, len(tt.input))
			}
			if got := r.LenChars(); got != utf8.RuneCountInString(tt.input) {
				t.Errorf("LenChars() = %d, want %d", got, utf8.RuneCountInString(tt.input))
			}
			if got := r.LenLines(); got != strings.Count(tt.input, "\n")+1 {
				t.Errorf("LenLines() = %d, want %d", got, strings.Count(tt.input, "\n")+1)
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   int
		text     string
		expected string
	}{
		{"insert at start", "world", 0, "hello ", "hello world"},
		{"insert at end", "hello", 5, " world", "hello world"},
		{"insert in middle", "helloworld", 5, " ", "hello world"},
		{"insert into empty", "", 0, "hello", "hello"},
		{"insert empty string", "hello", 3, "", "hello"},
		{"insert unicode", "hello", 5, " 世界", "hello 世界"},
		{"insert at unicode boundary", "世界", 3, "!", "世!界"},
		{"insert with newlines", "ab", 1, "\n\n", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r.Insert(tt.offset, tt.text)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
			if got := r.LenBytes(); got != len(tt.expected) {
				t.Errorf("LenBytes() = %d, want %d", got, len(tt.expected))
			}
		})
	}
}

func TestInsertGrowsLeaves(t *testing.T) {
	r := New()
	var want strings.Builder
	piece := "0123456789abcdef"
	for i := 0; i < 2000; i++ {
		r.Insert(r.LenBytes(), piece)
		want.WriteString(piece)
	}
	if got := r.String(); got != want.String() {
		t.Fatal("content mismatch after repeated appends")
	}
	if got := r.LenBytes(); got != want.Len() {
		t.Errorf("LenBytes() = %d, want %d", got, want.Len())
	}
}

func TestInsertRune(t *testing.T) {
	r := FromString("ac")
	r.InsertRune(1, 'b')
	r.InsertRune(3, '語')
	if got := r.String(); got != "abc語" {
		t.Errorf("got %q, want %q", got, "abc語")
	}
}

func TestInsertPanics(t *testing.T) {
	t.Run("offset past end", func(t *testing.T) {
		r := FromString("hello")
		mustPanic(t, func() { r.Insert(6, "x") })
	})
	t.Run("negative offset", func(t *testing.T) {
		r := FromString("hello")
		mustPanic(t, func() { r.Insert(-1, "x") })
	})
	t.Run("mid-character offset", func(t *testing.T) {
		r := FromString("世界")
		mustPanic(t, func() { r.Insert(1, "x") })
	})
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		start    int
		end      int
		expected string
	}{
		{"remove from start", "hello world", 0, 6, "world"},
		{"remove from end", "hello world", 5, 11, "hello"},
		{"remove from middle", "hello world", 5, 6, "helloworld"},
		{"remove all", "hello", 0, 5, ""},
		{"remove nothing", "hello", 3, 3, "hello"},
		{"remove unicode", "a世b", 1, 4, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r.Remove(tt.start, tt.end)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRemoveAllResets(t *testing.T) {
	r := FromString(strings.Repeat("line of text\n", 5000))
	r.Remove(0, r.LenBytes())
	if r.LenBytes() != 0 {
		t.Errorf("LenBytes() = %d, want 0", r.LenBytes())
	}
	if r.LenLines() != 1 {
		t.Errorf("LenLines() = %d, want 1", r.LenLines())
	}
	r.Insert(0, "fresh")
	if got := r.String(); got != "fresh" {
		t.Errorf("got %q, want %q", got, "fresh")
	}
}

func TestRemoveAcrossLeaves(t *testing.T) {
	// Build a multi-leaf tree and remove a range spanning several leaves.
	doc := strings.Repeat("abcdefghij", MaxLeafSize)
	r := FromString(doc)
	start, end := MaxLeafSize/2, len(doc)-MaxLeafSize/2
	r.Remove(start, end)
	want := doc[:start] + doc[end:]
	if got := r.String(); got != want {
		t.Fatal("content mismatch after cross-leaf removal")
	}
	if got := r.LenBytes(); got != len(want) {
		t.Errorf("LenBytes() = %d, want %d", got, len(want))
	}
}

func TestRemovePanics(t *testing.T) {
	t.Run("end past length", func(t *testing.T) {
		r := FromString("hello")
		mustPanic(t, func() { r.Remove(0, 6) })
	})
	t.Run("start after end", func(t *testing.T) {
		r := FromString("hello")
		mustPanic(t, func() { r.Remove(3, 2) })
	})
	t.Run("mid-character boundary", func(t *testing.T) {
		r := FromString("世界")
		mustPanic(t, func() { r.Remove(0, 1) })
	})
}

func TestByteToCharPanicsMidCharacter(t *testing.T) {
	r := FromString("世界abc")
	if got := r.ByteToChar(3); got != 1 {
		t.Errorf("ByteToChar(3) = %d, want 1", got)
	}
	mustPanic(t, func() { r.ByteToChar(1) })
	mustPanic(t, func() { r.ByteToChar(4) })

	s := r.Slice(3, 9) // "界abc"
	if got := s.ByteToChar(3); got != 1 {
		t.Errorf("slice ByteToChar(3) = %d, want 1", got)
	}
	mustPanic(t, func() { s.ByteToChar(1) })
}

func TestRemoveInsertInverse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"single leaf", "hello world"},
		{"multi leaf", strings.Repeat("abcdefghij\n", 2000)},
		{"unicode", strings.Repeat("héllo 世界\n", 1500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.doc)
			chars := r.LenChars()
			windows := [][2]int{
				{0, chars},
				{0, chars / 3},
				{chars / 4, 3 * chars / 4},
				{chars / 2, chars / 2},
			}
			for _, w := range windows {
				a, b := r.CharToByte(w[0]), r.CharToByte(w[1])
				removed := r.Slice(a, b).String()
				r.Remove(a, b)
				r.Insert(a, removed)
				if got := r.String(); got != tt.doc {
					t.Fatalf("window %v: reinserting the removed text did not restore the document", w)
				}
				if r.LenBytes() != len(tt.doc) || r.LenChars() != chars {
					t.Fatalf("window %v: metrics drifted after remove and reinsert", w)
				}
			}
		})
	}
}

func TestIsCharBoundary(t *testing.T) {
	r := FromString("a世b")
	want := map[int]bool{0: true, 1: true, 2: false, 3: false, 4: true, 5: true}
	for off, expect := range want {
		if got := r.IsCharBoundary(off); got != expect {
			t.Errorf("IsCharBoundary(%d) = %v, want %v", off, got, expect)
		}
	}
	if r.IsCharBoundary(-1) || r.IsCharBoundary(6) {
		t.Error("out-of-range offsets should not be boundaries")
	}
}

func TestSummary(t *testing.T) {
	r := FromString("héllo\nwörld")
	sum := r.Summary()
	if sum.Bytes != 13 || sum.Chars != 11 || sum.Newlines != 1 {
		t.Errorf("Summary() = %+v, want {Bytes:13 Chars:11 Newlines:1}", sum)
	}
}

func TestOffsetConversions(t *testing.T) {
	text := "aé漢\nbç\n🌍z"
	r := FromString(text)

	byteOffsets := []int{}
	for i := range text {
		byteOffsets = append(byteOffsets, i)
	}
	byteOffsets = append(byteOffsets, len(text))

	for charIdx, byteOff := range byteOffsets {
		if got := r.CharToByte(charIdx); got != byteOff {
			t.Errorf("CharToByte(%d) = %d, want %d", charIdx, got, byteOff)
		}
		if got := r.ByteToChar(byteOff); got != charIdx {
			t.Errorf("ByteToChar(%d) = %d, want %d", byteOff, got, charIdx)
		}
	}
}

func TestLineConversions(t *testing.T) {
	r := FromString("one\ntwo\n\nfour")

	lineStarts := []int{0, 4, 8, 9}
	for n, start := range lineStarts {
		if got := r.LineToByte(n); got != start {
			t.Errorf("LineToByte(%d) = %d, want %d", n, got, start)
		}
		if got := r.ByteToLine(start); got != n {
			t.Errorf("ByteToLine(%d) = %d, want %d", start, got, n)
		}
	}

	// A newline belongs to the line it terminates.
	if got := r.ByteToLine(3); got != 0 {
		t.Errorf("ByteToLine(3) = %d, want 0", got)
	}
	// The offset one past a newline starts the next line.
	if got := r.ByteToLine(4); got != 1 {
		t.Errorf("ByteToLine(4) = %d, want 1", got)
	}
	// Round trip holds for every line.
	for n := 0; n < r.LenLines(); n++ {
		if got := r.ByteToLine(r.LineToByte(n)); got != n {
			t.Errorf("ByteToLine(LineToByte(%d)) = %d", n, got)
		}
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lines []string
	}{
		{"simple", "one\ntwo\nthree", []string{"one\n", "two\n", "three"}},
		{"trailing newline", "a\nb\n", []string{"a\n", "b\n", ""}},
		{"empty lines", "\n\n", []string{"\n", "\n", ""}},
		{"single line", "no newline here", []string{"no newline here"}},
		{"empty", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if got := r.LenLines(); got != len(tt.lines) {
				t.Fatalf("LenLines() = %d, want %d", got, len(tt.lines))
			}
			for i, want := range tt.lines {
				if got := r.Line(i).String(); got != want {
					t.Errorf("Line(%d) = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestLargeDocumentEdit(t *testing.T) {
	line := strings.Repeat("abcdefghijklmnopqrst", 10) + "\n"
	doc := strings.Repeat(line, 12)
	r := FromString(doc)

	if got := r.LenChars(); got != 2412 {
		t.Fatalf("LenChars() = %d, want 2412", got)
	}
	if got := r.LenLines(); got != 13 {
		t.Fatalf("LenLines() = %d, want 13", got)
	}

	// Insert four characters five chars into line 5.
	off := r.CharToByte(r.LineToChar(5) + 5)
	r.Insert(off, "XYZA")

	if got := r.LenChars(); got != 2416 {
		t.Errorf("LenChars() = %d, want 2416", got)
	}
	wantLine := line[:5] + "XYZA" + line[5:]
	if got := r.Line(5).String(); got != wantLine {
		t.Errorf("line 5 mismatch after insert")
	}
	if got := r.Line(4).String(); got != line {
		t.Errorf("line 4 changed by insert into line 5")
	}
}
