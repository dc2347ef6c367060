package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSlice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start int
		end   int
		want  string
	}{
		{"whole", "hello world", 0, 11, "hello world"},
		{"prefix", "hello world", 0, 5, "hello"},
		{"suffix", "hello world", 6, 11, "world"},
		{"middle", "hello world", 3, 8, "lo wo"},
		{"empty range", "hello", 2, 2, ""},
		{"unicode", "a世界b", 1, 7, "世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromString(tt.input).Slice(tt.start, tt.end)
			if got := s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := s.LenBytes(); got != len(tt.want) {
				t.Errorf("LenBytes() = %d, want %d", got, len(tt.want))
			}
			if got := s.LenChars(); got != utf8.RuneCountInString(tt.want) {
				t.Errorf("LenChars() = %d, want %d", got, utf8.RuneCountInString(tt.want))
			}
			if got := s.LenLines(); got != strings.Count(tt.want, "\n")+1 {
				t.Errorf("LenLines() = %d, want %d", got, strings.Count(tt.want, "\n")+1)
			}
		})
	}
}

func TestSliceAcrossLeaves(t *testing.T) {
	doc := strings.Repeat("0123456789", MaxLeafSize)
	r := FromString(doc)
	start, end := MaxLeafSize-3, 2*MaxLeafSize+7
	s := r.Slice(start, end)
	if got := s.String(); got != doc[start:end] {
		t.Fatal("content mismatch for slice spanning leaves")
	}
}

func TestSliceOfSlice(t *testing.T) {
	r := FromString("one\ntwo\nthree\nfour")
	outer := r.Slice(4, 13) // "two\nthree"
	inner := outer.Slice(4, 9)
	if got := inner.String(); got != "three" {
		t.Errorf("got %q, want %q", got, "three")
	}
	if got := inner.LenLines(); got != 1 {
		t.Errorf("LenLines() = %d, want 1", got)
	}
}

func TestSlicePanics(t *testing.T) {
	r := FromString("a世b")
	t.Run("end out of range", func(t *testing.T) {
		mustPanic(t, func() { r.Slice(0, 10) })
	})
	t.Run("start after end", func(t *testing.T) {
		mustPanic(t, func() { r.Slice(3, 1) })
	})
	t.Run("mid-character start", func(t *testing.T) {
		mustPanic(t, func() { r.Slice(2, 5) })
	})
	t.Run("mid-character end", func(t *testing.T) {
		mustPanic(t, func() { r.Slice(0, 3) })
	})
}

func TestSliceLine(t *testing.T) {
	r := FromString("one\ntwo\nthree\nfour")
	s := r.Slice(4, 14) // "two\nthree\n"
	wantLines := []string{"two\n", "three\n", ""}
	if got := s.LenLines(); got != len(wantLines) {
		t.Fatalf("LenLines() = %d, want %d", got, len(wantLines))
	}
	for i, want := range wantLines {
		if got := s.Line(i).String(); got != want {
			t.Errorf("Line(%d) = %q, want %q", i, got, want)
		}
	}
	mustPanic(t, func() { s.Line(3) })
	mustPanic(t, func() { s.Line(-1) })
}

func TestSliceConversions(t *testing.T) {
	r := FromString("aé\nbç\ncø")
	s := r.Slice(4, 11) // "bç\ncø" starting mid-document
	text := s.String()

	for n := 0; n < s.LenLines(); n++ {
		byteStart := s.LineToByte(n)
		if got := s.ByteToLine(byteStart); got != n {
			t.Errorf("ByteToLine(LineToByte(%d)) = %d", n, got)
		}
		if got := s.LineToChar(n); got != utf8.RuneCountInString(text[:byteStart]) {
			t.Errorf("LineToChar(%d) = %d", n, got)
		}
	}

	charIdx := 0
	for i := range text {
		if got := s.ByteToChar(i); got != charIdx {
			t.Errorf("ByteToChar(%d) = %d, want %d", i, got, charIdx)
		}
		if got := s.CharToByte(charIdx); got != i {
			t.Errorf("CharToByte(%d) = %d, want %d", charIdx, got, i)
		}
		charIdx++
	}
	if got := s.CharToByte(s.LenChars()); got != s.LenBytes() {
		t.Errorf("CharToByte(LenChars()) = %d, want %d", got, s.LenBytes())
	}
	if got := s.CharToLine(s.ByteToChar(4)); got != 1 {
		t.Errorf("CharToLine at start of second line = %d, want 1", got)
	}
}

func TestEmptySlice(t *testing.T) {
	s := FromString("hello").Slice(2, 2)
	if s.LenBytes() != 0 || s.LenChars() != 0 {
		t.Error("empty slice should report zero length")
	}
	if got := s.LenLines(); got != 1 {
		t.Errorf("LenLines() = %d, want 1", got)
	}
	if got := s.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}
