package rope

import (
	"strings"
	"unicode/utf8"
)

// Summary holds the aggregate metrics cached by inner tree nodes: the byte
// length, character count, and newline count of a text span.
type Summary struct {
	Bytes    int
	Chars    int
	Newlines int
}

// Add combines the summaries of two adjacent spans.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes:    s.Bytes + other.Bytes,
		Chars:    s.Chars + other.Chars,
		Newlines: s.Newlines + other.Newlines,
	}
}

// Summarize computes the metrics for a string in a single scan.
func Summarize(s string) Summary {
	sum := Summary{Bytes: len(s)}
	for _, r := range s {
		sum.Chars++
		if r == '\n' {
			sum.Newlines++
		}
	}
	return sum
}

// countNewlines returns the number of newline bytes in s.
func countNewlines(s string) int {
	return strings.Count(s, "\n")
}

// lastUTF8Boundary returns the largest n <= len(s) such that s[:n] does not
// end in the middle of a multi-byte UTF-8 sequence. Only truncated trailing
// sequences are backed out of; byte runs that are invalid UTF-8 outright are
// reported as-is and left for validation to reject.
func lastUTF8Boundary(s string) int {
	i := len(s)
	for i > 0 && len(s)-i < utf8.UTFMax && !utf8.RuneStart(s[i-1]) {
		i--
	}
	if i == 0 || !utf8.RuneStart(s[i-1]) {
		return len(s)
	}
	start := i - 1
	if start+runeLen(s[start]) > len(s) {
		return start
	}
	return len(s)
}

// runeLen returns the encoded length a UTF-8 sequence claims via its lead
// byte. Invalid lead bytes count as length 1.
func runeLen(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}
