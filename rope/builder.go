package rope

import (
	"errors"
	"io"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when input bytes fed to a Builder do not form
// valid UTF-8. It is the only recoverable error in the package; once a rope
// exists its contents are valid by construction.
var ErrInvalidUTF8 = errors.New("rope: input is not valid UTF-8")

// Builder assembles a rope from streamed input without intermediate
// whole-document buffering. Bytes accumulate into full-size leaves as they
// arrive; Build links the leaves into a balanced tree bottom-up, giving
// O(n) construction instead of the O(n log n) of repeated appends.
//
// A Builder validates its input. A multi-byte character split across Write
// calls is fine; bytes that can never complete a valid sequence poison the
// builder and every subsequent call reports ErrInvalidUTF8.
type Builder struct {
	leaves []string
	pend   []byte
	err    error
}

// WriteString appends text to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Write appends bytes to the builder, carving off full leaves as enough
// data accumulates. It implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	b.pend = append(b.pend, p...)
	for len(b.pend) >= MaxLeafSize {
		end := lastUTF8Boundary(string(b.pend[:MaxLeafSize]))
		chunk := string(b.pend[:end])
		if !utf8.ValidString(chunk) {
			b.err = ErrInvalidUTF8
			return 0, b.err
		}
		b.leaves = append(b.leaves, chunk)
		b.pend = b.pend[end:]
	}
	return len(p), nil
}

// ReadFrom drains r into the builder. It implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			total += int64(n)
			if _, werr := b.Write(buf[:n]); werr != nil {
				return total, werr
			}
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Build validates any buffered tail and links the accumulated leaves into a
// balanced tree by pairing adjacent nodes level by level. The builder is
// reset and may be reused.
func (b *Builder) Build() (*Rope, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.pend) > 0 {
		tail := string(b.pend)
		if !utf8.ValidString(tail) {
			b.err = ErrInvalidUTF8
			return nil, b.err
		}
		b.leaves = append(b.leaves, tail)
		b.pend = nil
	}
	if len(b.leaves) == 0 {
		return New(), nil
	}
	nodes := make([]node, len(b.leaves))
	for i, s := range b.leaves {
		nodes[i] = newLeaf(s)
	}
	b.leaves = nil
	for len(nodes) > 1 {
		next := make([]node, 0, (len(nodes)+1)/2)
		for i := 0; i+1 < len(nodes); i += 2 {
			next = append(next, newInner(nodes[i], nodes[i+1]))
		}
		if len(nodes)%2 == 1 {
			next = append(next, nodes[len(nodes)-1])
		}
		nodes = next
	}
	return &Rope{root: newHandle(nodes[0])}, nil
}
