package rope

import (
	"strings"
	"unicode/utf8"
)

// Leaf size tunables. MaxLeafSize bounds the chunk length yielded during
// iteration and keeps tree depth logarithmic in document size; leaves that
// shrink below MinLeafSize combined with their sibling are merged back into
// one leaf to limit long-term fragmentation. The exact thresholds only
// affect performance, never visible behavior.
const (
	// MaxLeafSize is the maximum bytes per leaf before splitting.
	MaxLeafSize = 4096

	// MinLeafSize is the combined size under which two sibling leaves are
	// merged after a removal.
	MinLeafSize = 512
)

// node is one vertex of the rope tree. A node is either a leaf owning one
// UTF-8 chunk, or an inner node owning two children. Inner nodes cache the
// summary of their left subtree only; right-subtree metrics are derived
// during descent by subtracting the cache from running totals, so a
// structural change only dirties the caches of ancestors of the left edge
// it touched.
type node struct {
	// Leaf field. Valid only when left is empty.
	data string

	// Inner fields. The node is inner exactly when left holds a box.
	left    handle
	right   handle
	leftSum Summary
}

func newLeaf(data string) node {
	return node{data: data}
}

func newInner(left, right node) node {
	n := node{left: newHandle(left), right: newHandle(right)}
	n.refreshLeftSum()
	return n
}

// makeNode builds a leaf or a balanced subtree depending on text size.
func makeNode(s string) node {
	if len(s) <= MaxLeafSize {
		return newLeaf(s)
	}
	return splitText(s)
}

// splitText builds a subtree for text larger than a single leaf, splitting
// recursively at the UTF-8 boundary nearest the midpoint.
func splitText(s string) node {
	mid := lastUTF8Boundary(s[:len(s)/2])
	var left, right node
	if mid <= MaxLeafSize {
		left = newLeaf(s[:mid])
	} else {
		left = splitText(s[:mid])
	}
	if len(s)-mid <= MaxLeafSize {
		right = newLeaf(s[mid:])
	} else {
		right = splitText(s[mid:])
	}
	return newInner(left, right)
}

func (n *node) isLeaf() bool {
	return n.left.box == nil
}

// cloneShallow copies the node itself; children stay shared and gain an
// owner each.
func (n *node) cloneShallow() node {
	c := *n
	if !n.isLeaf() {
		c.left = n.left.retain()
		c.right = n.right.retain()
	}
	return c
}

// refreshLeftSum recomputes the cached left-subtree summary. Called eagerly
// after every structural change beneath an inner node; caches are never
// left stale.
func (n *node) refreshLeftSum() {
	if !n.isLeaf() {
		n.leftSum = n.left.read().summary()
	}
}

// summary computes the aggregate metrics of the whole subtree, descending
// the right spine and adding cached left summaries along the way.
func (n *node) summary() Summary {
	if n.isLeaf() {
		return Summarize(n.data)
	}
	return n.leftSum.Add(n.right.read().summary())
}

func (n *node) lenBytes() int {
	if n.isLeaf() {
		return len(n.data)
	}
	return n.leftSum.Bytes + n.right.read().lenBytes()
}

func (n *node) numChars() int {
	if n.isLeaf() {
		return utf8.RuneCountInString(n.data)
	}
	return n.leftSum.Chars + n.right.read().numChars()
}

func (n *node) numNewlines() int {
	if n.isLeaf() {
		return countNewlines(n.data)
	}
	return n.leftSum.Newlines + n.right.read().numNewlines()
}

// newlinesUpTo returns the newline count in the first index bytes.
func (n *node) newlinesUpTo(index int) int {
	if n.isLeaf() {
		return countNewlines(n.data[:index])
	}
	if index <= n.leftSum.Bytes {
		return n.left.read().newlinesUpTo(index)
	}
	return n.leftSum.Newlines + n.right.read().newlinesUpTo(index-n.leftSum.Bytes)
}

// charsUpTo returns the character count in the first index bytes.
// index must fall on a character boundary.
func (n *node) charsUpTo(index int) int {
	if n.isLeaf() {
		return utf8.RuneCountInString(n.data[:index])
	}
	if index <= n.leftSum.Bytes {
		return n.left.read().charsUpTo(index)
	}
	return n.leftSum.Chars + n.right.read().charsUpTo(index-n.leftSum.Bytes)
}

// offsetForNewline returns the byte offset of the idx-th newline.
// idx must be < numNewlines().
func (n *node) offsetForNewline(idx int) int {
	if n.isLeaf() {
		off := 0
		for {
			j := strings.IndexByte(n.data[off:], '\n')
			if j < 0 {
				panic("rope: newline index out of bounds")
			}
			if idx == 0 {
				return off + j
			}
			idx--
			off += j + 1
		}
	}
	if idx < n.leftSum.Newlines {
		return n.left.read().offsetForNewline(idx)
	}
	return n.leftSum.Bytes + n.right.read().offsetForNewline(idx-n.leftSum.Newlines)
}

// offsetForChar returns the byte offset of the idx-th character.
// idx must be < numChars().
func (n *node) offsetForChar(idx int) int {
	if n.isLeaf() {
		for i := range n.data {
			if idx == 0 {
				return i
			}
			idx--
		}
		panic("rope: char index out of bounds")
	}
	if idx < n.leftSum.Chars {
		return n.left.read().offsetForChar(idx)
	}
	return n.leftSum.Bytes + n.right.read().offsetForChar(idx-n.leftSum.Chars)
}

// isCharBoundary reports whether byte offset index falls on a UTF-8
// character boundary. Leaf boundaries are always character boundaries, so
// only the containing leaf needs inspecting.
func (n *node) isCharBoundary(index int) bool {
	for !n.isLeaf() {
		if index < n.leftSum.Bytes {
			n = n.left.read()
		} else {
			index -= n.leftSum.Bytes
			n = n.right.read()
		}
	}
	return index == len(n.data) || utf8.RuneStart(n.data[index])
}

// insert splices text into the subtree at the given byte offset, cloning
// only nodes on the descent path that other owners still reference.
func (h *handle) insert(index int, text string) {
	h.mutate(func(n *node) {
		if n.isLeaf() {
			if lastUTF8Boundary(n.data[:index]) != index {
				panic("rope: insert offset splits a UTF-8 character")
			}
			buf := n.data[:index] + text + n.data[index:]
			if len(buf) <= MaxLeafSize {
				n.data = buf
			} else {
				*n = splitText(buf)
			}
		} else {
			ll := n.leftSum.Bytes
			// On a boundary offset, descend into the smaller side to keep
			// growth roughly balanced.
			if index < ll || (index == ll && ll < n.right.read().lenBytes()) {
				n.left.insert(index, text)
			} else {
				n.right.insert(index-ll, text)
			}
		}
		n.refreshLeftSum()
	})
}

// remove deletes the byte range [start, end) from the subtree. Removal of
// the entire document is handled above this level; here an emptied child is
// collapsed away so no zero-length leaf survives under an inner node, and
// undersized sibling leaves are merged.
func (h *handle) remove(start, end int) {
	h.mutate(func(n *node) {
		if n.isLeaf() {
			n.data = n.data[:start] + n.data[end:]
			return
		}
		ll := n.leftSum.Bytes
		switch {
		case end <= ll:
			n.left.remove(start, end)
		case start >= ll:
			n.right.remove(start-ll, end-ll)
		default:
			n.left.remove(start, ll)
			n.right.remove(0, end-ll)
		}
		switch {
		case n.left.read().lenBytes() == 0:
			n.adopt(&n.right, &n.left)
		case n.right.read().lenBytes() == 0:
			n.adopt(&n.left, &n.right)
		default:
			n.mergeSmallLeaves()
		}
		n.refreshLeftSum()
	})
}

// adopt replaces n with the node held by keep, releasing both child
// handles. Called only while n is uniquely owned.
func (n *node) adopt(keep, drop *handle) {
	kept := *keep
	dropped := *drop
	*n = kept.read().cloneShallow()
	kept.release()
	dropped.release()
}

// mergeSmallLeaves folds two undersized sibling leaves back into a single
// leaf. Called only while n is uniquely owned.
func (n *node) mergeSmallLeaves() {
	l, r := n.left.read(), n.right.read()
	if !l.isLeaf() || !r.isLeaf() || len(l.data)+len(r.data) > MinLeafSize {
		return
	}
	left, right := n.left, n.right
	*n = newLeaf(l.data + r.data)
	left.release()
	right.release()
}
