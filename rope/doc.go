// Package rope provides a persistent rope data structure for efficient
// UTF-8 text storage and manipulation.
//
// A rope is a binary tree where leaf nodes hold contiguous text chunks and
// inner nodes cache aggregate metrics (byte length, character count,
// newline count) for their left subtree. The cached metrics allow offset,
// character, and line lookups to descend the tree in O(log n) instead of
// scanning text.
//
// Key features:
//   - O(log n) insertion and deletion at arbitrary byte offsets
//   - O(1) cloning with structural sharing via copy-on-write nodes
//   - Simultaneous indexing by byte offset, character offset, and line
//   - Zero-copy slices and chunked iteration over shared subtrees
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r.Insert(5, ",")            // "hello, world"
//	r.Remove(0, 7)              // "world"
//	text := r.String()          // "world"
//
// A Rope is mutated in place by at most one logical owner at a time.
// Clones obtained from Clone share the tree until one side mutates, at
// which point only the nodes on the path to the edit are copied; the
// other side never observes the change. Read-only operations (queries,
// slices, iterators) are safe to run concurrently on ropes that share
// structure, because reads never modify shared state.
package rope
