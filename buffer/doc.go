// Package buffer provides a thread-safe text buffer built on top of the
// rope package. Where the rope treats offset violations as programmer error
// and panics, the buffer is the checked surface intended for hosts: every
// operation validates its offsets and returns an error instead.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Checked, error-returning variants of the rope's edit operations
//   - Coordinate conversion between byte offsets and line/column positions
//   - Cheap read-only snapshots that share structure with the live buffer
//   - Line ending normalization
//   - Revision tracking for change management
//   - Display width measurement (grapheme clusters, tab expansion)
//
// Basic usage:
//
//	// Create a buffer with some text
//	buf := buffer.NewFromString("Hello, World!")
//
//	// Insert text
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//
//	// Delete text
//	buf.Delete(0, 7)  // "Beautiful World!"
//
//	// Get a snapshot for concurrent reading
//	snap := buf.Snapshot()
//	go func() {
//	    text := snap.Text()
//	    // Process text...
//	}()
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock. For scenarios
// requiring multiple reads without the possibility of intervening writes,
// use Snapshot() to obtain a consistent read-only view; snapshots cost one
// rope clone, not a copy of the text.
package buffer
