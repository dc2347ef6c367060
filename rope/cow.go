package rope

import "sync/atomic"

// sharedNode is the refcounted box that lets multiple ropes own one subtree.
// The count tracks logical owners (parent nodes and rope roots), not Go
// references; memory reclamation itself is left to the garbage collector.
type sharedNode struct {
	refs atomic.Int32
	node node
}

// handle is a copy-on-write owner of a tree node. Copying a handle value
// does not add an owner; use retain to register one.
type handle struct {
	box *sharedNode
}

// newHandle wraps a node in a fresh box with a single owner.
func newHandle(n node) handle {
	b := &sharedNode{node: n}
	b.refs.Store(1)
	return handle{box: b}
}

// read returns the node for read-only access. It never clones.
func (h handle) read() *node {
	return &h.box.node
}

// retain registers an additional owner of the node and returns its handle.
func (h handle) retain() handle {
	h.box.refs.Add(1)
	return h
}

// release drops one owner. When the last owner is gone, the node's children
// are released as well, so every descendant's owner count stays exact.
func (h handle) release() {
	if h.box == nil {
		return
	}
	if h.box.refs.Add(-1) == 0 {
		n := &h.box.node
		if !n.isLeaf() {
			n.left.release()
			n.right.release()
		}
	}
}

// mutate applies f to a node this handle exclusively owns. If the node is
// shared, the node alone is cloned first; its children remain shared with
// the other owners and are retained by the clone. Sibling owners keep
// observing the pre-mutation node unchanged.
func (h *handle) mutate(f func(*node)) {
	if h.box.refs.Load() > 1 {
		clone := h.box.node.cloneShallow()
		h.release()
		b := &sharedNode{node: clone}
		b.refs.Store(1)
		h.box = b
	}
	f(&h.box.node)
}

// isShared reports whether more than one owner references the node.
// Primarily used for testing.
func (h handle) isShared() bool {
	return h.box.refs.Load() > 1
}
