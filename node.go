// MIT License

package ddkit

// varID is a stable variable identifier (spec.md §3.1); its dynamic level
// is looked up through the registry (registry.go), never stored directly
// on a node.
type varID int32

// Kind distinguishes a BDD node from a ZDD node. Both kinds coexist in one
// node store (spec.md §3.2): the distinction is held in the node's own k
// field (see node below), not on its lo edge.
type Kind uint8

const (
	// KindBDD nodes never carry a complement bit on their lo edge.
	KindBDD Kind = iota
	// KindZDD nodes never carry a complement edge at all (ZDD has no
	// negation).
	KindZDD
)

// node is the fixed-layout record held in the store's node array (spec.md
// §3.2). Grounded on the teacher's huddnode/bddNode layout, generalised to
// typed Edges so polarity travels with the edge rather than being
// re-derived from the raw node index.
//
// spec.md §3.2 asks for the BDD/ZDD distinction to be packed into the low
// bit of lo. Its own §9 design notes explicitly license the alternative
// taken here -- "a reimplementation may prefer a one-bit field in the node
// header" -- because packing it into lo collides with the case of a ZDD
// node whose 0-edge is itself the false terminal (EdgeFalse and EdgeTrue
// differ only in that same bit, so OR-ing a marker into lo would make the
// two indistinguishable after masking). A dedicated field keeps both
// terminal values representable as a ZDD's lo child.
type node struct {
	lo, hi Edge
	v      varID
	k      Kind
	rc     uint32 // saturates at maxRefcount; overflow tracked in store.overflow
	next   int32  // free-list link (dead) or hash-bucket chain link (live)
}

// kind reports whether n is to be interpreted as a BDD or ZDD node.
func (n *node) kind() Kind { return n.k }

// dead reports whether this slot is on the free list rather than holding a
// live node (spec.md §3.3: "The free list contains exactly the nodes whose
// var is 0").
func (n *node) dead() bool { return n.v == 0 }
