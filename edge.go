// MIT License

package ddkit

import "fmt"

// Edge is a decision-diagram handle: a small tagged integer, not a pointer
// (spec.md §3.1, §9). Layout, from the top bit down:
//
//	bit 31      constant bit: set iff the edge denotes a terminal
//	bit 0       complement bit: BDD polarity (meaningless on a ZDD edge,
//	            which is never negated -- see node.go for where the
//	            BDD/ZDD distinction actually lives)
//	bits 1..30  payload: terminal value (bit 0) or node-store index
//
// Two edges that agree on the constant bit and payload but differ in the
// complement bit name the same node with opposite polarity; hash-consing
// always happens on the complement-stripped payload.
type Edge uint32

const (
	edgeConstBit  Edge = 1 << 31
	edgeComplBit  Edge = 1
	edgeIndexMask Edge = 0x7FFFFFFE
)

// EdgeFalse and EdgeTrue are the two terminal edges. There is no node-store
// slot for either: both are recognised purely from their bit pattern.
const (
	EdgeFalse Edge = edgeConstBit
	EdgeTrue  Edge = edgeConstBit | edgeComplBit

	// EdgeNull is the reserved value returned on out-of-memory / invalid
	// input (spec.md §3.1 "a null edge"). It can never be produced by
	// mkInternal or the two terminal constructors.
	EdgeNull Edge = 0x7FFFFFFF
)

// mkInternal builds the edge for node-store index idx with the given
// complement polarity.
func mkInternal(idx int32, compl bool) Edge {
	e := Edge(uint32(idx)) << 1
	if compl {
		e |= edgeComplBit
	}
	return e
}

// IsConst reports whether e names a terminal.
func (e Edge) IsConst() bool { return e&edgeConstBit != 0 }

// IsCompl reports whether e's complement bit is set.
func (e Edge) IsCompl() bool { return e&edgeComplBit != 0 }

// Index returns the node-store index named by e. It is meaningless for a
// terminal edge.
func (e Edge) Index() int32 { return int32((e &^ edgeConstBit) >> 1) }

// Negate flips the complement bit in O(1), without touching the store
// (spec.md §4.4 "negate(f)").
func (e Edge) Negate() Edge { return e ^ edgeComplBit }

// Bool reports the boolean value of a terminal edge; only meaningful when
// IsConst() is true.
func (e Edge) Bool() bool { return e.IsCompl() }

// BoolEdge returns EdgeTrue or EdgeFalse.
func BoolEdge(v bool) Edge {
	if v {
		return EdgeTrue
	}
	return EdgeFalse
}

func (e Edge) String() string {
	switch e {
	case EdgeNull:
		return "null"
	case EdgeTrue:
		return "T"
	case EdgeFalse:
		return "F"
	}
	if e.IsCompl() {
		return fmt.Sprintf("!%d", e.Index())
	}
	return fmt.Sprintf("%d", e.Index())
}
