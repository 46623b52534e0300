// MIT License

/*
Package ddkit implements a reference-counted manager for Binary Decision
Diagrams (BDDs, Bryant-style) and Zero-suppressed Decision Diagrams (ZDDs,
Minato-style), plus a top-down/breadth-first construction framework that
materialises a diagram from a caller-supplied specification.

Basics

A Manager owns a single node store, a shared weak operation cache, and a
variable registry. Every BDD and every ZDD built through the same Manager
share the node store, so structurally identical sub-diagrams of either kind
are never duplicated. Nodes are addressed through Edge, a small tagged
integer: the low bit carries BDD complement polarity (so negation is O(1)
and allocates nothing), the top bit marks a terminal.

Reference counting

Edges returned from Manager methods are owned references: the caller must
balance every kept Edge with a call to Release, and Acquire before storing a
second copy. Internally, every node-to-node edge also carries a unit of
reference count, so a node is eligible for collection exactly when nothing
-- caller or parent node -- still holds a reference to it (the operation
cache holds none); see GC.

Construction framework

Spec is the builder's specification contract (state_size/get_root/get_child
and friends from the specification, see the Spec type). Build drives a
Spec top-down, one frontier per level, and produces a (possibly
non-canonical) diagram that Reduce then folds into BDD or ZDD canonical
form. Subset intersects an already-reduced diagram with a Spec's language
without rebuilding it from scratch.

Use of build tags

Verbose cache/GC statistics and extra logging are available by compiling
with the `debug` build tag.
*/
package ddkit
