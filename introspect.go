// MIT License

package ddkit

// Introspection API (spec.md §6.1 cache_read/cache_write): lets a caller
// extend the kernel with its own cached recursive operations (e.g. a
// domain-specific ZDD fold) without reaching into the package's internal
// operator namespaces. CacheOp is deliberately a distinct exported type
// from the package-private operator, offset well clear of both the BDD
// block (operator.go, 0-7) and the ZDD block (zdd.go, 100+), so a caller
// can never collide with or forge an internal cache entry.
//
// No pack example exposes an equivalent extension point; this is an
// original addition directly transcribing spec.md's Caller API listing,
// built on cache.go's existing lookup/set primitives.
type CacheOp uint32

const userOpBase operator = 10000

// CacheRead looks up a previously cached result for (op, f, g, h), tagged
// with tag (use 0 if the operation has no tag dimension). The second
// return value is false on a miss or a stale hit.
func (m *Manager) CacheRead(op CacheOp, f, g, h Edge, tag int32) (Edge, bool) {
	return m.cache.lookup(userOpBase+operator(op), f, g, h, tag, m.st)
}

// CacheWrite stores res as the result of (op, f, g, h) under tag, and
// returns res unchanged for convenient chaining at a call site's return
// statement.
func (m *Manager) CacheWrite(op CacheOp, f, g, h Edge, tag int32, res Edge) Edge {
	return m.cache.set(userOpBase+operator(op), f, g, h, tag, res)
}
