// MIT License

package ddkit

// zLevCache implements ZLev (spec.md §4.5.1): for a ZDD node f and a
// level floor L, ZLev(f, L) is the deepest descendant reached from f by
// following 0-edges (variable absent) while the variable at each step
// still has level >= L. Skipping straight to that descendant is valid
// because every level in between contributes nothing (its hi-branch,
// if taken, would have been taken directly; skipping only ever walks
// lo-edges, which never change set membership).
//
// Grounded on spec.md §4.5.1's prose description (no example repo
// implements an equivalent of this cache, since none of the pack's ZDD
// examples maintain a variable-ordered level-skip structure); the
// resolved Open Question (SPEC_FULL.md §9) is that entries are weak
// (non-owning) references, consistent with opCache: the store, not
// this cache, owns reference counts, and invalidate scrubs
// entries naming nodes the store has since collected.
type zLevCache struct {
	entries map[zLevKey]Edge
}

type zLevKey struct {
	f Edge
	l int32
}

func newZLevCache() *zLevCache {
	return &zLevCache{entries: make(map[zLevKey]Edge)}
}

// zSkip returns ZLev(f, floor), computing and caching it lazily
// (post-order: a node's own skip value is derived from its lo child's,
// which is therefore resolved first).
func (m *Manager) zSkip(f Edge, floor int32) Edge {
	if f.IsConst() {
		return f
	}
	if m.level(f) < floor {
		return f
	}
	key := zLevKey{f, floor}
	if cached, ok := m.st.zlev.entries[key]; ok && !m.st.staleEdge(cached) {
		return cached
	}
	n := &m.st.nodes[f.Index()]
	res := f
	if !n.lo.IsConst() && m.level(n.lo) >= floor {
		res = m.zSkip(n.lo, floor)
	}
	m.st.zlev.entries[key] = res
	return res
}

// invalidate drops every cached skip naming a node the store has since
// collected. Called from store.gc alongside opCache's own invalidation.
func (c *zLevCache) invalidate(s *store) {
	for k, v := range c.entries {
		if s.staleEdge(k.f) || s.staleEdge(v) {
			delete(c.entries, k)
		}
	}
}

// IntersecWithSkip is Intersec (spec.md §4.5 intersec) accelerated by
// ZLev: before decomposing either operand at the shared top level, each
// is first skipped down to the deepest node whose level still sits at
// or above that level, short-circuiting any run of levels that
// contribute no branching.
func (m *Manager) IntersecWithSkip(f, g Edge) Edge {
	m.checkEdge(f)
	m.checkEdge(g)
	f, g = m.st.acquire(f), m.st.acquire(g)
	if g < f {
		f, g = g, f
	}
	res := m.zInterSkip(f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}

func (m *Manager) zInterSkip(f, g Edge) Edge {
	switch {
	case f == EdgeFalse || g == EdgeFalse:
		return EdgeFalse
	case f == g:
		return m.st.acquire(f)
	}
	floor := m.level(f)
	if lg := m.level(g); lg < floor {
		floor = lg
	}
	f = m.st.acquire(m.zSkip(f, floor))
	g = m.st.acquire(m.zSkip(g, floor))
	res := m.zBinary(opZInter, f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}
