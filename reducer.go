// MIT License

package ddkit

import "fmt"

// DD Reducer (C9, spec.md §4.9, "Algorithm R"): folds a Builder's raw
// table into the Manager's hash-consed store. Grounded on
// original_source's DdReducer.hpp, whose two jobs -- per-level deletion
// rule (drop a node equal to one of its own children) and equivalence
// merge (unify nodes with identical (level, lo, hi)) via a temporary
// intrusive list folded at the end of each level -- are both already
// performed by store.makeNode on every call, since this store's
// hash-consing is permanent across the Manager's whole lifetime rather
// than scoped to one reduction pass. Reduce therefore only needs a single
// bottom-up translation walk; there is no separate merge-list bookkeeping
// to reimplement, and no k>2 hash-table fallback, since this package only
// ever builds binary (BDD/ZDD) diagrams.
func (m *Manager) Reduce(dd *rawDD, kind Kind) (Edge, error) {
	memo := make(map[rawRef]Edge, len(dd.nodes))
	return m.reduceRef(dd, dd.root, kind, memo)
}

func (m *Manager) reduceRef(dd *rawDD, r rawRef, kind Kind, memo map[rawRef]Edge) (Edge, error) {
	switch r {
	case rawFalseRef:
		return EdgeFalse, nil
	case rawTrueRef:
		return m.st.acquire(EdgeTrue), nil
	}
	if !r.isNode() || int(r) >= len(dd.nodes) {
		return EdgeNull, fmt.Errorf("ddkit: reducer: malformed raw reference %d", r)
	}
	if e, ok := memo[r]; ok {
		return m.st.acquire(e), nil
	}

	n := dd.nodes[r]
	for int32(m.reg.topLevel()) < n.level {
		m.NewVar()
	}

	m.enter()
	lo, err := m.reduceRef(dd, n.lo, kind, memo)
	if err != nil {
		m.leave()
		return EdgeNull, err
	}
	hi, err := m.reduceRef(dd, n.hi, kind, memo)
	m.leave()
	if err != nil {
		m.st.release(lo)
		return EdgeNull, err
	}

	v := m.reg.variable(n.level)
	var e Edge
	switch kind {
	case KindBDD:
		e = m.makeBDD(v, lo, hi)
	default:
		e = makeZDD(m, v, lo, hi)
	}
	memo[r] = e
	return m.st.acquire(e), nil
}
