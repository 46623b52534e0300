// MIT License

package ddkit

import "math/big"

// Counting & Query (C6, spec.md §4.6). All of these are single-operand
// recursions. The counting queries are memoised in a local map rather
// than the shared opCache: unlike apply/cofactor/replace, their result is
// a plain count derived from a roots list that is gone by the time the
// call returns, so there is nothing worth keeping warm across calls.
// CostLE, which returns an edge, caches in the shared opCache under
// opZCostLE.
// Grounded on the teacher's Allnodes-style DFS machinery in bdd.go,
// generalised to sized/weighted/bounded queries that teacher never
// implements.

// NodeSize returns the number of distinct non-terminal nodes reachable
// from f (spec.md §4.6 node_size). Grounded on Allnodes, using a
// caller-local visited set rather than the teacher's node.next
// scratch-bit trick: this is a read-only query running between GCs, and
// the one extra map avoids overloading a field store.gc also reads.
func (m *Manager) NodeSize(f Edge) int {
	m.checkEdge(f)
	return m.MultiSize([]Edge{f})
}

// MultiSize returns the number of distinct non-terminal nodes reachable
// from the union of roots, counting shared subgraphs once (spec.md §4.6
// multi_size).
func (m *Manager) MultiSize(roots []Edge) int {
	visited := make(map[Edge]bool)
	var walk func(Edge)
	walk = func(e Edge) {
		if e.IsCompl() {
			e = e.Negate()
		}
		if e.IsConst() || visited[e] {
			return
		}
		visited[e] = true
		n := &m.st.nodes[e.Index()]
		walk(n.lo)
		walk(n.hi)
	}
	for _, r := range roots {
		m.checkEdge(r)
		walk(r)
	}
	return len(visited)
}

// CardinalityBig returns the number of members of the ZDD family f
// (spec.md §4.6 cardinality/cardinality_big), as an arbitrary-precision
// integer: a family over many variables can have more members than fit
// in 64 bits.
func (m *Manager) CardinalityBig(f Edge) *big.Int {
	m.checkEdge(f)
	return m.zcount(f, make(map[Edge]*big.Int))
}

func (m *Manager) zcount(f Edge, memo map[Edge]*big.Int) *big.Int {
	switch f {
	case EdgeFalse:
		return big.NewInt(0)
	case EdgeTrue:
		return big.NewInt(1)
	}
	if v, ok := memo[f]; ok {
		return v
	}
	n := &m.st.nodes[f.Index()]
	res := new(big.Int).Add(m.zcount(n.lo, memo), m.zcount(n.hi, memo))
	memo[f] = res
	return res
}

// LiteralCount returns the sum, over every member of the ZDD family f,
// of the member's size (spec.md §4.6 literal_count).
func (m *Manager) LiteralCount(f Edge) *big.Int {
	m.checkEdge(f)
	cmemo := make(map[Edge]*big.Int)
	lmemo := make(map[Edge]*big.Int)
	return m.zliterals(f, cmemo, lmemo)
}

func (m *Manager) zliterals(f Edge, cmemo, lmemo map[Edge]*big.Int) *big.Int {
	if f.IsConst() {
		return big.NewInt(0)
	}
	if v, ok := lmemo[f]; ok {
		return v
	}
	n := &m.st.nodes[f.Index()]
	hiCard := m.zcount(n.hi, cmemo)
	res := new(big.Int).Add(m.zliterals(n.lo, cmemo, lmemo), m.zliterals(n.hi, cmemo, lmemo))
	res.Add(res, hiCard)
	lmemo[f] = res
	return res
}

// MaxLength returns the size of the largest member of the ZDD family f
// (spec.md §4.6 max_length); 0 for the empty family as well as for
// {∅}, since there is no largest member to report for the former and
// the latter's only member has size 0.
func (m *Manager) MaxLength(f Edge) int {
	m.checkEdge(f)
	return m.zmaxlen(f, make(map[Edge]int))
}

func (m *Manager) zmaxlen(f Edge, memo map[Edge]int) int {
	switch f {
	case EdgeFalse, EdgeTrue:
		return 0
	}
	if v, ok := memo[f]; ok {
		return v
	}
	n := &m.st.nodes[f.Index()]
	lo := m.zmaxlen(n.lo, memo)
	hi := m.zmaxlen(n.hi, memo) + 1
	res := lo
	if hi > res {
		res = hi
	}
	memo[f] = res
	return res
}

// CostTable supplies the per-level cost CostLE consults while descending
// (spec.md §4.6 cost_le). The concrete table -- a reliability model, a
// partition cost, or anything else a caller wants to budget against --
// is caller-supplied and out of this package's scope (SPEC_FULL.md §4.6:
// "the cost-table auxiliary structure beyond its interface" is a
// Non-goal); only this interface ships.
type CostTable interface {
	// CostAt returns the cost charged for including the variable
	// sitting at the given 1-based level. A table with no opinion about
	// a level should return 0.
	CostAt(level int) int
}

// SliceCostTable adapts a plain []int, indexed directly by 1-based
// level, to CostTable -- the shape original_source's graphillion
// cost-table references use.
type SliceCostTable []int

// CostAt implements CostTable.
func (c SliceCostTable) CostAt(level int) int {
	if level < 0 || level >= len(c) {
		return 0
	}
	return c[level]
}

// CostLE selects the members of the ZDD family f whose summed per-level
// cost does not exceed bound (spec.md §4.6 cost_le). This is a direct
// recursive budget-threading implementation rather than the spec's
// two-cache (bound cache / min-max cache) interpolation scheme: correct,
// but it re-walks the diagram once per distinct bound instead of
// amortising across calls with different bounds against the same f
// (documented in DESIGN.md as a simplification left for a later
// optimisation pass).
func (m *Manager) CostLE(f Edge, cost CostTable, bound int) Edge {
	m.checkEdge(f)
	return m.costLE(m.st.acquire(f), cost, bound)
}

func (m *Manager) costLE(f Edge, cost CostTable, bound int) Edge {
	if bound < 0 {
		m.st.release(f)
		return EdgeFalse
	}
	switch f {
	case EdgeFalse:
		return EdgeFalse
	case EdgeTrue:
		return m.st.acquire(EdgeTrue)
	}
	if res, ok := m.cache.lookup(opZCostLE, f, EdgeNull, EdgeNull, int32(bound), m.st); ok {
		m.st.release(f)
		return m.st.acquire(res)
	}
	m.enter()
	n := &m.st.nodes[f.Index()]
	v, lo0, hi0 := n.v, m.st.acquire(n.lo), m.st.acquire(n.hi)
	m.st.release(f)
	lv := m.reg.level(v)
	c := cost.CostAt(int(lv))
	lo := m.costLE(lo0, cost, bound)
	var hi Edge
	if bound-c >= 0 {
		hi = m.costLE(hi0, cost, bound-c)
	} else {
		m.st.release(hi0)
		hi = EdgeFalse
	}
	res := makeZDD(m, v, lo, hi)
	m.leave()
	m.cache.set(opZCostLE, f, EdgeNull, EdgeNull, int32(bound), res)
	return res
}
