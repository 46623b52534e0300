// MIT License

package ddkit

// ZDD Kernel (spec.md §4.5). A ZDD node has the same physical shape as a
// BDD node (node.go's lo/hi/v fields) but a different reduction rule (a
// node is elided when its hi child is the empty family, EdgeFalse,
// rather than when lo==hi) and a different reading: lo is the family of
// members that exclude the node's variable, hi is the family of members
// that include it, with the variable itself stripped out of hi's
// members. ZDD edges never carry the complement bit -- Negate has no
// ZDD meaning, so code in this file never calls it.
//
// Grounded on zzenonn-go-zdd's zdd.go (union/intersection/subtract
// shapes, the asymmetric top-variable decomposition spec.md §4.5 calls
// out explicitly) and SAPPOROBDD's operation naming (product, quotient,
// meet, permit) referenced by SPEC_FULL.md §4.5. All recursive ZDD
// operations below follow the same shape bdd.go's apply does: terminal
// shortcuts, cache lookup, top-variable decomposition, recurse on
// children, recompose via makeZDD, cache insert.

const (
	opZUnion operator = iota + 100
	opZInter
	opZSubtract
	opZChange
	opZOnset0
	opZOffset
	opZProduct
	opZQuotient
	opZMeet
	opZPermit
	opZPermitSym
	opZRestrict
	opZAlways
	opZReplace
	opZCostLE
)

func makeZDD(m *Manager, v varID, lo, hi Edge) Edge {
	return m.st.makeNode(v, lo, hi, KindZDD)
}

// ZVar returns the singleton family {{v}} (spec.md §6.1 zvar(v)).
func (m *Manager) ZVar(v int) Edge {
	if v < 0 || v >= m.reg.varCount() {
		fatal("ddkit: variable %d out of range", v)
	}
	return makeZDD(m, varID(v+1), EdgeFalse, m.st.acquire(EdgeTrue))
}

// zChildrenAt decomposes e at level v using the asymmetric rule spec.md
// §4.5 mandates: when e does not branch on v (its top level is below
// v), none of e's members mention v, so the "without v" part is e
// itself and the "with v" part is empty.
func (m *Manager) zChildrenAt(e Edge, v varID) (lo, hi Edge) {
	if e.IsConst() {
		return m.st.acquire(e), EdgeFalse
	}
	n := &m.st.nodes[e.Index()]
	if n.v == v {
		return m.st.acquire(n.lo), m.st.acquire(n.hi)
	}
	return m.st.acquire(e), EdgeFalse
}

func (m *Manager) zTopVar(f, g Edge) varID {
	lf, lg := m.level(f), m.level(g)
	if lf >= lg {
		if f.IsConst() {
			return m.st.nodes[g.Index()].v
		}
		return m.st.nodes[f.Index()].v
	}
	return m.st.nodes[g.Index()].v
}

// zBinary implements union, intersection and subtract: all three share
// the same asymmetric decomposition and recombine both branches with a
// recursive call to themselves, differing only in their terminal rule.
func (m *Manager) zBinary(op operator, f, g Edge) Edge {
	switch op {
	case opZUnion:
		switch {
		case f == EdgeFalse:
			return m.st.acquire(g)
		case g == EdgeFalse:
			return m.st.acquire(f)
		case f == g:
			return m.st.acquire(f)
		}
	case opZInter:
		switch {
		case f == EdgeFalse || g == EdgeFalse:
			return EdgeFalse
		case f == g:
			return m.st.acquire(f)
		}
	case opZSubtract:
		switch {
		case f == EdgeFalse:
			return EdgeFalse
		case g == EdgeFalse:
			return m.st.acquire(f)
		case f == g:
			return EdgeFalse
		}
	}
	if res, ok := m.cache.lookup(op, f, g, EdgeNull, 0, m.st); ok {
		return m.st.acquire(res)
	}
	m.enter()
	v := m.zTopVar(f, g)
	f0, f1 := m.zChildrenAt(f, v)
	g0, g1 := m.zChildrenAt(g, v)
	lo := m.zBinary(op, f0, g0)
	hi := m.zBinary(op, f1, g1)
	m.st.release(f0)
	m.st.release(f1)
	m.st.release(g0)
	m.st.release(g1)
	res := makeZDD(m, v, lo, hi)
	m.leave()
	m.cache.set(op, f, g, EdgeNull, 0, res)
	return res
}

// Union returns the family f ∪ g (spec.md §4.5).
func (m *Manager) Union(f, g Edge) Edge {
	m.checkEdge(f)
	m.checkEdge(g)
	f, g = m.st.acquire(f), m.st.acquire(g)
	if g < f {
		f, g = g, f
	}
	res := m.zBinary(opZUnion, f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}

// Intersec returns the family f ∩ g.
func (m *Manager) Intersec(f, g Edge) Edge {
	m.checkEdge(f)
	m.checkEdge(g)
	f, g = m.st.acquire(f), m.st.acquire(g)
	if g < f {
		f, g = g, f
	}
	res := m.zBinary(opZInter, f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}

// Subtract returns the family f \ g (members of f that are not members
// of g, set difference -- not commutative, so f and g are not swapped
// before recursing).
func (m *Manager) Subtract(f, g Edge) Edge {
	m.checkEdge(f)
	m.checkEdge(g)
	f, g = m.st.acquire(f), m.st.acquire(g)
	res := m.zBinary(opZSubtract, f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}

// Change toggles membership of variable v in every set of f (spec.md
// §4.5): a member that had v loses it, a member that lacked it gains
// it.
func (m *Manager) Change(f Edge, v int) Edge {
	m.checkEdge(f)
	return m.change(m.st.acquire(f), varID(v+1))
}

func (m *Manager) change(f Edge, v varID) Edge {
	lv := m.reg.level(v)
	if res, ok := m.cache.lookup(opZChange, f, EdgeNull, EdgeNull, int32(lv), m.st); ok {
		m.st.release(f)
		return m.st.acquire(res)
	}
	fl := m.level(f)
	var res Edge
	switch {
	case fl < lv:
		// v does not appear in f at all: every member gains it.
		res = makeZDD(m, v, EdgeFalse, f)
	case fl == lv:
		n := &m.st.nodes[f.Index()]
		lo, hi := m.st.acquire(n.hi), m.st.acquire(n.lo)
		m.st.release(f)
		res = makeZDD(m, v, lo, hi)
	default:
		m.enter()
		n := &m.st.nodes[f.Index()]
		nv, lo0, hi0 := n.v, m.st.acquire(n.lo), m.st.acquire(n.hi)
		m.st.release(f)
		lo := m.change(lo0, v)
		hi := m.change(hi0, v)
		res = makeZDD(m, nv, lo, hi)
		m.leave()
	}
	m.cache.set(opZChange, f, EdgeNull, EdgeNull, int32(lv), res)
	return res
}

// Onset0 returns the family of members of f that contain v, with v
// removed from each (spec.md §4.5).
func (m *Manager) Onset0(f Edge, v int) Edge {
	m.checkEdge(f)
	return m.onset0(m.st.acquire(f), varID(v+1))
}

func (m *Manager) onset0(f Edge, v varID) Edge {
	lv := m.reg.level(v)
	fl := m.level(f)
	if fl < lv {
		m.st.release(f)
		return EdgeFalse
	}
	if fl == lv {
		n := &m.st.nodes[f.Index()]
		res := m.st.acquire(n.hi)
		m.st.release(f)
		return res
	}
	if res, ok := m.cache.lookup(opZOnset0, f, EdgeNull, EdgeNull, int32(lv), m.st); ok {
		m.st.release(f)
		return m.st.acquire(res)
	}
	m.enter()
	n := &m.st.nodes[f.Index()]
	nv, lo0, hi0 := n.v, m.st.acquire(n.lo), m.st.acquire(n.hi)
	m.st.release(f)
	lo := m.onset0(lo0, v)
	hi := m.onset0(hi0, v)
	res := makeZDD(m, nv, lo, hi)
	m.leave()
	m.cache.set(opZOnset0, f, EdgeNull, EdgeNull, int32(lv), res)
	return res
}

// Onset returns the family of members of f that contain v, v left in
// place. Derived from Onset0 via Change, since Onset0 already strips v.
func (m *Manager) Onset(f Edge, v int) Edge {
	sub := m.Onset0(f, v)
	res := m.change(sub, varID(v+1))
	return res
}

// Offset returns the family of members of f that do not contain v
// (spec.md §4.5).
func (m *Manager) Offset(f Edge, v int) Edge {
	m.checkEdge(f)
	return m.offset(m.st.acquire(f), varID(v+1))
}

func (m *Manager) offset(f Edge, v varID) Edge {
	lv := m.reg.level(v)
	fl := m.level(f)
	if fl < lv {
		return f
	}
	if fl == lv {
		n := &m.st.nodes[f.Index()]
		res := m.st.acquire(n.lo)
		m.st.release(f)
		return res
	}
	if res, ok := m.cache.lookup(opZOffset, f, EdgeNull, EdgeNull, int32(lv), m.st); ok {
		m.st.release(f)
		return m.st.acquire(res)
	}
	m.enter()
	n := &m.st.nodes[f.Index()]
	nv, lo0, hi0 := n.v, m.st.acquire(n.lo), m.st.acquire(n.hi)
	m.st.release(f)
	lo := m.offset(lo0, v)
	hi := m.offset(hi0, v)
	res := makeZDD(m, nv, lo, hi)
	m.leave()
	m.cache.set(opZOffset, f, EdgeNull, EdgeNull, int32(lv), res)
	return res
}

// Product returns the family {A ∪ B : A ∈ f, B ∈ g} (spec.md §4.5).
func (m *Manager) Product(f, g Edge) Edge {
	m.checkEdge(f)
	m.checkEdge(g)
	f, g = m.st.acquire(f), m.st.acquire(g)
	if g < f {
		f, g = g, f
	}
	res := m.product(f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}

func (m *Manager) product(f, g Edge) Edge {
	switch {
	case f == EdgeFalse || g == EdgeFalse:
		return EdgeFalse
	case f == EdgeTrue:
		return m.st.acquire(g)
	case g == EdgeTrue:
		return m.st.acquire(f)
	}
	if res, ok := m.cache.lookup(opZProduct, f, g, EdgeNull, 0, m.st); ok {
		return m.st.acquire(res)
	}
	m.enter()
	v := m.zTopVar(f, g)
	f0, f1 := m.zChildrenAt(f, v)
	g0, g1 := m.zChildrenAt(g, v)
	lo := m.product(f0, g0)
	a := m.product(f1, g1)
	b := m.product(f1, g0)
	c := m.product(f0, g1)
	ab := m.zBinary(opZUnion, a, b)
	hi := m.zBinary(opZUnion, ab, c)
	m.st.release(f0)
	m.st.release(f1)
	m.st.release(g0)
	m.st.release(g1)
	m.st.release(a)
	m.st.release(b)
	m.st.release(c)
	m.st.release(ab)
	res := makeZDD(m, v, lo, hi)
	m.leave()
	m.cache.set(opZProduct, f, g, EdgeNull, 0, res)
	return res
}

// Quotient computes weak division f / g: the largest family h such
// that Product(h, g) ⊆ f (spec.md §4.5), via Minato's divide-by-the-
// divisor's-top-variable algorithm.
func (m *Manager) Quotient(f, g Edge) Edge {
	m.checkEdge(f)
	m.checkEdge(g)
	f, g = m.st.acquire(f), m.st.acquire(g)
	res := m.quotient(f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}

func (m *Manager) quotient(f, g Edge) Edge {
	if g == EdgeTrue {
		return m.st.acquire(f)
	}
	if f == EdgeFalse || g == EdgeFalse {
		return EdgeFalse
	}
	if res, ok := m.cache.lookup(opZQuotient, f, g, EdgeNull, 0, m.st); ok {
		return m.st.acquire(res)
	}
	m.enter()
	v := m.st.nodes[g.Index()].v
	f0, f1 := m.offset(m.st.acquire(f), v), m.onset0(m.st.acquire(f), v)
	g0, g1 := m.zChildrenAt(g, v)
	q1 := m.quotient(f1, g1)
	var res Edge
	if g0 == EdgeFalse {
		res = q1
	} else {
		q0 := m.quotient(f0, g0)
		res = m.zBinary(opZInter, q1, q0)
		m.st.release(q1)
		m.st.release(q0)
	}
	m.st.release(f0)
	m.st.release(f1)
	m.st.release(g0)
	m.st.release(g1)
	m.leave()
	m.cache.set(opZQuotient, f, g, EdgeNull, 0, res)
	return res
}

// Meet returns the family {A ∩ B : A ∈ f, B ∈ g} (spec.md §4.5).
func (m *Manager) Meet(f, g Edge) Edge {
	m.checkEdge(f)
	m.checkEdge(g)
	f, g = m.st.acquire(f), m.st.acquire(g)
	if g < f {
		f, g = g, f
	}
	res := m.meet(f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}

func (m *Manager) meet(f, g Edge) Edge {
	switch {
	case f == EdgeFalse || g == EdgeFalse:
		return EdgeFalse
	case f == EdgeTrue && g == EdgeTrue:
		return m.st.acquire(EdgeTrue)
	case f == EdgeTrue || g == EdgeTrue:
		return m.st.acquire(EdgeTrue)
	}
	if res, ok := m.cache.lookup(opZMeet, f, g, EdgeNull, 0, m.st); ok {
		return m.st.acquire(res)
	}
	m.enter()
	v := m.zTopVar(f, g)
	f0, f1 := m.zChildrenAt(f, v)
	g0, g1 := m.zChildrenAt(g, v)
	hi := m.meet(f1, g1)
	a := m.meet(f0, g0)
	b := m.meet(f0, g1)
	c := m.meet(f1, g0)
	ab := m.zBinary(opZUnion, a, b)
	lo := m.zBinary(opZUnion, ab, c)
	m.st.release(f0)
	m.st.release(f1)
	m.st.release(g0)
	m.st.release(g1)
	m.st.release(a)
	m.st.release(b)
	m.st.release(c)
	m.st.release(ab)
	res := makeZDD(m, v, lo, hi)
	m.leave()
	m.cache.set(opZMeet, f, g, EdgeNull, 0, res)
	return res
}

// Permit returns the members of f that are a subset of some member of
// g (spec.md §4.5).
func (m *Manager) Permit(f, g Edge) Edge {
	m.checkEdge(f)
	m.checkEdge(g)
	f, g = m.st.acquire(f), m.st.acquire(g)
	res := m.permit(f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}

func (m *Manager) permit(f, g Edge) Edge {
	switch {
	case f == EdgeFalse || g == EdgeFalse:
		return EdgeFalse
	case f == EdgeTrue:
		return m.st.acquire(EdgeTrue)
	}
	if res, ok := m.cache.lookup(opZPermit, f, g, EdgeNull, 0, m.st); ok {
		return m.st.acquire(res)
	}
	m.enter()
	v := m.zTopVar(f, g)
	f0, f1 := m.zChildrenAt(f, v)
	g0, g1 := m.zChildrenAt(g, v)
	gboth := m.zBinary(opZUnion, g0, g1)
	lo := m.permit(f0, gboth)
	hi := m.permit(f1, g1)
	m.st.release(f0)
	m.st.release(f1)
	m.st.release(g0)
	m.st.release(g1)
	m.st.release(gboth)
	res := makeZDD(m, v, lo, hi)
	m.leave()
	m.cache.set(opZPermit, f, g, EdgeNull, 0, res)
	return res
}

// PermitSym returns the members of f with at most k elements (spec.md
// §4.5).
func (m *Manager) PermitSym(f Edge, k int) Edge {
	m.checkEdge(f)
	return m.permitSym(m.st.acquire(f), int32(k))
}

func (m *Manager) permitSym(f Edge, k int32) Edge {
	if k < 0 {
		m.st.release(f)
		return EdgeFalse
	}
	switch f {
	case EdgeFalse:
		return EdgeFalse
	case EdgeTrue:
		return m.st.acquire(EdgeTrue)
	}
	if res, ok := m.cache.lookup(opZPermitSym, f, EdgeNull, EdgeNull, k, m.st); ok {
		m.st.release(f)
		return m.st.acquire(res)
	}
	m.enter()
	n := &m.st.nodes[f.Index()]
	v, lo0, hi0 := n.v, m.st.acquire(n.lo), m.st.acquire(n.hi)
	m.st.release(f)
	lo := m.permitSym(lo0, k)
	hi := m.permitSym(hi0, k-1)
	res := makeZDD(m, v, lo, hi)
	m.leave()
	m.cache.set(opZPermitSym, f, EdgeNull, EdgeNull, k, res)
	return res
}

// Restrict returns the members of f that contain some member of g,
// dual of Permit (spec.md §4.5).
func (m *Manager) Restrict(f, g Edge) Edge {
	m.checkEdge(f)
	m.checkEdge(g)
	f, g = m.st.acquire(f), m.st.acquire(g)
	res := m.restrictSet(f, g)
	m.st.release(f)
	m.st.release(g)
	return res
}

func (m *Manager) restrictSet(f, g Edge) Edge {
	switch {
	case f == EdgeFalse || g == EdgeFalse:
		return EdgeFalse
	case g == EdgeTrue:
		return m.st.acquire(f)
	}
	if res, ok := m.cache.lookup(opZRestrict, f, g, EdgeNull, 0, m.st); ok {
		return m.st.acquire(res)
	}
	m.enter()
	v := m.zTopVar(f, g)
	f0, f1 := m.zChildrenAt(f, v)
	g0, g1 := m.zChildrenAt(g, v)
	lo := m.restrictSet(f0, g0)
	a := m.restrictSet(f1, g0)
	b := m.restrictSet(f1, g1)
	hi := m.zBinary(opZUnion, a, b)
	m.st.release(f0)
	m.st.release(f1)
	m.st.release(g0)
	m.st.release(g1)
	m.st.release(a)
	m.st.release(b)
	res := makeZDD(m, v, lo, hi)
	m.leave()
	m.cache.set(opZRestrict, f, g, EdgeNull, 0, res)
	return res
}

// Always returns the singleton family {S}, S the set of variables
// present in every member of f (spec.md §4.5). When no variable is
// common to every member (S empty, which includes f == {∅}), it returns
// the empty family EdgeFalse. An empty family (f == EdgeFalse) has no
// members to intersect; Always reports EdgeFalse for that degenerate
// case too, rather than the vacuous "every variable" answer.
func (m *Manager) Always(f Edge) Edge {
	m.checkEdge(f)
	res := m.always(m.st.acquire(f))
	if res == EdgeTrue {
		return EdgeFalse
	}
	return res
}

func (m *Manager) always(f Edge) Edge {
	switch f {
	case EdgeFalse:
		return EdgeFalse
	case EdgeTrue:
		return m.st.acquire(EdgeTrue)
	}
	if res, ok := m.cache.lookup(opZAlways, f, EdgeNull, EdgeNull, 0, m.st); ok {
		m.st.release(f)
		return m.st.acquire(res)
	}
	m.enter()
	n := &m.st.nodes[f.Index()]
	v, lo0, hi0 := n.v, m.st.acquire(n.lo), m.st.acquire(n.hi)
	m.st.release(f)
	var res Edge
	if lo0 == EdgeFalse {
		rest := m.always(hi0)
		res = makeZDD(m, v, EdgeFalse, rest)
	} else {
		a0 := m.always(lo0)
		a1 := m.always(hi0)
		res = m.meet(a0, a1)
		m.st.release(a0)
		m.st.release(a1)
	}
	m.leave()
	m.cache.set(opZAlways, f, EdgeNull, EdgeNull, 0, res)
	return res
}

// zScanset walks a single-member family shaped like Always's output
// (every node's lo is EdgeFalse) and returns the member's variables as
// 0-based indices in decreasing level order.
func (m *Manager) zScanset(f Edge) []int {
	var out []int
	for !f.IsConst() {
		n := &m.st.nodes[f.Index()]
		out = append(out, int(n.v)-1)
		f = n.hi
	}
	return out
}

// SymSet returns the variables symmetric to v in f: those v' for which
// swapping v and v' leaves f unchanged (spec.md §4.5).
func (m *Manager) SymSet(f Edge, v int) []int {
	var out []int
	for other := 0; other < m.reg.varCount(); other++ {
		if other == v {
			continue
		}
		if m.SymCheck(f, v, other) {
			out = append(out, other)
		}
	}
	return out
}

// SymCheck reports whether f is unchanged by swapping variables v1 and
// v2 (spec.md §4.5), computed by building the swap as a Replacer and
// comparing the replaced diagram against the original.
func (m *Manager) SymCheck(f Edge, v1, v2 int) bool {
	m.checkEdge(f)
	if v1 == v2 {
		return true
	}
	r, err := newReplacer(m.reg, []varID{varID(v1 + 1), varID(v2 + 1)}, []varID{varID(v2 + 1), varID(v1 + 1)})
	if err != nil {
		fatal("ddkit: %v", err)
	}
	swapped := m.zReplace(f, r)
	same := swapped == f
	m.st.release(swapped)
	return same
}

// ImplySet returns the variables that appear in every member of f that
// also contains v (spec.md §4.5).
func (m *Manager) ImplySet(f Edge, v int) []int {
	sub := m.Onset0(f, v)
	always := m.always(sub)
	out := m.zScanset(always)
	m.st.release(always)
	return out
}

// CoimplySet returns the variables that appear in every member of f
// that does not contain v (spec.md §4.5).
func (m *Manager) CoimplySet(f Edge, v int) []int {
	sub := m.Offset(f, v)
	always := m.always(sub)
	out := m.zScanset(always)
	m.st.release(always)
	return out
}

// zReplace is the ZDD-kernel twin of bdd.go's replace: same level-image
// substitution and level-collision recombination, but composed with
// makeZDD and with no complement handling (ZDD edges never carry it).
func (m *Manager) zReplace(n Edge, r Replacer) Edge {
	m.checkEdge(n)
	return m.zReplaceRec(m.st.acquire(n), r)
}

func (m *Manager) zReplaceRec(n Edge, r Replacer) Edge {
	if n.IsConst() {
		return n
	}
	lv := m.level(n)
	if res, ok := m.cache.lookup(opZReplace, n, EdgeNull, EdgeNull, r.Tag(), m.st); ok {
		m.st.release(n)
		return m.st.acquire(res)
	}
	m.enter()
	nn := &m.st.nodes[n.Index()]
	lo0, hi0 := m.st.acquire(nn.lo), m.st.acquire(nn.hi)
	m.st.release(n)
	lo := m.zReplaceRec(lo0, r)
	hi := m.zReplaceRec(hi0, r)
	newLv := lv
	if img, ok := r.Replace(lv); ok {
		newLv = img
	}
	res := m.zCorrectify(newLv, lo, hi)
	m.leave()
	m.cache.set(opZReplace, n, EdgeNull, EdgeNull, r.Tag(), res)
	return res
}

// zCorrectify inserts a level-lv node over (lo, hi), recursively
// resolving the case where lo or hi already has a node sitting at or
// above lv (spec.md's level-merge rule for an out-of-order substitution
// image), ported from bdd.go's correctify with makeBDD swapped for
// makeZDD.
func (m *Manager) zCorrectify(lv int32, lo, hi Edge) Edge {
	switch {
	case !lo.IsConst() && m.level(lo) == lv:
		fatal("ddkit: level collision in zdd replace")
	case !hi.IsConst() && m.level(hi) == lv:
		fatal("ddkit: level collision in zdd replace")
	}
	v := m.reg.variable(lv)
	return makeZDD(m, v, lo, hi)
}
