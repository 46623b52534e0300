// MIT License

package ddkit

import (
	"fmt"
	"unsafe"
)

// pairHash is the teacher's _PAIR: a bijective map from a pair of integers
// to a single integer, folded into [0,len) by a modulo.
func pairHash(a, b uint64, len int) int {
	return int(((a+b)*(a+b+1))/2+a) % len
}

// tripleHash is the teacher's _TRIPLE, composing two pairHash applications.
func tripleHash(a, b, c uint64, len int) int {
	return pairHash(c, uint64(pairHash(a, b, len)), len)
}

// opEntry is one cache line: up to three operand edges plus the operator
// that produced res from them. Every kernel operation -- apply, ite, the
// ZDD binary operators, replace, the quantifiers -- shares this same entry
// shape, distinguished only by how many of a/b/c it uses and by op.
//
// Grounded on the teacher's cache.go data4n/data3n, generalised into one
// entry type: the teacher hand-writes five near-identical
// data4ncache/data3ncache pairs (applycache/itecache/quantcache/
// appexcache/replacecache), each with its own matchX/setX methods that
// differ only in which fields they key on. spec.md §3.5 describes a single
// cache entry shape, so that generalisation is carried through here rather
// than reproducing the five-way duplication.
type opEntry struct {
	valid   bool
	op      operator
	tag     int32 // quantification/replace id, or 0
	a, b, c Edge
	res     Edge
}

// opCache is the weak (non-owning) operation cache (C2). A hit is only a
// hint: every lookup re-validates that none of the operands or the result
// names a node the store has since collected (store.gc invalidates stale
// entries directly, see invalidateDead, but a lookup also guards against
// entries produced and cached in between two gc runs).
type opCache struct {
	ratio  int
	opHit  int
	opMiss int
	table  []opEntry
}

func newOpCache(size, ratio int) *opCache {
	c := &opCache{ratio: ratio}
	c.table = make([]opEntry, primeGte(size))
	return c
}

func (c *opCache) resize(storeSize, ratio int) {
	if ratio <= 0 {
		return
	}
	size := primeGte((storeSize * ratio) / 100)
	c.table = make([]opEntry, size)
}

func (c *opCache) reset() {
	for k := range c.table {
		c.table[k].valid = false
	}
}

func (c *opCache) lookup(op operator, a, b, cc Edge, tag int32, s *store) (Edge, bool) {
	idx := tripleHash(uint64(a), uint64(b), uint64(cc)^uint64(op)<<1, len(c.table))
	e := &c.table[idx]
	if !e.valid || e.op != op || e.a != a || e.b != b || e.c != cc || e.tag != tag {
		c.opMiss++
		return EdgeNull, false
	}
	if s.staleEdge(e.a) || s.staleEdge(e.b) || s.staleEdge(e.c) || s.staleEdge(e.res) {
		e.valid = false
		c.opMiss++
		return EdgeNull, false
	}
	c.opHit++
	return e.res, true
}

func (c *opCache) set(op operator, a, b, cc Edge, tag int32, res Edge) Edge {
	idx := tripleHash(uint64(a), uint64(b), uint64(cc)^uint64(op)<<1, len(c.table))
	c.table[idx] = opEntry{valid: true, op: op, tag: tag, a: a, b: b, c: cc, res: res}
	return res
}

// invalidateDead scrubs every entry that names a node the store just
// reclaimed. Called at the end of store.gc (spec.md §3.5: the cache "holds
// no reference counts of its own" so it cannot keep a collected node
// alive; it must instead be told when one disappears).
func (c *opCache) invalidateDead(s *store) {
	for i := range c.table {
		e := &c.table[i]
		if e.valid && (s.staleEdge(e.a) || s.staleEdge(e.b) || s.staleEdge(e.c) || s.staleEdge(e.res)) {
			e.valid = false
		}
	}
}

func (s *store) staleEdge(e Edge) bool {
	return !e.IsConst() && e != EdgeNull && s.isDead(e.Index())
}

func (c *opCache) String() string {
	total := c.opHit + c.opMiss
	pct := 0.0
	if total > 0 {
		pct = (float64(c.opHit) * 100) / float64(total)
	}
	return fmt.Sprintf("== Operation cache %d (%s)\n Hits: %d (%.1f%%)\n Miss: %d\n",
		len(c.table), humanSize(len(c.table), unsafe.Sizeof(opEntry{})), c.opHit, pct, c.opMiss)
}
