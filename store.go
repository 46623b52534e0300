// MIT License

package ddkit

// store is the Node Store (C1): a fixed-layout array of nodes with a free
// list, saturating+overflow reference counts, and one hash bucket per
// variable for hash-consing (spec.md §3.3, §4.1).
//
// Grounded on the teacher's buddy.go/hkernel.go free-list-through-next and
// noderesize growth policy, generalised from one global hash table (what
// both of the teacher's retrieved implementations actually build, despite
// spec.md and the teacher's own doc.go describing "a" unicity table) to a
// bucket array indexed by variable, as spec.md §3.3 explicitly mandates
// ("one hash bucket per variable... no bucket contains a node of a
// different variable").
type store struct {
	nodes    []node
	free     int32 // head of the free list, 0 if none (index 0 is never a live node)
	freeNum  int
	limit    int
	overflow map[int32]uint32 // node index -> refcount beyond maxRefcount

	buckets []bucket // buckets[v], indexed by varID

	reg      *registry
	cache    *opCache
	cfg      *Config
	zlev     *zLevCache
	produced int
	gcRuns   int
}

type bucket struct {
	heads []int32 // power-of-two sized; 0 means empty (index 0 reserved, never live)
}

func newStore(reg *registry, cache *opCache, cfg *Config) *store {
	size := cfg.nodesize
	if size < 16 {
		size = 16
	}
	s := &store{
		nodes:    make([]node, size),
		overflow: make(map[int32]uint32),
		buckets:  []bucket{{}},
		reg:      reg,
		cache:    cache,
		cfg:      cfg,
		zlev:     newZLevCache(),
		limit:    cfg.maxnodesize,
	}
	for i := 1; i < size; i++ {
		s.nodes[i].next = int32(i + 1)
	}
	s.nodes[size-1].next = 0
	s.free = 1
	s.freeNum = size - 1
	return s
}

func (s *store) ensureVar(v varID) {
	for varID(len(s.buckets)) <= v {
		s.buckets = append(s.buckets, bucket{heads: make([]int32, 2)})
	}
}

func hashPair(lo, hi Edge) uint32 {
	h := uint32(2166136261)
	h = (h ^ uint32(lo)) * 16777619
	h = (h ^ uint32(hi)) * 16777619
	return h
}

func (b *bucket) slot(lo, hi Edge) int {
	return int(hashPair(lo, hi)) & (len(b.heads) - 1)
}

// lookup searches variable v's bucket for an existing node (lo, hi),
// returning its index on success.
func (s *store) lookup(v varID, lo, hi Edge) (int32, bool) {
	b := &s.buckets[v]
	idx := b.heads[b.slot(lo, hi)]
	for idx != 0 {
		n := &s.nodes[idx]
		if n.lo == lo && n.hi == hi {
			return idx, true
		}
		idx = n.next
	}
	return 0, false
}

func (s *store) link(v varID, idx int32) {
	b := &s.buckets[v]
	n := &s.nodes[idx]
	// grow the bucket once its load factor reaches 1.0 (spec.md §3.3).
	live := 0
	for _, h := range b.heads {
		for c := h; c != 0; c = s.nodes[c].next {
			live++
		}
	}
	if live+1 >= len(b.heads) {
		s.growBucket(v)
		b = &s.buckets[v]
	}
	sl := b.slot(n.lo, n.hi)
	n.next = b.heads[sl]
	b.heads[sl] = idx
}

func (s *store) growBucket(v varID) {
	old := s.buckets[v]
	b := bucket{heads: make([]int32, len(old.heads)*2)}
	for _, h := range old.heads {
		for c := h; c != 0; {
			next := s.nodes[c].next
			sl := b.slot(s.nodes[c].lo, s.nodes[c].hi)
			s.nodes[c].next = b.heads[sl]
			b.heads[sl] = c
			c = next
		}
	}
	s.buckets[v] = b
}

func (s *store) unlink(v varID, idx int32) {
	b := &s.buckets[v]
	n := &s.nodes[idx]
	sl := b.slot(n.lo, n.hi)
	if b.heads[sl] == idx {
		b.heads[sl] = n.next
		return
	}
	for c := b.heads[sl]; c != 0; c = s.nodes[c].next {
		if s.nodes[c].next == idx {
			s.nodes[c].next = n.next
			return
		}
	}
}

// refcount helpers -----------------------------------------------------

func (s *store) rc(idx int32) uint32 {
	n := &s.nodes[idx]
	if n.rc < maxRefcount {
		return n.rc
	}
	return uint32(maxRefcount) + s.overflow[idx]
}

func (s *store) bump(idx int32) {
	n := &s.nodes[idx]
	if n.rc < maxRefcount {
		n.rc++
		return
	}
	s.overflow[idx]++
}

func (s *store) unbump(idx int32) bool {
	n := &s.nodes[idx]
	if n.rc < maxRefcount {
		if n.rc == 0 {
			fatal("ddkit: refcount underflow on node %d", idx)
		}
		n.rc--
		return n.rc == 0
	}
	if s.overflow[idx] > 0 {
		s.overflow[idx]--
		return false
	}
	n.rc--
	return n.rc == 0
}

// acquire increments the reference count of the node named by e, if any.
func (s *store) acquire(e Edge) Edge {
	if !e.IsConst() {
		s.bump(e.Index())
	}
	return e
}

// release decrements the reference count of the node named by e. Reaching
// zero makes the node eligible for collection (spec.md §3.4); reclamation
// itself happens during gc(), not here.
func (s *store) release(e Edge) {
	if !e.IsConst() {
		s.unbump(e.Index())
	}
}

// makeNode is the core constructor (spec.md §4.1 make_node): applies
// identity/complement canonicalisation and hash-consing, and consumes one
// reference count unit on each of lo and hi -- callers must pass edges
// they own, exactly as a constructor that "steals" its arguments.
func (s *store) makeNode(v varID, lo, hi Edge, kind Kind) Edge {
	if kind == KindBDD && lo == hi {
		s.release(hi)
		return lo
	}
	if kind == KindZDD && hi == EdgeFalse {
		s.release(hi)
		return lo
	}

	neg := false
	if kind == KindBDD && lo.IsCompl() {
		lo, hi = lo.Negate(), hi.Negate()
		neg = true
	}

	s.ensureVar(v)
	if idx, ok := s.lookup(v, lo, hi); ok {
		s.release(lo)
		s.release(hi)
		s.bump(idx)
		e := mkInternal(idx, false)
		if neg {
			e = e.Negate()
		}
		return e
	}

	idx := s.alloc()
	if idx == 0 {
		// out of memory: give back the references we were about to consume.
		s.release(lo)
		s.release(hi)
		return EdgeNull
	}
	n := &s.nodes[idx]
	n.lo, n.hi, n.v, n.k, n.rc, n.next = lo, hi, v, kind, 1, 0
	s.link(v, idx)
	s.produced++
	e := mkInternal(idx, false)
	if neg {
		e = e.Negate()
	}
	return e
}

// alloc pops a slot off the free list, growing or garbage-collecting the
// store as needed. It returns 0 (never a valid index) on total exhaustion.
func (s *store) alloc() int32 {
	if s.free == 0 {
		s.gc()
		if (s.freeNum*100)/len(s.nodes) <= s.cfg.minfreenodes {
			s.grow()
		}
		if s.free == 0 {
			return 0
		}
	}
	idx := s.free
	s.free = s.nodes[idx].next
	s.freeNum--
	return idx
}

func (s *store) grow() {
	old := len(s.nodes)
	if s.limit > 0 && old >= s.limit {
		return
	}
	newSize := old * 2
	if s.cfg.maxnodeincrease > 0 && newSize > old+s.cfg.maxnodeincrease {
		newSize = old + s.cfg.maxnodeincrease
	}
	if s.limit > 0 && newSize > s.limit {
		newSize = s.limit
	}
	if newSize <= old {
		return
	}
	grown := make([]node, newSize)
	copy(grown, s.nodes)
	s.nodes = grown
	for i := old; i < newSize; i++ {
		s.nodes[i].next = int32(i + 1)
	}
	s.nodes[newSize-1].next = s.free
	s.free = int32(old)
	s.freeNum += newSize - old
	if s.cache != nil {
		s.cache.resize(newSize, s.cfg.cacheratio)
	}
}

// gc sweeps unreferenced nodes (spec.md §4.1 gc()): every node whose
// effective refcount is zero is detached from its bucket, pushed to the
// free list, and its children's counts are decremented in turn, cascading
// recursively. Every operation-cache entry naming a now-dead node is
// invalidated in the same pass (the cache holds no reference counts,
// spec.md §3.5).
func (s *store) gc() {
	s.gcRuns++
	var queue []int32
	for idx := int32(1); idx < int32(len(s.nodes)); idx++ {
		n := &s.nodes[idx]
		if n.dead() {
			continue
		}
		if s.rc(idx) == 0 {
			queue = append(queue, idx)
		}
	}
	for len(queue) > 0 {
		idx := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		n := &s.nodes[idx]
		if n.dead() {
			continue // already reclaimed via another path
		}
		if s.rc(idx) != 0 {
			continue // re-acquired since being queued
		}
		s.unlink(n.v, idx)
		lo, hi := n.lo, n.hi
		n.v = 0
		n.next = s.free
		s.free = idx
		s.freeNum++
		delete(s.overflow, idx)
		if !lo.IsConst() {
			cidx := lo.Index()
			if s.unbump(cidx) {
				queue = append(queue, cidx)
			}
		}
		if !hi.IsConst() {
			cidx := hi.Index()
			if s.unbump(cidx) {
				queue = append(queue, cidx)
			}
		}
	}
	if s.cache != nil {
		s.cache.invalidateDead(s)
	}
	s.zlev.invalidate(s)
}

// isDead reports whether idx currently names a freed slot; used by the
// operation cache to scrub stale weak entries.
func (s *store) isDead(idx int32) bool {
	return int(idx) >= len(s.nodes) || s.nodes[idx].dead()
}

// used returns the number of live nodes (spec.md §6.1 node_used()).
func (s *store) used() int {
	return len(s.nodes) - 1 - s.freeNum
}
