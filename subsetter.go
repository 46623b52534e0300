// MIT License

package ddkit

// DD Subsetter (C10, spec.md §4.10): given an already-reduced diagram D
// and a Spec S, computes D ∩ L(S) by descending both in lock-step,
// producing a fresh, already-canonical diagram directly through the
// store's hash-consing (no raw/reduce round trip is needed here, unlike
// the Builder, since D's structure already supplies a canonical level
// order to align S's levels against).
//
// Grounded on original_source's DdSpec-driven subsetting fold
// (spec.md's "lock-step descent on a (D-node, S-state) pair, skipping
// D-levels where S requires zero"). Three cases arise at each step,
// comparing D's current top level against S's current level:
//   - D's level is below S's (D has nothing left to say down to S's
//     level): advance S alone, taking branch 0 (the variable is absent
//     from D's remaining structure), D unchanged.
//   - the levels coincide: co-recurse both branches.
//   - D's level is above S's (S has nothing to say about D's top
//     variable): decompose D alone, holding S's state fixed for both
//     children -- the "skip" case named in spec.md's description.
type subsetMemoEntry struct {
	level int32
	hash  uint64
	state []byte
	edge  Edge
}

// Subset computes D ∩ L(S). d is borrowed, not consumed; the result is a
// freshly owned edge of the same kind as d.
func (m *Manager) Subset(d Edge, s Spec) Edge {
	m.checkEdge(d)
	kind := m.kindOf(d)
	ss := s.StateSize()
	state := make([]byte, ss)
	rl := s.GetRoot(state)
	memo := make(map[Edge][]*subsetMemoEntry)
	return m.subset(d, s, state, rl, kind, memo)
}

func (m *Manager) subset(d Edge, s Spec, state []byte, level int32, kind Kind, memo map[Edge][]*subsetMemoEntry) Edge {
	if d == EdgeFalse || level == SpecFalse {
		s.Destruct(state)
		return EdgeFalse
	}
	if level == SpecTrue {
		s.Destruct(state)
		return m.st.acquire(d)
	}

	h := s.Hash(state)
	for _, e := range memo[d] {
		if e.level == level && e.hash == h && s.Equal(state, e.state) {
			s.Destruct(state)
			return m.st.acquire(e.edge)
		}
	}
	saved := make([]byte, s.StateSize())
	s.Copy(saved, state)

	dl := m.level(d)
	var res Edge
	switch {
	case dl < level:
		cp := make([]byte, s.StateSize())
		s.Copy(cp, state)
		next := s.GetChild(cp, level, 0)
		s.Destruct(state)
		m.enter()
		res = m.subset(d, s, cp, next, kind, memo)
		m.leave()

	case dl > level:
		lo0, hi0 := m.st.acquire(m.low(d)), m.st.acquire(m.high(d))
		cpLo := make([]byte, s.StateSize())
		s.Copy(cpLo, state)
		cpHi := state
		m.enter()
		loRes := m.subset(lo0, s, cpLo, level, kind, memo)
		hiRes := m.subset(hi0, s, cpHi, level, kind, memo)
		m.leave()
		v := m.st.nodes[d.Index()].v
		if kind == KindBDD {
			res = m.makeBDD(v, loRes, hiRes)
		} else {
			res = makeZDD(m, v, loRes, hiRes)
		}

	default: // dl == level
		lo0, hi0 := m.st.acquire(m.low(d)), m.st.acquire(m.high(d))
		cpLo := make([]byte, s.StateSize())
		s.Copy(cpLo, state)
		loLevel := s.GetChild(cpLo, level, 0)
		cpHi := state
		hiLevel := s.GetChild(cpHi, level, 1)
		m.enter()
		loRes := m.subset(lo0, s, cpLo, loLevel, kind, memo)
		hiRes := m.subset(hi0, s, cpHi, hiLevel, kind, memo)
		m.leave()
		v := m.st.nodes[d.Index()].v
		if kind == KindBDD {
			res = m.makeBDD(v, loRes, hiRes)
		} else {
			res = makeZDD(m, v, loRes, hiRes)
		}
	}

	memo[d] = append(memo[d], &subsetMemoEntry{level: level, hash: h, state: saved, edge: res})
	return res
}
