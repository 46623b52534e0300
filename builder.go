// MIT License

package ddkit

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DD Builder (C8, spec.md §4.8): a top-down, level-by-level sweep driven
// by a Spec. Grounded on original_source's DdBuilder.hpp/DdBuilderBase.hpp
// (per-level frontier, write-back pointers filled as each level's
// representative states are numbered) -- no example repo in the pack
// builds a DD this way, so the frontier/write-back machinery below is a
// direct, idiomatic-Go rendition of that algorithm rather than an
// adaptation of teacher code. The optional parallel pass over one level's
// frontier is grounded on zzenonn-go-zdd's WithParallel/errgroup-worker-
// pool pattern and on the teacher's own Config.workers plumbing.
//
// The builder's own output is a raw, unreduced diagram (rawDD): a flat
// table of (level, lo, hi) triples, addressed by table index rather than
// hash-consed. That keeps Build agnostic of BDD/ZDD distinctions -- the
// kind only matters once Reduce folds the raw table into the Manager's
// hash-consed store (reducer.go).

type rawRef int32

const (
	rawFalseRef rawRef = -1
	rawTrueRef  rawRef = -2
)

func (r rawRef) isNode() bool { return r >= 0 }

type rawNode struct {
	level  int32
	lo, hi rawRef
}

// rawDD is the Builder's raw output: every reachable state gets exactly
// one table slot, found once per level by hash/equal deduplication, with
// duplicates folded into their representative via write-back pointers.
type rawDD struct {
	nodes []*rawNode
	root  rawRef
}

type frontierItem struct {
	state     []byte
	writeback *rawRef
}

// Build drives s top-down and returns its raw, unreduced diagram. Pass
// the result to Reduce to obtain a canonical Manager Edge.
func Build(ctx context.Context, s Spec) (*rawDD, error) {
	ss := s.StateSize()
	root := make([]byte, ss)
	rl := s.GetRoot(root)
	dd := &rawDD{}
	switch {
	case rl == SpecFalse:
		s.Destruct(root)
		dd.root = rawFalseRef
		return dd, nil
	case rl == SpecTrue:
		s.Destruct(root)
		dd.root = rawTrueRef
		return dd, nil
	case rl < 1:
		return nil, fmt.Errorf("ddkit: builder: invalid root level %d", rl)
	}

	frontier := map[int32][]*frontierItem{rl: {{state: root, writeback: &dd.root}}}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lvl := highestPending(frontier)
		if lvl < 1 {
			break
		}
		items := frontier[lvl]
		delete(frontier, lvl)

		reps, err := dedupe(s, items)
		if err != nil {
			return nil, err
		}

		children, err := computeChildren(ctx, s, reps, lvl)
		if err != nil {
			return nil, err
		}

		for i, rep := range reps {
			idx := rawRef(len(dd.nodes))
			n := &rawNode{level: lvl}
			dd.nodes = append(dd.nodes, n)
			for _, wb := range rep.writebacks {
				*wb = idx
			}
			cl := children[i]
			n.lo, n.hi = cl.lo, cl.hi
			if cl.loIsNode {
				frontier[cl.loLevel] = append(frontier[cl.loLevel], &frontierItem{state: cl.loState, writeback: &n.lo})
			}
			if cl.hiIsNode {
				frontier[cl.hiLevel] = append(frontier[cl.hiLevel], &frontierItem{state: cl.hiState, writeback: &n.hi})
			}
			s.Destruct(rep.state)
		}
		s.DestructLevel(lvl)
	}
	return dd, nil
}

func highestPending(frontier map[int32][]*frontierItem) int32 {
	best := int32(-2)
	for l, items := range frontier {
		if len(items) > 0 && l > best {
			best = l
		}
	}
	return best
}

// repEntry is one distinct state at a level, with every write-back
// pointer from parents that produced an equal (per s.Hash/s.Equal) state.
type repEntry struct {
	state      []byte
	writebacks []*rawRef
}

// dedupe groups items sharing the same state (s.Hash bucketed, s.Equal
// verified) into one representative per distinct state, folding the
// rest's write-backs into it and destructing the now-unused duplicates.
func dedupe(s Spec, items []*frontierItem) ([]*repEntry, error) {
	buckets := make(map[uint64][]*repEntry)
	var order []*repEntry
	for _, it := range items {
		h := s.Hash(it.state)
		var found *repEntry
		for _, cand := range buckets[h] {
			if s.Equal(it.state, cand.state) {
				found = cand
				break
			}
		}
		if found == nil {
			rep := &repEntry{state: it.state, writebacks: []*rawRef{it.writeback}}
			buckets[h] = append(buckets[h], rep)
			order = append(order, rep)
		} else {
			found.writebacks = append(found.writebacks, it.writeback)
			s.Destruct(it.state)
		}
	}
	return order, nil
}

// childResult is the two-branch outcome of expanding one representative
// state: either a terminal ref, or a child level plus the state to seed
// that level's frontier with. loIsNode/hiIsNode disambiguate the pending
// case from rawRef's own zero value, which is a valid table index once
// the child's raw node is actually allocated.
type childResult struct {
	lo, hi           rawRef
	loIsNode         bool
	hiIsNode         bool
	loLevel, hiLevel int32
	loState, hiState []byte
}

// computeChildren expands every representative's two branches, in
// parallel across reps when cfg lets the caller ask for it (the builder
// itself has no Config; callers that want parallelism pass a context from
// WithBuilderWorkers below, which BuildReduced does from the Manager's
// Config).
func computeChildren(ctx context.Context, s Spec, reps []*repEntry, lvl int32) ([]childResult, error) {
	out := make([]childResult, len(reps))
	workers := workersFromContext(ctx)
	if workers <= 1 || len(reps) <= 1 {
		for i, rep := range reps {
			cr, err := expandOne(s, rep.state, lvl)
			if err != nil {
				return nil, err
			}
			out[i] = cr
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)
	for i, rep := range reps {
		i, rep := i, rep
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			cr, err := expandOne(s, rep.state, lvl)
			if err != nil {
				return err
			}
			out[i] = cr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func expandOne(s Spec, state []byte, lvl int32) (childResult, error) {
	ss := s.StateSize()
	var cr childResult
	for branch := 0; branch < 2; branch++ {
		cp := make([]byte, ss)
		s.Copy(cp, state)
		cl := s.GetChild(cp, lvl, branch)
		switch {
		case cl == SpecFalse:
			s.Destruct(cp)
			if branch == 0 {
				cr.lo = rawFalseRef
			} else {
				cr.hi = rawFalseRef
			}
		case cl == SpecTrue:
			s.Destruct(cp)
			if branch == 0 {
				cr.lo = rawTrueRef
			} else {
				cr.hi = rawTrueRef
			}
		case cl >= 1 && cl < lvl:
			if branch == 0 {
				cr.loIsNode, cr.loLevel, cr.loState = true, cl, cp
			} else {
				cr.hiIsNode, cr.hiLevel, cr.hiState = true, cl, cp
			}
		default:
			fatal("ddkit: builder: child level %d not strictly below parent level %d", cl, lvl)
		}
	}
	return cr, nil
}

type workersContextKey struct{}

// WithBuilderWorkers returns a context carrying a worker-pool size for
// Build's parallel frontier expansion. BuildReduced (a caller convenience
// in this file) sets this from the Manager's Config automatically.
func WithBuilderWorkers(ctx context.Context, workers int) context.Context {
	return context.WithValue(ctx, workersContextKey{}, workers)
}

func workersFromContext(ctx context.Context) int {
	if w, ok := ctx.Value(workersContextKey{}).(int); ok {
		return w
	}
	return 1
}

// BuildReduced runs Build followed by Reduce, the common case of wanting
// a canonical Manager Edge directly from a Spec (spec.md §4.8/§4.9 are
// always used back to back in every example the pack's original_source
// carries). cfg.workers threads through as the builder's parallelism.
func (m *Manager) BuildReduced(ctx context.Context, s Spec, kind Kind) (Edge, error) {
	ctx = WithBuilderWorkers(ctx, m.cfg.workers)
	dd, err := Build(ctx, s)
	if err != nil {
		return EdgeNull, err
	}
	return m.Reduce(dd, kind)
}
