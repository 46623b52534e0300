// MIT License

package ddkit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Serializer (C7, spec.md §4.7/§6.3): a textual interchange format.
//
//	_i <max_level>
//	_o <root_count>
//	_n <node_count>
//	<id> <level> <lo> <hi>   -- node_count times, children first
//	<root>                   -- root_count times
//
// Each <id> is a positive even integer; a reference of odd value is the
// complemented form of the node whose id has its low bit cleared (BDD
// only -- ZDD streams never emit an odd reference). F/T denote the
// terminals.
//
// Grounded on original_source's export/import routines for the textual
// BDD/ZDD dump format the rest of the project's tooling (and ddctl,
// cmd/ddctl/main.go) reads and writes; no pack example repo has an
// equivalent on-disk format, so the writer/reader below is original Go
// following spec.md's grammar directly, using bufio the way the rest of
// this module's teacher-derived stats.go already does for I/O.

// ExportOne writes a single root (spec.md §6.3 export_one).
func (m *Manager) ExportOne(w io.Writer, f Edge) error {
	return m.ExportMany(w, []Edge{f})
}

// ExportMany writes every root in roots, sharing their reachable nodes
// (spec.md §6.3 export_many). Traversal order is post-order, 0-edge
// first, so that importing the stream back in encounter order never
// references an id not yet defined.
func (m *Manager) ExportMany(w io.Writer, roots []Edge) error {
	for _, r := range roots {
		m.checkEdge(r)
	}
	bw := bufio.NewWriter(w)

	ids := make(map[int32]int32) // node index -> exported id (even, positive)
	var order []int32
	var next int32 = 2
	var walk func(int32)
	walk = func(idx int32) {
		if _, ok := ids[idx]; ok {
			return
		}
		n := &m.st.nodes[idx]
		if !n.lo.IsConst() {
			walk(n.lo.Index())
		}
		if !n.hi.IsConst() {
			walk(n.hi.Index())
		}
		ids[idx] = next
		next += 2
		order = append(order, idx)
	}
	for _, r := range roots {
		if !r.IsConst() {
			walk(r.Index())
		}
	}

	maxLevel := m.reg.topLevel()
	fmt.Fprintf(bw, "_i %d\n", maxLevel)
	fmt.Fprintf(bw, "_o %d\n", len(roots))
	fmt.Fprintf(bw, "_n %d\n", len(order))
	for _, idx := range order {
		n := &m.st.nodes[idx]
		fmt.Fprintf(bw, "%d %d %s %s\n", ids[idx], m.reg.level(n.v), refToken(n.lo, ids), refToken(n.hi, ids))
	}
	for _, r := range roots {
		fmt.Fprintf(bw, "%s\n", refToken(r, ids))
	}
	return bw.Flush()
}

func refToken(e Edge, ids map[int32]int32) string {
	switch e {
	case EdgeFalse:
		return "F"
	case EdgeTrue:
		return "T"
	}
	id := ids[e.Index()]
	if e.IsCompl() {
		id++
	}
	return strconv.Itoa(int(id))
}

// ImportBDD reads a stream written by ExportMany/ExportOne back as BDD
// nodes, returning the roots in the order they were written. On any
// malformed input it returns an error without mutating the Manager
// (spec.md §4.7: "import failed ... without mutating the manager" --
// achieved here by fully parsing and validating into a scratch table
// before creating a single Manager node).
func (m *Manager) ImportBDD(r io.Reader) ([]Edge, error) {
	return m.importStream(r, KindBDD)
}

// ImportZDD reads a stream back as ZDD nodes (spec.md §4.7: "importing a
// ZDD uses a different recomposer ... the decision is made by the
// caller").
func (m *Manager) ImportZDD(r io.Reader) ([]Edge, error) {
	return m.importStream(r, KindZDD)
}

type importNode struct {
	level  int32
	lo, hi int32 // encoded reference: 0 = F, 1 = T, id (even, >=2, possibly +1 for complement) otherwise
}

func (m *Manager) importStream(r io.Reader, kind Kind) ([]Edge, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	readLine := func(keyword string) ([]string, error) {
		if !sc.Scan() {
			return nil, fmt.Errorf("ddkit: import failed: expected %q, got EOF", keyword)
		}
		fields := splitFields(sc.Text())
		if len(fields) == 0 || fields[0] != keyword {
			return nil, fmt.Errorf("ddkit: import failed: expected %q", keyword)
		}
		return fields, nil
	}

	hdr, err := readLine("_i")
	if err != nil || len(hdr) != 2 {
		return nil, fmt.Errorf("ddkit: import failed: malformed _i line")
	}
	maxLevel, err := strconv.ParseInt(hdr[1], 10, 32)
	if err != nil || maxLevel < 0 {
		return nil, fmt.Errorf("ddkit: import failed: malformed max_level")
	}

	ohdr, err := readLine("_o")
	if err != nil || len(ohdr) != 2 {
		return nil, fmt.Errorf("ddkit: import failed: malformed _o line")
	}
	rootCount, err := strconv.Atoi(ohdr[1])
	if err != nil || rootCount < 0 {
		return nil, fmt.Errorf("ddkit: import failed: malformed root_count")
	}

	nhdr, err := readLine("_n")
	if err != nil || len(nhdr) != 2 {
		return nil, fmt.Errorf("ddkit: import failed: malformed _n line")
	}
	nodeCount, err := strconv.Atoi(nhdr[1])
	if err != nil || nodeCount < 0 {
		return nil, fmt.Errorf("ddkit: import failed: malformed node_count")
	}

	nodes := make(map[int32]*importNode, nodeCount)
	parseRef := func(tok string) (int32, error) {
		switch tok {
		case "F":
			return 0, nil
		case "T":
			return 1, nil
		}
		v, err := strconv.ParseInt(tok, 10, 32)
		if err != nil || v < 2 {
			return 0, fmt.Errorf("ddkit: import failed: malformed reference %q", tok)
		}
		return int32(v), nil
	}

	var order []int32
	for i := 0; i < nodeCount; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("ddkit: import failed: truncated node table")
		}
		f := splitFields(sc.Text())
		if len(f) != 4 {
			return nil, fmt.Errorf("ddkit: import failed: malformed node line")
		}
		id, err := strconv.ParseInt(f[0], 10, 32)
		if err != nil || id < 2 || id%2 != 0 {
			return nil, fmt.Errorf("ddkit: import failed: malformed node id %q", f[0])
		}
		lev, err := strconv.ParseInt(f[1], 10, 32)
		if err != nil || lev < 1 || lev > maxLevel {
			return nil, fmt.Errorf("ddkit: import failed: malformed node level %q", f[1])
		}
		lo, err := parseRef(f[2])
		if err != nil {
			return nil, err
		}
		hi, err := parseRef(f[3])
		if err != nil {
			return nil, err
		}
		if _, dup := nodes[int32(id)]; dup {
			return nil, fmt.Errorf("ddkit: import failed: duplicate node id %d", id)
		}
		nodes[int32(id)] = &importNode{level: int32(lev), lo: lo, hi: hi}
		order = append(order, int32(id))
	}

	roots := make([]int32, rootCount)
	for i := 0; i < rootCount; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("ddkit: import failed: truncated root list")
		}
		ref, err := parseRef(sc.Text())
		if err != nil {
			return nil, err
		}
		roots[i] = ref
	}

	// validate every reference points at F/T or a previously listed id
	// (children-first order, so "previously listed" means "already
	// in `nodes`" by construction of the loop above is not itself
	// sufficient -- a forward reference would still be a valid map
	// key, so check explicitly against the declared order prefix).
	seen := make(map[int32]bool, len(order))
	checkRef := func(ref int32) error {
		if ref == 0 || ref == 1 {
			return nil
		}
		base := ref &^ 1
		if !seen[base] {
			return fmt.Errorf("ddkit: import failed: dangling or forward reference %d", ref)
		}
		return nil
	}
	for _, id := range order {
		n := nodes[id]
		if err := checkRef(n.lo); err != nil {
			return nil, err
		}
		if err := checkRef(n.hi); err != nil {
			return nil, err
		}
		seen[id] = true
	}
	for _, ref := range roots {
		if err := checkRef(ref); err != nil {
			return nil, err
		}
	}
	if kind == KindZDD {
		for _, id := range order {
			n := nodes[id]
			if n.lo%2 != 0 || n.hi%2 != 0 {
				return nil, fmt.Errorf("ddkit: import failed: complemented reference in ZDD stream")
			}
		}
		for _, ref := range roots {
			if ref%2 != 0 {
				return nil, fmt.Errorf("ddkit: import failed: complemented root in ZDD stream")
			}
		}
	}

	for int32(m.reg.topLevel()) < int32(maxLevel) {
		m.NewVar()
	}

	built := make(map[int32]Edge, len(order))
	toEdge := func(ref int32) Edge {
		switch ref {
		case 0:
			return EdgeFalse
		case 1:
			return m.st.acquire(EdgeTrue)
		}
		base := ref &^ 1
		e := m.st.acquire(built[base])
		if ref%2 != 0 {
			e = e.Negate()
		}
		return e
	}
	for _, id := range order {
		n := nodes[id]
		lo := toEdge(n.lo)
		hi := toEdge(n.hi)
		v := m.reg.variable(n.level)
		var e Edge
		if kind == KindBDD {
			e = m.makeBDD(v, lo, hi)
		} else {
			e = makeZDD(m, v, lo, hi)
		}
		built[id] = e
	}

	result := make([]Edge, rootCount)
	for i, ref := range roots {
		result[i] = toEdge(ref)
	}
	// built's own reference to each node (one unit of refcount per entry,
	// contributed when it was first constructed) is redundant now that
	// every consumer -- sibling nodes' lo/hi fields and the roots above
	// -- holds its own acquired copy via toEdge; release it so
	// non-root intermediate nodes don't leak a permanent extra count.
	for _, e := range built {
		m.st.release(e)
	}
	return result, nil
}

func splitFields(line string) []string {
	var fields []string
	start := -1
	for i, r := range line {
		if r == ' ' || r == '\t' || r == '\r' {
			if start >= 0 {
				fields = append(fields, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, line[start:])
	}
	return fields
}
