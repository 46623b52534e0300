// MIT License

package ddkit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
)

// Stats returns a human-readable summary of node-store and cache usage
// (spec.md §6.1 stats()), grounded on the teacher's stdio.go Stats/
// gcstats, generalised from the teacher's buddy-only fields to the
// Manager's store/cache pair.
func (m *Manager) Stats() string {
	s := m.st
	res := fmt.Sprintf("Varnum:     %d\n", m.reg.varCount())
	res += fmt.Sprintf("Allocated:  %d\n", len(s.nodes))
	res += fmt.Sprintf("Produced:   %d\n", s.produced)
	var r float64
	if len(s.nodes) > 0 {
		r = (float64(s.freeNum) / float64(len(s.nodes))) * 100
	}
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", s.freeNum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(s.nodes)-s.freeNum, 100.0-r)
	res += "==============\n"
	res += fmt.Sprintf("# of GC:    %d\n", s.gcRuns)
	if debugBuild {
		res += "==============\n"
		res += m.cache.String()
	}
	return res
}

// Print writes a textual dump of every node reachable from roots (or of
// every live node, if roots is empty) to stdout (spec.md §6.1 print()).
func (m *Manager) Print(roots ...Edge) {
	m.fprint(os.Stdout, roots...)
}

func (m *Manager) fprint(w io.Writer, roots ...Edge) {
	if len(roots) == 1 {
		switch roots[0] {
		case EdgeFalse:
			fmt.Fprintln(w, "False")
			return
		case EdgeTrue:
			fmt.Fprintln(w, "True")
			return
		}
	}
	type row struct{ id, level, lo, hi int }
	var rows []row
	err := m.Allnodes(func(id, level int, lo, hi Edge) error {
		i := sort.Search(len(rows), func(i int) bool { return rows[i].id >= id })
		rows = append(rows, row{})
		copy(rows[i+1:], rows[i:])
		rows[i] = row{id, level, int(lo), int(hi)}
		return nil
	}, roots...)
	if err != nil {
		fmt.Fprintln(w, err.Error())
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	for _, n := range rows {
		fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\n", n.id, n.level, n.lo, n.hi)
	}
	tw.Flush()
}

// PrintDot writes a Graphviz DOT rendering of every node reachable from
// roots to filename ("-" for stdout), following BDD/ZDD convention: the
// dotted edge is lo, the solid edge is hi, and the false terminal is
// elided (spec.md §6.1 export_dot(), grounded on the teacher's PrintDot).
func (m *Manager) PrintDot(filename string, roots ...Edge) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, `0 [shape=box, label="1", style=filled, height=0.3, width=0.3];`)
	err = m.Allnodes(func(id, level int, lo, hi Edge) error {
		fmt.Fprintf(w, "%d %s\n", id, dotlabel(id, level))
		if lo != EdgeFalse {
			fmt.Fprintf(w, "%d -> %d [style=dotted];\n", id, edgeNodeID(lo))
		}
		if hi != EdgeFalse {
			fmt.Fprintf(w, "%d -> %d [style=filled];\n", id, edgeNodeID(hi))
		}
		return nil
	}, roots...)
	fmt.Fprintln(w, "}")
	return w.Flush()
}

func edgeNodeID(e Edge) int {
	if e.IsConst() {
		if e == EdgeTrue {
			return 0
		}
		return -1
	}
	return int(e.Index())
}

func dotlabel(id, level int) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, id, level)
}
