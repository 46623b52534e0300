// MIT License

package ddkit_test

import (
	"bytes"
	"testing"

	"github.com/dalzilio/ddkit"
)

// TestSerializeRoundTripBDD covers spec.md §8.3 scenario 4: export a BDD of
// size > 10, import it back, re-export, and require byte-for-byte equal
// streams.
func TestSerializeRoundTripBDD(t *testing.T) {
	m, err := ddkit.New(12)
	if err != nil {
		t.Fatal(err)
	}
	// f = (x0 and x1) or (x2 and x3) or ... or (x10 and x11): one node
	// per variable, so 12 internal nodes.
	var f ddkit.Edge = m.Acquire(ddkit.EdgeFalse)
	for i := 0; i+1 < 12; i += 2 {
		va := m.Ithvar(i)
		vb := m.Ithvar(i + 1)
		conj := m.And(va, vb)
		m.Release(va)
		m.Release(vb)
		next := m.Or(f, conj)
		m.Release(f)
		m.Release(conj)
		f = next
	}

	var buf1 bytes.Buffer
	if err := m.ExportOne(&buf1, f); err != nil {
		t.Fatal(err)
	}
	if m.NodeUsed() <= 10 {
		t.Fatalf("expected more than 10 live nodes for round-trip scenario, got %d", m.NodeUsed())
	}

	roots, err := m.ImportBDD(bytes.NewReader(buf1.Bytes()))
	if err != nil {
		t.Fatalf("ImportBDD failed: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if roots[0] != f {
		t.Fatalf("imported root does not structurally match original (canonicity broken)")
	}

	var buf2 bytes.Buffer
	if err := m.ExportOne(&buf2, roots[0]); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Fatalf("re-exported stream differs from original:\n--- first ---\n%s\n--- second ---\n%s", buf1.String(), buf2.String())
	}
}

// TestSerializeRoundTripZDD exercises the ZDD recomposer path and checks
// that cardinality survives the round trip.
func TestSerializeRoundTripZDD(t *testing.T) {
	m, err := ddkit.New(5)
	if err != nil {
		t.Fatal(err)
	}
	f := family(m, [][]int{{0}, {1, 2}, {0, 2, 3}, {4}})

	var buf bytes.Buffer
	if err := m.ExportOne(&buf, f); err != nil {
		t.Fatal(err)
	}
	roots, err := m.ImportZDD(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ImportZDD failed: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if roots[0] != f {
		t.Fatalf("imported ZDD does not structurally match original")
	}
	if got := m.CardinalityBig(roots[0]).Int64(); got != 4 {
		t.Fatalf("CardinalityBig(imported) = %d, want 4", got)
	}
}

// TestImportRejectsMalformedStream checks a handful of the validation
// rules importStream enforces before ever mutating the Manager
// (spec.md §4.7).
func TestImportRejectsMalformedStream(t *testing.T) {
	m, err := ddkit.New(4)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		stream string
	}{
		{"bad header keyword", "_x 2\n_o 1\n_n 0\nF\n"},
		{"forward reference", "_i 2\n_o 1\n_n 1\n2 1 4 F\nF\n"},
		{"duplicate id", "_i 2\n_o 1\n_n 2\n2 1 F T\n2 2 F T\n2\n"},
		{"truncated node table", "_i 2\n_o 1\n_n 2\n2 1 F T\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := m.ImportBDD(bytes.NewReader([]byte(c.stream))); err == nil {
				t.Fatalf("expected error for %s", c.name)
			}
		})
	}
}
