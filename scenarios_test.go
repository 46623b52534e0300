// MIT License

package ddkit_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/dalzilio/ddkit"
)

// TestScenarioTinyBDDAnd is spec.md §8.3 scenario 1: a,b,c at levels 3,2,1;
// f = and(a, or(b,c)); size(f)=3; cofactor(f,a,1)=or(b,c);
// cofactor(f,a,0)=bottom.
func TestScenarioTinyBDDAnd(t *testing.T) {
	m, err := ddkit.New(3)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := m.Ithvar(2), m.Ithvar(1), m.Ithvar(0)
	bc := m.Or(b, c)
	f := m.And(a, bc)

	if size := m.NodeSize(f); size != 3 {
		t.Fatalf("NodeSize(f) = %d, want 3", size)
	}
	if got := m.Cofactor(f, 2, true); got != bc {
		t.Fatalf("Cofactor(f, a, 1) != or(b,c)")
	}
	if got := m.Cofactor(f, 2, false); got != ddkit.EdgeFalse {
		t.Fatalf("Cofactor(f, a, 0) != bottom")
	}
}

// TestScenarioTinyZDDFamily is scenario 2: family {{1,2},{1,3},{2,3}};
// cardinality=3; literal_count=6; max_length=2; always(F)=empty;
// subtract(F,F)=empty.
func TestScenarioTinyZDDFamily(t *testing.T) {
	m, err := ddkit.New(4)
	if err != nil {
		t.Fatal(err)
	}
	f := family(m, [][]int{{1, 2}, {1, 3}, {2, 3}})

	if got := m.CardinalityBig(f).Int64(); got != 3 {
		t.Fatalf("CardinalityBig(f) = %d, want 3", got)
	}
	if got := m.LiteralCount(f).Int64(); got != 6 {
		t.Fatalf("LiteralCount(f) = %d, want 6", got)
	}
	if got := m.MaxLength(f); got != 2 {
		t.Fatalf("MaxLength(f) = %d, want 2", got)
	}
	if got := m.Always(f); got != ddkit.EdgeFalse {
		t.Fatalf("Always(f) != empty, family has no common member")
	}
	if got := m.Subtract(f, f); got != ddkit.EdgeFalse {
		t.Fatalf("Subtract(f, f) != empty")
	}
}

// TestScenarioComplementCanonicalisation is scenario 3: not(and(a,b))
// built two syntactically different ways must produce bit-identical
// handles, since the complement bit is folded into canonical form
// rather than allocating a distinct node.
func TestScenarioComplementCanonicalisation(t *testing.T) {
	m, err := ddkit.New(2)
	if err != nil {
		t.Fatal(err)
	}
	a, b := m.Ithvar(0), m.Ithvar(1)

	viaNand := m.Not(m.And(a, b))
	viaDeMorgan := m.Or(m.Not(a), m.Not(b))

	if viaNand != viaDeMorgan {
		t.Fatalf("not(and(a,b)) and or(not(a),not(b)) are not bit-identical handles: %v vs %v", viaNand, viaDeMorgan)
	}
}

// TestScenarioRoundTripSerialisation is scenario 4, already covered in
// depth by TestSerializeRoundTripBDD in serializer_test.go; this is the
// minimal literal check that export/import/export are byte-identical.
func TestScenarioRoundTripSerialisation(t *testing.T) {
	m, err := ddkit.New(4)
	if err != nil {
		t.Fatal(err)
	}
	f := family(m, [][]int{{0}, {1, 2}, {0, 1, 2, 3}, {2, 3}})

	var first bytes.Buffer
	if err := m.ExportOne(&first, f); err != nil {
		t.Fatal(err)
	}
	roots, err := m.ImportZDD(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	var second bytes.Buffer
	if err := m.ExportOne(&second, roots[0]); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("export/import/export is not byte-identical")
	}
}

// TestScenarioStressGC is scenario 5: repeatedly build and release
// or-of-cubes under a constrained node table, driving GC, and require
// that node usage returns to 0 once every handle has been released.
func TestScenarioStressGC(t *testing.T) {
	m, err := ddkit.New(8, ddkit.Maxnodesize(1024))
	if err != nil {
		t.Fatal(err)
	}
	for round := 0; round < 50; round++ {
		acc := m.Acquire(ddkit.EdgeFalse)
		for i := 0; i < 8; i++ {
			v := m.Ithvar(i)
			next := m.Or(acc, v)
			m.Release(acc)
			m.Release(v)
			acc = next
		}
		m.Release(acc)
		m.GC()
	}
	if used := m.NodeUsed(); used != 0 {
		t.Fatalf("NodeUsed() = %d after releasing every handle, want 0", used)
	}
}

// TestScenarioBuilderSimpleSpec is scenario 6, exercised through the
// actual Spec/Build/Reduce pipeline (TestBuildReducedSubsets in
// builder_test.go covers the same assertion via BuildReduced directly;
// this one drives Build+Reduce as two separate steps to exercise the
// raw, pre-reduction rawDD shape too).
func TestScenarioBuilderSimpleSpec(t *testing.T) {
	m, err := ddkit.New(6)
	if err != nil {
		t.Fatal(err)
	}
	dd, err := ddkit.Build(context.Background(), &subsetSpec{n: 6, k: 3})
	if err != nil {
		t.Fatal(err)
	}
	f, err := m.Reduce(dd, ddkit.KindZDD)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.CardinalityBig(f).Int64(); got != 42 {
		t.Fatalf("CardinalityBig(Reduce(Build(subsets of 6, <=3))) = %d, want 42", got)
	}
}
