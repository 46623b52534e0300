// MIT License

package ddkit_test

import (
	"testing"

	"github.com/dalzilio/ddkit"
)

// family builds the ZDD for an explicit list of member sets, each member
// given as a list of 0-based variable indices. Grounded on the same
// "build a small family directly from Union/ZVar/Change" pattern
// zzenonn-go-zdd's own tests use to construct expected values by hand.
func family(m *ddkit.Manager, members [][]int) ddkit.Edge {
	res := m.Acquire(ddkit.EdgeFalse)
	for _, mem := range members {
		cur := m.Acquire(ddkit.EdgeTrue)
		for _, v := range mem {
			next := m.Change(cur, v)
			m.Release(cur)
			cur = next
		}
		next := m.Union(res, cur)
		m.Release(res)
		m.Release(cur)
		res = next
	}
	return res
}

func TestUnionIntersectSubtract(t *testing.T) {
	m, err := ddkit.New(4)
	if err != nil {
		t.Fatal(err)
	}

	a := family(m, [][]int{{0}, {0, 1}, {2}})
	b := family(m, [][]int{{0, 1}, {3}})

	union := m.Union(a, b)
	want := family(m, [][]int{{0}, {0, 1}, {2}, {3}})
	if union != want {
		t.Fatalf("Union mismatch")
	}

	inter := m.Intersec(a, b)
	wantInter := family(m, [][]int{{0, 1}})
	if inter != wantInter {
		t.Fatalf("Intersec mismatch")
	}

	sub := m.Subtract(a, b)
	wantSub := family(m, [][]int{{0}, {2}})
	if sub != wantSub {
		t.Fatalf("Subtract mismatch")
	}
}

func TestCardinalityAndMaxLength(t *testing.T) {
	m, err := ddkit.New(6)
	if err != nil {
		t.Fatal(err)
	}
	f := family(m, [][]int{{0}, {1, 2}, {0, 1, 2, 3}, {}})
	if card := m.CardinalityBig(f); card.Int64() != 4 {
		t.Fatalf("CardinalityBig() = %v, want 4", card)
	}
	if max := m.MaxLength(f); max != 4 {
		t.Fatalf("MaxLength() = %d, want 4", max)
	}
}

func TestChangeInvolution(t *testing.T) {
	m, err := ddkit.New(4)
	if err != nil {
		t.Fatal(err)
	}
	f := family(m, [][]int{{0}, {1, 2}, {0, 2, 3}})
	once := m.Change(f, 2)
	twice := m.Change(once, 2)
	if twice != f {
		t.Fatalf("Change(Change(f, v), v) != f")
	}
	m.Release(once)
	m.Release(twice)
	m.Release(f)
}

func TestOnsetOffsetPartition(t *testing.T) {
	m, err := ddkit.New(4)
	if err != nil {
		t.Fatal(err)
	}
	f := family(m, [][]int{{0}, {1, 2}, {0, 2, 3}, {2}})

	on := m.Onset(f, 2)
	off := m.Offset(f, 2)
	reunited := m.Union(on, off)
	if reunited != f {
		t.Fatalf("Union(Onset(f,v), Offset(f,v)) != f")
	}

	wantOn := family(m, [][]int{{1, 2}, {0, 2, 3}, {2}})
	if on != wantOn {
		t.Fatalf("Onset mismatch")
	}
	wantOff := family(m, [][]int{{0}})
	if off != wantOff {
		t.Fatalf("Offset mismatch")
	}
	m.Release(on)
	m.Release(off)
	m.Release(reunited)
	m.Release(wantOn)
	m.Release(wantOff)
	m.Release(f)
}

// TestSubsetsOfSizeLE is the cardinality=42 scenario (SPEC_FULL.md §8.3):
// the number of subsets of a 6-element universe with at most 3 elements
// is C(6,0)+C(6,1)+C(6,2)+C(6,3) = 1+6+15+20 = 42.
func TestSubsetsOfSizeLE(t *testing.T) {
	m, err := ddkit.New(6)
	if err != nil {
		t.Fatal(err)
	}
	universe := m.Acquire(ddkit.EdgeTrue)
	for v := 0; v < 6; v++ {
		zv := m.ZVar(v)
		withV := m.Product(universe, zv)
		next := m.Union(universe, withV)
		m.Release(universe)
		m.Release(zv)
		m.Release(withV)
		universe = next
	}

	subsets := m.PermitSym(universe, 3)
	got := m.CardinalityBig(subsets).Int64()
	if got != 42 {
		t.Fatalf("CardinalityBig(PermitSym(powerset(6), 3)) = %d, want 42", got)
	}
}
