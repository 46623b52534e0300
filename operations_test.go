// MIT License

package ddkit_test

import (
	"testing"

	"github.com/dalzilio/ddkit"
)

// TestIteTautology checks ite(f,g,h) <=> (f and g) or (not f and h), the
// textbook ITE identity, ported from the teacher's operations_test.go
// TestIte_1.
func TestIteTautology(t *testing.T) {
	m, err := ddkit.New(4, ddkit.Nodesize(5000), ddkit.Cacheratio(50))
	if err != nil {
		t.Fatal(err)
	}
	n1 := m.Makeset([]int{0, 2, 3})
	n2 := m.Makeset([]int{0, 3})
	lhs := m.Ite(n1, n2, m.Not(n2))
	rhs := m.Or(m.And(n1, n2), m.And(m.Not(n1), m.Not(n2)))
	if m.Equiv(lhs, rhs) != m.True() {
		t.Errorf("ite(f,g,h) <=> (f and g) or (not f and h): expected true, got false")
	}
}

// TestApplyTruthTable checks And/Or/Xor/Nand/Nor/Xnor over two
// independent variables against the known satisfying-assignment count
// out of the 4 possible (x,y) pairs, ported in spirit from the
// teacher's TestOperations.
func TestApplyTruthTable(t *testing.T) {
	m, err := ddkit.New(2)
	if err != nil {
		t.Fatal(err)
	}
	x, y := m.Ithvar(0), m.Ithvar(1)

	cases := []struct {
		name string
		e    ddkit.Edge
		want int64
	}{
		{"and", m.And(x, y), 1},
		{"or", m.Or(x, y), 3},
		{"xor", m.Xor(x, y), 2},
		{"nand", m.Nand(x, y), 3},
		{"nor", m.Nor(x, y), 1},
		{"xnor", m.Xnor(x, y), 2},
	}
	for _, c := range cases {
		got := m.Satcount(c.e)
		if got.Int64() != c.want {
			t.Errorf("%s: expected %d satisfying assignments, got %s", c.name, c.want, got)
		}
	}
}
