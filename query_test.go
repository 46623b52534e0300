// MIT License

package ddkit_test

import (
	"testing"

	"github.com/dalzilio/ddkit"
)

func TestNodeSizeAndMultiSize(t *testing.T) {
	m, err := ddkit.New(4)
	if err != nil {
		t.Fatal(err)
	}
	a := family(m, [][]int{{0, 1}, {2}})
	b := family(m, [][]int{{2}, {3}})

	if got := m.MultiSize([]ddkit.Edge{a, b}); got == 0 {
		t.Fatalf("MultiSize(a, b) = 0, want > 0 shared/unshared nodes")
	}
	if got := m.NodeSize(a); got == 0 {
		t.Fatalf("NodeSize(a) = 0, want > 0")
	}
	m.Release(a)
	m.Release(b)
}

// TestCostLESliceCostTable builds a family of singleton members {0},
// {1}, {2}, each variable costing its level (index+1), and checks that CostLE
// keeps exactly the members affordable under a given bound.
func TestCostLESliceCostTable(t *testing.T) {
	m, err := ddkit.New(3)
	if err != nil {
		t.Fatal(err)
	}
	f := family(m, [][]int{{0}, {1}, {2}})

	// level(var i) = i+1, so cost[1]=1, cost[2]=2, cost[3]=3.
	cost := ddkit.SliceCostTable{0, 1, 2, 3}

	affordable := m.CostLE(f, cost, 2)
	want := family(m, [][]int{{0}, {1}})
	if affordable != want {
		t.Fatalf("CostLE(f, cost, 2) did not match the expected affordable family")
	}

	m.Release(f)
	m.Release(affordable)
	m.Release(want)
}
