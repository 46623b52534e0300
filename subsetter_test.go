// MIT License

package ddkit_test

import (
	"testing"

	"github.com/dalzilio/ddkit"
)

// containsVarSpec is the language of every ZDD member that includes a
// fixed variable (1-based level requireLevel), accepting everything else
// freely. It carries no per-path state: GetRoot/GetChild only ever need
// the caller-supplied topLevel and requireLevel, so StateSize is 0.
type containsVarSpec struct {
	ddkit.NopDestruct
	topLevel     int32
	requireLevel int32
}

func (s *containsVarSpec) StateSize() int { return 0 }

func (s *containsVarSpec) GetRoot(state []byte) int32 { return s.topLevel }

func (s *containsVarSpec) GetChild(state []byte, level int32, branch int) int32 {
	if level == s.requireLevel {
		if branch == 1 {
			return ddkit.SpecTrue
		}
		return ddkit.SpecFalse
	}
	return level - 1
}

func (s *containsVarSpec) Hash(state []byte) uint64 { return 0 }

func (s *containsVarSpec) Equal(a, b []byte) bool { return true }

func (s *containsVarSpec) Copy(dst, src []byte) {}

// TestSubsetFiltersFamily builds a small ZDD family directly and uses
// Subset to intersect it with the language of "every member that
// contains variable 1", checking the result against the same family
// built by hand with the non-matching members removed.
func TestSubsetFiltersFamily(t *testing.T) {
	m, err := ddkit.New(4)
	if err != nil {
		t.Fatal(err)
	}
	f := family(m, [][]int{{0}, {1}, {0, 1}, {1, 2, 3}, {2, 3}})

	s := &containsVarSpec{topLevel: int32(m.VarCount()), requireLevel: 2}
	got := m.Subset(f, s)

	want := family(m, [][]int{{1}, {0, 1}, {1, 2, 3}})
	if got != want {
		t.Fatalf("Subset(f, containsVar(1)) did not match the hand-filtered family")
	}
	if card := m.CardinalityBig(got).Int64(); card != 3 {
		t.Fatalf("CardinalityBig(Subset(f, containsVar(1))) = %d, want 3", card)
	}

	m.Release(f)
	m.Release(got)
	m.Release(want)
}
