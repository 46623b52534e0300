// MIT License

package ddkit_test

import (
	"context"
	"testing"

	"github.com/dalzilio/ddkit"
)

// subsetSpec drives the Builder through "all subsets of {1..n} of size <=
// k" (SPEC_FULL.md §8.3 scenario 6). A state is (remaining variables,
// remaining budget); both fit in one byte each, so StateSize is 2.
// Grounded on original_source's combination-counting DdSpec sample and on
// spec.md §6.2's byte-buffer state convention: no pack example repo
// implements a Spec, so this is original Go against that contract.
type subsetSpec struct {
	ddkit.NopDestruct
	n, k int
}

func (s *subsetSpec) StateSize() int { return 2 }

func (s *subsetSpec) GetRoot(state []byte) int32 {
	state[0] = byte(s.n)
	state[1] = byte(s.k)
	return int32(s.n)
}

func (s *subsetSpec) GetChild(state []byte, level int32, branch int) int32 {
	remaining := int(state[0]) - 1
	budget := int(state[1])
	if branch == 1 {
		budget--
	}
	state[0] = byte(remaining)
	state[1] = byte(budget)
	if budget < 0 {
		return ddkit.SpecFalse
	}
	if remaining == 0 {
		return ddkit.SpecTrue
	}
	return int32(remaining)
}

func (s *subsetSpec) Hash(state []byte) uint64 {
	return uint64(state[0])<<8 | uint64(state[1])
}

func (s *subsetSpec) Equal(a, b []byte) bool {
	return a[0] == b[0] && a[1] == b[1]
}

func (s *subsetSpec) Copy(dst, src []byte) {
	dst[0], dst[1] = src[0], src[1]
}

func TestBuildReducedSubsets(t *testing.T) {
	m, err := ddkit.New(6)
	if err != nil {
		t.Fatal(err)
	}
	f, err := m.BuildReduced(context.Background(), &subsetSpec{n: 6, k: 3}, ddkit.KindZDD)
	if err != nil {
		t.Fatal(err)
	}
	got := m.CardinalityBig(f).Int64()
	if got != 42 {
		t.Fatalf("CardinalityBig(BuildReduced(subsets of 6, <=3)) = %d, want 42", got)
	}
}

func TestBuildReducedParallel(t *testing.T) {
	m, err := ddkit.New(8, ddkit.WithWorkers(4))
	if err != nil {
		t.Fatal(err)
	}
	f, err := m.BuildReduced(context.Background(), &subsetSpec{n: 8, k: 4}, ddkit.KindZDD)
	if err != nil {
		t.Fatal(err)
	}
	// C(8,0)+C(8,1)+C(8,2)+C(8,3)+C(8,4) = 1+8+28+56+70 = 163
	got := m.CardinalityBig(f).Int64()
	if got != 163 {
		t.Fatalf("CardinalityBig(BuildReduced(subsets of 8, <=4)) = %d, want 163", got)
	}
}
