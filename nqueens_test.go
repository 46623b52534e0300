// MIT License

package ddkit_test

import (
	"math/big"
	"testing"

	"github.com/dalzilio/ddkit"
)

// nqueens computes the number of solutions to the N-Queens problem,
// ported from the teacher's nqueens_test.go. It builds a BDD with N*N
// variables, one per board square.
func nqueens(N int) *big.Int {
	m, _ := ddkit.New(N*N, ddkit.Nodesize(N*N*256), ddkit.Cachesize(N*N*64), ddkit.Cacheratio(30))
	queen := m.True()
	x := make([][]ddkit.Edge, N)
	for i := range x {
		x[i] = make([]ddkit.Edge, N)
		for j := range x[i] {
			x[i][j] = m.Ithvar(i*N + j)
		}
	}
	// Place a queen in each row.
	for i := 0; i < N; i++ {
		e := m.False()
		for j := 0; j < N; j++ {
			e = m.Or(e, x[i][j])
		}
		queen = m.And(queen, e)
	}
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			a := m.True()
			for k := 0; k < N; k++ {
				if k != j {
					a = m.And(a, m.Imp(x[i][j], m.Not(x[i][k])))
				}
			}
			b := m.True()
			for k := 0; k < N; k++ {
				if k != i {
					b = m.And(b, m.Imp(x[i][j], m.Not(x[k][j])))
				}
			}
			c := m.True()
			for k := 0; k < N; k++ {
				ll := k - i + j
				if ll >= 0 && ll < N && k != i {
					c = m.And(c, m.Imp(x[i][j], m.Not(x[k][ll])))
				}
			}
			d := m.True()
			for k := 0; k < N; k++ {
				ll := i + j - k
				if ll >= 0 && ll < N && k != i {
					d = m.And(d, m.Imp(x[i][j], m.Not(x[k][ll])))
				}
			}
			queen = m.And(m.And(m.And(queen, a), b), c)
			queen = m.And(queen, d)
		}
	}
	return m.Satcount(queen)
}

func TestNQueens(t *testing.T) {
	var nqueensTests = []struct {
		N        int
		expected int64
	}{
		{4, 2},
		{5, 10},
		{6, 4},
	}
	for _, tt := range nqueensTests {
		actual := nqueens(tt.N)
		if actual.Cmp(big.NewInt(tt.expected)) != 0 {
			t.Errorf("NQueens(%d): expected %d, got %s", tt.N, tt.expected, actual)
		}
	}
}

func BenchmarkNQueens(b *testing.B) {
	for n := 0; n < b.N; n++ {
		nqueens(6)
	}
}
