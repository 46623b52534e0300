// MIT License

package ddkit_test

import (
	"fmt"
	"log"

	"github.com/dalzilio/ddkit"
)

// This example shows the basic usage of the package: create a BDD,
// compute some expressions and output the result.
func Example_basic() {
	m, _ := ddkit.New(6, ddkit.Nodesize(10000), ddkit.Cachesize(3000))
	// n1 is a set comprising the three variables {x2, x3, x5}. It can also
	// be interpreted as the Boolean expression: x2 & x3 & x5
	n1 := m.Makeset([]int{2, 3, 5})
	// n2 == x1 | !x3 | x4
	n2 := m.Or(m.Or(m.Ithvar(1), m.NIthvar(3)), m.Ithvar(4))
	// n3 == ∃ x2,x3,x5 . (n2 & x3)
	n3 := m.AndExist(n2, m.Ithvar(3), n1)
	log.Print("\n" + m.Stats())
	fmt.Printf("Number of sat. assignments is %s\n", m.Satcount(n3))
	// Output:
	// Number of sat. assignments is 48
}

// An example of a callback handler, used in a call to Allsat, that
// counts the number of possible assignments (don't cares counted once).
func Example_allsat() {
	m, _ := ddkit.New(5)
	n := m.AndExist(m.Makeset([]int{2, 3}),
		m.Or(m.Or(m.Ithvar(1), m.NIthvar(3)), m.Ithvar(4)),
		m.Ithvar(3))
	acc := new(int)
	m.Allsat(n, func(varset []int) error {
		*acc++
		return nil
	})
	fmt.Printf("Number of sat. assignments (without don't care) is %d", *acc)
	// Output:
	// Number of sat. assignments (without don't care) is 2
}

// An example of a callback handler, used in a call to Allnodes, that
// counts the number of active nodes in the whole BDD.
func Example_allnodes() {
	m, _ := ddkit.New(5)
	n := m.AndExist(m.Makeset([]int{2, 3}),
		m.Or(m.Or(m.Ithvar(1), m.NIthvar(3)), m.Ithvar(4)),
		m.Ithvar(3))
	acc := new(int)
	count := func(id, level int, lo, hi ddkit.Edge) error {
		*acc++
		return nil
	}
	m.Allnodes(count)
	fmt.Printf("Number of active nodes in BDD is %d\n", *acc)
	*acc = 0
	m.Allnodes(count, n)
	fmt.Printf("Number of active nodes in node is %d", *acc)
}
