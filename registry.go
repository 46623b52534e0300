// MIT License

package ddkit

// registry is the variable registry (C3): a bijection between stable
// variable ids and dynamic levels (spec.md §3.6). Grounded on the
// teacher's varnum.go (SetVarnum/ExtVarnum, append-only growth), extended
// with the explicit lev_of_var/var_of_lev arrays and new_var_at_level that
// spec.md §4.3 asks for and the teacher, which never reorders variables,
// does not need.
type registry struct {
	levOfVar []int32 // levOfVar[v] -> level of variable v
	varOfLev []varID // varOfLev[lev] -> variable at level (0 is the terminal level)
}

func newRegistry() *registry {
	return &registry{
		levOfVar: []int32{0},
		varOfLev: []varID{0},
	}
}

// varCount returns the number of variables created so far.
func (r *registry) varCount() int { return len(r.levOfVar) - 1 }

// newVarAtTop appends a fresh variable above every existing one and
// returns its id.
func (r *registry) newVarAtTop() varID {
	v := varID(len(r.levOfVar))
	lev := int32(len(r.varOfLev))
	r.levOfVar = append(r.levOfVar, lev)
	r.varOfLev = append(r.varOfLev, v)
	return v
}

// newVarAtLevel inserts a fresh variable at level lev, shifting every
// variable currently at or above lev up by one (spec.md §4.3: "level
// reassignment is O(V_used) because it shifts the lev_of_var/var_of_lev
// arrays"). lev must be in [1, varCount()+1].
func (r *registry) newVarAtLevel(lev int32) (varID, error) {
	if lev < 1 || int(lev) > len(r.varOfLev) {
		return 0, errBadLevel
	}
	v := varID(len(r.levOfVar))
	r.levOfVar = append(r.levOfVar, 0)
	r.varOfLev = append(r.varOfLev, 0)
	copy(r.varOfLev[lev+1:], r.varOfLev[lev:len(r.varOfLev)-1])
	r.varOfLev[lev] = v
	r.levOfVar[v] = lev
	for l := lev; l < int32(len(r.varOfLev)); l++ {
		r.levOfVar[r.varOfLev[l]] = l
	}
	return v, nil
}

// level returns the current level of variable v.
func (r *registry) level(v varID) int32 {
	if v == 0 {
		return 0
	}
	return r.levOfVar[v]
}

// variable returns the variable currently sitting at level lev.
func (r *registry) variable(lev int32) varID {
	return r.varOfLev[lev]
}

// above reports whether variable a is strictly above variable b, i.e.
// lev(a) > lev(b) (spec.md §4.3 "Level comparisons are strict").
func (r *registry) above(a, b varID) bool {
	return r.level(a) > r.level(b)
}

// topLevel returns the highest level currently in use.
func (r *registry) topLevel() int32 {
	return int32(len(r.varOfLev) - 1)
}
