// MIT License

package ddkit

// Spec is the specification contract the DD Builder (C8) and Subsetter
// (C10) drive top-down (spec.md §6.2). A state is an opaque byte
// buffer the Spec interprets; the Manager never reads its contents,
// only calls back into Spec to hash, compare, copy, and destruct it.
//
// GetRoot/GetChild return a level: 0 is the false terminal, -1 is the
// true terminal, any positive value is a non-terminal level strictly
// less than the parent's. A violation of that strict-decrease rule is
// a caller bug and is fatal, not a returned error (spec.md §7).
//
// Grounded on original_source's DdSpec.hpp (datasize/get_root/
// get_child/get_copy/destruct/destructLevel/hash_code/equal_to -- no
// example repo in the pack implements this contract itself, since it
// is the one piece of the original TdZdd/SAPPOROBDD machinery spec.md
// distills that has no Go precedent in the retrieved examples) and on
// zzenonn-go-zdd's ConstraintSpec for the Go-idiomatic method-per-
// concern shape (one method per DdSpec function, not one struct of
// function pointers).
type Spec interface {
	// StateSize returns the number of bytes a state buffer occupies.
	StateSize() int

	// GetRoot initialises state (already zeroed, StateSize() bytes) as
	// the root state and returns its level.
	GetRoot(state []byte) int32

	// GetChild mutates state in place into the branch-th child state
	// (branch is 0 or 1, this package only builds binary DDs) and
	// returns the child's level.
	GetChild(state []byte, level int32, branch int) int32

	// Hash returns a hash of state, used to bucket per-level frontier
	// dedup and Subsetter memoisation.
	Hash(state []byte) uint64

	// Equal reports whether a and b denote the same state.
	Equal(a, b []byte) bool

	// Copy duplicates src into dst; both are StateSize() bytes.
	Copy(dst, src []byte)

	// Destruct releases any resources state holds (e.g. nested slices
	// or handles the Spec allocated in GetRoot/GetChild/Copy). A no-op
	// embeddable base is provided by NopDestruct.
	Destruct(state []byte)

	// DestructLevel is called once a level's frontier has been fully
	// processed and will never be revisited, so the Spec can release
	// any level-scoped cache (spec.md §4.8 step 4). May be a no-op.
	DestructLevel(level int32)
}

// SpecFalse and SpecTrue are the two terminal levels a Spec's
// GetRoot/GetChild may return.
const (
	SpecFalse int32 = 0
	SpecTrue  int32 = -1
)

// NopDestruct can be embedded by a Spec whose states are plain value
// types needing no explicit cleanup (spec.md §6.2 destruct/
// destruct_level are "optional" in the original contract).
type NopDestruct struct{}

func (NopDestruct) Destruct(state []byte)    {}
func (NopDestruct) DestructLevel(level int32) {}
