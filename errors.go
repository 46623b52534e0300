// MIT License

package ddkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for resource exhaustion and malformed input (spec.md §7:
// "fail-fast for invariant violations, status-returning for resource
// exhaustion"). Invariant violations (freed-node dereference, refcount
// underflow, recursion overflow, bucket inconsistency) panic instead; see
// store.go and manager.go.
var (
	// errMemory describes node-store exhaustion. No function returns it:
	// makeNode signals an allocation it cannot satisfy by returning
	// EdgeNull.
	errMemory = errors.New("ddkit: unable to allocate node, store exhausted")

	// errBadVariable is returned by New for a negative variable count;
	// Var panics with its message for an index outside [0, VarCount()).
	errBadVariable = errors.New("ddkit: variable index out of range")

	// errBadLevel is returned by registry operations on an out-of-range
	// level.
	errBadLevel = errors.New("ddkit: level out of range")

	// errRecursionLimit describes the recursion-depth overflow. It is not
	// raised itself: enter (manager.go) panics through fatal with its own
	// message when the depth counter exceeds the RecursionLimit option.
	errRecursionLimit = errors.New("ddkit: recursion limit exceeded")

	// errMalformedStream describes a malformed textual DD stream. The
	// serializer does not return or wrap it; each import error is its own
	// fmt.Errorf value.
	errMalformedStream = errors.New("ddkit: malformed DD stream")

	// errNotReduced describes a raw, unreduced builder result. No function
	// returns it.
	errNotReduced = errors.New("ddkit: diagram is not reduced")

	// errKindMismatch describes a BDD operation applied to a ZDD edge or
	// vice versa. No function returns it; operands are not checked for
	// kind.
	errKindMismatch = errors.New("ddkit: operand kind mismatch (BDD vs ZDD)")
)

// fatal panics with a description of an invariant violation: a bug in the
// caller or in the manager itself, never a recoverable condition (spec.md
// §7).
func fatal(format string, a ...interface{}) {
	panic(fmt.Sprintf(format, a...))
}
