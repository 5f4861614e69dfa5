// Package scmp describes the boundary between the policy model in package
// seccomp and the facility that compiles and installs a filter.
//
// The contract mirrors the libseccomp C interface: a facility hands out an
// opaque handle from Init, accepts rules as (action, syscall, comparison
// array) triples, compiles and installs everything on Load, and forgets the
// handle on Release.
package scmp

// Handle is an opaque filter object owned by whoever called Init.
// Only the facility that produced it may interpret it.
type Handle interface{}

// Facility is the external syscall filtering facility.
//
// Init returns a nil handle or a non-nil error when no filter could be
// allocated. RuleAdd and Load report rejection with a non-nil error.
// Release must be called exactly once for every handle Init returned.
type Facility interface {
	Init(defAction uint32) (Handle, error)
	RuleAdd(h Handle, action uint32, syscall int, cmps []ArgCmp) error
	Load(h Handle) error
	Release(h Handle)
}

// Compare is the primitive comparison code, numbered like enum scmp_compare.
type Compare uint32

const (
	CmpNE       Compare = iota + 1 // not equal
	CmpLT                          // less than
	CmpLE                          // less than or equal
	CmpEQ                          // equal
	CmpGE                          // greater than or equal
	CmpGT                          // greater than
	CmpMaskedEQ                    // (arg & DatumB) == DatumA
)

// Valid reports whether c is one of the known comparison codes.
func (c Compare) Valid() bool {
	return c >= CmpNE && c <= CmpMaskedEQ
}

func (c Compare) String() string {
	switch c {
	case CmpNE:
		return "!="
	case CmpLT:
		return "<"
	case CmpLE:
		return "<="
	case CmpEQ:
		return "=="
	case CmpGE:
		return ">="
	case CmpGT:
		return ">"
	case CmpMaskedEQ:
		return "&=="
	}
	return "invalid"
}

// ArgCmp is one argument comparison as handed to the facility.
// The field order is part of the contract and must not change.
type ArgCmp struct {
	Arg    uint32  // syscall argument index, starting at 0
	Op     Compare // comparison code
	DatumA uint64  // primary datum
	DatumB uint64  // secondary datum, the mask for CmpMaskedEQ
}

// MaxArgs is the number of syscall arguments visible to a filter.
const MaxArgs = 6
