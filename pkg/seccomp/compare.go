package seccomp

import (
	"fmt"

	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
)

// Compare is a comparison under construction. Every method returns an
// updated copy, so a partial Compare can be reused as a template.
type Compare struct {
	arg    uint32
	op     Op
	datumA uint64
	datumB uint64
	hasA   bool
}

// Arg starts a comparison on syscall argument n, counting from 0.
func Arg(n uint32) Compare {
	return Compare{arg: n}
}

// Using sets the operator.
func (c Compare) Using(op Op) Compare {
	c.op = op
	return c
}

// With sets the primary datum.
func (c Compare) With(datum uint64) Compare {
	c.datumA = datum
	c.hasA = true
	return c
}

// And sets the secondary datum, the mask of OpMaskedEqual. It defaults
// to 0.
func (c Compare) And(datum uint64) Compare {
	c.datumB = datum
	return c
}

// Build finalizes the comparison. It reports false when the operator or
// the primary datum is missing. Operator and datum are not checked against
// each other: OpMaskedEqual without And compares against mask 0.
func (c Compare) Build() (Cmp, bool) {
	if c.op == 0 || !c.hasA {
		return Cmp{}, false
	}
	return Cmp{arg: c.arg, op: c.op, datumA: c.datumA, datumB: c.datumB}, true
}

// Cmp is a complete argument comparison.
type Cmp struct {
	arg    uint32
	op     Op
	datumA uint64
	datumB uint64
}

// Arg returns the index of the compared syscall argument.
func (c Cmp) Arg() uint32 { return c.arg }

// Op returns the comparison operator.
func (c Cmp) Op() Op { return c.op }

// DatumA returns the primary datum.
func (c Cmp) DatumA() uint64 { return c.datumA }

// DatumB returns the secondary datum, the mask of OpMaskedEqual.
func (c Cmp) DatumB() uint64 { return c.datumB }

func (c Cmp) wire() scmp.ArgCmp {
	return scmp.ArgCmp{
		Arg:    c.arg,
		Op:     c.op.compare(),
		DatumA: c.datumA,
		DatumB: c.datumB,
	}
}

func (c Cmp) String() string {
	if c.op == OpMaskedEqual {
		return fmt.Sprintf("arg%d & %#x == %#x", c.arg, c.datumB, c.datumA)
	}
	return fmt.Sprintf("arg%d %s %#x", c.arg, c.op, c.datumA)
}
