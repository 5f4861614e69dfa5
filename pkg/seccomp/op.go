package seccomp

import "github.com/zqzqsb/seccomp/pkg/seccomp/scmp"

// Op is the relation a comparison checks between a syscall argument and its
// datum.
type Op uint8

const (
	OpNotEqual       Op = iota + 1 // arg != datum
	OpLess                         // arg < datum
	OpLessOrEqual                  // arg <= datum
	OpEqual                        // arg == datum
	OpGreaterOrEqual               // arg >= datum
	OpGreater                      // arg > datum
	OpMaskedEqual                  // arg & mask == datum
)

// compare translates op to the facility's comparison code. An unknown op
// yields 0, which every facility rejects.
func (op Op) compare() scmp.Compare {
	switch op {
	case OpNotEqual:
		return scmp.CmpNE
	case OpLess:
		return scmp.CmpLT
	case OpLessOrEqual:
		return scmp.CmpLE
	case OpEqual:
		return scmp.CmpEQ
	case OpGreaterOrEqual:
		return scmp.CmpGE
	case OpGreater:
		return scmp.CmpGT
	case OpMaskedEqual:
		return scmp.CmpMaskedEQ
	}
	return 0
}

func (op Op) String() string {
	return op.compare().String()
}
