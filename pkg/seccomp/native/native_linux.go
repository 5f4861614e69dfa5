//go:build linux && cgo && libseccomp

package native

import (
	"fmt"
	"syscall"

	libseccomp "github.com/seccomp/libseccomp-golang"
	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
)

// Available reports whether the libseccomp facility was compiled in.
const Available = true

// Facility hands rules to libseccomp. The handle is a *libseccomp.ScmpFilter.
type Facility struct{}

var _ scmp.Facility = Facility{}

// New returns the libseccomp facility.
func New() scmp.Facility {
	return Facility{}
}

// Init allocates a libseccomp filter with the given default action.
func (Facility) Init(defAction uint32) (scmp.Handle, error) {
	act, err := action(defAction)
	if err != nil {
		return nil, err
	}
	f, err := libseccomp.NewFilter(act)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// RuleAdd adds a rule; a rule without comparisons is unconditional.
func (Facility) RuleAdd(h scmp.Handle, code uint32, nr int, cmps []scmp.ArgCmp) error {
	f, err := filter(h)
	if err != nil {
		return err
	}
	act, err := action(code)
	if err != nil {
		return err
	}
	if len(cmps) == 0 {
		return f.AddRule(libseccomp.ScmpSyscall(nr), act)
	}
	conds := make([]libseccomp.ScmpCondition, 0, len(cmps))
	for _, c := range cmps {
		cond, err := condition(c)
		if err != nil {
			return err
		}
		conds = append(conds, cond)
	}
	return f.AddRuleConditional(libseccomp.ScmpSyscall(nr), act, conds)
}

// Load installs the filter for the calling process.
func (Facility) Load(h scmp.Handle) error {
	f, err := filter(h)
	if err != nil {
		return err
	}
	return f.Load()
}

// Release frees the filter behind h.
func (Facility) Release(h scmp.Handle) {
	if f, err := filter(h); err == nil {
		f.Release()
	}
}

func filter(h scmp.Handle) (*libseccomp.ScmpFilter, error) {
	f, ok := h.(*libseccomp.ScmpFilter)
	if !ok || f == nil {
		return nil, fmt.Errorf("foreign filter handle %T: %w", h, syscall.EFAULT)
	}
	return f, nil
}

func action(code uint32) (libseccomp.ScmpAction, error) {
	if !scmp.ValidAction(code) {
		return libseccomp.ActInvalid, fmt.Errorf("invalid action %#x: %w", code, syscall.EINVAL)
	}
	data := int16(code & scmp.RetData)
	switch code & scmp.RetAction {
	case scmp.ActKill:
		return libseccomp.ActKillThread, nil
	case scmp.ActTrap:
		return libseccomp.ActTrap, nil
	case scmp.ActAllow:
		return libseccomp.ActAllow, nil
	case scmp.ActErrno(0):
		return libseccomp.ActErrno.SetReturnCode(data), nil
	case scmp.ActTrace(0):
		return libseccomp.ActTrace.SetReturnCode(data), nil
	}
	return libseccomp.ActInvalid, fmt.Errorf("invalid action %#x: %w", code, syscall.EINVAL)
}

func compareOp(c scmp.Compare) (libseccomp.ScmpCompareOp, error) {
	switch c {
	case scmp.CmpNE:
		return libseccomp.CompareNotEqual, nil
	case scmp.CmpLT:
		return libseccomp.CompareLess, nil
	case scmp.CmpLE:
		return libseccomp.CompareLessOrEqual, nil
	case scmp.CmpEQ:
		return libseccomp.CompareEqual, nil
	case scmp.CmpGE:
		return libseccomp.CompareGreaterEqual, nil
	case scmp.CmpGT:
		return libseccomp.CompareGreater, nil
	case scmp.CmpMaskedEQ:
		return libseccomp.CompareMaskedEqual, nil
	}
	return libseccomp.CompareInvalid, fmt.Errorf("unknown comparison operator %d: %w", c, syscall.EINVAL)
}

// condition converts c. libseccomp takes the mask of a masked comparison
// as its first operand.
func condition(c scmp.ArgCmp) (libseccomp.ScmpCondition, error) {
	op, err := compareOp(c.Op)
	if err != nil {
		return libseccomp.ScmpCondition{}, err
	}
	if c.Op == scmp.CmpMaskedEQ {
		return libseccomp.MakeCondition(uint(c.Arg), op, c.DatumB, c.DatumA)
	}
	return libseccomp.MakeCondition(uint(c.Arg), op, c.DatumA)
}
