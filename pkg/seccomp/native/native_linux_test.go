//go:build linux && cgo && libseccomp

package native

import (
	"syscall"
	"testing"

	libseccomp "github.com/seccomp/libseccomp-golang"
	"github.com/shoenig/test/must"
	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
)

func TestAction(t *testing.T) {
	tests := []struct {
		code uint32
		want libseccomp.ScmpAction
	}{
		{scmp.ActKill, libseccomp.ActKillThread},
		{scmp.ActTrap, libseccomp.ActTrap},
		{scmp.ActAllow, libseccomp.ActAllow},
		{scmp.ActErrno(1), libseccomp.ActErrno.SetReturnCode(1)},
		{scmp.ActTrace(7), libseccomp.ActTrace.SetReturnCode(7)},
	}

	for _, tt := range tests {
		t.Run(scmp.ActionString(tt.code), func(t *testing.T) {
			got, err := action(tt.code)
			must.NoError(t, err)
			must.EqOp(t, tt.want, got)
		})
	}

	_, err := action(0x12340000)
	must.ErrorIs(t, err, syscall.EINVAL)
}

func TestCondition(t *testing.T) {
	c, err := condition(scmp.ArgCmp{Arg: 2, Op: scmp.CmpMaskedEQ, DatumA: 0x1, DatumB: 0x3})
	must.NoError(t, err)
	must.EqOp(t, uint(2), c.Argument)
	must.EqOp(t, libseccomp.CompareMaskedEqual, c.Op)
	must.EqOp(t, uint64(0x3), c.Operand1)
	must.EqOp(t, uint64(0x1), c.Operand2)

	c, err = condition(scmp.ArgCmp{Arg: 0, Op: scmp.CmpGE, DatumA: 5})
	must.NoError(t, err)
	must.EqOp(t, libseccomp.CompareGreaterEqual, c.Op)
	must.EqOp(t, uint64(5), c.Operand1)

	_, err = condition(scmp.ArgCmp{Op: 0})
	must.ErrorIs(t, err, syscall.EINVAL)
}

func TestFacility_lifecycle(t *testing.T) {
	f := New()
	h, err := f.Init(scmp.ActAllow)
	must.NoError(t, err)
	defer f.Release(h)

	nr, err := libseccomp.GetSyscallFromName("getpid")
	must.NoError(t, err)

	must.NoError(t, f.RuleAdd(h, scmp.ActErrno(1), int(nr),
		[]scmp.ArgCmp{{Arg: 0, Op: scmp.CmpEQ, DatumA: 1000}}))
	must.NoError(t, f.RuleAdd(h, scmp.ActKill, int(nr), []scmp.ArgCmp{{Arg: 1, Op: scmp.CmpEQ, DatumA: 1}}))
	must.ErrorIs(t, f.RuleAdd("foreign", scmp.ActKill, int(nr), nil), syscall.EFAULT)
}
