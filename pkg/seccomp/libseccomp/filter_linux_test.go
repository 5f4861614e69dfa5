package libseccomp

import (
	"errors"
	"testing"

	"github.com/shoenig/test/must"
	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
	"golang.org/x/net/bpf"
)

func TestExport(t *testing.T) {
	var prog []bpf.Instruction
	f := newTestFacility(&prog)
	h, err := f.Init(scmp.ActAllow)
	must.NoError(t, err)
	defer f.Release(h)

	must.NoError(t, f.RuleAdd(h, scmp.ActErrno(1), sysSetuid, []scmp.ArgCmp{{Op: scmp.CmpEQ, DatumA: 0}}))

	insns, err := f.Program(h)
	must.NoError(t, err)

	filter, err := f.Export(h)
	must.NoError(t, err)
	must.Len(t, len(insns), filter)

	fprog := filter.SockFprog()
	must.EqOp(t, uint16(len(insns)), fprog.Len)
	must.EqOp(t, &filter[0], fprog.Filter)

	// the last instruction returns the default action
	last := filter[len(filter)-1]
	must.EqOp(t, scmp.ActAllow, last.K)
}

func TestSyscallTable(t *testing.T) {
	if errInfo != nil {
		t.Skip(errInfo)
	}
	nr, err := SyscallNumber("getpid")
	must.NoError(t, err)

	name, err := SyscallName(nr)
	must.NoError(t, err)
	must.EqOp(t, "getpid", name)

	_, err = SyscallNumber("no_such_syscall")
	must.ErrorContains(t, err, "does not exist")

	table, err := Syscalls()
	must.NoError(t, err)
	must.MapContainsKey(t, table, nr)

	// callers get a copy
	delete(table, nr)
	_, err = SyscallName(nr)
	must.NoError(t, err)
}

func TestNativeArch(t *testing.T) {
	a, err := nativeArch()
	if errors.Is(err, ErrNotSupported) {
		t.Skip(err)
	}
	must.NoError(t, err)
	must.NonZero(t, a.audit)
	must.MapNotEmpty(t, a.syscalls)
}
