package seccomp

import (
	"slices"
	"sync/atomic"
	"syscall"

	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
)

type stubRule struct {
	action uint32
	nr     int
	cmps   []scmp.ArgCmp
}

type stubHandle struct {
	def uint32
}

// stubFacility records every call and evaluates loaded rules itself.
type stubFacility struct {
	inits    int
	loads    int
	releases atomic.Int32

	initErr   error
	nilHandle bool
	loadErr   error
	reject    map[int]error

	handle *stubHandle
	rules  []stubRule
	loaded []stubRule
}

var _ scmp.Facility = (*stubFacility)(nil)

func (f *stubFacility) Init(def uint32) (scmp.Handle, error) {
	f.inits++
	if f.initErr != nil {
		return nil, f.initErr
	}
	if f.nilHandle {
		return nil, nil
	}
	f.handle = &stubHandle{def: def}
	return f.handle, nil
}

func (f *stubFacility) RuleAdd(h scmp.Handle, action uint32, nr int, cmps []scmp.ArgCmp) error {
	if h != f.handle {
		return syscall.EFAULT
	}
	if err, ok := f.reject[nr]; ok {
		return err
	}
	f.rules = append(f.rules, stubRule{action: action, nr: nr, cmps: slices.Clone(cmps)})
	return nil
}

func (f *stubFacility) Load(h scmp.Handle) error {
	if h != f.handle {
		return syscall.EFAULT
	}
	f.loads++
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = slices.Clone(f.rules)
	return nil
}

func (f *stubFacility) Release(scmp.Handle) {
	f.releases.Add(1)
}

// invoke returns the action the loaded policy takes for syscall nr.
func (f *stubFacility) invoke(nr int, args ...uint64) uint32 {
	var argv [scmp.MaxArgs]uint64
	copy(argv[:], args)
	for _, r := range f.loaded {
		if r.nr == nr && matches(r.cmps, argv) {
			return r.action
		}
	}
	return f.handle.def
}

func matches(cmps []scmp.ArgCmp, argv [scmp.MaxArgs]uint64) bool {
	for _, c := range cmps {
		v := argv[c.Arg]
		var ok bool
		switch c.Op {
		case scmp.CmpNE:
			ok = v != c.DatumA
		case scmp.CmpLT:
			ok = v < c.DatumA
		case scmp.CmpLE:
			ok = v <= c.DatumA
		case scmp.CmpEQ:
			ok = v == c.DatumA
		case scmp.CmpGE:
			ok = v >= c.DatumA
		case scmp.CmpGT:
			ok = v > c.DatumA
		case scmp.CmpMaskedEQ:
			ok = v&c.DatumB == c.DatumA
		}
		if !ok {
			return false
		}
	}
	return true
}
