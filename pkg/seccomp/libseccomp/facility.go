package libseccomp

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"syscall"

	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
	"golang.org/x/net/bpf"
)

// ErrNotSupported is returned on platforms without seccomp filtering.
var ErrNotSupported = errors.New("seccomp filtering not supported on this platform")

// archInfo describes the native architecture the filter is built for.
type archInfo struct {
	name     string
	audit    uint32         // AUDIT_ARCH_* value reported in seccomp_data.arch
	x32      bool           // reject x32 ABI syscall numbers
	syscalls map[int]string // syscall number -> name
}

type rule struct {
	action uint32
	nr     int
	cmps   []scmp.ArgCmp
	key    []scmp.ArgCmp // cmps in canonical order
}

// filter is the handle handed out by Init.
type filter struct {
	def      uint32
	badArch  uint32
	arch     *archInfo
	rules    []rule
	released bool
}

// Facility compiles policies to classic BPF and installs them with
// seccomp(2). It implements scmp.Facility.
type Facility struct {
	arch    func() (*archInfo, error)
	install func([]bpf.Instruction) error
}

var _ scmp.Facility = (*Facility)(nil)

// New returns a facility for the native architecture.
func New() *Facility {
	return &Facility{
		arch:    nativeArch,
		install: install,
	}
}

// Init allocates a filter with the given default action.
func (f *Facility) Init(defAction uint32) (scmp.Handle, error) {
	if !scmp.ValidAction(defAction) {
		return nil, fmt.Errorf("invalid default action %#x: %w", defAction, syscall.EINVAL)
	}
	a, err := f.arch()
	if err != nil {
		return nil, err
	}
	return &filter{def: defAction, badArch: scmp.ActKill, arch: a}, nil
}

// RuleAdd appends a rule to the filter. A rejected rule leaves the
// filter unchanged.
func (f *Facility) RuleAdd(h scmp.Handle, action uint32, nr int, cmps []scmp.ArgCmp) error {
	flt, err := handle(h)
	if err != nil {
		return err
	}
	if !scmp.ValidAction(action) {
		return fmt.Errorf("invalid action %#x: %w", action, syscall.EINVAL)
	}
	if action == flt.def {
		return fmt.Errorf("action %s is the default action: %w", scmp.ActionString(action), syscall.EACCES)
	}
	if _, ok := flt.arch.syscalls[nr]; !ok {
		return fmt.Errorf("syscall %d not defined for %s: %w", nr, flt.arch.name, syscall.EINVAL)
	}
	for _, c := range cmps {
		if c.Arg >= scmp.MaxArgs {
			return fmt.Errorf("argument index %d out of range: %w", c.Arg, syscall.EINVAL)
		}
		if !c.Op.Valid() {
			return fmt.Errorf("unknown comparison operator %d: %w", c.Op, syscall.EINVAL)
		}
	}

	r := rule{action: action, nr: nr, cmps: slices.Clone(cmps), key: canonical(cmps)}
	for _, prev := range flt.rules {
		if prev.nr != r.nr || !slices.Equal(prev.key, r.key) {
			continue
		}
		if prev.action == r.action {
			return nil
		}
		return fmt.Errorf("syscall %d already has %s for the same arguments: %w",
			nr, scmp.ActionString(prev.action), syscall.EEXIST)
	}
	flt.rules = append(flt.rules, r)
	return nil
}

// Load compiles the filter and installs it for the calling process.
func (f *Facility) Load(h scmp.Handle) error {
	prog, err := f.Program(h)
	if err != nil {
		return err
	}
	return f.install(prog)
}

// Release forgets the compiled state of h.
func (f *Facility) Release(h scmp.Handle) {
	flt, ok := h.(*filter)
	if !ok || flt == nil {
		return
	}
	flt.rules = nil
	flt.released = true
}

// Program returns the BPF program Load would install for h.
func (f *Facility) Program(h scmp.Handle) ([]bpf.Instruction, error) {
	flt, err := handle(h)
	if err != nil {
		return nil, err
	}
	return compile(flt)
}

func handle(h scmp.Handle) (*filter, error) {
	flt, ok := h.(*filter)
	if !ok || flt == nil {
		return nil, fmt.Errorf("foreign filter handle %T: %w", h, syscall.EFAULT)
	}
	if flt.released {
		return nil, fmt.Errorf("filter handle already released: %w", syscall.EFAULT)
	}
	return flt, nil
}

// canonical copies cmps sorted by argument so that rules differing only in
// comparison order are recognised as the same rule. The input is not
// modified.
func canonical(cmps []scmp.ArgCmp) []scmp.ArgCmp {
	out := slices.Clone(cmps)
	slices.SortStableFunc(out, func(a, b scmp.ArgCmp) int {
		return cmp.Or(
			cmp.Compare(a.Arg, b.Arg),
			cmp.Compare(a.Op, b.Op),
			cmp.Compare(a.DatumA, b.DatumA),
			cmp.Compare(a.DatumB, b.DatumB),
		)
	})
	return out
}
