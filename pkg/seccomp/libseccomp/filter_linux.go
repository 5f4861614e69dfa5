package libseccomp

import (
	"syscall"

	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
	"golang.org/x/net/bpf"
)

// Filter is a seccomp filter in the form the kernel accepts.
type Filter []syscall.SockFilter

// SockFprog wraps the filter for prctl(PR_SET_SECCOMP) and seccomp(2).
// The filter must not be empty.
func (f Filter) SockFprog() *syscall.SockFprog {
	b := []syscall.SockFilter(f)
	return &syscall.SockFprog{
		Len:    uint16(len(b)),
		Filter: &b[0],
	}
}

// Export compiles h into kernel format without installing it.
func (f *Facility) Export(h scmp.Handle) (Filter, error) {
	prog, err := f.Program(h)
	if err != nil {
		return nil, err
	}
	return ExportBPF(prog)
}

// ExportBPF assembles filter into kernel format.
func ExportBPF(filter []bpf.Instruction) (Filter, error) {
	raw, err := bpf.Assemble(filter)
	if err != nil {
		return nil, err
	}
	return sockFilter(raw), nil
}

func sockFilter(raw []bpf.RawInstruction) []syscall.SockFilter {
	filter := make([]syscall.SockFilter, 0, len(raw))
	for _, instruction := range raw {
		filter = append(filter, syscall.SockFilter{
			Code: instruction.Op,
			Jt:   instruction.Jt,
			Jf:   instruction.Jf,
			K:    instruction.K,
		})
	}
	return filter
}
