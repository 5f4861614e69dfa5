package libseccomp

import (
	"fmt"
	"sync"

	"github.com/elastic/go-seccomp-bpf/arch"
)

// info is the syscall table of the native architecture.
var info, errInfo = arch.GetInfo("")

var (
	namesOnce sync.Once
	names     map[string]int
)

// SyscallName returns the name of syscall number sysno on the native
// architecture.
func SyscallName(sysno int) (string, error) {
	if errInfo != nil {
		return "", errInfo
	}
	n, ok := info.SyscallNumbers[sysno]
	if !ok {
		return "", fmt.Errorf("syscall no %d does not exist", sysno)
	}
	return n, nil
}

// SyscallNumber resolves a syscall name on the native architecture.
func SyscallNumber(name string) (int, error) {
	if errInfo != nil {
		return 0, errInfo
	}
	namesOnce.Do(func() {
		names = make(map[string]int, len(info.SyscallNumbers))
		for nr, n := range info.SyscallNumbers {
			names[n] = nr
		}
	})
	nr, ok := names[name]
	if !ok {
		return 0, fmt.Errorf("syscall %q does not exist", name)
	}
	return nr, nil
}

// Syscalls returns a copy of the native syscall table keyed by number.
func Syscalls() (map[int]string, error) {
	if errInfo != nil {
		return nil, errInfo
	}
	out := make(map[int]string, len(info.SyscallNumbers))
	for nr, n := range info.SyscallNumbers {
		out[nr] = n
	}
	return out, nil
}
