package seccomp

import (
	"fmt"

	"github.com/zqzqsb/seccomp/pkg/seccomp/libseccomp"
)

// Syscall resolves a syscall name to its number on the native
// architecture.
func Syscall(name string) (int, error) {
	nr, err := libseccomp.SyscallNumber(name)
	if err != nil {
		return 0, &Error{msg: fmt.Sprintf("resolve syscall %q", name), err: err}
	}
	return nr, nil
}

// SyscallName returns the name of syscall nr on the native architecture.
func SyscallName(nr int) (string, error) {
	return libseccomp.SyscallName(nr)
}
