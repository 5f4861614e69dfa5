//go:build !linux

package libseccomp

// SyscallName is not available without a native syscall table.
func SyscallName(int) (string, error) {
	return "", ErrNotSupported
}

// SyscallNumber is not available without a native syscall table.
func SyscallNumber(string) (int, error) {
	return 0, ErrNotSupported
}

// Syscalls is not available without a native syscall table.
func Syscalls() (map[int]string, error) {
	return nil, ErrNotSupported
}
