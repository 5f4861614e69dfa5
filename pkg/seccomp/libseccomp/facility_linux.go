package libseccomp

import (
	"fmt"
	"runtime"

	"github.com/elastic/go-seccomp-bpf/arch"
	"golang.org/x/sys/unix"
)

// nativeArch pairs the audit architecture of runtime.GOARCH with the
// syscall table of go-seccomp-bpf.
func nativeArch() (*archInfo, error) {
	info, err := arch.GetInfo("")
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", runtime.GOARCH, ErrNotSupported, err)
	}

	a := &archInfo{name: runtime.GOARCH, syscalls: info.SyscallNumbers}
	switch runtime.GOARCH {
	case "amd64":
		a.audit = unix.AUDIT_ARCH_X86_64
		a.x32 = true
	case "386":
		a.audit = unix.AUDIT_ARCH_I386
	case "arm64":
		a.audit = unix.AUDIT_ARCH_AARCH64
	case "arm":
		a.audit = unix.AUDIT_ARCH_ARM
	default:
		return nil, fmt.Errorf("%s: %w", runtime.GOARCH, ErrNotSupported)
	}
	return a, nil
}
