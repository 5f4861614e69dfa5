package libseccomp

import (
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/net/bpf"
	"golang.org/x/sys/unix"
)

// install sets no_new_privs and loads prog for every thread of the process.
func install(prog []bpf.Instruction) error {
	filter, err := ExportBPF(prog)
	if err != nil {
		return &LoadError{Err: syscall.EINVAL, Location: LocAssemble, Cause: err}
	}
	fprog := filter.SockFprog()

	// no_new_privs is per thread; TSYNC propagates it from this one.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	_, _, err1 := syscall.RawSyscall6(unix.SYS_PRCTL, unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0, 0)
	if err1 != 0 {
		return &LoadError{Err: err1, Location: LocNoNewPrivs}
	}

	r1, _, err1 := syscall.RawSyscall(unix.SYS_SECCOMP, SECCOMP_SET_MODE_FILTER, SECCOMP_FILTER_FLAG_TSYNC, uintptr(unsafe.Pointer(fprog)))
	runtime.KeepAlive(filter)
	if err1 != 0 {
		return &LoadError{Err: err1, Location: LocSeccomp}
	}
	if r1 != 0 {
		return &LoadError{Err: syscall.EAGAIN, Location: LocTsync, Index: int(r1)}
	}
	return nil
}
