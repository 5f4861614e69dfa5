package seccomp

import (
	"errors"

	"github.com/zqzqsb/seccomp/pkg/seccomp/libseccomp"
)

var (
	// ErrReleased is returned by every operation on a released Context.
	ErrReleased = errors.New("context released")

	// ErrLoaded is returned when rules are added or loaded again after a
	// successful Load.
	ErrLoaded = errors.New("policy already loaded")

	// ErrNotSupported is returned where the kernel has no seccomp filter
	// support for this platform.
	ErrNotSupported = libseccomp.ErrNotSupported
)

// Error reports a failed operation. The message names the operation and,
// for rejected rules, the rule. The cause, usually a syscall.Errno from the
// facility, is available through errors.Is and errors.As.
type Error struct {
	msg string
	err error
}

func (e *Error) Error() string {
	if e.err == nil {
		return "seccomp: " + e.msg
	}
	return "seccomp: " + e.msg + ": " + e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}
