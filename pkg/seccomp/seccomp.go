// Package seccomp builds syscall filter policies and hands them to the
// kernel.
//
// A policy is a default Action plus Rules. Each Rule binds a syscall number
// to an Action and a list of argument comparisons that must all hold:
//
//	ctx, err := seccomp.NewContext(seccomp.ActAllow)
//	if err != nil {
//		return err
//	}
//	defer ctx.Release()
//
//	uid, _ := seccomp.Arg(0).Using(seccomp.OpEqual).With(1000).Build()
//	if err := ctx.AddRule(seccomp.NewRule(nr, uid, seccomp.ActErrno(int32(unix.EPERM)))); err != nil {
//		return err
//	}
//	return ctx.Load()
//
// Load is irreversible: once it returns nil every later syscall of the
// process, including those made by this package, is subject to the policy.
package seccomp

import (
	"fmt"

	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
)

type actionKind uint8

const (
	kindInvalid actionKind = iota
	kindAllow
	kindKill
	kindTrap
	kindErrno
	kindTrace
)

// Action is what the kernel does with a matching syscall. The zero value is
// not a valid action.
type Action struct {
	kind actionKind
	data uint32
}

// Actions without payload.
var (
	ActAllow = Action{kind: kindAllow} // run the syscall
	ActKill  = Action{kind: kindKill}  // kill the calling thread
	ActTrap  = Action{kind: kindTrap}  // deliver SIGSYS
)

// ActErrno fails the syscall with errno code. Only the low 16 bits reach
// the kernel.
func ActErrno(code int32) Action {
	return Action{kind: kindErrno, data: uint32(code)}
}

// ActTrace notifies an attached ptrace tracer with msg.
func ActTrace(msg uint32) Action {
	return Action{kind: kindTrace, data: msg}
}

// code translates a to the facility's action value.
func (a Action) code() (uint32, bool) {
	switch a.kind {
	case kindAllow:
		return scmp.ActAllow, true
	case kindKill:
		return scmp.ActKill, true
	case kindTrap:
		return scmp.ActTrap, true
	case kindErrno:
		return scmp.ActErrno(a.data), true
	case kindTrace:
		return scmp.ActTrace(a.data), true
	case kindInvalid:
	}
	return 0, false
}

// Data returns the payload of errno and trace actions.
func (a Action) Data() uint32 {
	return a.data
}

func (a Action) String() string {
	switch a.kind {
	case kindAllow:
		return "allow"
	case kindKill:
		return "kill"
	case kindTrap:
		return "trap"
	case kindErrno:
		return fmt.Sprintf("errno(%d)", int32(a.data))
	case kindTrace:
		return fmt.Sprintf("trace(%d)", a.data)
	case kindInvalid:
	}
	return "invalid"
}
