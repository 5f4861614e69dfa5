package scmp

import "fmt"

// Action return values as defined in <linux/seccomp.h>.
//
// The low 16 bits (RetData) carry the payload of errno and trace actions,
// the high 16 bits select the action.
const (
	ActKill  uint32 = 0x00000000 // SECCOMP_RET_KILL_THREAD
	ActTrap  uint32 = 0x00030000 // SECCOMP_RET_TRAP
	ActAllow uint32 = 0x7fff0000 // SECCOMP_RET_ALLOW

	actErrno uint32 = 0x00050000 // SECCOMP_RET_ERRNO
	actTrace uint32 = 0x7ff00000 // SECCOMP_RET_TRACE

	RetAction uint32 = 0xffff0000
	RetData   uint32 = 0x0000ffff
)

// ActErrno encodes an action that fails the syscall with errno x.
func ActErrno(x uint32) uint32 {
	return actErrno | (x & RetData)
}

// ActTrace encodes an action that notifies a ptrace tracer with message x.
func ActTrace(x uint32) uint32 {
	return actTrace | (x & RetData)
}

// ValidAction reports whether code encodes one of the supported actions.
func ValidAction(code uint32) bool {
	switch code & RetAction {
	case ActKill, ActTrap, ActAllow:
		return code&RetData == 0
	case actErrno, actTrace:
		return true
	}
	return false
}

// ActionString renders an action code for diagnostics.
func ActionString(code uint32) string {
	data := code & RetData
	switch code & RetAction {
	case ActKill:
		return "kill"
	case ActTrap:
		return "trap"
	case ActAllow:
		return "allow"
	case actErrno:
		return fmt.Sprintf("errno(%d)", data)
	case actTrace:
		return fmt.Sprintf("trace(%d)", data)
	}
	return fmt.Sprintf("action(%#x)", code)
}
