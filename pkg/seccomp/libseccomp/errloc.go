package libseccomp

import (
	"fmt"
	"syscall"
)

// ErrorLocation is the step of Load that failed.
type ErrorLocation int

// LoadError is returned by Load when the filter could not be installed.
// Index is the thread id for LocTsync and unused otherwise. Cause holds the
// underlying error of a failed LocAssemble.
type LoadError struct {
	Err      syscall.Errno
	Location ErrorLocation
	Index    int
	Cause    error
}

// Load steps in the order they run.
const (
	LocAssemble   ErrorLocation = iota + 1 // bpf.Assemble rejected the program
	LocNoNewPrivs                          // prctl(PR_SET_NO_NEW_PRIVS)
	LocSeccomp                             // seccomp(SECCOMP_SET_MODE_FILTER)
	LocTsync                               // another thread could not be synchronized
)

var locToString = []string{
	"unknown",
	"assemble",
	"set_no_new_privs",
	"seccomp",
	"tsync",
}

func (e ErrorLocation) String() string {
	if e >= LocAssemble && e <= LocTsync {
		return locToString[e]
	}
	return "unknown"
}

func (e *LoadError) Error() string {
	switch {
	case e.Location == LocTsync:
		return fmt.Sprintf("%s(%d): %s", e.Location.String(), e.Index, e.Err.Error())
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %s", e.Location.String(), e.Err.Error(), e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Location.String(), e.Err.Error())
}

func (e *LoadError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}
