package libseccomp

// Constants missing from the syscall package.
const (
	// SECCOMP_SET_MODE_FILTER installs a BPF program through seccomp(2).
	SECCOMP_SET_MODE_FILTER = 1

	// SECCOMP_FILTER_FLAG_TSYNC applies the filter to every thread of the
	// process. On failure the syscall returns the id of the thread that
	// could not be synchronized.
	SECCOMP_FILTER_FLAG_TSYNC = 1
)
