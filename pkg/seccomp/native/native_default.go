//go:build !(linux && cgo && libseccomp)

package native

import "github.com/zqzqsb/seccomp/pkg/seccomp/scmp"

// Available reports whether the libseccomp facility was compiled in.
const Available = false

// New returns nil; the binary was built without libseccomp.
func New() scmp.Facility {
	return nil
}
