// Package native implements the filter facility on top of the C libseccomp
// library through github.com/seccomp/libseccomp-golang.
//
// It is only built with cgo and the libseccomp build tag:
//
//	go build -tags libseccomp ./...
//
// Without them Available is false and New returns nil.
package native
