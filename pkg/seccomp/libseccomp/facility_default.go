//go:build !linux

package libseccomp

import "golang.org/x/net/bpf"

func nativeArch() (*archInfo, error) {
	return nil, ErrNotSupported
}

func install([]bpf.Instruction) error {
	return ErrNotSupported
}
