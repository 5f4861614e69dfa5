//go:build unix

package profile

import (
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

var (
	errnoOnce  sync.Once
	errnoNames map[string]int32
)

func errnoByName(name string) (int32, bool) {
	errnoOnce.Do(func() {
		errnoNames = make(map[string]int32)
		for e := syscall.Errno(1); e < 4096; e++ {
			if n := unix.ErrnoName(e); n != "" {
				errnoNames[n] = int32(e)
			}
		}
	})
	n, ok := errnoNames[name]
	return n, ok
}
