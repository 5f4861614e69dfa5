package libseccomp

import (
	"errors"
	"syscall"
	"testing"

	"github.com/shoenig/test/must"
	"golang.org/x/net/bpf"
)

func TestInstall_assembleError(t *testing.T) {
	// rejected by bpf.Assemble before any syscall is made
	err := install([]bpf.Instruction{
		bpf.LoadAbsolute{Off: 0, Size: 3},
		bpf.RetConstant{Val: 0},
	})

	var le *LoadError
	must.True(t, errors.As(err, &le))
	must.EqOp(t, LocAssemble, le.Location)
	must.ErrorIs(t, err, syscall.EINVAL)
	must.NotNil(t, le.Cause)
	must.ErrorIs(t, err, le.Cause)
	must.StrHasPrefix(t, "assemble: invalid argument: ", err.Error())
	must.StrContains(t, err.Error(), le.Cause.Error())
}
