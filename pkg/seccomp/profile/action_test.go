package profile

import (
	"testing"

	"github.com/shoenig/test/must"
	"github.com/zqzqsb/seccomp/pkg/seccomp"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want seccomp.Action
	}{
		{"allow", seccomp.ActAllow},
		{" KILL ", seccomp.ActKill},
		{"trap", seccomp.ActTrap},
		{"errno(1)", seccomp.ActErrno(1)},
		{"errno(EPERM)", seccomp.ActErrno(1)},
		{"errno(eacces)", seccomp.ActErrno(13)},
		{"errno( 0x10 )", seccomp.ActErrno(16)},
		{"trace(7)", seccomp.ActTrace(7)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			must.NoError(t, err)
			must.EqOp(t, tt.want, got)
		})
	}
}

func TestParseAction_invalid(t *testing.T) {
	for _, in := range []string{"", "deny", "errno", "errno()", "errno(ENOPE)", "trace(-1)", "trace(70000)", "notify(1)", "(1)"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAction(in)
			must.Error(t, err)
		})
	}
}

func TestParseOp(t *testing.T) {
	for in, want := range map[string]seccomp.Op{
		"!=": seccomp.OpNotEqual, "lt": seccomp.OpLess, "<=": seccomp.OpLessOrEqual,
		"EQ": seccomp.OpEqual, ">=": seccomp.OpGreaterOrEqual, "gt": seccomp.OpGreater,
		"masked_eq": seccomp.OpMaskedEqual,
	} {
		got, err := ParseOp(in)
		must.NoError(t, err)
		must.EqOp(t, want, got)
	}

	_, err := ParseOp("=")
	must.ErrorContains(t, err, `unknown operator "="`)
}
