package seccomp

import (
	"testing"

	"github.com/shoenig/test/must"
)

func cmpEq(t *testing.T, arg uint32, v uint64) Cmp {
	t.Helper()
	c, ok := Arg(arg).Using(OpEqual).With(v).Build()
	must.True(t, ok)
	return c
}

func TestRule_AddComparison(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		r := NewRule(1, cmpEq(t, 0, 0), ActKill)
		for i := 0; i < n; i++ {
			r.AddComparison(cmpEq(t, 1, uint64(i+1)))
		}

		cmps := r.Comparisons()
		must.Len(t, n+1, cmps)
		for i, c := range cmps {
			must.EqOp(t, uint64(i), c.DatumA())
		}
	}
}

func TestRule_accessors(t *testing.T) {
	c := cmpEq(t, 0, 7)
	r := NewRule(105, c, ActErrno(1))
	must.EqOp(t, 105, r.Syscall())
	must.EqOp(t, ActErrno(1), r.Action())

	// callers get a copy
	cmps := r.Comparisons()
	cmps[0] = cmpEq(t, 3, 3)
	must.EqOp(t, c, r.Comparisons()[0])
}

func TestRule_unconditional(t *testing.T) {
	r := NewUnconditionalRule(39, ActAllow)
	must.SliceEmpty(t, r.Comparisons())
	must.StrContains(t, r.String(), "(39) -> allow")
}

func TestRule_String(t *testing.T) {
	r := NewRule(100000, cmpEq(t, 0, 1000), ActErrno(1)).
		AddComparison(cmpEq(t, 1, 2))
	must.EqOp(t, "syscall(100000) -> errno(1) if arg0 == 0x3e8 && arg1 == 0x2", r.String())
}
