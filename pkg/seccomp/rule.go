package seccomp

import (
	"fmt"
	"slices"
	"strings"
)

// Rule applies an action to a syscall when all of its comparisons hold.
type Rule struct {
	syscall int
	action  Action
	cmps    []Cmp
}

// NewRule returns a rule for syscall number nr with one comparison.
func NewRule(nr int, c Cmp, act Action) *Rule {
	return &Rule{syscall: nr, action: act, cmps: []Cmp{c}}
}

// NewUnconditionalRule returns a rule that matches every invocation of
// syscall nr.
func NewUnconditionalRule(nr int, act Action) *Rule {
	return &Rule{syscall: nr, action: act}
}

// AddComparison appends c. Comparisons are ANDed in the order added.
func (r *Rule) AddComparison(c Cmp) *Rule {
	r.cmps = append(r.cmps, c)
	return r
}

// Syscall returns the syscall number r applies to.
func (r *Rule) Syscall() int { return r.syscall }

// Action returns the action taken when r matches.
func (r *Rule) Action() Action { return r.action }

// Comparisons returns a copy of the comparisons of r.
func (r *Rule) Comparisons() []Cmp {
	return slices.Clone(r.cmps)
}

func (r *Rule) String() string {
	var b strings.Builder
	if name, err := SyscallName(r.syscall); err == nil {
		fmt.Fprintf(&b, "%s(%d)", name, r.syscall)
	} else {
		fmt.Fprintf(&b, "syscall(%d)", r.syscall)
	}
	b.WriteString(" -> ")
	b.WriteString(r.action.String())
	if len(r.cmps) > 0 {
		parts := make([]string, len(r.cmps))
		for i, c := range r.cmps {
			parts[i] = c.String()
		}
		fmt.Fprintf(&b, " if %s", strings.Join(parts, " && "))
	}
	return b.String()
}
