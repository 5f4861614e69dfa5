package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zqzqsb/seccomp/pkg/seccomp"
)

// ParseAction reads an action written as allow, kill, trap, errno(N),
// errno(ENAME) or trace(N).
func ParseAction(s string) (seccomp.Action, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "allow":
		return seccomp.ActAllow, nil
	case "kill":
		return seccomp.ActKill, nil
	case "trap":
		return seccomp.ActTrap, nil
	}

	name, arg, ok := call(s)
	if !ok {
		return seccomp.Action{}, fmt.Errorf("unknown action %q", s)
	}
	switch strings.ToLower(name) {
	case "errno":
		code, err := errno(arg)
		if err != nil {
			return seccomp.Action{}, fmt.Errorf("action %q: %w", s, err)
		}
		return seccomp.ActErrno(code), nil
	case "trace":
		msg, err := strconv.ParseUint(arg, 0, 16)
		if err != nil {
			return seccomp.Action{}, fmt.Errorf("action %q: %w", s, err)
		}
		return seccomp.ActTrace(uint32(msg)), nil
	}
	return seccomp.Action{}, fmt.Errorf("unknown action %q", s)
}

// call splits "name(arg)".
func call(s string) (name, arg string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	return s[:open], strings.TrimSpace(s[open+1 : len(s)-1]), true
}

func errno(s string) (int32, error) {
	if n, err := strconv.ParseUint(s, 0, 16); err == nil {
		return int32(n), nil
	}
	if n, ok := errnoByName(strings.ToUpper(s)); ok {
		return n, nil
	}
	return 0, fmt.Errorf("unknown errno %q", s)
}

var opNames = map[string]seccomp.Op{
	"!=":        seccomp.OpNotEqual,
	"ne":        seccomp.OpNotEqual,
	"<":         seccomp.OpLess,
	"lt":        seccomp.OpLess,
	"<=":        seccomp.OpLessOrEqual,
	"le":        seccomp.OpLessOrEqual,
	"==":        seccomp.OpEqual,
	"eq":        seccomp.OpEqual,
	">=":        seccomp.OpGreaterOrEqual,
	"ge":        seccomp.OpGreaterOrEqual,
	">":         seccomp.OpGreater,
	"gt":        seccomp.OpGreater,
	"&==":       seccomp.OpMaskedEqual,
	"masked_eq": seccomp.OpMaskedEqual,
}

// ParseOp reads a comparison operator, either as a symbol (==, &==) or by
// name (eq, masked_eq).
func ParseOp(s string) (seccomp.Op, error) {
	op, ok := opNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown operator %q", s)
	}
	return op, nil
}
