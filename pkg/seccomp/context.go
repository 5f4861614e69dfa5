package seccomp

import (
	"fmt"
	"io"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/zqzqsb/seccomp/pkg/seccomp/libseccomp"
	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
)

type state uint8

const (
	stateActive state = iota
	stateLoaded
	stateReleased
)

var stateToString = []string{"active", "loaded", "released"}

// Option configures a Context.
type Option func(*Context)

// WithFacility replaces the BPF facility of package libseccomp.
func WithFacility(f scmp.Facility) Option {
	return func(c *Context) {
		c.facility = f
	}
}

// WithLogger sets the logger for debug output. Nothing is logged once the
// policy is loaded.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Context) {
		c.log = l
	}
}

// Context owns one filter of the facility. It collects rules, loads them
// and releases the filter.
//
// A Context must not be used from more than one goroutine at a time.
type Context struct {
	facility scmp.Facility
	handle   scmp.Handle
	def      Action
	state    state
	rules    int
	log      *logrus.Entry
}

// NewContext allocates a filter whose default action is def. The caller
// must call Release; a Context that becomes unreachable is released by the
// garbage collector.
func NewContext(def Action, opts ...Option) (*Context, error) {
	c := &Context{def: def}
	for _, o := range opts {
		o(c)
	}
	if c.facility == nil {
		c.facility = libseccomp.New()
	}
	if c.log == nil {
		c.log = discardLogger()
	}

	code, ok := def.code()
	if !ok {
		return nil, &Error{msg: "init: invalid default action", err: syscall.EINVAL}
	}
	h, err := c.facility.Init(code)
	if err != nil {
		return nil, &Error{msg: fmt.Sprintf("init with default action %s", def), err: err}
	}
	if h == nil {
		return nil, &Error{msg: fmt.Sprintf("init with default action %s: no filter allocated", def)}
	}
	c.handle = h
	runtime.SetFinalizer(c, (*Context).Release)

	c.log.WithField("default", def.String()).Debug("seccomp: filter allocated")
	return c, nil
}

// AddRule hands a copy of r to the facility. A rejected rule leaves the
// Context usable and keeps the rules added before it.
func (c *Context) AddRule(r *Rule) error {
	if err := c.check("add rule"); err != nil {
		return err
	}
	if r == nil {
		return &Error{msg: "add rule: nil rule", err: syscall.EINVAL}
	}
	if r.syscall < 0 {
		return &Error{msg: fmt.Sprintf("add rule %s: negative syscall number", r), err: syscall.EINVAL}
	}
	code, ok := r.action.code()
	if !ok {
		return &Error{msg: fmt.Sprintf("add rule %s: invalid action", r), err: syscall.EINVAL}
	}

	cmps := make([]scmp.ArgCmp, len(r.cmps))
	for i, cmp := range r.cmps {
		cmps[i] = cmp.wire()
	}

	log := c.log.WithField("rule", r.String())
	if err := c.facility.RuleAdd(c.handle, code, r.syscall, cmps); err != nil {
		log.WithError(err).Debug("seccomp: rule rejected")
		return &Error{msg: fmt.Sprintf("add rule %s", r), err: err}
	}
	c.rules++
	log.Debug("seccomp: rule added")
	return nil
}

// Load compiles the policy and applies it to the calling process. On
// failure the Context stays usable and nothing is guaranteed to have been
// applied. On success the policy cannot be removed.
func (c *Context) Load() error {
	if err := c.check("load"); err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{
		"default": c.def.String(),
		"rules":   c.rules,
	}).Debug("seccomp: loading policy")

	// the policy may forbid write, so no logging after this point
	if err := c.facility.Load(c.handle); err != nil {
		return &Error{msg: "load", err: err}
	}
	c.state = stateLoaded
	return nil
}

// Release frees the filter. Later calls do nothing.
func (c *Context) Release() {
	if c == nil || c.state == stateReleased {
		return
	}
	c.state = stateReleased
	runtime.SetFinalizer(c, nil)
	c.facility.Release(c.handle)
	c.handle = nil
}

// DefaultAction returns the action for syscalls no rule matches.
func (c *Context) DefaultAction() Action {
	return c.def
}

func (c *Context) String() string {
	return fmt.Sprintf("Context(default=%s, rules=%d, %s)", c.def, c.rules, stateToString[c.state])
}

func (c *Context) check(op string) error {
	switch c.state {
	case stateReleased:
		return &Error{msg: op, err: ErrReleased}
	case stateLoaded:
		return &Error{msg: op, err: ErrLoaded}
	}
	return nil
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
