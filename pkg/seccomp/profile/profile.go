// Package profile reads seccomp policies from YAML or JSON documents.
//
//	defaultAction: allow
//	rules:
//	  - syscall: setuid
//	    action: errno(EPERM)
//	    args:
//	      - {index: 0, op: "==", value: 0}
//	  - syscall: ptrace
//	    action: kill
package profile

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/hashicorp/go-set/v2"
	"github.com/zqzqsb/seccomp/pkg/seccomp"
	"gopkg.in/yaml.v3"
)

// Profile is a complete policy.
type Profile struct {
	DefaultAction string     `yaml:"defaultAction" json:"defaultAction"`
	Rules         []RuleSpec `yaml:"rules" json:"rules"`
}

// RuleSpec is one rule. Syscall is a name on the native architecture or a
// decimal number. A rule without Args matches every invocation.
type RuleSpec struct {
	Syscall string    `yaml:"syscall" json:"syscall"`
	Action  string    `yaml:"action" json:"action"`
	Args    []ArgSpec `yaml:"args,omitempty" json:"args,omitempty"`
}

// ArgSpec is one argument comparison. Mask is only used by "&==".
type ArgSpec struct {
	Index uint32 `yaml:"index" json:"index"`
	Op    string `yaml:"op" json:"op"`
	Value uint64 `yaml:"value" json:"value"`
	Mask  uint64 `yaml:"mask,omitempty" json:"mask,omitempty"`
}

// Parse decodes a profile. JSON documents are accepted as YAML. Unknown
// fields are an error.
func Parse(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	p := new(Profile)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("profile: decode: %w", err)
	}
	return p, nil
}

// Load reads and parses the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate reports every problem of p at once.
func (p *Profile) Validate() error {
	var errs []error
	if _, err := ParseAction(p.DefaultAction); err != nil {
		errs = append(errs, fmt.Errorf("defaultAction: %w", err))
	}

	seen := set.New[string](len(p.Rules))
	for i, rs := range p.Rules {
		r, err := rs.rule()
		if err != nil {
			errs = append(errs, fmt.Errorf("rules[%d]: %w", i, err))
			continue
		}
		if !seen.Insert(key(r)) {
			errs = append(errs, fmt.Errorf("rules[%d]: duplicate rule for %s", i, rs.Syscall))
		}
	}
	return errors.Join(errs...)
}

// SeccompRules converts p into rules in document order.
func (p *Profile) SeccompRules() ([]*seccomp.Rule, error) {
	rules := make([]*seccomp.Rule, 0, len(p.Rules))
	for i, rs := range p.Rules {
		r, err := rs.rule()
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Apply adds the rules of p to c. It stops at the first rule c rejects.
func (p *Profile) Apply(c *seccomp.Context) error {
	rules, err := p.SeccompRules()
	if err != nil {
		return err
	}
	for i, r := range rules {
		if err := c.AddRule(r); err != nil {
			return fmt.Errorf("rules[%d]: %w", i, err)
		}
	}
	return nil
}

// NewContext validates p and returns a Context holding all of its rules.
func NewContext(p *Profile, opts ...seccomp.Option) (*seccomp.Context, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	def, err := ParseAction(p.DefaultAction)
	if err != nil {
		return nil, err
	}
	c, err := seccomp.NewContext(def, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(c); err != nil {
		c.Release()
		return nil, err
	}
	return c, nil
}

func (rs RuleSpec) rule() (*seccomp.Rule, error) {
	nr, err := resolve(rs.Syscall)
	if err != nil {
		return nil, err
	}
	act, err := ParseAction(rs.Action)
	if err != nil {
		return nil, err
	}
	if len(rs.Args) == 0 {
		return seccomp.NewUnconditionalRule(nr, act), nil
	}

	var r *seccomp.Rule
	for j, a := range rs.Args {
		c, err := a.cmp()
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", j, err)
		}
		if r == nil {
			r = seccomp.NewRule(nr, c, act)
		} else {
			r.AddComparison(c)
		}
	}
	return r, nil
}

func (a ArgSpec) cmp() (seccomp.Cmp, error) {
	if a.Index > 5 {
		return seccomp.Cmp{}, fmt.Errorf("argument index %d out of range", a.Index)
	}
	op, err := ParseOp(a.Op)
	if err != nil {
		return seccomp.Cmp{}, err
	}
	c, ok := seccomp.Arg(a.Index).Using(op).With(a.Value).And(a.Mask).Build()
	if !ok {
		return seccomp.Cmp{}, fmt.Errorf("incomplete comparison on argument %d", a.Index)
	}
	return c, nil
}

func resolve(name string) (int, error) {
	if name == "" {
		return 0, errors.New("missing syscall")
	}
	if nr, err := strconv.Atoi(name); err == nil {
		if nr < 0 {
			return 0, fmt.Errorf("negative syscall number %d", nr)
		}
		return nr, nil
	}
	return seccomp.Syscall(name)
}

// key identifies the syscall and comparisons of r, ignoring the action and
// the order of the comparisons.
func key(r *seccomp.Rule) string {
	cmps := r.Comparisons()
	slices.SortFunc(cmps, func(a, b seccomp.Cmp) int {
		return cmp.Or(
			cmp.Compare(a.Arg(), b.Arg()),
			cmp.Compare(a.Op(), b.Op()),
			cmp.Compare(a.DatumA(), b.DatumA()),
			cmp.Compare(a.DatumB(), b.DatumB()),
		)
	})

	var b bytes.Buffer
	fmt.Fprintf(&b, "%d", r.Syscall())
	for _, c := range cmps {
		fmt.Fprintf(&b, "|%d %d %d %d", c.Arg(), c.Op(), c.DatumA(), c.DatumB())
	}
	return b.String()
}
