package libseccomp

import (
	"fmt"
	"syscall"

	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
	"golang.org/x/net/bpf"
)

// Offsets into struct seccomp_data:
//
//	struct seccomp_data {
//		int   nr;
//		__u32 arch;
//		__u64 instruction_pointer;
//		__u64 args[6];
//	};
//
// Only little endian architectures are supported, so the low word of an
// argument comes first.
const (
	offsetNR   = 0
	offsetArch = 4
	offsetArgs = 16
)

// maxInstructions is BPF_MAXINSNS.
const maxInstructions = 4096

// x32SyscallBit marks x32 ABI syscalls on x86_64.
const x32SyscallBit = 0x40000000

func argLow(i uint32) uint32  { return offsetArgs + i*8 }
func argHigh(i uint32) uint32 { return argLow(i) + 4 }

// label is a position in the program resolved after all code is emitted.
type label int

// program accumulates instructions. Long jumps refer to labels and are
// patched by resolve, so rules of any length can be chained.
type program struct {
	insns  []bpf.Instruction
	fixups map[int]label
	labels []int
}

func newProgram() *program {
	return &program{fixups: make(map[int]label)}
}

func (p *program) newLabel() label {
	p.labels = append(p.labels, -1)
	return label(len(p.labels) - 1)
}

func (p *program) bind(l label) {
	p.labels[l] = len(p.insns)
}

func (p *program) emit(ins ...bpf.Instruction) {
	p.insns = append(p.insns, ins...)
}

func (p *program) jumpTo(l label) {
	p.fixups[len(p.insns)] = l
	p.emit(bpf.Jump{})
}

func (p *program) resolve() ([]bpf.Instruction, error) {
	for idx, l := range p.fixups {
		target := p.labels[l]
		if target <= idx {
			return nil, fmt.Errorf("label %d not bound after instruction %d", l, idx)
		}
		p.insns[idx] = bpf.Jump{Skip: uint32(target - idx - 1)}
	}
	return p.insns, nil
}

// target is where a conditional step inside one comparison block goes.
type target uint8

const (
	next  target = iota // following step
	match               // comparison holds, continue with the rule
	fail                // comparison does not hold, skip the rule
)

// step is either a plain instruction or a conditional jump between targets.
type step struct {
	ins     bpf.Instruction
	cond    bpf.JumpTest
	val     uint32
	onTrue  target
	onFalse target
}

func load(off uint32) step { return step{ins: bpf.LoadAbsolute{Off: off, Size: 4}} }
func and(mask uint32) step { return step{ins: bpf.ALUOpConstant{Op: bpf.ALUOpAnd, Val: mask}} }

func jump(cond bpf.JumpTest, val uint32, onTrue, onFalse target) step {
	return step{cond: cond, val: val, onTrue: onTrue, onFalse: onFalse}
}

// comparison lowers one 64-bit argument comparison into 32-bit steps.
// Every path ends by jumping to match or fail.
func comparison(c scmp.ArgCmp) ([]step, error) {
	if c.Arg >= scmp.MaxArgs {
		return nil, fmt.Errorf("argument index %d out of range: %w", c.Arg, syscall.EINVAL)
	}
	lo, hi := argLow(c.Arg), argHigh(c.Arg)
	vlo, vhi := uint32(c.DatumA), uint32(c.DatumA>>32)

	switch c.Op {
	case scmp.CmpEQ:
		return []step{
			load(lo), jump(bpf.JumpEqual, vlo, next, fail),
			load(hi), jump(bpf.JumpEqual, vhi, match, fail),
		}, nil
	case scmp.CmpNE:
		return []step{
			load(lo), jump(bpf.JumpEqual, vlo, next, match),
			load(hi), jump(bpf.JumpEqual, vhi, fail, match),
		}, nil
	case scmp.CmpGT:
		return []step{
			load(hi), jump(bpf.JumpGreaterThan, vhi, match, next),
			jump(bpf.JumpEqual, vhi, next, fail),
			load(lo), jump(bpf.JumpGreaterThan, vlo, match, fail),
		}, nil
	case scmp.CmpGE:
		return []step{
			load(hi), jump(bpf.JumpGreaterThan, vhi, match, next),
			jump(bpf.JumpEqual, vhi, next, fail),
			load(lo), jump(bpf.JumpGreaterOrEqual, vlo, match, fail),
		}, nil
	case scmp.CmpLT:
		return []step{
			load(hi), jump(bpf.JumpGreaterOrEqual, vhi, next, match),
			jump(bpf.JumpEqual, vhi, next, fail),
			load(lo), jump(bpf.JumpGreaterOrEqual, vlo, fail, match),
		}, nil
	case scmp.CmpLE:
		return []step{
			load(hi), jump(bpf.JumpGreaterOrEqual, vhi, next, match),
			jump(bpf.JumpEqual, vhi, next, fail),
			load(lo), jump(bpf.JumpGreaterThan, vlo, fail, match),
		}, nil
	case scmp.CmpMaskedEQ:
		mlo, mhi := uint32(c.DatumB), uint32(c.DatumB>>32)
		return []step{
			load(lo), and(mlo), jump(bpf.JumpEqual, vlo, next, fail),
			load(hi), and(mhi), jump(bpf.JumpEqual, vhi, match, fail),
		}, nil
	}
	return nil, fmt.Errorf("unknown comparison operator %d: %w", c.Op, syscall.EINVAL)
}

// emitComparison writes the steps followed by a long jump to skip. The
// instruction after that jump is the match position.
func (p *program) emitComparison(steps []step, skip label) {
	failAt := len(steps)
	for i, s := range steps {
		if s.ins != nil {
			p.emit(s.ins)
			continue
		}
		offset := func(t target) uint8 {
			switch t {
			case fail:
				return uint8(failAt - i - 1)
			case match:
				return uint8(failAt - i)
			}
			return 0
		}
		p.emit(bpf.JumpIf{Cond: s.cond, Val: s.val, SkipTrue: offset(s.onTrue), SkipFalse: offset(s.onFalse)})
	}
	p.jumpTo(skip)
}

// compile turns the accumulated rules of f into a seccomp BPF program.
// Rules are checked in the order they were added; the first match decides.
func compile(f *filter) ([]bpf.Instruction, error) {
	p := newProgram()

	p.emit(
		bpf.LoadAbsolute{Off: offsetArch, Size: 4},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: f.arch.audit, SkipTrue: 1},
		bpf.RetConstant{Val: f.badArch},
	)
	if f.arch.x32 {
		p.emit(
			bpf.LoadAbsolute{Off: offsetNR, Size: 4},
			bpf.JumpIf{Cond: bpf.JumpGreaterOrEqual, Val: x32SyscallBit, SkipFalse: 1},
			bpf.RetConstant{Val: f.badArch},
		)
	}

	for i, r := range f.rules {
		end := p.newLabel()
		p.emit(
			bpf.LoadAbsolute{Off: offsetNR, Size: 4},
			bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(r.nr), SkipTrue: 1},
		)
		p.jumpTo(end)
		for _, c := range r.cmps {
			steps, err := comparison(c)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i, err)
			}
			p.emitComparison(steps, end)
		}
		p.emit(bpf.RetConstant{Val: r.action})
		p.bind(end)
	}
	p.emit(bpf.RetConstant{Val: f.def})

	insns, err := p.resolve()
	if err != nil {
		return nil, err
	}
	if len(insns) > maxInstructions {
		return nil, fmt.Errorf("program has %d instructions, limit is %d: %w", len(insns), maxInstructions, syscall.E2BIG)
	}
	return insns, nil
}
