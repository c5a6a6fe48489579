package script

import (
	"github.com/ezrec/sim8086/cpu"
	"github.com/ezrec/sim8086/opcode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// flagNames are the flags visible to scripts.
func flagNames(yield func(name string, flag cpu.Flag) bool) {
	for name, flag := range cpu.FlagNames() {
		if name == "if" {
			// keyword
			continue
		}
		if !yield(name, flag) {
			return
		}
	}
}

// Globals returns the register file as starlark values.
func Globals(regs cpu.Registers) (dict starlark.StringDict) {
	dict = starlark.StringDict{}
	for _, reg := range opcode.Registers() {
		dict[reg.String()] = starlark.MakeInt(int(regs.Get(reg)))
	}
	for name, flag := range flagNames {
		dict[name] = starlark.Bool(regs.Flag(flag))
	}
	return
}

// Condition is a compiled starlark expression over the register file.
type Condition struct {
	Expr string
	prog *starlark.Program
}

// NewCondition compiles an expression.
func NewCondition(expr string) (cond *Condition, err error) {
	known := Globals(cpu.Registers{})
	opts := syntax.FileOptions{}
	_, prog, err := starlark.SourceProgramOptions(&opts, "until", "rc = ("+expr+")\n", known.Has)
	if err != nil {
		return
	}

	cond = &Condition{
		Expr: expr,
		prog: prog,
	}
	return
}

// Done evaluates the expression's truth for a register file.
func (cond *Condition) Done(regs cpu.Registers) (done bool, err error) {
	thread := &starlark.Thread{Name: "until"}
	dict, err := cond.prog.Init(thread, Globals(regs))
	if err != nil {
		return
	}
	rc, ok := dict["rc"]
	if !ok {
		err = ErrConditionResult
		return
	}
	done = bool(rc.Truth())
	return
}

// LoadRegisters runs a starlark file whose global assignments set
// registers. Registers that are not assigned keep their value from base.
// Word registers are applied before byte registers.
func LoadRegisters(name string, src []byte, base cpu.Registers) (regs cpu.Registers, err error) {
	thread := &starlark.Thread{Name: name}
	opts := syntax.FileOptions{}
	dict, err := starlark.ExecFileOptions(&opts, thread, name, src, nil)
	if err != nil {
		return
	}

	regs = base

	for _, width := range []opcode.Width{opcode.WIDTH_WORD, opcode.WIDTH_BYTE} {
		for _, reg := range opcode.Registers() {
			if reg.Width() != width {
				continue
			}
			value, ok := dict[reg.String()]
			if !ok {
				continue
			}
			st_int, ok := value.(starlark.Int)
			if !ok {
				err = ErrRegisterValue(reg.String())
				return
			}
			st_int64, ok := st_int.Int64()
			if !ok {
				err = ErrRegisterValue(reg.String())
				return
			}
			regs.Set(reg, uint16(st_int64))
		}
	}

	for name, flag := range flagNames {
		value, ok := dict[name]
		if !ok {
			continue
		}
		st_bool, ok := value.(starlark.Bool)
		if !ok {
			err = ErrRegisterValue(name)
			return
		}
		regs.SetFlag(flag, bool(st_bool))
	}

	return
}
