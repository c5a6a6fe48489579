package cpu

import (
	"github.com/ezrec/sim8086/opcode"
)

// execution is the context of a single instruction's execution.
type execution struct {
	st    *State
	inst  Instruction
	trace *Trace
}

type handler func(ex *execution) (delta int, err error)

var handlers = map[opcode.Mnemonic]handler{}

func init() {
	handlers[opcode.MOV] = (*execution).mov
	handlers[opcode.ADD] = (*execution).add
	handlers[opcode.SUB] = (*execution).sub
	handlers[opcode.CMP] = (*execution).cmp
	handlers[opcode.INC] = (*execution).inc
	handlers[opcode.DEC] = (*execution).dec
	handlers[opcode.AND] = (*execution).and
	handlers[opcode.OR] = (*execution).or
	handlers[opcode.XOR] = (*execution).xor
	handlers[opcode.TEST] = (*execution).test
	handlers[opcode.NOT] = (*execution).not
	handlers[opcode.XCHG] = (*execution).xchg
	handlers[opcode.LEA] = (*execution).lea
	handlers[opcode.PUSH] = (*execution).push
	handlers[opcode.POP] = (*execution).pop
	handlers[opcode.HLT] = (*execution).nop
	handlers[opcode.NOP] = (*execution).nop

	handlers[opcode.CLC] = flagSetter(FLAG_CF, false)
	handlers[opcode.STC] = flagSetter(FLAG_CF, true)
	handlers[opcode.CLD] = flagSetter(FLAG_DF, false)
	handlers[opcode.STD] = flagSetter(FLAG_DF, true)
	handlers[opcode.CLI] = flagSetter(FLAG_IF, false)
	handlers[opcode.STI] = flagSetter(FLAG_IF, true)
	handlers[opcode.CMC] = (*execution).cmc

	handlers[opcode.JMP] = (*execution).jmp
	handlers[opcode.CALL] = (*execution).call
	handlers[opcode.RET] = (*execution).ret
	handlers[opcode.RETF] = (*execution).ret
	handlers[opcode.JCXZ] = (*execution).jcxz
	handlers[opcode.LOOP] = (*execution).loop
	handlers[opcode.LOOPE] = (*execution).loop
	handlers[opcode.LOOPNE] = (*execution).loop

	for m, cond := range conditions {
		handlers[m] = func(ex *execution) (delta int, err error) {
			return ex.branch(cond(&ex.st.Registers))
		}
	}
}

// Execute applies an instruction to the processor state, and returns the
// change to the instruction pointer beyond the instruction's own length.
// The instruction pointer itself is advanced by the caller.
func Execute(st *State, inst Instruction, trace *Trace) (delta int, err error) {
	h, ok := handlers[inst.Mnemonic]
	if !ok {
		err = ErrMissingExecutionFunction
		return
	}

	trace.Begin(st.Registers.CS, st.Registers.IP, inst)

	ex := &execution{st: st, inst: inst, trace: trace}
	delta, err = h(ex)
	return
}

// Executable is true if the mnemonic has execution semantics.
func Executable(m opcode.Mnemonic) bool {
	_, ok := handlers[m]
	return ok
}

func (ex *execution) operands(count int) (ops []Operand, err error) {
	if len(ex.inst.Operands) < count {
		err = ErrUnsupportedOperand
		return
	}
	ops = ex.inst.Operands
	return
}

func (ex *execution) load(op Operand) (uint32, error) {
	return ex.st.Load(op)
}

func (ex *execution) store(op Operand, value uint32) error {
	return ex.st.Store(op, value, ex.trace)
}

// next is the offset of the following instruction.
func (ex *execution) next() uint16 {
	return ex.st.Registers.IP + uint16(ex.inst.Length)
}

// deltaTo converts an absolute target offset to an IP delta.
func (ex *execution) deltaTo(target uint16) int {
	return int(int16(target - ex.next()))
}

// setFlags replaces the masked flag bits, and records the change.
func (ex *execution) setFlags(mask, value Flag) {
	regs := &ex.st.Registers
	before := regs.Flags
	regs.Flags = (regs.Flags &^ uint16(mask)) | uint16(value&mask)
	ex.trace.Record(Change{
		Kind:   CHANGE_FLAGS,
		Width:  opcode.WIDTH_WORD,
		Before: uint32(before),
		After:  uint32(regs.Flags),
	})
}

func (ex *execution) setRegister(reg opcode.Register, value uint16) {
	ex.st.Store(Operand{Type: OPERAND_REGISTER, Register: reg}, uint32(value), ex.trace)
}

func (ex *execution) nop() (delta int, err error) {
	return
}

func (ex *execution) mov() (delta int, err error) {
	ops, err := ex.operands(2)
	if err != nil {
		return
	}
	value, err := ex.load(ops[1])
	if err != nil {
		return
	}
	err = ex.store(ops[0], value)
	return
}

func (ex *execution) xchg() (delta int, err error) {
	ops, err := ex.operands(2)
	if err != nil {
		return
	}
	a, err := ex.load(ops[0])
	if err != nil {
		return
	}
	b, err := ex.load(ops[1])
	if err != nil {
		return
	}
	err = ex.store(ops[0], b)
	if err != nil {
		return
	}
	err = ex.store(ops[1], a)
	return
}

func (ex *execution) lea() (delta int, err error) {
	ops, err := ex.operands(2)
	if err != nil {
		return
	}
	if ops[1].Type != OPERAND_MEMORY {
		err = ErrUnsupportedOperand
		return
	}
	err = ex.store(ops[0], uint32(ex.st.Offset(ops[1].Memory)))
	return
}

func flagSetter(flag Flag, on bool) handler {
	return func(ex *execution) (delta int, err error) {
		value := Flag(0)
		if on {
			value = flag
		}
		ex.setFlags(flag, value)
		return
	}
}

func (ex *execution) cmc() (delta int, err error) {
	value := FLAG_CF
	if ex.st.Registers.Flag(FLAG_CF) {
		value = 0
	}
	ex.setFlags(FLAG_CF, value)
	return
}
