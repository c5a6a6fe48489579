package cpu

import (
	"github.com/ezrec/sim8086/opcode"
)

// conditions of the conditional jumps.
var conditions = map[opcode.Mnemonic]func(rs *Registers) bool{
	opcode.JO:  func(rs *Registers) bool { return rs.Flag(FLAG_OF) },
	opcode.JNO: func(rs *Registers) bool { return !rs.Flag(FLAG_OF) },
	opcode.JB:  func(rs *Registers) bool { return rs.Flag(FLAG_CF) },
	opcode.JNB: func(rs *Registers) bool { return !rs.Flag(FLAG_CF) },
	opcode.JE:  func(rs *Registers) bool { return rs.Flag(FLAG_ZF) },
	opcode.JNE: func(rs *Registers) bool { return !rs.Flag(FLAG_ZF) },
	opcode.JBE: func(rs *Registers) bool { return rs.Flag(FLAG_CF) || rs.Flag(FLAG_ZF) },
	opcode.JA:  func(rs *Registers) bool { return !rs.Flag(FLAG_CF) && !rs.Flag(FLAG_ZF) },
	opcode.JS:  func(rs *Registers) bool { return rs.Flag(FLAG_SF) },
	opcode.JNS: func(rs *Registers) bool { return !rs.Flag(FLAG_SF) },
	opcode.JP:  func(rs *Registers) bool { return rs.Flag(FLAG_PF) },
	opcode.JNP: func(rs *Registers) bool { return !rs.Flag(FLAG_PF) },
	opcode.JL:  func(rs *Registers) bool { return rs.Flag(FLAG_SF) != rs.Flag(FLAG_OF) },
	opcode.JGE: func(rs *Registers) bool { return rs.Flag(FLAG_SF) == rs.Flag(FLAG_OF) },
	opcode.JLE: func(rs *Registers) bool { return rs.Flag(FLAG_ZF) || rs.Flag(FLAG_SF) != rs.Flag(FLAG_OF) },
	opcode.JG:  func(rs *Registers) bool { return !rs.Flag(FLAG_ZF) && rs.Flag(FLAG_SF) == rs.Flag(FLAG_OF) },
}

// Condition evaluates the condition of a conditional jump mnemonic.
func (rs *Registers) Condition(m opcode.Mnemonic) (taken bool, ok bool) {
	cond, ok := conditions[m]
	if !ok {
		return
	}
	taken = cond(rs)
	return
}

// branch returns the jump displacement when taken.
func (ex *execution) branch(taken bool) (delta int, err error) {
	if !taken {
		return
	}
	return ex.target()
}

// target computes the IP delta to the instruction's transfer target. Far
// targets also load CS.
func (ex *execution) target() (delta int, err error) {
	ops, err := ex.operands(1)
	if err != nil {
		return
	}
	op := ops[0]

	switch {
	case op.Type == OPERAND_IMMEDIATE && op.Immediate.Relative:
		rel, _ := ex.inst.Relative()
		delta = rel - ex.inst.Length
	case op.Type == OPERAND_RAW:
		ex.setRegister(opcode.REG_CS, uint16(op.Raw>>16))
		delta = ex.deltaTo(uint16(op.Raw))
	case op.DataType.Far():
		var ptr uint32
		ptr, err = ex.load(op)
		if err != nil {
			return
		}
		ex.setRegister(opcode.REG_CS, uint16(ptr>>16))
		delta = ex.deltaTo(uint16(ptr))
	default:
		var value uint32
		value, err = ex.load(op)
		if err != nil {
			return
		}
		delta = ex.deltaTo(uint16(value))
	}
	return
}

func (ex *execution) jmp() (int, error) {
	return ex.target()
}

func (ex *execution) jcxz() (int, error) {
	return ex.branch(ex.st.Registers.CX == 0)
}

// loop decrements CX, and always stores it back.
func (ex *execution) loop() (delta int, err error) {
	regs := &ex.st.Registers
	cx := regs.CX - 1
	ex.setRegister(opcode.REG_CX, cx)

	taken := cx != 0
	switch ex.inst.Mnemonic {
	case opcode.LOOPE:
		taken = taken && regs.Flag(FLAG_ZF)
	case opcode.LOOPNE:
		taken = taken && !regs.Flag(FLAG_ZF)
	}
	return ex.branch(taken)
}

func (ex *execution) call() (delta int, err error) {
	cs := ex.st.Registers.CS
	ret := ex.next()

	// Compute the target first, as it may read the stack pointer.
	delta, err = ex.target()
	if err != nil {
		return
	}

	if ex.inst.DataType.Far() {
		err = ex.pushWord(cs)
		if err != nil {
			return
		}
	}
	err = ex.pushWord(ret)
	return
}

func (ex *execution) ret() (delta int, err error) {
	regs := &ex.st.Registers

	ip, err := ex.popWord()
	if err != nil {
		return
	}
	if ex.inst.Mnemonic == opcode.RETF {
		var cs uint16
		cs, err = ex.popWord()
		if err != nil {
			return
		}
		ex.setRegister(opcode.REG_CS, cs)
	}
	if len(ex.inst.Operands) > 0 {
		var n uint32
		n, err = ex.load(ex.inst.Operands[0])
		if err != nil {
			return
		}
		ex.setRegister(opcode.REG_SP, regs.SP+uint16(n))
	}

	delta = ex.deltaTo(ip)
	return
}

func (ex *execution) stack() Operand {
	return Operand{
		Type:     OPERAND_MEMORY,
		DataType: DATA_WORD,
		Memory: MemoryAddress{
			Eac:          opcode.EAC_DIRECT,
			Displacement: int(ex.st.Registers.SP),
			Segment:      SEGMENT_SS,
		},
	}
}

func (ex *execution) pushWord(value uint16) (err error) {
	ex.setRegister(opcode.REG_SP, ex.st.Registers.SP-2)
	err = ex.store(ex.stack(), uint32(value))
	return
}

func (ex *execution) popWord() (value uint16, err error) {
	v, err := ex.load(ex.stack())
	if err != nil {
		return
	}
	value = uint16(v)
	ex.setRegister(opcode.REG_SP, ex.st.Registers.SP+2)
	return
}

func (ex *execution) push() (delta int, err error) {
	ops, err := ex.operands(1)
	if err != nil {
		return
	}
	value, err := ex.load(ops[0])
	if err != nil {
		return
	}
	err = ex.pushWord(uint16(value))
	return
}

func (ex *execution) pop() (delta int, err error) {
	ops, err := ex.operands(1)
	if err != nil {
		return
	}
	value, err := ex.popWord()
	if err != nil {
		return
	}
	err = ex.store(ops[0], uint32(value))
	return
}
