package cpu

// Arithmetic and logic instructions.
//
// The result flags are the zero, sign, parity and overflow flags. Carry
// and auxiliary carry are left unchanged by the arithmetic instructions.
// The sign flag is taken from bit 15 of the zero extended result, so a byte
// result never sets it.

const arithFlags = FLAG_ZF | FLAG_SF | FLAG_PF | FLAG_OF

type aluOp int

const (
	ALU_ADD = aluOp(iota) // add
	ALU_SUB               // sub
	ALU_AND               // and
	ALU_OR                // or
	ALU_XOR               // xor
)

// alu computes a wrapped result and its flags.
func alu(op aluOp, a, b uint32, mask, sign uint32) (r uint32, flags Flag) {
	var overflow bool
	switch op {
	case ALU_ADD:
		r = (a + b) & mask
		overflow = (^(a ^ b))&(a^r)&sign != 0
	case ALU_SUB:
		r = (a - b) & mask
		overflow = (a^b)&(a^r)&sign != 0
	case ALU_AND:
		r = a & b & mask
	case ALU_OR:
		r = (a | b) & mask
	case ALU_XOR:
		r = (a ^ b) & mask
	}

	if r == 0 {
		flags |= FLAG_ZF
	}
	if int16(uint16(r)) < 0 {
		flags |= FLAG_SF
	}
	if parity(r) {
		flags |= FLAG_PF
	}
	if overflow {
		flags |= FLAG_OF
	}
	return
}

// binary applies a two operand ALU operation. The result is written back
// unless discard is set.
func (ex *execution) binary(op aluOp, discard bool) (delta int, err error) {
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

	mask, sign := widthMask(ops[0].DataType.Width())
	if mask == 0 {
		err = ErrUnsupportedDataType
		return
	}
	b &= mask

	r, flags := alu(op, a, b, mask, sign)
	if !discard {
		err = ex.store(ops[0], r)
		if err != nil {
			return
		}
	}

	switch op {
	case ALU_ADD, ALU_SUB:
		ex.setFlags(arithFlags, flags)
	default:
		// Logical operations clear carry and overflow.
		ex.setFlags(arithFlags|FLAG_CF, flags)
	}
	return
}

func (ex *execution) add() (int, error)  { return ex.binary(ALU_ADD, false) }
func (ex *execution) sub() (int, error)  { return ex.binary(ALU_SUB, false) }
func (ex *execution) cmp() (int, error)  { return ex.binary(ALU_SUB, true) }
func (ex *execution) and() (int, error)  { return ex.binary(ALU_AND, false) }
func (ex *execution) or() (int, error)   { return ex.binary(ALU_OR, false) }
func (ex *execution) xor() (int, error)  { return ex.binary(ALU_XOR, false) }
func (ex *execution) test() (int, error) { return ex.binary(ALU_AND, true) }

// step adds or subtracts one.
func (ex *execution) step(op aluOp) (delta int, err error) {
	ops, err := ex.operands(1)
	if err != nil {
		return
	}
	a, err := ex.load(ops[0])
	if err != nil {
		return
	}
	mask, sign := widthMask(ops[0].DataType.Width())
	if mask == 0 {
		err = ErrUnsupportedDataType
		return
	}
	r, flags := alu(op, a, 1, mask, sign)
	err = ex.store(ops[0], r)
	if err != nil {
		return
	}
	ex.setFlags(arithFlags, flags)
	return
}

func (ex *execution) inc() (int, error) { return ex.step(ALU_ADD) }
func (ex *execution) dec() (int, error) { return ex.step(ALU_SUB) }

func (ex *execution) not() (delta int, err error) {
	ops, err := ex.operands(1)
	if err != nil {
		return
	}
	a, err := ex.load(ops[0])
	if err != nil {
		return
	}
	mask, _ := widthMask(ops[0].DataType.Width())
	err = ex.store(ops[0], ^a&mask)
	return
}
