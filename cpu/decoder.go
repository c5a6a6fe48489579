package cpu

import (
	"errors"
	"iter"

	"github.com/ezrec/sim8086/opcode"
)

// fieldState accumulates the decoded fields of a single definition.
type fieldState struct {
	data []byte
	n    int // Next byte to consume.

	modrm  bool
	mod    uint8
	reg    uint8
	rm     uint8
	memory bool
	eac    opcode.EacEntry
	disp   uint16

	imm      uint32
	immBytes int
	offset   uint16
	segment  uint16
	rel      uint16
	relBytes int
}

func (fs *fieldState) next() (b byte, err error) {
	if fs.n >= len(fs.data) {
		err = ErrStreamTooShort
		return
	}
	b = fs.data[fs.n]
	fs.n++
	return
}

// displacement returns the decoded displacement. The direct mode holds an
// unsigned offset.
func (fs *fieldState) displacement() int {
	switch {
	case fs.eac.Eac == opcode.EAC_DIRECT:
		return int(fs.disp)
	case fs.eac.DispBytes == 1:
		return int(int8(fs.disp))
	}
	return int(int16(fs.disp))
}

// Decode decodes a single instruction at a stream position.
// Prefix bytes are folded into the instruction that follows them.
func Decode(data []byte, pos int) (inst Instruction, err error) {
	defer func() {
		if err != nil {
			err = &ErrAt{Position: pos, Err: err}
		}
	}()

	if pos < 0 || pos >= len(data) {
		err = ErrStreamTooShort
		return
	}

	inst, err = decode(data, pos)
	return
}

func decode(data []byte, pos int) (inst Instruction, err error) {
	defns := opcode.Lookup(data[pos])
	switch len(defns) {
	case 0:
		err = ErrOpcodeNotImplemented
		return
	case 1:
		defn := defns[0]
		if defn.Flags.Has(opcode.FLAG_PREFIX) && pos+1 < len(data) {
			return decodePrefixed(defn, data, pos)
		}
		return decodeDefinition(defn, data, pos)
	}

	for _, defn := range defns {
		inst, err = decodeDefinition(defn, data, pos)
		if errors.Is(err, ErrOpcodeMismatch) || errors.Is(err, ErrConstantFieldMismatch) {
			continue
		}
		return
	}

	inst = Instruction{}
	err = ErrOpcodeNotImplemented
	return
}

// decodePrefixed decodes the instruction after a prefix, and applies the
// prefix to it.
func decodePrefixed(prefix opcode.Definition, data []byte, pos int) (inst Instruction, err error) {
	inst, err = decode(data, pos+1)
	if err != nil {
		return
	}

	inst.Position = pos
	inst.Length++
	inst.Flags |= prefix.Flags & (opcode.FLAG_LOCK | opcode.FLAG_REP | opcode.FLAG_REPNE)

	if prefix.Flags.Has(opcode.FLAG_SEGMENT) {
		seg := prefix.Operands[0].Register
		if inst.Segment == opcode.REG_NONE {
			inst.Segment = seg
		}
		operands := make([]Operand, len(inst.Operands))
		for n, op := range inst.Operands {
			if op.Type == OPERAND_MEMORY && op.Memory.Segment == SEGMENT_NONE {
				op.Memory.Segment = SegmentTagOf(seg)
			}
			operands[n] = op
		}
		inst.Operands = operands
		inst.Cycles += 2
	}

	return
}

// decodeDefinition decodes the fields and operands of a single definition.
func decodeDefinition(defn opcode.Definition, data []byte, pos int) (inst Instruction, err error) {
	fs := &fieldState{data: data, n: pos + 1}

	for _, fd := range defn.Fields {
		var b byte
		switch fd.Kind {
		case opcode.FIELD_CONST:
			b, err = fs.next()
			if err != nil {
				return
			}
			if b != fd.Value {
				err = ErrConstantFieldMismatch
				return
			}
		case opcode.FIELD_MODRM, opcode.FIELD_MOD_FIXED:
			b, err = fs.next()
			if err != nil {
				return
			}
			fs.modrm = true
			fs.mod = b >> 6
			fs.reg = (b >> 3) & 7
			fs.rm = b & 7
			if fd.Kind == opcode.FIELD_MOD_FIXED && fs.reg != fd.Value {
				err = ErrOpcodeMismatch
				return
			}
			fs.eac, fs.memory = opcode.EacOf(fs.rm, fs.mod)
		case opcode.FIELD_DISP0, opcode.FIELD_DISP1:
			index := 0
			if fd.Kind == opcode.FIELD_DISP1 {
				index = 1
			}
			if !fs.memory || fs.eac.DispBytes <= index {
				continue
			}
			b, err = fs.next()
			if err != nil {
				return
			}
			fs.disp |= uint16(b) << (8 * index)
		case opcode.FIELD_IMM0, opcode.FIELD_IMM1, opcode.FIELD_IMM2, opcode.FIELD_IMM3:
			b, err = fs.next()
			if err != nil {
				return
			}
			fs.imm |= uint32(b) << (8 * (fd.Kind - opcode.FIELD_IMM0))
			fs.immBytes++
		case opcode.FIELD_OFFSET0, opcode.FIELD_OFFSET1:
			b, err = fs.next()
			if err != nil {
				return
			}
			fs.offset |= uint16(b) << (8 * (fd.Kind - opcode.FIELD_OFFSET0))
		case opcode.FIELD_SEGMENT0, opcode.FIELD_SEGMENT1:
			b, err = fs.next()
			if err != nil {
				return
			}
			fs.segment |= uint16(b) << (8 * (fd.Kind - opcode.FIELD_SEGMENT0))
		case opcode.FIELD_REL0, opcode.FIELD_REL1:
			b, err = fs.next()
			if err != nil {
				return
			}
			fs.rel |= uint16(b) << (8 * (fd.Kind - opcode.FIELD_REL0))
			fs.relBytes++
		default:
			err = ErrUnsupportedField
			return
		}
	}

	dataType, ok := DataTypeOf(defn.Width)
	if !ok {
		err = ErrUnsupportedDataType
		return
	}

	inst = Instruction{
		Position: pos,
		Opcode:   defn.Opcode,
		Length:   fs.n - pos,
		Mnemonic: defn.Mnemonic,
		DataType: dataType,
		Flags:    defn.Flags,
		Segment:  opcode.REG_NONE,
	}

	if inst.Length < defn.MinLength || inst.Length > defn.MaxLength {
		err = ErrInstructionLength
		return
	}

	kinds := [2]opcode.CostKind{}
	for n, od := range defn.Operands {
		var op Operand
		var kind opcode.CostKind
		op, kind, err = fs.operand(defn, od)
		if err != nil {
			return
		}
		if n < len(kinds) {
			kinds[n] = kind
		}
		inst.Operands = append(inst.Operands, op)
	}

	if defn.Flags.Has(opcode.FLAG_FAR) {
		inst.DataType |= DATA_FAR
	}

	cost, ok := opcode.CostOf(defn.Mnemonic, kinds[0], kinds[1])
	if ok {
		inst.Cycles = cost.Base
		inst.Transfers = cost.Transfers
		if cost.EA && fs.memory {
			inst.Cycles += fs.eac.Cycles
		}
	}

	return
}

// operand builds a single operand from the decoded fields.
func (fs *fieldState) operand(defn opcode.Definition, od opcode.OperandDef) (op Operand, kind opcode.CostKind, err error) {
	width := defn.Width
	if od.Width != opcode.WIDTH_NONE {
		width = od.Width
	}
	dataType, ok := DataTypeOf(width)
	if !ok {
		err = ErrUnsupportedDataType
		return
	}
	if defn.Flags.Has(opcode.FLAG_FAR) && od.Kind == opcode.OPERAND_MEM {
		dataType |= DATA_FAR
	}

	op.DataType = dataType

	register := func(reg opcode.Register) {
		op.Type = OPERAND_REGISTER
		op.Register = reg
		op.DataType, _ = DataTypeOf(reg.Width())
		kind = opcode.COST_REG
		if reg.IsSegment() {
			kind = opcode.COST_SEG
		}
	}

	memory := func() {
		op.Type = OPERAND_MEMORY
		op.Memory = MemoryAddress{
			Eac:          fs.eac.Eac,
			Displacement: fs.displacement(),
		}
		kind = opcode.COST_MEM
	}

	switch od.Kind {
	case opcode.OPERAND_REG:
		if !fs.modrm {
			err = ErrUnsupportedOperand
			return
		}
		reg := opcode.RegisterOf(fs.reg, width)
		if reg == opcode.REG_NONE {
			err = ErrUnsupportedDataType
			return
		}
		register(reg)
	case opcode.OPERAND_SEGREG:
		if !fs.modrm {
			err = ErrUnsupportedOperand
			return
		}
		reg := opcode.SegmentOf(fs.reg)
		if reg == opcode.REG_NONE {
			err = ErrUnsupportedOperand
			return
		}
		register(reg)
	case opcode.OPERAND_RM:
		if !fs.modrm {
			err = ErrUnsupportedOperand
			return
		}
		if fs.memory {
			memory()
			return
		}
		reg := opcode.RegisterOf(fs.rm, width)
		if reg == opcode.REG_NONE {
			err = ErrUnsupportedDataType
			return
		}
		register(reg)
	case opcode.OPERAND_MEM:
		if !fs.modrm || !fs.memory {
			err = ErrUnsupportedOperand
			return
		}
		memory()
	case opcode.OPERAND_DIRECT:
		op.Type = OPERAND_MEMORY
		op.Memory = MemoryAddress{
			Eac:          opcode.EAC_DIRECT,
			Displacement: int(fs.offset),
		}
		kind = opcode.COST_MEM
	case opcode.OPERAND_FIXED:
		register(od.Register)
		if od.Register == opcode.REG_AL || od.Register == opcode.REG_AX {
			kind = opcode.COST_ACC
		}
	case opcode.OPERAND_IMM:
		op.Type = OPERAND_IMMEDIATE
		switch fs.immBytes {
		case 1:
			op.Immediate = Immediate{Kind: IMM_U8, Value: fs.imm}
			if defn.Flags.Has(opcode.FLAG_SIGN_EXTEND) {
				op.Immediate.Kind = IMM_S8
			}
		case 2:
			op.Immediate = Immediate{Kind: IMM_U16, Value: fs.imm}
		case 4:
			op.Immediate = Immediate{Kind: IMM_U32, Value: fs.imm}
		default:
			err = ErrUnsupportedOperand
			return
		}
		kind = opcode.COST_IMM
	case opcode.OPERAND_CONST:
		op.Type = OPERAND_IMMEDIATE
		op.DataType = DATA_BYTE
		op.Immediate = Immediate{Kind: IMM_U8, Value: uint32(od.Value)}
		kind = opcode.COST_IMM
	case opcode.OPERAND_REL:
		op.Type = OPERAND_IMMEDIATE
		switch fs.relBytes {
		case 1:
			op.DataType = DATA_BYTE
			op.Immediate = Immediate{Kind: IMM_S8, Value: uint32(fs.rel), Relative: true}
		case 2:
			op.DataType = DATA_WORD
			op.Immediate = Immediate{Kind: IMM_S16, Value: uint32(fs.rel), Relative: true}
		default:
			err = ErrUnsupportedOperand
			return
		}
		kind = opcode.COST_NONE
	case opcode.OPERAND_FAR_PTR:
		op.Type = OPERAND_RAW
		op.DataType = DATA_POINTER | DATA_FAR
		op.Raw = uint32(fs.segment)<<16 | uint32(fs.offset)
		kind = opcode.COST_IMM
	default:
		err = ErrUnsupportedOperand
	}

	return
}

// DecodeAll decodes a stream from its first byte. The first decode error
// is yielded with a zero instruction at its position, and ends the walk.
func DecodeAll(data []byte) iter.Seq2[Instruction, error] {
	return func(yield func(inst Instruction, err error) bool) {
		for pos := 0; pos < len(data); {
			inst, err := Decode(data, pos)
			if err != nil {
				yield(Instruction{Position: pos}, err)
				return
			}
			if !yield(inst, nil) {
				return
			}
			pos += inst.Length
		}
	}
}
