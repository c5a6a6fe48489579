package cpu

import (
	"github.com/ezrec/sim8086/opcode"
)

// DataType is the size of an operand, with an optional far bit.
type DataType uint8

const (
	DATA_NONE    = DataType(0) // none
	DATA_BYTE    = DataType(1) // byte
	DATA_WORD    = DataType(2) // word
	DATA_DWORD   = DataType(3) // dword
	DATA_POINTER = DataType(4) // segment:offset pointer

	DATA_FAR = DataType(0x80) // Far bit.
)

// DataTypeOf maps an operand width to a data type.
func DataTypeOf(width opcode.Width) (dt DataType, ok bool) {
	switch width {
	case opcode.WIDTH_NONE:
		return DATA_NONE, true
	case opcode.WIDTH_BYTE:
		return DATA_BYTE, true
	case opcode.WIDTH_WORD:
		return DATA_WORD, true
	case opcode.WIDTH_DWORD:
		return DATA_DWORD, true
	}
	return
}

// Base returns the data type without the far bit.
func (dt DataType) Base() DataType {
	return dt &^ DATA_FAR
}

// Far is true for far (segment:offset) data.
func (dt DataType) Far() bool {
	return dt&DATA_FAR != 0
}

// Width returns the storage width of the data type.
func (dt DataType) Width() opcode.Width {
	switch dt.Base() {
	case DATA_BYTE:
		return opcode.WIDTH_BYTE
	case DATA_WORD:
		return opcode.WIDTH_WORD
	case DATA_DWORD, DATA_POINTER:
		return opcode.WIDTH_DWORD
	}
	return opcode.WIDTH_NONE
}

func (dt DataType) String() (text string) {
	switch dt.Base() {
	case DATA_BYTE:
		text = "byte"
	case DATA_WORD:
		text = "word"
	case DATA_DWORD:
		text = "dword"
	case DATA_POINTER:
		text = "ptr"
	}
	if dt.Far() {
		text = "far"
	}
	return
}

// OperandType is the variant held by an Operand.
type OperandType uint8

//go:generate go tool stringer -linecomment -type=OperandType
const (
	OPERAND_REGISTER  = OperandType(iota) // register
	OPERAND_MEMORY                        // memory
	OPERAND_IMMEDIATE                     // immediate
	OPERAND_RAW                           // raw value
)

// SegmentTag selects the segment of a memory address.
type SegmentTag uint8

const (
	SEGMENT_NONE   = SegmentTag(iota) // Default segment for the addressing mode.
	SEGMENT_CS                        // cs
	SEGMENT_DS                        // ds
	SEGMENT_SS                        // ss
	SEGMENT_ES                        // es
	SEGMENT_DIRECT                    // Explicit segment value.
)

// SegmentTagOf maps a segment register to its tag.
func SegmentTagOf(reg opcode.Register) SegmentTag {
	switch reg {
	case opcode.REG_CS:
		return SEGMENT_CS
	case opcode.REG_DS:
		return SEGMENT_DS
	case opcode.REG_SS:
		return SEGMENT_SS
	case opcode.REG_ES:
		return SEGMENT_ES
	}
	return SEGMENT_NONE
}

// Register returns the segment register of the tag, if any.
func (tag SegmentTag) Register() opcode.Register {
	switch tag {
	case SEGMENT_CS:
		return opcode.REG_CS
	case SEGMENT_DS:
		return opcode.REG_DS
	case SEGMENT_SS:
		return opcode.REG_SS
	case SEGMENT_ES:
		return opcode.REG_ES
	}
	return opcode.REG_NONE
}

// MemoryAddress is a memory operand's addressing mode.
type MemoryAddress struct {
	Eac          opcode.Eac
	Displacement int        // Signed, except for the direct mode.
	Segment      SegmentTag // Segment override.
	SegmentValue uint16     // For SEGMENT_DIRECT.
}

// ImmediateKind is the stored form of an immediate.
type ImmediateKind uint8

//go:generate go tool stringer -linecomment -type=ImmediateKind
const (
	IMM_U8  = ImmediateKind(iota) // u8
	IMM_S8                        // s8
	IMM_U16                       // u16
	IMM_S16                       // s16
	IMM_U32                       // u32
	IMM_S32                       // s32
)

// Immediate is an immediate value from the instruction stream.
type Immediate struct {
	Kind     ImmediateKind
	Value    uint32 // Raw bits, as encoded.
	Relative bool   // Value is a jump displacement.
}

// Int returns the immediate, sign extended when signed.
func (imm Immediate) Int() int {
	switch imm.Kind {
	case IMM_S8:
		return int(int8(imm.Value))
	case IMM_S16:
		return int(int16(imm.Value))
	case IMM_S32:
		return int(int32(imm.Value))
	}
	return int(imm.Value)
}

// Uint returns the immediate as 32 bits, sign extended when signed.
func (imm Immediate) Uint() uint32 {
	return uint32(imm.Int())
}

// Operand is a decoded instruction operand.
type Operand struct {
	Type      OperandType
	DataType  DataType
	Register  opcode.Register // OPERAND_REGISTER
	Memory    MemoryAddress   // OPERAND_MEMORY
	Immediate Immediate       // OPERAND_IMMEDIATE
	Raw       uint32          // OPERAND_RAW, segment<<16 | offset for far pointers.
}

// Instruction is a decoded instruction.
type Instruction struct {
	Position  int // Stream position of the first byte, including prefixes.
	Opcode    byte
	Length    int
	Mnemonic  opcode.Mnemonic
	DataType  DataType
	Flags     opcode.Flag
	Segment   opcode.Register // Segment override prefix, or REG_NONE.
	Operands  []Operand
	Cycles    int // Static cycle cost.
	Transfers int // Memory transfers, for the odd address penalty.
}

// MemoryOperand returns the first memory operand, if any.
func (inst Instruction) MemoryOperand() (op Operand, ok bool) {
	for _, op = range inst.Operands {
		if op.Type == OPERAND_MEMORY {
			return op, true
		}
	}
	return Operand{}, false
}

// Relative returns the offset of a relative jump target from the start of
// the instruction. The displacement counts from the start of its own field,
// so a one byte displacement of -1 targets the jump itself.
func (inst Instruction) Relative() (rel int, ok bool) {
	for _, op := range inst.Operands {
		if op.Type == OPERAND_IMMEDIATE && op.Immediate.Relative {
			field := inst.Length - int(op.DataType.Width())
			return field + op.Immediate.Int(), true
		}
	}
	return
}

// Target returns the absolute stream position of a relative jump target.
func (inst Instruction) Target() (target int, ok bool) {
	rel, ok := inst.Relative()
	if !ok {
		return
	}
	target = inst.Position + rel
	return
}
