package opcode

import (
	"fmt"
	"strings"
)

// FieldKind is the kind of a byte in an instruction's encoding.
type FieldKind int

//go:generate go tool stringer -linecomment -type=FieldKind
const (
	FIELD_CONST     = FieldKind(iota) // const
	FIELD_MODRM                       // modrm
	FIELD_MOD_FIXED                   // modrm/n
	FIELD_DISP0                       // disp0
	FIELD_DISP1                       // disp1
	FIELD_IMM0                        // imm0
	FIELD_IMM1                        // imm1
	FIELD_IMM2                        // imm2
	FIELD_IMM3                        // imm3
	FIELD_OFFSET0                     // offset0
	FIELD_OFFSET1                     // offset1
	FIELD_SEGMENT0                    // segment0
	FIELD_SEGMENT1                    // segment1
	FIELD_REL0                        // rel0
	FIELD_REL1                        // rel1
)

// Field is one byte of an instruction encoding, after the opcode byte.
type Field struct {
	Kind  FieldKind
	Value uint8 // Expected byte for FIELD_CONST, reg field for FIELD_MOD_FIXED.
}

// Optional is true for the fields that are only present for some
// addressing modes.
func (fd Field) Optional() bool {
	return fd.Kind == FIELD_DISP0 || fd.Kind == FIELD_DISP1
}

// HasModRM is true for the fields that hold a mod/reg/rm byte.
func (fd Field) HasModRM() bool {
	return fd.Kind == FIELD_MODRM || fd.Kind == FIELD_MOD_FIXED
}

func (fd Field) String() string {
	switch fd.Kind {
	case FIELD_CONST:
		return fmt.Sprintf("const=%#02x", fd.Value)
	case FIELD_MOD_FIXED:
		return fmt.Sprintf("modrm/%d", fd.Value)
	}
	return fd.Kind.String()
}

// OperandKind is the kind of an operand definition.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_REG     = OperandKind(iota) // reg
	OPERAND_RM                          // r/m
	OPERAND_MEM                         // m
	OPERAND_SEGREG                      // sreg
	OPERAND_IMM                         // imm
	OPERAND_FIXED                       // fixed
	OPERAND_REL                         // rel
	OPERAND_FAR_PTR                     // ptr16:16
	OPERAND_DIRECT                      // moffs
	OPERAND_CONST                       // const
)

// OperandDef describes how one operand is built from the decoded fields.
type OperandDef struct {
	Kind     OperandKind
	Register Register // For OPERAND_FIXED
	Value    uint8    // For OPERAND_CONST
	Width    Width    // Overrides the definition width, if not WIDTH_NONE
}

func (od OperandDef) String() string {
	switch od.Kind {
	case OPERAND_FIXED:
		return od.Register.String()
	case OPERAND_CONST:
		return fmt.Sprintf("%d", od.Value)
	}
	return od.Kind.String()
}

// Flag is a definition attribute bit.
type Flag uint8

const (
	FLAG_SEGMENT     = Flag(1 << 0) // Segment override prefix.
	FLAG_FAR         = Flag(1 << 1) // Far (segment:offset) transfer.
	FLAG_PREFIX      = Flag(1 << 2) // Prefix to the following instruction.
	FLAG_SIGN_EXTEND = Flag(1 << 3) // 8-bit immediate is sign extended.
	FLAG_LOCK        = Flag(1 << 4) // Bus lock prefix.
	FLAG_REP         = Flag(1 << 5) // Repeat while CX != 0 (and ZF set).
	FLAG_REPNE       = Flag(1 << 6) // Repeat while CX != 0 and ZF clear.
)

// Has is true if all bits of want are set.
func (fl Flag) Has(want Flag) bool {
	return fl&want == want
}

// Platform is the processor an instruction definition belongs to.
type Platform int

const (
	PLATFORM_8086 = Platform(0) // 8086
)

// Definition is an opcode table entry.
type Definition struct {
	Opcode    byte
	Mnemonic  Mnemonic
	Width     Width
	Flags     Flag
	Fields    []Field
	Operands  []OperandDef
	MinLength int
	MaxLength int
	Platform  Platform
}

// NewDefinition creates a definition, deriving its length bounds from the
// field list. The opcode byte itself is not part of the field list.
func NewDefinition(op byte, m Mnemonic, width Width, fields []Field, operands ...OperandDef) (defn Definition) {
	defn = Definition{
		Opcode:    op,
		Mnemonic:  m,
		Width:     width,
		Fields:    fields,
		Operands:  operands,
		MinLength: 1,
		MaxLength: 1,
	}

	for _, fd := range fields {
		if !fd.Optional() {
			defn.MinLength++
		}
		defn.MaxLength++
	}

	return
}

// With returns a copy of the definition with additional flags.
func (defn Definition) With(flags Flag) Definition {
	defn.Flags |= flags
	return defn
}

// ModRM returns the mod/reg/rm field, if the definition has one.
func (defn Definition) ModRM() (field Field, ok bool) {
	for _, fd := range defn.Fields {
		if fd.HasModRM() {
			return fd, true
		}
	}
	return
}

// Count returns the number of fields of a kind.
func (defn Definition) Count(kinds ...FieldKind) (count int) {
	for _, fd := range defn.Fields {
		for _, kind := range kinds {
			if fd.Kind == kind {
				count++
			}
		}
	}
	return
}

func (defn Definition) String() string {
	fields := make([]string, len(defn.Fields))
	for n, fd := range defn.Fields {
		fields[n] = fd.String()
	}
	operands := make([]string, len(defn.Operands))
	for n, od := range defn.Operands {
		operands[n] = od.String()
	}
	return fmt.Sprintf("%02x %v %v [%v] (%v) %d-%d bytes",
		defn.Opcode, defn.Mnemonic, defn.Width,
		strings.Join(fields, " "), strings.Join(operands, ", "),
		defn.MinLength, defn.MaxLength)
}
