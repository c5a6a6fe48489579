package opcode

import (
	"iter"
	"slices"

	"github.com/ezrec/sim8086/internal"
)

// Field lists.
var (
	disp  = []Field{{Kind: FIELD_DISP0}, {Kind: FIELD_DISP1}}
	modrm = append([]Field{{Kind: FIELD_MODRM}}, disp...)
	imm8  = []Field{{Kind: FIELD_IMM0}}
	imm16 = []Field{{Kind: FIELD_IMM0}, {Kind: FIELD_IMM1}}
	rel8  = []Field{{Kind: FIELD_REL0}}
	rel16 = []Field{{Kind: FIELD_REL0}, {Kind: FIELD_REL1}}
	moffs = []Field{{Kind: FIELD_OFFSET0}, {Kind: FIELD_OFFSET1}}
	ptr   = []Field{{Kind: FIELD_OFFSET0}, {Kind: FIELD_OFFSET1}, {Kind: FIELD_SEGMENT0}, {Kind: FIELD_SEGMENT1}}
	none  = []Field{}
)

// Operand definitions.
var (
	rm     = OperandDef{Kind: OPERAND_RM}
	reg    = OperandDef{Kind: OPERAND_REG}
	mem    = OperandDef{Kind: OPERAND_MEM}
	mem32  = OperandDef{Kind: OPERAND_MEM, Width: WIDTH_DWORD}
	sreg   = OperandDef{Kind: OPERAND_SEGREG}
	imm    = OperandDef{Kind: OPERAND_IMM}
	rel    = OperandDef{Kind: OPERAND_REL}
	farptr = OperandDef{Kind: OPERAND_FAR_PTR}
	direct = OperandDef{Kind: OPERAND_DIRECT}
	rm16   = OperandDef{Kind: OPERAND_RM, Width: WIDTH_WORD}
)

// ext is a mod/reg/rm byte whose reg field selects the instruction.
func ext(n uint8) []Field {
	return append([]Field{{Kind: FIELD_MOD_FIXED, Value: n}}, disp...)
}

// fields concatenates field lists.
func fields(lists ...[]Field) []Field {
	return slices.Concat(lists...)
}

// fixed is an operand that is always the same register.
func fixed(r Register) OperandDef {
	return OperandDef{Kind: OPERAND_FIXED, Register: r}
}

// constant is an operand with a value implied by the opcode.
func constant(v uint8) OperandDef {
	return OperandDef{Kind: OPERAND_CONST, Value: v}
}

var def = NewDefinition

// opcode table, indexed by opcode byte.
var table [256][]Definition

func add(defns ...Definition) {
	for _, defn := range defns {
		table[defn.Opcode] = append(table[defn.Opcode], defn)
	}
}

func init() {
	// Two-operand ALU family, 00..3D.
	alu := []Mnemonic{ADD, OR, ADC, SBB, AND, SUB, XOR, CMP}
	for n, m := range alu {
		op := byte(n * 8)
		add(
			def(op+0, m, WIDTH_BYTE, modrm, rm, reg),
			def(op+1, m, WIDTH_WORD, modrm, rm, reg),
			def(op+2, m, WIDTH_BYTE, modrm, reg, rm),
			def(op+3, m, WIDTH_WORD, modrm, reg, rm),
			def(op+4, m, WIDTH_BYTE, imm8, fixed(REG_AL), imm),
			def(op+5, m, WIDTH_WORD, imm16, fixed(REG_AX), imm),
		)
	}

	// Segment register push/pop.
	add(
		def(0x06, PUSH, WIDTH_WORD, none, fixed(REG_ES)),
		def(0x07, POP, WIDTH_WORD, none, fixed(REG_ES)),
		def(0x0e, PUSH, WIDTH_WORD, none, fixed(REG_CS)),
		def(0x16, PUSH, WIDTH_WORD, none, fixed(REG_SS)),
		def(0x17, POP, WIDTH_WORD, none, fixed(REG_SS)),
		def(0x1e, PUSH, WIDTH_WORD, none, fixed(REG_DS)),
		def(0x1f, POP, WIDTH_WORD, none, fixed(REG_DS)),
	)

	// Prefixes and decimal adjust.
	add(
		def(0x26, SEG, WIDTH_NONE, none, fixed(REG_ES)).With(FLAG_PREFIX|FLAG_SEGMENT),
		def(0x27, DAA, WIDTH_BYTE, none),
		def(0x2e, SEG, WIDTH_NONE, none, fixed(REG_CS)).With(FLAG_PREFIX|FLAG_SEGMENT),
		def(0x2f, DAS, WIDTH_BYTE, none),
		def(0x36, SEG, WIDTH_NONE, none, fixed(REG_SS)).With(FLAG_PREFIX|FLAG_SEGMENT),
		def(0x37, AAA, WIDTH_BYTE, none),
		def(0x3e, SEG, WIDTH_NONE, none, fixed(REG_DS)).With(FLAG_PREFIX|FLAG_SEGMENT),
		def(0x3f, AAS, WIDTH_BYTE, none),
	)

	// Register-in-opcode forms.
	for code := range uint8(8) {
		r16 := RegisterOf(code, WIDTH_WORD)
		r8 := RegisterOf(code, WIDTH_BYTE)
		add(
			def(0x40+code, INC, WIDTH_WORD, none, fixed(r16)),
			def(0x48+code, DEC, WIDTH_WORD, none, fixed(r16)),
			def(0x50+code, PUSH, WIDTH_WORD, none, fixed(r16)),
			def(0x58+code, POP, WIDTH_WORD, none, fixed(r16)),
			def(0xb0+code, MOV, WIDTH_BYTE, imm8, fixed(r8), imm),
			def(0xb8+code, MOV, WIDTH_WORD, imm16, fixed(r16), imm),
		)
		if code == 0 {
			add(def(0x90, NOP, WIDTH_NONE, none))
		} else {
			add(def(0x90+code, XCHG, WIDTH_WORD, none, fixed(REG_AX), fixed(r16)))
		}
	}

	// Conditional jumps.
	jcc := []Mnemonic{JO, JNO, JB, JNB, JE, JNE, JBE, JA, JS, JNS, JP, JNP, JL, JGE, JLE, JG}
	for n, m := range jcc {
		add(def(0x70+byte(n), m, WIDTH_NONE, rel8, rel))
	}

	// Group 1: immediate ALU.
	for n, m := range alu {
		add(
			def(0x80, m, WIDTH_BYTE, fields(ext(uint8(n)), imm8), rm, imm),
			def(0x81, m, WIDTH_WORD, fields(ext(uint8(n)), imm16), rm, imm),
			def(0x82, m, WIDTH_BYTE, fields(ext(uint8(n)), imm8), rm, imm),
			def(0x83, m, WIDTH_WORD, fields(ext(uint8(n)), imm8), rm, imm).With(FLAG_SIGN_EXTEND),
		)
	}

	add(
		def(0x84, TEST, WIDTH_BYTE, modrm, rm, reg),
		def(0x85, TEST, WIDTH_WORD, modrm, rm, reg),
		def(0x86, XCHG, WIDTH_BYTE, modrm, reg, rm),
		def(0x87, XCHG, WIDTH_WORD, modrm, reg, rm),
		def(0x88, MOV, WIDTH_BYTE, modrm, rm, reg),
		def(0x89, MOV, WIDTH_WORD, modrm, rm, reg),
		def(0x8a, MOV, WIDTH_BYTE, modrm, reg, rm),
		def(0x8b, MOV, WIDTH_WORD, modrm, reg, rm),
		def(0x8c, MOV, WIDTH_WORD, modrm, rm16, sreg),
		def(0x8d, LEA, WIDTH_WORD, modrm, reg, mem),
		def(0x8e, MOV, WIDTH_WORD, modrm, sreg, rm16),
		def(0x8f, POP, WIDTH_WORD, ext(0), rm),
	)

	add(
		def(0x98, CBW, WIDTH_BYTE, none),
		def(0x99, CWD, WIDTH_WORD, none),
		def(0x9a, CALL, WIDTH_NONE, ptr, farptr).With(FLAG_FAR),
		def(0x9b, WAIT, WIDTH_NONE, none),
		def(0x9c, PUSHF, WIDTH_WORD, none),
		def(0x9d, POPF, WIDTH_WORD, none),
		def(0x9e, SAHF, WIDTH_BYTE, none),
		def(0x9f, LAHF, WIDTH_BYTE, none),
		def(0xa0, MOV, WIDTH_BYTE, moffs, fixed(REG_AL), direct),
		def(0xa1, MOV, WIDTH_WORD, moffs, fixed(REG_AX), direct),
		def(0xa2, MOV, WIDTH_BYTE, moffs, direct, fixed(REG_AL)),
		def(0xa3, MOV, WIDTH_WORD, moffs, direct, fixed(REG_AX)),
		def(0xa4, MOVS, WIDTH_BYTE, none),
		def(0xa5, MOVS, WIDTH_WORD, none),
		def(0xa6, CMPS, WIDTH_BYTE, none),
		def(0xa7, CMPS, WIDTH_WORD, none),
		def(0xa8, TEST, WIDTH_BYTE, imm8, fixed(REG_AL), imm),
		def(0xa9, TEST, WIDTH_WORD, imm16, fixed(REG_AX), imm),
		def(0xaa, STOS, WIDTH_BYTE, none),
		def(0xab, STOS, WIDTH_WORD, none),
		def(0xac, LODS, WIDTH_BYTE, none),
		def(0xad, LODS, WIDTH_WORD, none),
		def(0xae, SCAS, WIDTH_BYTE, none),
		def(0xaf, SCAS, WIDTH_WORD, none),
	)

	add(
		def(0xc2, RET, WIDTH_NONE, imm16, imm),
		def(0xc3, RET, WIDTH_NONE, none),
		def(0xc4, LES, WIDTH_WORD, modrm, reg, mem32),
		def(0xc5, LDS, WIDTH_WORD, modrm, reg, mem32),
		def(0xc6, MOV, WIDTH_BYTE, fields(ext(0), imm8), rm, imm),
		def(0xc7, MOV, WIDTH_WORD, fields(ext(0), imm16), rm, imm),
		def(0xca, RETF, WIDTH_NONE, imm16, imm).With(FLAG_FAR),
		def(0xcb, RETF, WIDTH_NONE, none).With(FLAG_FAR),
		def(0xcc, INT, WIDTH_NONE, none, constant(3)),
		def(0xcd, INT, WIDTH_NONE, imm8, imm),
		def(0xce, INTO, WIDTH_NONE, none),
		def(0xcf, IRET, WIDTH_NONE, none),
	)

	// Group 2: shifts and rotates. Reg field 6 is not defined on the 8086.
	shift := map[uint8]Mnemonic{0: ROL, 1: ROR, 2: RCL, 3: RCR, 4: SHL, 5: SHR, 7: SAR}
	for n := range uint8(8) {
		m, ok := shift[n]
		if !ok {
			continue
		}
		add(
			def(0xd0, m, WIDTH_BYTE, ext(n), rm, constant(1)),
			def(0xd1, m, WIDTH_WORD, ext(n), rm, constant(1)),
			def(0xd2, m, WIDTH_BYTE, ext(n), rm, fixed(REG_CL)),
			def(0xd3, m, WIDTH_WORD, ext(n), rm, fixed(REG_CL)),
		)
	}

	add(
		def(0xd4, AAM, WIDTH_BYTE, []Field{{Kind: FIELD_CONST, Value: 0x0a}}),
		def(0xd5, AAD, WIDTH_BYTE, []Field{{Kind: FIELD_CONST, Value: 0x0a}}),
		def(0xd7, XLAT, WIDTH_BYTE, none),
	)

	add(
		def(0xe0, LOOPNE, WIDTH_NONE, rel8, rel),
		def(0xe1, LOOPE, WIDTH_NONE, rel8, rel),
		def(0xe2, LOOP, WIDTH_NONE, rel8, rel),
		def(0xe3, JCXZ, WIDTH_NONE, rel8, rel),
		def(0xe4, IN, WIDTH_BYTE, imm8, fixed(REG_AL), imm),
		def(0xe5, IN, WIDTH_WORD, imm8, fixed(REG_AX), imm),
		def(0xe6, OUT, WIDTH_BYTE, imm8, imm, fixed(REG_AL)),
		def(0xe7, OUT, WIDTH_WORD, imm8, imm, fixed(REG_AX)),
		def(0xe8, CALL, WIDTH_NONE, rel16, rel),
		def(0xe9, JMP, WIDTH_NONE, rel16, rel),
		def(0xea, JMP, WIDTH_NONE, ptr, farptr).With(FLAG_FAR),
		def(0xeb, JMP, WIDTH_NONE, rel8, rel),
		def(0xec, IN, WIDTH_BYTE, none, fixed(REG_AL), fixed(REG_DX)),
		def(0xed, IN, WIDTH_WORD, none, fixed(REG_AX), fixed(REG_DX)),
		def(0xee, OUT, WIDTH_BYTE, none, fixed(REG_DX), fixed(REG_AL)),
		def(0xef, OUT, WIDTH_WORD, none, fixed(REG_DX), fixed(REG_AX)),
	)

	add(
		def(0xf0, LOCK, WIDTH_NONE, none).With(FLAG_PREFIX|FLAG_LOCK),
		def(0xf2, REPNE, WIDTH_NONE, none).With(FLAG_PREFIX|FLAG_REPNE),
		def(0xf3, REP, WIDTH_NONE, none).With(FLAG_PREFIX|FLAG_REP),
		def(0xf4, HLT, WIDTH_NONE, none),
		def(0xf5, CMC, WIDTH_NONE, none),
	)

	// Group 3: unary arithmetic. Reg field 1 is not defined on the 8086.
	unary := map[uint8]Mnemonic{2: NOT, 3: NEG, 4: MUL, 5: IMUL, 6: DIV, 7: IDIV}
	add(
		def(0xf6, TEST, WIDTH_BYTE, fields(ext(0), imm8), rm, imm),
		def(0xf7, TEST, WIDTH_WORD, fields(ext(0), imm16), rm, imm),
	)
	for n := range uint8(8) {
		m, ok := unary[n]
		if !ok {
			continue
		}
		add(
			def(0xf6, m, WIDTH_BYTE, ext(n), rm),
			def(0xf7, m, WIDTH_WORD, ext(n), rm),
		)
	}

	add(
		def(0xf8, CLC, WIDTH_NONE, none),
		def(0xf9, STC, WIDTH_NONE, none),
		def(0xfa, CLI, WIDTH_NONE, none),
		def(0xfb, STI, WIDTH_NONE, none),
		def(0xfc, CLD, WIDTH_NONE, none),
		def(0xfd, STD, WIDTH_NONE, none),
	)

	// Groups 4 and 5.
	add(
		def(0xfe, INC, WIDTH_BYTE, ext(0), rm),
		def(0xfe, DEC, WIDTH_BYTE, ext(1), rm),
		def(0xff, INC, WIDTH_WORD, ext(0), rm),
		def(0xff, DEC, WIDTH_WORD, ext(1), rm),
		def(0xff, CALL, WIDTH_WORD, ext(2), rm),
		def(0xff, CALL, WIDTH_WORD, ext(3), mem32).With(FLAG_FAR),
		def(0xff, JMP, WIDTH_WORD, ext(4), rm),
		def(0xff, JMP, WIDTH_WORD, ext(5), mem32).With(FLAG_FAR),
		def(0xff, PUSH, WIDTH_WORD, ext(6), rm),
	)
}

// Lookup returns the candidate definitions for an opcode byte, in table
// order. The returned slice must not be modified.
func Lookup(op byte) []Definition {
	return table[op]
}

// Definitions iterates over every definition in the table, in opcode order.
func Definitions() iter.Seq[Definition] {
	rows := make([]iter.Seq[Definition], 0, len(table))
	for _, defns := range table {
		rows = append(rows, slices.Values(defns))
	}
	return internal.IterSeqConcat(rows...)
}
