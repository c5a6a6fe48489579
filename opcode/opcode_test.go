package opcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterOf(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code  uint8
		width Width
		reg   Register
	}){
		{0, WIDTH_BYTE, REG_AL},
		{4, WIDTH_BYTE, REG_AH},
		{7, WIDTH_BYTE, REG_BH},
		{0, WIDTH_WORD, REG_AX},
		{3, WIDTH_WORD, REG_BX},
		{4, WIDTH_WORD, REG_SP},
		{7, WIDTH_WORD, REG_DI},
		{0, WIDTH_NONE, REG_NONE},
		{0, WIDTH_DWORD, REG_NONE},
	}

	for _, entry := range table {
		assert.Equal(entry.reg, RegisterOf(entry.code, entry.width), "%d %v", entry.code, entry.width)
	}

	assert.Equal(REG_ES, SegmentOf(0))
	assert.Equal(REG_DS, SegmentOf(3))
	assert.Equal(REG_NONE, SegmentOf(4))
}

func TestRegisterWord(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		reg   Register
		word  Register
		shift uint
	}){
		{REG_AL, REG_AX, 0},
		{REG_AH, REG_AX, 8},
		{REG_CH, REG_CX, 8},
		{REG_BL, REG_BX, 0},
		{REG_SI, REG_SI, 0},
		{REG_DS, REG_DS, 0},
	}

	for _, entry := range table {
		word, shift := entry.reg.Word()
		assert.Equal(entry.word, word, entry.reg.String())
		assert.Equal(entry.shift, shift, entry.reg.String())
	}

	for _, reg := range Registers() {
		parsed, ok := ParseRegister(reg.String())
		assert.True(ok, reg.String())
		assert.Equal(reg, parsed)
	}
}

func TestMnemonicNames(t *testing.T) {
	assert := assert.New(t)

	for m := NONE + 1; int(m) < mnemonicCount; m++ {
		parsed, ok := ParseMnemonic(m.String())
		assert.True(ok, m.String())
		assert.Equal(m, parsed)
	}

	m, ok := ParseMnemonic("MOV")
	assert.True(ok)
	assert.Equal(MOV, m)

	_, ok = ParseMnemonic("mov.w")
	assert.False(ok)

	assert.True(MOVS.IsString())
	assert.False(MOV.IsString())
	assert.True(JCXZ.IsBranch())
	assert.True(LOOPNE.IsBranch())
	assert.False(RET.IsBranch())
}

func TestEac(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		rm, mod uint8
		eac     Eac
		disp    int
		cycles  int
		bp      bool
	}){
		{0, 0, EAC_BX_SI, 0, 7, false},
		{2, 0, EAC_BP_SI, 0, 8, true},
		{6, 0, EAC_DIRECT, 2, 6, false},
		{7, 0, EAC_BX, 0, 5, false},
		{6, 1, EAC_BP_D8, 1, 9, true},
		{1, 1, EAC_BX_DI_D8, 1, 12, false},
		{6, 2, EAC_BP_D16, 2, 9, true},
		{4, 2, EAC_SI_D16, 2, 9, false},
	}

	for _, entry := range table {
		e, ok := EacOf(entry.rm, entry.mod)
		assert.True(ok)
		assert.Equal(entry.eac, e.Eac)
		assert.Equal(entry.disp, e.DispBytes)
		assert.Equal(entry.cycles, e.Cycles)
		assert.Equal(entry.bp, e.Eac.UsesBP())
	}

	_, ok := EacOf(0, 3)
	assert.False(ok)
}

func TestTable(t *testing.T) {
	assert := assert.New(t)

	// Every opcode byte is either defined, or one of the 8086 holes.
	holes := map[byte]bool{0x0f: true, 0xd6: true, 0xd8: true, 0xd9: true, 0xda: true, 0xdb: true, 0xdc: true, 0xdd: true, 0xde: true, 0xdf: true, 0xf1: true}
	for n := range 0x100 {
		op := byte(n)
		if holes[op] {
			assert.Empty(Lookup(op), "%02x", op)
		}
	}

	for defn := range Definitions() {
		assert.LessOrEqual(defn.MinLength, defn.MaxLength, defn.String())
		assert.GreaterOrEqual(defn.MaxLength, 1, defn.String())
		assert.LessOrEqual(defn.MaxLength, 6, defn.String())
		if _, ok := defn.ModRM(); ok {
			assert.Equal(defn.MinLength+2, defn.MaxLength, defn.String())
		} else {
			assert.Equal(defn.MinLength, defn.MaxLength, defn.String())
		}
	}

	// Group candidates share an opcode, and differ by the reg field.
	ff := Lookup(0xff)
	assert.Len(ff, 7)
	seen := map[uint8]bool{}
	for _, defn := range ff {
		field, ok := defn.ModRM()
		assert.True(ok)
		assert.Equal(FIELD_MOD_FIXED, field.Kind)
		assert.False(seen[field.Value])
		seen[field.Value] = true
	}

	mov := Lookup(0x89)
	assert.Len(mov, 1)
	assert.Equal(MOV, mov[0].Mnemonic)
	assert.Equal(WIDTH_WORD, mov[0].Width)
	assert.Equal(2, mov[0].MinLength)
	assert.Equal(4, mov[0].MaxLength)

	assert.True(Lookup(0x83)[0].Flags.Has(FLAG_SIGN_EXTEND))
	assert.True(Lookup(0x2e)[0].Flags.Has(FLAG_PREFIX | FLAG_SEGMENT))
	assert.Equal(3, Lookup(0xea)[0].Count(FIELD_OFFSET0, FIELD_OFFSET1, FIELD_SEGMENT0))
}

func TestCostOf(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		m    Mnemonic
		a, b CostKind
		cost Cost
	}){
		{MOV, COST_REG, COST_REG, Cost{Base: 2}},
		{MOV, COST_REG, COST_MEM, Cost{Base: 8, Transfers: 1, EA: true}},
		{MOV, COST_ACC, COST_MEM, Cost{Base: 10, Transfers: 1}},
		{MOV, COST_ACC, COST_IMM, Cost{Base: 4}},
		{ADD, COST_MEM, COST_REG, Cost{Base: 16, Transfers: 2, EA: true}},
		{ADD, COST_ACC, COST_REG, Cost{Base: 3}},
		{CMP, COST_IMM, COST_NONE, Cost{}},
		{JNE, COST_IMM, COST_NONE, Cost{Base: 16}},
		{HLT, COST_NONE, COST_NONE, Cost{Base: 2}},
	}

	for _, entry := range table {
		cost, ok := CostOf(entry.m, entry.a, entry.b)
		if entry.cost == (Cost{}) {
			assert.False(ok, entry.m.String())
			continue
		}
		assert.True(ok, entry.m.String())
		assert.Equal(entry.cost, cost, entry.m.String())
	}
}

func TestStringers(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value    fmt.Stringer
		expected string
	}){
		{NONE, "???"},
		{LOOPNE, "loopne"},
		{XOR, "xor"},
		{Mnemonic(-1), "Mnemonic(-1)"},
		{WIDTH_NONE, "none"},
		{WIDTH_WORD, "word"},
		{WIDTH_DWORD, "dword"},
		{Width(3), "Width(3)"},
		{REG_FLAGS, "flags"},
		{REG_NONE, "none"},
		{FIELD_MOD_FIXED, "modrm/n"},
		{OPERAND_FAR_PTR, "ptr16:16"},
		{COST_SEG, "sreg"},
		{EAC_BP_D8, "bp + d8"},
		{Eac(EAC_COUNT), "Eac(24)"},
	}

	for _, entry := range table {
		assert.Equal(entry.expected, entry.value.String())
	}
}
