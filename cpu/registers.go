package cpu

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/sim8086/internal"
	"github.com/ezrec/sim8086/opcode"
)

// Flag is a bit of the flags register.
type Flag uint16

const (
	FLAG_CF = Flag(1 << 0)  // Carry
	FLAG_PF = Flag(1 << 2)  // Parity
	FLAG_AF = Flag(1 << 4)  // Auxiliary carry
	FLAG_ZF = Flag(1 << 6)  // Zero
	FLAG_SF = Flag(1 << 7)  // Sign
	FLAG_TF = Flag(1 << 8)  // Trap
	FLAG_IF = Flag(1 << 9)  // Interrupt enable
	FLAG_DF = Flag(1 << 10) // Direction
	FLAG_OF = Flag(1 << 11) // Overflow
)

var _flag_names = []struct {
	flag Flag
	name string
}{
	{FLAG_CF, "cf"}, {FLAG_PF, "pf"}, {FLAG_AF, "af"}, {FLAG_ZF, "zf"},
	{FLAG_SF, "sf"}, {FLAG_TF, "tf"}, {FLAG_IF, "if"}, {FLAG_DF, "df"},
	{FLAG_OF, "of"},
}

// FlagNames iterates over the flag bits and their names.
func FlagNames() iter.Seq2[string, Flag] {
	return func(yield func(name string, flag Flag) bool) {
		for _, entry := range _flag_names {
			if !yield(entry.name, entry.flag) {
				return
			}
		}
	}
}

func (fl Flag) String() string {
	var names []string
	for name, flag := range FlagNames() {
		if fl&flag != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}

// Registers is the 8086 register file. The byte registers are accessed
// through their word register.
type Registers struct {
	AX, CX, DX, BX uint16
	SP, BP, SI, DI uint16
	ES, CS, SS, DS uint16
	IP             uint16
	Flags          uint16
}

func (rs *Registers) word(reg opcode.Register) *uint16 {
	switch reg {
	case opcode.REG_AX:
		return &rs.AX
	case opcode.REG_CX:
		return &rs.CX
	case opcode.REG_DX:
		return &rs.DX
	case opcode.REG_BX:
		return &rs.BX
	case opcode.REG_SP:
		return &rs.SP
	case opcode.REG_BP:
		return &rs.BP
	case opcode.REG_SI:
		return &rs.SI
	case opcode.REG_DI:
		return &rs.DI
	case opcode.REG_ES:
		return &rs.ES
	case opcode.REG_CS:
		return &rs.CS
	case opcode.REG_SS:
		return &rs.SS
	case opcode.REG_DS:
		return &rs.DS
	case opcode.REG_IP:
		return &rs.IP
	case opcode.REG_FLAGS:
		return &rs.Flags
	}
	return nil
}

// Get returns the value of a register. REG_NONE reads as zero.
func (rs *Registers) Get(reg opcode.Register) uint16 {
	word, shift := reg.Word()
	p := rs.word(word)
	if p == nil {
		return 0
	}
	if reg.Width() == opcode.WIDTH_BYTE {
		return (*p >> shift) & 0xff
	}
	return *p
}

// Set sets the value of a register. Byte registers only change their half
// of the word register.
func (rs *Registers) Set(reg opcode.Register, value uint16) {
	word, shift := reg.Word()
	p := rs.word(word)
	if p == nil {
		return
	}
	if reg.Width() == opcode.WIDTH_BYTE {
		mask := uint16(0xff) << shift
		*p = (*p &^ mask) | ((value & 0xff) << shift)
		return
	}
	*p = value
}

// Flag returns the state of a flag bit.
func (rs *Registers) Flag(flag Flag) bool {
	return rs.Flags&uint16(flag) != 0
}

// SetFlag sets or clears a flag bit.
func (rs *Registers) SetFlag(flag Flag, on bool) {
	if on {
		rs.Flags |= uint16(flag)
	} else {
		rs.Flags &^= uint16(flag)
	}
}

func (rs *Registers) list(regs ...opcode.Register) iter.Seq2[opcode.Register, uint16] {
	return func(yield func(reg opcode.Register, value uint16) bool) {
		for _, reg := range regs {
			if !yield(reg, rs.Get(reg)) {
				return
			}
		}
	}
}

// All iterates over the word registers: general, segment, then IP and flags.
func (rs *Registers) All() iter.Seq2[opcode.Register, uint16] {
	return internal.IterSeq2Concat(
		rs.list(opcode.REG_AX, opcode.REG_CX, opcode.REG_DX, opcode.REG_BX,
			opcode.REG_SP, opcode.REG_BP, opcode.REG_SI, opcode.REG_DI),
		rs.list(opcode.REG_ES, opcode.REG_CS, opcode.REG_SS, opcode.REG_DS),
		rs.list(opcode.REG_IP, opcode.REG_FLAGS),
	)
}

// String returns the register file, one register per line.
func (rs *Registers) String() (text string) {
	for reg, value := range rs.All() {
		text += fmt.Sprintf("% 6s: %04x", reg, value)
		if reg == opcode.REG_FLAGS {
			text += fmt.Sprintf(" [%v]", Flag(value))
		}
		text += "\n"
	}
	return
}

// parity is true for an even number of set bits in the low byte.
func parity(v uint32) bool {
	b := byte(v)
	b ^= b >> 4
	b ^= b >> 2
	b ^= b >> 1
	return b&1 == 0
}
