package cpu

import (
	"fmt"
	"strings"

	"github.com/ezrec/sim8086/opcode"
)

// Text returns the instruction in NASM syntax. If label is not empty, it
// replaces the relative jump operand.
func (inst Instruction) Text(label string) string {
	// A lone prefix.
	if inst.Flags.Has(opcode.FLAG_PREFIX) {
		if inst.Mnemonic == opcode.SEG && len(inst.Operands) > 0 {
			return inst.Operands[0].Register.String()
		}
		return inst.Mnemonic.String()
	}

	var sb strings.Builder

	if inst.Flags.Has(opcode.FLAG_LOCK) {
		sb.WriteString("lock ")
	}
	switch {
	case inst.Flags.Has(opcode.FLAG_REPNE):
		sb.WriteString("repne ")
	case inst.Flags.Has(opcode.FLAG_REP):
		sb.WriteString("rep ")
	}

	// A segment override with no memory operand to carry it.
	if _, ok := inst.MemoryOperand(); !ok && inst.Segment != opcode.REG_NONE {
		sb.WriteString(inst.Segment.String())
		sb.WriteString(" ")
	}

	sb.WriteString(inst.Mnemonic.String())
	if inst.Mnemonic.IsString() {
		switch inst.DataType.Base() {
		case DATA_BYTE:
			sb.WriteString("b")
		case DATA_WORD:
			sb.WriteString("w")
		}
	}

	sized := inst.sized()

	for n, op := range inst.Operands {
		if n == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}

		switch op.Type {
		case OPERAND_REGISTER:
			sb.WriteString(op.Register.String())
		case OPERAND_MEMORY:
			if !sized {
				if keyword := op.DataType.String(); keyword != "" {
					sb.WriteString(keyword)
					sb.WriteString(" ")
				}
			}
			sb.WriteString(op.Memory.String())
		case OPERAND_IMMEDIATE:
			if op.Immediate.Relative {
				if label != "" {
					sb.WriteString(label)
				} else {
					rel, _ := inst.Relative()
					fmt.Fprintf(&sb, "$%+d", rel)
				}
				continue
			}
			fmt.Fprintf(&sb, "%d", op.Immediate.Int())
		case OPERAND_RAW:
			fmt.Fprintf(&sb, "%d:%d", op.Raw>>16, op.Raw&0xffff)
		}
	}

	return sb.String()
}

// sized is true when a register operand implies the size of a memory
// operand. Shift counts do not.
func (inst Instruction) sized() bool {
	switch inst.Mnemonic {
	case opcode.ROL, opcode.ROR, opcode.RCL, opcode.RCR, opcode.SHL, opcode.SHR, opcode.SAR:
		return false
	}
	for _, op := range inst.Operands {
		if op.Type == OPERAND_REGISTER {
			return true
		}
	}
	return false
}

func (inst Instruction) String() string {
	return inst.Text("")
}

// String returns the bracketed address, with any segment override.
func (mem MemoryAddress) String() string {
	var sb strings.Builder
	sb.WriteString("[")

	switch {
	case mem.Segment == SEGMENT_DIRECT:
		fmt.Fprintf(&sb, "%d:", mem.SegmentValue)
	case mem.Segment != SEGMENT_NONE:
		sb.WriteString(mem.Segment.Register().String())
		sb.WriteString(":")
	}

	entry := mem.Eac.Entry()
	var terms []string
	if entry.Base != opcode.REG_NONE {
		terms = append(terms, entry.Base.String())
	}
	if entry.Index != opcode.REG_NONE {
		terms = append(terms, entry.Index.String())
	}
	sb.WriteString(strings.Join(terms, " + "))

	disp := mem.Displacement
	switch {
	case len(terms) == 0:
		fmt.Fprintf(&sb, "%d", disp)
	case disp > 0:
		fmt.Fprintf(&sb, " + %d", disp)
	case disp < 0:
		fmt.Fprintf(&sb, " - %d", -disp)
	}

	sb.WriteString("]")
	return sb.String()
}
