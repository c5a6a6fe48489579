package emulator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ezrec/sim8086/cpu"
)

// Disassemble decodes a whole stream into NASM source. Jump, call and loop
// targets that land on an instruction are given labels, numbered in
// address order. The first decode error aborts the disassembly.
func Disassemble(name string, data []byte) (text string, err error) {
	var insts []cpu.Instruction
	starts := map[int]bool{}
	for inst, derr := range cpu.DecodeAll(data) {
		if derr != nil {
			err = derr
			return
		}
		insts = append(insts, inst)
		starts[inst.Position] = true
	}

	var targets []int
	for _, inst := range insts {
		if !inst.Mnemonic.IsBranch() {
			continue
		}
		target, ok := inst.Target()
		if ok && starts[target] && !slices.Contains(targets, target) {
			targets = append(targets, target)
		}
	}
	slices.Sort(targets)

	labels := make(map[int]string, len(targets))
	for n, target := range targets {
		labels[target] = fmt.Sprintf("label%d", n)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "; %v\n", name)
	fmt.Fprintf(&sb, "; %d bytes, %d instructions\n", len(data), len(insts))
	sb.WriteString("\nbits 16\n\n")

	for _, inst := range insts {
		if label, ok := labels[inst.Position]; ok {
			fmt.Fprintf(&sb, "%v:\n", label)
		}
		var label string
		if target, ok := inst.Target(); ok && inst.Mnemonic.IsBranch() {
			label = labels[target]
		}
		sb.WriteString(inst.Text(label))
		sb.WriteString("\n")
	}

	text = sb.String()
	return
}
