package cpu

import (
	"fmt"

	"github.com/ezrec/sim8086/opcode"
)

// ChangeKind is the kind of state a change record describes.
type ChangeKind uint8

//go:generate go tool stringer -linecomment -type=ChangeKind
const (
	CHANGE_REGISTER = ChangeKind(iota) // register
	CHANGE_MEMORY                      // memory
	CHANGE_FLAGS                       // flags
)

// Change is a before and after value pair.
type Change struct {
	Kind     ChangeKind
	Register opcode.Register // CHANGE_REGISTER
	Address  uint32          // CHANGE_MEMORY
	Width    opcode.Width
	Before   uint32
	After    uint32
}

func (ch Change) String() string {
	switch ch.Kind {
	case CHANGE_REGISTER:
		return fmt.Sprintf("%v:%#x->%#x", ch.Register, ch.Before, ch.After)
	case CHANGE_MEMORY:
		return fmt.Sprintf("[%05x]:%#x->%#x", ch.Address, ch.Before, ch.After)
	case CHANGE_FLAGS:
		return fmt.Sprintf("flags:[%v]->[%v]", Flag(ch.Before), Flag(ch.After))
	}
	return "?"
}

// Executed pairs an executed instruction with the changes it made.
type Executed struct {
	CS, IP      uint16
	Instruction Instruction
	Changes     []Change
}

func (ex Executed) String() (text string) {
	text = fmt.Sprintf("%04x:%04x %v", ex.CS, ex.IP, ex.Instruction)
	if len(ex.Changes) > 0 {
		text += " ;"
		for _, ch := range ex.Changes {
			text += " " + ch.String()
		}
	}
	return
}

// Trace is an append-only execution record. A nil trace records nothing.
type Trace struct {
	Entries []Executed
}

// Begin starts the record of an instruction.
func (tr *Trace) Begin(cs, ip uint16, inst Instruction) {
	if tr == nil {
		return
	}
	tr.Entries = append(tr.Entries, Executed{CS: cs, IP: ip, Instruction: inst})
}

// Record adds a change to the current instruction's record.
func (tr *Trace) Record(ch Change) {
	if tr == nil || len(tr.Entries) == 0 {
		return
	}
	last := &tr.Entries[len(tr.Entries)-1]
	last.Changes = append(last.Changes, ch)
}

// Last returns the most recent record.
func (tr *Trace) Last() (ex Executed, ok bool) {
	if tr == nil || len(tr.Entries) == 0 {
		return
	}
	return tr.Entries[len(tr.Entries)-1], true
}

// Reset discards all records.
func (tr *Trace) Reset() {
	if tr == nil {
		return
	}
	tr.Entries = nil
}
