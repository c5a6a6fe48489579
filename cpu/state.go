package cpu

import (
	"github.com/ezrec/sim8086/opcode"
)

// StoreFunc is called after a memory store.
type StoreFunc func(address uint32, length int)

// State is the mutable register and memory state of the processor.
type State struct {
	Registers Registers
	Memory    *Memory
	OnStore   StoreFunc // If set, notified of every memory store.
}

// NewState creates a zeroed processor state.
func NewState() *State {
	return &State{Memory: NewMemory()}
}

// Segment returns the segment value used by a memory address.
func (st *State) Segment(mem MemoryAddress) uint16 {
	if mem.Segment == SEGMENT_DIRECT {
		return mem.SegmentValue
	}
	if reg := mem.Segment.Register(); reg != opcode.REG_NONE {
		return st.Registers.Get(reg)
	}
	if mem.Eac.UsesBP() {
		return st.Registers.SS
	}
	return st.Registers.DS
}

// Offset computes the effective address offset of a memory address.
func (st *State) Offset(mem MemoryAddress) uint16 {
	entry := mem.Eac.Entry()
	return st.Registers.Get(entry.Base) + st.Registers.Get(entry.Index) + uint16(mem.Displacement)
}

// Resolve computes the absolute address of a memory address, or
// INVALID_ADDRESS.
func (st *State) Resolve(mem MemoryAddress) uint32 {
	return Absolute(st.Segment(mem), st.Offset(mem))
}

// Load reads the value of an operand. Memory reads are bounds checked.
func (st *State) Load(op Operand) (value uint32, err error) {
	switch op.Type {
	case OPERAND_REGISTER:
		value = uint32(st.Registers.Get(op.Register))
	case OPERAND_MEMORY:
		value, err = st.Memory.Read(st.Resolve(op.Memory), op.DataType.Width())
	case OPERAND_IMMEDIATE:
		value = op.Immediate.Uint()
		mask, _ := widthMask(op.DataType.Width())
		if mask != 0 {
			value &= mask
		}
	case OPERAND_RAW:
		value = op.Raw
	default:
		err = ErrUnsupportedOperand
	}
	return
}

// Store writes the value of a register or memory operand, and records
// the change in the trace.
func (st *State) Store(op Operand, value uint32, trace *Trace) (err error) {
	switch op.Type {
	case OPERAND_REGISTER:
		before := st.Registers.Get(op.Register)
		st.Registers.Set(op.Register, uint16(value))
		trace.Record(Change{
			Kind:     CHANGE_REGISTER,
			Register: op.Register,
			Width:    op.Register.Width(),
			Before:   uint32(before),
			After:    uint32(st.Registers.Get(op.Register)),
		})
	case OPERAND_MEMORY:
		err = st.write(st.Resolve(op.Memory), op.DataType.Width(), value, trace)
	default:
		err = ErrUnsupportedOperand
	}
	return
}

// write stores to an absolute address.
func (st *State) write(addr uint32, width opcode.Width, value uint32, trace *Trace) (err error) {
	before, err := st.Memory.Read(addr, width)
	if err != nil {
		return
	}
	err = st.Memory.Write(addr, width, value)
	if err != nil {
		return
	}
	after, _ := st.Memory.Read(addr, width)
	trace.Record(Change{
		Kind:    CHANGE_MEMORY,
		Address: addr,
		Width:   width,
		Before:  before,
		After:   after,
	})
	if st.OnStore != nil {
		st.OnStore(addr, int(width))
	}
	return
}

// widthMask returns the value and sign masks of a width.
func widthMask(width opcode.Width) (mask, sign uint32) {
	switch width {
	case opcode.WIDTH_BYTE:
		return 0xff, 0x80
	case opcode.WIDTH_WORD:
		return 0xffff, 0x8000
	case opcode.WIDTH_DWORD:
		return 0xffffffff, 0x80000000
	}
	return
}
