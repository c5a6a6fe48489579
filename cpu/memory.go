package cpu

import (
	"github.com/ezrec/sim8086/opcode"
)

const (
	MEMORY_SIZE     = 1 << 20    // Addressable memory, in bytes.
	INVALID_ADDRESS = ^uint32(0) // Address outside of the addressable memory.
)

// Absolute computes the absolute address of a segment and offset.
func Absolute(segment, offset uint16) uint32 {
	addr := uint32(segment)<<4 + uint32(offset)
	if addr >= MEMORY_SIZE {
		return INVALID_ADDRESS
	}
	return addr
}

// Memory is the flat 8086 address space.
type Memory struct {
	data []byte
}

// NewMemory creates a zeroed address space.
func NewMemory() *Memory {
	return &Memory{data: make([]byte, MEMORY_SIZE)}
}

func (mem *Memory) check(addr uint32, size int) (err error) {
	if addr == INVALID_ADDRESS || uint64(addr)+uint64(size) > MEMORY_SIZE {
		err = ErrInvalidMemoryAddress
	}
	return
}

// Read reads a little endian value.
func (mem *Memory) Read(addr uint32, width opcode.Width) (value uint32, err error) {
	size := int(width)
	err = mem.check(addr, size)
	if err != nil {
		return
	}
	for n := size - 1; n >= 0; n-- {
		value = value<<8 | uint32(mem.data[addr+uint32(n)])
	}
	return
}

// Write writes a little endian value.
func (mem *Memory) Write(addr uint32, width opcode.Width, value uint32) (err error) {
	size := int(width)
	err = mem.check(addr, size)
	if err != nil {
		return
	}
	for n := range size {
		mem.data[addr+uint32(n)] = byte(value >> (8 * n))
	}
	return
}

// Load copies a block of bytes into memory.
func (mem *Memory) Load(addr uint32, data []byte) (err error) {
	err = mem.check(addr, len(data))
	if err != nil {
		return
	}
	copy(mem.data[addr:], data)
	return
}

// Slice returns a copy of a block of memory, clipped to the address space.
func (mem *Memory) Slice(addr uint32, n int) []byte {
	if addr >= MEMORY_SIZE || n <= 0 {
		return nil
	}
	end := min(uint64(addr)+uint64(n), MEMORY_SIZE)
	return append([]byte(nil), mem.data[addr:end]...)
}

// Window returns the memory from an address to the end of the address
// space, without copying.
func (mem *Memory) Window(addr uint32) []byte {
	if addr >= MEMORY_SIZE {
		return nil
	}
	return mem.data[addr:]
}

// Clear zeros all of memory.
func (mem *Memory) Clear() {
	clear(mem.data)
}
