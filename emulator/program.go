package emulator

import (
	"bytes"
	"io"

	"github.com/ezrec/sim8086/cpu"
)

// Program is the input of an engine.
type Program struct {
	Name      string
	Content   []byte
	Registers *cpu.Registers // Initial registers, if set.
}

// haltMarker is a hlt opcode followed by a zero byte.
var haltMarker = []byte{0xf4, 0x00}

// NewProgram creates a program from raw bytes. Anything after the last
// hlt opcode that is followed by a zero byte is trailing data, and is
// dropped.
func NewProgram(name string, data []byte) (prog *Program) {
	content := bytes.Clone(data)
	if n := bytes.LastIndex(content, haltMarker); n >= 0 {
		content = content[:n+1]
	}

	prog = &Program{
		Name:    name,
		Content: content,
	}
	return
}

// ReadProgram reads a program from a byte source.
func ReadProgram(name string, r io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}
	prog = NewProgram(name, data)
	return
}
