package emulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sim8086/cpu"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	data := []byte{
		0xb9, 0x03, 0x00, // mov cx, 3
		0x49,       // dec cx
		0x75, 0xfe, // jne label0
		0x75, 0xfc, // jne label0
		0xeb, 0x01, // jmp label1
		0xf4, // hlt
	}

	text, err := Disassemble("test.bin", data)
	assert.NoError(err)

	expected := []string{
		"; test.bin",
		"; 11 bytes, 6 instructions",
		"",
		"bits 16",
		"",
		"mov cx, 3",
		"label0:",
		"dec cx",
		"jne label0",
		"jne label0",
		"jmp label1",
		"label1:",
		"hlt",
		"",
	}
	assert.Equal(strings.Join(expected, "\n"), text)
}

func TestDisassembleUnlabeled(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		data []byte
		line string
	}){
		// Into the middle of itself.
		{[]byte{0xeb, 0x00, 0x90}, "jmp $+1"},
		// Past the end of the stream.
		{[]byte{0xe8, 0x10, 0x00}, "call $+17"},
	}

	for _, entry := range table {
		text, err := Disassemble("unlabeled", entry.data)
		assert.NoError(err)
		assert.Contains(text, "\n"+entry.line+"\n")
		assert.NotContains(text, "label0")
	}
}

func TestDisassembleSelfJump(t *testing.T) {
	assert := assert.New(t)

	text, err := Disassemble("self", []byte{0x90, 0x90, 0x90, 0xeb, 0xff, 0x90})
	assert.NoError(err)

	lines := strings.Split(text, "\n")
	assert.Equal([]string{
		"nop",
		"nop",
		"nop",
		"label0:",
		"jmp label0",
		"nop",
		"",
	}, lines[len(lines)-7:])
}

func TestDisassembleError(t *testing.T) {
	assert := assert.New(t)

	text, err := Disassemble("bad", []byte{0x90, 0x0f, 0x90})
	assert.ErrorIs(err, cpu.ErrOpcodeNotImplemented)
	assert.Empty(text)

	var errAt *cpu.ErrAt
	assert.ErrorAs(err, &errAt)
	assert.Equal(1, errAt.Position)
}
