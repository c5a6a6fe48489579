package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/sim8086/emulator"
)

// writeFiles writes named files into a temporary directory, and returns
// their paths.
func writeFiles(t *testing.T, files map[string][]byte) (paths map[string]string) {
	dir := t.TempDir()
	paths = map[string]string{}
	for name, data := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		paths[name] = path
	}
	return
}

func TestMemoryWatch(t *testing.T) {
	assert := assert.New(t)

	defer func(old bool) { verbose = old }(verbose)

	verbose = false
	assert.Nil(memoryWatch())

	verbose = true
	assert.NotNil(memoryWatch())
}

func TestSessionQuiet(t *testing.T) {
	assert := assert.New(t)

	defer func(old bool) { verbose = old }(verbose)
	verbose = false

	// mov byte [5], 7
	paths := writeFiles(t, map[string][]byte{
		"store.bin": {0xc6, 0x06, 0x05, 0x00, 0x07},
	})

	ss := &session{codeSegment: 0x10}
	eng, err := ss.engine(paths["store.bin"], memoryWatch())
	require.NoError(t, err)
	assert.False(eng.Verbose)

	assert.NoError(eng.Run(context.Background()))
	assert.Equal(emulator.STATE_FINISHED, eng.State())
	assert.Equal([]byte{0x07}, eng.Memory(0x105, 1))
}

func TestStepAll(t *testing.T) {
	assert := assert.New(t)

	// mov cx, 3; add ax, 2; loop $-3; hlt
	paths := writeFiles(t, map[string][]byte{
		"countdown.bin": {0xb9, 0x03, 0x00, 0x05, 0x02, 0x00, 0xe2, 0xfc, 0xf4},
	})

	ss := &session{}
	eng, err := ss.engine(paths["countdown.bin"], nil)
	require.NoError(t, err)
	require.NoError(t, eng.BeginStepping())

	var out bytes.Buffer
	assert.NoError(stepAll(&out, eng))
	assert.Equal(emulator.STATE_FINISHED, eng.State())
	assert.Contains(out.String(), "loop $-3")
	assert.Contains(out.String(), "Final registers (finished)")
}

func TestStepAllPastEnd(t *testing.T) {
	assert := assert.New(t)

	// The initial registers start past the program end, so the first
	// step finishes without executing anything.
	paths := writeFiles(t, map[string][]byte{
		"mov.bin":   {0xb8, 0x05, 0x00},
		"regs.star": []byte("ip = 8\n"),
	})

	ss := &session{regs: paths["regs.star"]}
	eng, err := ss.engine(paths["mov.bin"], nil)
	require.NoError(t, err)
	require.NoError(t, eng.BeginStepping())

	var out bytes.Buffer
	assert.NotPanics(func() {
		err = stepAll(&out, eng)
	})
	assert.NoError(err)
	assert.Equal(emulator.STATE_FINISHED, eng.State())
	assert.Empty(eng.Trace())
	assert.Equal(uint16(8), eng.Registers().IP)
	assert.Contains(out.String(), "Final registers (finished)")
}
