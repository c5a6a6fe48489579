package io

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sim8086/emulator"
)

var _ emulator.Observer = (*Watch)(nil)

func TestWatch_Await(t *testing.T) {
	assert := assert.New(t)

	wc := &Watch{}
	_, ok := wc.Await()
	assert.False(ok)

	wc.MemoryChanged(0x100, 2)
	wc.MemoryChanged(0x200, 1)

	change, ok := wc.Await()
	assert.True(ok)
	assert.Equal(Change{Offset: 0x100, Length: 2}, change)

	change, ok = wc.Await()
	assert.True(ok)
	assert.Equal(Change{Offset: 0x200, Length: 1}, change)

	_, ok = wc.Await()
	assert.False(ok)
}

func TestWatch_Touches(t *testing.T) {
	assert := assert.New(t)

	wc := &Watch{}
	wc.MemoryChanged(0x100, 2)

	table := [](struct {
		offset  uint32
		length  int
		touches bool
	}){
		{0x0ff, 1, false},
		{0x0ff, 2, true},
		{0x101, 1, true},
		{0x102, 4, false},
		{0x100, 0, false},
	}

	for _, entry := range table {
		assert.Equal(entry.touches, wc.Touches(entry.offset, entry.length), "%#x+%d", entry.offset, entry.length)
	}

	wc.Reset()
	assert.False(wc.Touches(0x100, 2))
	assert.Nil(wc.Drain())
}

func TestWatch_Concurrent(t *testing.T) {
	assert := assert.New(t)

	wc := &Watch{}
	var wg sync.WaitGroup
	for n := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range 16 {
				wc.MemoryChanged(uint32(n*16+m), 1)
			}
		}()
	}
	wg.Wait()

	assert.Len(wc.Drain(), 8*16)
}

func TestWatch_Engine(t *testing.T) {
	assert := assert.New(t)

	wc := &Watch{}
	eng := emulator.NewEngine(emulator.Config{CodeSegment: 0x10, Observer: wc})

	// mov byte [5], 7
	prog := emulator.NewProgram("store", []byte{0xc6, 0x06, 0x05, 0x00, 0x07})
	assert.NoError(eng.LoadProgram(prog))
	assert.NoError(eng.Run(context.Background()))

	assert.Equal([]Change{
		{Offset: 0x100, Length: 5},
		{Offset: 0x105, Length: 1},
	}, wc.Drain())
}
