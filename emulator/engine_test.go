package emulator

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sim8086/cpu"
)

// countdown:
//
//	mov cx, 3
//	add ax, 2
//	loop $-3
//	hlt
var countdown = []byte{0xb9, 0x03, 0x00, 0x05, 0x02, 0x00, 0xe2, 0xfc, 0xf4}

type changes struct {
	events [][2]int
}

func (ch *changes) MemoryChanged(offset uint32, length int) {
	ch.events = append(ch.events, [2]int{int(offset), length})
}

func TestNewProgram(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		data    []byte
		content []byte
	}){
		{[]byte{0xb8, 0x05, 0x00, 0xf4, 0x00, 0xff, 0xff}, []byte{0xb8, 0x05, 0x00, 0xf4}},
		{[]byte{0xf4, 0x00, 0xf4, 0x00, 0x12}, []byte{0xf4, 0x00, 0xf4}},
		{[]byte{0xb8, 0x05, 0x00}, []byte{0xb8, 0x05, 0x00}},
		{[]byte{0xb8, 0xf4}, []byte{0xb8, 0xf4}},
	}

	for _, entry := range table {
		prog := NewProgram("test", entry.data)
		assert.Equal(entry.content, prog.Content)
	}

	prog, err := ReadProgram("reader", strings.NewReader("\x90\xf4\x00"))
	assert.NoError(err)
	assert.Equal("reader", prog.Name)
	assert.Equal([]byte{0x90, 0xf4}, prog.Content)
}

func TestVerbose(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	eng := NewEngine(Config{})
	assert.False(eng.Verbose)
	assert.NoError(eng.LoadProgram(NewProgram("quiet", countdown)))
	assert.Empty(buf.String())

	eng.Verbose = true
	assert.NoError(eng.LoadProgram(NewProgram("countdown", countdown)))
	assert.NoError(eng.Run(context.Background()))

	assert.Contains(buf.String(), "emulator: load countdown, 9 bytes at 0000:0000")
	assert.Contains(buf.String(), "emulator: stopped -> running")
	assert.Contains(buf.String(), "emulator: running -> finished")
}

func TestStateString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("halted", STATE_HALTED.String())
	assert.Equal("failed", STATE_FAILED.String())
	assert.Equal("State(9)", State(9).String())
}

func TestLoadProgram(t *testing.T) {
	assert := assert.New(t)

	eng := NewEngine(Config{})
	assert.ErrorIs(eng.LoadProgram(NewProgram("empty", nil)), ErrProgramEmpty)
	assert.ErrorIs(eng.LoadProgram(nil), ErrProgramEmpty)
	assert.ErrorIs(eng.LoadProgram(NewProgram("big", make([]byte, SEGMENT_SIZE+1))), ErrProgramTooLarge)

	high := NewEngine(Config{CodeSegment: 0xffff})
	assert.ErrorIs(high.LoadProgram(NewProgram("high", make([]byte, 32))), ErrProgramTooLarge)

	observer := &changes{}
	eng = NewEngine(Config{CodeSegment: 0x100, Observer: observer})
	assert.NoError(eng.LoadProgram(NewProgram("countdown", countdown)))
	assert.Equal(STATE_STOPPED, eng.State())
	assert.Equal(countdown, eng.Memory(0x1000, len(countdown)))
	assert.Equal([][2]int{{0x1000, len(countdown)}}, observer.events)

	regs := eng.Registers()
	assert.Equal(uint16(0x100), regs.CS)
	assert.Equal(uint16(0x100), regs.DS)
	assert.Equal(uint16(0), regs.IP)
}

func TestStep(t *testing.T) {
	assert := assert.New(t)

	eng := NewEngine(Config{})
	assert.ErrorIs(eng.BeginStepping(), ErrProgramEmpty)
	assert.NoError(eng.LoadProgram(NewProgram("mov", []byte{0xb8, 0x05, 0x00})))

	assert.ErrorIs(eng.Step(), ErrInvalidExecutionState)

	assert.NoError(eng.BeginStepping())
	assert.Equal(STATE_HALTED, eng.State())
	assert.ErrorIs(eng.LoadProgram(NewProgram("mov", []byte{0x90})), ErrInvalidExecutionState)

	assert.NoError(eng.Step())
	regs := eng.Registers()
	assert.Equal(uint16(5), regs.AX)
	assert.Equal(uint16(3), regs.IP)
	assert.Equal(STATE_FINISHED, eng.State())
	assert.ErrorIs(eng.Step(), ErrInvalidExecutionState)

	// Starting again re-applies the program.
	assert.NoError(eng.BeginStepping())
	regs = eng.Registers()
	assert.Equal(uint16(0), regs.AX)
	assert.Equal(uint16(0), regs.IP)

	// Stop leaves the halted state.
	eng.Stop()
	assert.Equal(STATE_STOPPED, eng.State())
}

func TestStepCountdown(t *testing.T) {
	assert := assert.New(t)

	eng := NewEngine(Config{})
	assert.NoError(eng.LoadProgram(NewProgram("countdown", countdown)))
	assert.NoError(eng.BeginStepping())

	var ips []uint16
	for eng.State() == STATE_HALTED {
		assert.NoError(eng.Step())
		ips = append(ips, eng.Registers().IP)
	}
	assert.Equal([]uint16{3, 6, 3, 6, 3, 6, 8, 9}, ips)
	assert.Equal(STATE_FINISHED, eng.State())
	assert.Len(eng.Trace(), 8)
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	eng := NewEngine(Config{})
	assert.NoError(eng.LoadProgram(NewProgram("countdown", countdown)))

	assert.NoError(eng.Run(context.Background()))
	assert.Equal(STATE_FINISHED, eng.State())

	regs := eng.Registers()
	assert.Equal(uint16(6), regs.AX)
	assert.Equal(uint16(0), regs.CX)
	assert.Equal(uint16(9), regs.IP)
	assert.Greater(eng.Cycles(), 0)

	// Running again starts over.
	assert.NoError(eng.Run(context.Background()))
	assert.Equal(uint16(6), eng.Registers().AX)
}

func TestRunUntil(t *testing.T) {
	assert := assert.New(t)

	until := func(regs cpu.Registers) (bool, error) {
		return regs.CX == 1, nil
	}

	eng := NewEngine(Config{Until: until})
	assert.NoError(eng.LoadProgram(NewProgram("countdown", countdown)))

	assert.NoError(eng.Run(context.Background()))
	assert.Equal(STATE_STOPPED, eng.State())
	regs := eng.Registers()
	assert.Equal(uint16(1), regs.CX)
	assert.Equal(uint16(4), regs.AX)

	// A stopped engine resumes where it stopped.
	assert.NoError(eng.Run(context.Background()))
	assert.Equal(STATE_STOPPED, eng.State())
	assert.Equal(uint16(1), eng.Registers().CX)

	failing := errors.New("condition failed")
	eng = NewEngine(Config{Until: func(cpu.Registers) (bool, error) { return false, failing }})
	assert.NoError(eng.LoadProgram(NewProgram("countdown", countdown)))
	assert.ErrorIs(eng.Run(context.Background()), failing)
	assert.Equal(STATE_FAILED, eng.State())
}

func TestRunFailed(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		data []byte
		err  error
		ip   uint16
	}){
		{"mul", []byte{0x90, 0xf6, 0xe0}, cpu.ErrMissingExecutionFunction, 1},
		{"invalid", []byte{0x0f}, cpu.ErrOpcodeNotImplemented, 0},
		{"short", []byte{0x90, 0xb8, 0x05}, cpu.ErrStreamTooShort, 1},
	}

	for _, entry := range table {
		eng := NewEngine(Config{})
		assert.NoError(eng.LoadProgram(NewProgram(entry.name, entry.data)))

		err := eng.Run(context.Background())
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Equal(STATE_FAILED, eng.State(), entry.name)

		var runtime *ErrRuntime
		if assert.True(errors.As(err, &runtime), entry.name) {
			assert.Equal(entry.ip, runtime.Ip, entry.name)
		}
	}
}

func TestStartStop(t *testing.T) {
	assert := assert.New(t)

	// jmp $+0
	eng := NewEngine(Config{Pace: time.Microsecond})
	assert.NoError(eng.LoadProgram(NewProgram("spin", []byte{0xeb, 0xff})))

	assert.NoError(eng.Start(context.Background()))
	assert.ErrorIs(eng.Start(context.Background()), ErrInvalidExecutionState)
	assert.ErrorIs(eng.Run(context.Background()), ErrInvalidExecutionState)

	eng.Stop()
	assert.NoError(eng.Wait())
	assert.Equal(STATE_STOPPED, eng.State())
	assert.Equal(uint16(0), eng.Registers().IP)

	ctx, cancel := context.WithCancel(context.Background())
	assert.NoError(eng.Start(ctx))
	cancel()
	assert.NoError(eng.Wait())
	assert.Equal(STATE_STOPPED, eng.State())

	// A started run reports its error through Wait.
	eng = NewEngine(Config{})
	assert.NoError(eng.LoadProgram(NewProgram("invalid", []byte{0x0f})))
	assert.NoError(eng.Start(context.Background()))
	assert.ErrorIs(eng.Wait(), cpu.ErrOpcodeNotImplemented)
	assert.Equal(STATE_FAILED, eng.State())
}

func TestObserver(t *testing.T) {
	assert := assert.New(t)

	observer := &changes{}
	eng := NewEngine(Config{Observer: observer})

	// mov [bx], ax
	prog := NewProgram("store", []byte{0x89, 0x07})
	prog.Registers = &cpu.Registers{AX: 0x1234, BX: 0x0100, CS: 0x0040}
	assert.NoError(eng.LoadProgram(prog))

	// The code segment is not taken from the initial registers.
	assert.Equal(uint16(0), eng.Registers().CS)
	assert.Equal(uint16(0x1234), eng.Registers().AX)

	assert.NoError(eng.Run(context.Background()))
	assert.Equal([][2]int{{0, 2}, {0x100, 2}}, observer.events)
	assert.Equal([]byte{0x34, 0x12}, eng.Memory(0x100, 2))

	trace := eng.Trace()
	assert.Len(trace, 1)
	assert.Len(trace[0].Changes, 1)
	assert.Equal(cpu.CHANGE_MEMORY, trace[0].Changes[0].Kind)
}

func TestCycleCost(t *testing.T) {
	assert := assert.New(t)

	eng := NewEngine(Config{})
	inst, err := cpu.Decode([]byte{0x89, 0x07}, 0)
	assert.NoError(err)

	// mov [bx], ax: base 9, plus 5 for [bx].
	assert.Equal(14, inst.Cycles)
	assert.Equal(14, eng.CycleCost(inst))

	prog := NewProgram("odd", []byte{0x89, 0x07})
	prog.Registers = &cpu.Registers{BX: 1}
	assert.NoError(eng.LoadProgram(prog))
	assert.Equal(14+ODD_TRANSFER_COST, eng.CycleCost(inst))

	// Byte transfers have no odd address penalty.
	inst, err = cpu.Decode([]byte{0x88, 0x07}, 0)
	assert.NoError(err)
	assert.Equal(inst.Cycles, eng.CycleCost(inst))
}
