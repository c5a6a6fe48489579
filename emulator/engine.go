// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ezrec/sim8086/cpu"
	"github.com/ezrec/sim8086/opcode"
)

const (
	ODD_TRANSFER_COST = 4       // Extra cycles for a word transfer at an odd address.
	SEGMENT_SIZE      = 0x10000 // Largest program that fits a code segment.
)

// Observer is notified of memory changes.
type Observer interface {
	MemoryChanged(offset uint32, length int)
}

// Until is a run stop condition, checked after every instruction.
type Until func(regs cpu.Registers) (stop bool, err error)

// Config is the engine configuration.
type Config struct {
	CodeSegment uint16        // Segment the program is loaded at.
	Pace        time.Duration // Delay per cycle while running.
	Observer    Observer      // If set, notified of memory changes.
	Until       Until         // If set, stops a run when true.
}

// Engine sequences decode and execution over a program.
type Engine struct {
	Verbose bool // If set, enables verbose logging.

	config  Config
	program *Program

	mu     sync.Mutex // Held while executing, and for snapshots.
	cpu    *cpu.State
	trace  cpu.Trace
	cycles int

	state atomic.Int32
	stop  atomic.Bool

	execMu   sync.Mutex
	execDone chan struct{}
	execErr  error
}

// NewEngine creates an engine with no program loaded.
func NewEngine(config Config) (eng *Engine) {
	eng = &Engine{
		config: config,
		cpu:    cpu.NewState(),
	}

	if config.Observer != nil {
		eng.cpu.OnStore = config.Observer.MemoryChanged
	}

	eng.reset()

	return
}

// State returns the current execution state.
func (eng *Engine) State() State {
	return State(eng.state.Load())
}

func (eng *Engine) setState(state State) {
	old := State(eng.state.Swap(int32(state)))
	if eng.Verbose && old != state {
		log.Printf("emulator: %v -> %v", old, state)
	}
}

// Program returns the loaded program.
func (eng *Engine) Program() *Program {
	return eng.program
}

// LoadProgram validates and loads a program, then resets the engine.
func (eng *Engine) LoadProgram(prog *Program) (err error) {
	if !eng.State().Idle() {
		err = ErrInvalidExecutionState
		return
	}
	if prog == nil || len(prog.Content) == 0 {
		err = ErrProgramEmpty
		return
	}
	base := cpu.Absolute(eng.config.CodeSegment, 0)
	if len(prog.Content) > SEGMENT_SIZE || uint64(base)+uint64(len(prog.Content)) > cpu.MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	if eng.Verbose {
		log.Printf("emulator: load %v, %d bytes at %04x:0000", prog.Name, len(prog.Content), eng.config.CodeSegment)
	}

	eng.program = prog
	eng.Reset()

	return
}

// Reset re-applies the loaded program, or clears the state if there is
// none. The engine is left stopped.
func (eng *Engine) Reset() {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	eng.reset()
	eng.setState(STATE_STOPPED)
}

func (eng *Engine) reset() {
	if eng.Verbose {
		log.Printf("emulator: reset")
	}

	st := eng.cpu
	st.Memory.Clear()
	eng.trace.Reset()
	eng.cycles = 0

	cs := eng.config.CodeSegment
	st.Registers = cpu.Registers{CS: cs, DS: cs, SS: cs, ES: cs}

	prog := eng.program
	if prog == nil {
		return
	}

	if prog.Registers != nil {
		st.Registers = *prog.Registers
		st.Registers.CS = cs
	}

	base := cpu.Absolute(cs, 0)
	err := st.Memory.Load(base, prog.Content)
	if err != nil {
		// LoadProgram checked the bounds.
		panic(err)
	}
	if eng.config.Observer != nil {
		eng.config.Observer.MemoryChanged(base, len(prog.Content))
	}
}

// restart resets a finished or failed engine.
func (eng *Engine) restart() {
	switch eng.State() {
	case STATE_FINISHED, STATE_FAILED:
		eng.mu.Lock()
		eng.reset()
		eng.mu.Unlock()
	}
}

// BeginStepping enters the halted state, ready to Step.
func (eng *Engine) BeginStepping() (err error) {
	if !eng.State().Idle() {
		err = ErrInvalidExecutionState
		return
	}
	if eng.program == nil {
		err = ErrProgramEmpty
		return
	}

	eng.restart()
	eng.setState(STATE_HALTED)
	return
}

// Step executes a single instruction from the halted state.
func (eng *Engine) Step() (err error) {
	if eng.State() != STATE_HALTED {
		err = ErrInvalidExecutionState
		return
	}

	finished, err := eng.step()
	switch {
	case err != nil:
		eng.setState(STATE_FAILED)
	case finished:
		eng.setState(STATE_FINISHED)
	}
	return
}

// Run executes until the program finishes, fails, or is stopped by
// Stop, ctx, or the configured stop condition.
func (eng *Engine) Run(ctx context.Context) (err error) {
	if !eng.State().Idle() {
		err = ErrInvalidExecutionState
		return
	}
	if eng.program == nil {
		err = ErrProgramEmpty
		return
	}

	eng.restart()
	eng.stop.Store(false)
	eng.setState(STATE_RUNNING)

	err = eng.run(ctx)
	return
}

func (eng *Engine) run(ctx context.Context) (err error) {
	for {
		if eng.stop.Load() || ctx.Err() != nil {
			eng.setState(STATE_STOPPED)
			return
		}

		var finished bool
		var cost int
		finished, cost, err = eng.stepCost()
		if err != nil {
			eng.setState(STATE_FAILED)
			return
		}
		if finished {
			eng.setState(STATE_FINISHED)
			return
		}

		if eng.config.Until != nil {
			var stop bool
			stop, err = eng.config.Until(eng.Registers())
			if err != nil {
				eng.setState(STATE_FAILED)
				return
			}
			if stop {
				eng.setState(STATE_STOPPED)
				return
			}
		}

		if eng.config.Pace > 0 && cost > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(eng.config.Pace * time.Duration(cost)):
			}
		}
	}
}

// Start runs the engine on a worker goroutine.
func (eng *Engine) Start(ctx context.Context) (err error) {
	eng.execMu.Lock()
	defer eng.execMu.Unlock()

	if eng.execDone != nil {
		select {
		case <-eng.execDone:
		default:
			err = ErrInvalidExecutionState
			return
		}
	}

	if !eng.State().Idle() {
		err = ErrInvalidExecutionState
		return
	}
	if eng.program == nil {
		err = ErrProgramEmpty
		return
	}

	// Enter the running state before returning, so that Stop always
	// sees the run.
	eng.restart()
	eng.stop.Store(false)
	eng.setState(STATE_RUNNING)

	done := make(chan struct{})
	eng.execDone = done
	eng.execErr = nil

	go func() {
		err := eng.run(ctx)
		eng.execMu.Lock()
		eng.execErr = err
		close(done)
		eng.execMu.Unlock()
	}()

	return
}

// Stop requests a running engine to stop after the current instruction,
// and waits for it. A halted engine is moved to stopped.
func (eng *Engine) Stop() {
	eng.stop.Store(true)

	eng.execMu.Lock()
	done := eng.execDone
	eng.execMu.Unlock()

	if done != nil {
		<-done
	}

	if eng.State() == STATE_HALTED {
		eng.setState(STATE_STOPPED)
	}
}

// Wait waits for a started run to end, and returns its error.
func (eng *Engine) Wait() (err error) {
	eng.execMu.Lock()
	done := eng.execDone
	eng.execMu.Unlock()

	if done == nil {
		return
	}
	<-done

	eng.execMu.Lock()
	err = eng.execErr
	eng.execMu.Unlock()
	return
}

// atEnd is true when the instruction pointer has left the program.
func (eng *Engine) atEnd() bool {
	regs := &eng.cpu.Registers
	return eng.program != nil &&
		regs.CS == eng.config.CodeSegment &&
		int(regs.IP) >= len(eng.program.Content)
}

// window returns the bytes at CS:IP, clipped to the program end.
func (eng *Engine) window() []byte {
	regs := &eng.cpu.Registers
	window := eng.cpu.Memory.Window(cpu.Absolute(regs.CS, regs.IP))
	if eng.program != nil && regs.CS == eng.config.CodeSegment {
		end := len(eng.program.Content) - int(regs.IP)
		if end >= 0 && end < len(window) {
			window = window[:end]
		}
	}
	return window
}

func (eng *Engine) step() (finished bool, err error) {
	finished, _, err = eng.stepCost()
	return
}

// stepCost decodes and executes one instruction, and returns its cycle
// cost.
func (eng *Engine) stepCost() (finished bool, cost int, err error) {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	regs := &eng.cpu.Registers
	cs, ip := regs.CS, regs.IP

	if eng.atEnd() {
		finished = true
		return
	}

	var inst cpu.Instruction
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(ErrExecutionFailed, fmt.Errorf("%v", r))
		}
		if err != nil {
			err = &ErrRuntime{CS: cs, Ip: ip, Instruction: inst, Err: err}
			if eng.Verbose {
				log.Printf("emulator: %v", err)
			}
		}
	}()

	inst, err = cpu.Decode(eng.window(), 0)
	if err != nil {
		return
	}

	if eng.Verbose {
		log.Printf("emulator: %04x:%04x %v", cs, ip, inst)
	}

	cost = eng.cycleCost(inst)

	delta, err := cpu.Execute(eng.cpu, inst, &eng.trace)
	if err != nil {
		return
	}

	regs.IP = ip + uint16(inst.Length) + uint16(delta)
	eng.cycles += cost

	finished = inst.Mnemonic == opcode.HLT || eng.atEnd()
	return
}

// CycleCost returns the cost of an instruction at the current state.
func (eng *Engine) CycleCost(inst cpu.Instruction) int {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	return eng.cycleCost(inst)
}

func (eng *Engine) cycleCost(inst cpu.Instruction) (cost int) {
	cost = inst.Cycles

	op, ok := inst.MemoryOperand()
	if !ok || op.DataType.Width() < opcode.WIDTH_WORD {
		return
	}
	addr := eng.cpu.Resolve(op.Memory)
	if addr != cpu.INVALID_ADDRESS && addr&1 != 0 {
		cost += ODD_TRANSFER_COST * inst.Transfers
	}
	return
}

// Cycles returns the total cycles executed since the last reset.
func (eng *Engine) Cycles() int {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	return eng.cycles
}

// Registers returns a copy of the registers.
func (eng *Engine) Registers() cpu.Registers {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	return eng.cpu.Registers
}

// Memory returns a copy of a block of memory.
func (eng *Engine) Memory(offset uint32, n int) []byte {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	return eng.cpu.Memory.Slice(offset, n)
}

// Trace returns a copy of the execution trace since the last reset.
func (eng *Engine) Trace() []cpu.Executed {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	return append([]cpu.Executed(nil), eng.trace.Entries...)
}
