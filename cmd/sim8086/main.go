// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"
	stdio "io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezrec/sim8086/cpu"
	"github.com/ezrec/sim8086/emulator"
	"github.com/ezrec/sim8086/io"
	"github.com/ezrec/sim8086/opcode"
	"github.com/ezrec/sim8086/script"
)

var verbose bool

// openImage reads a program image. A name of "-" reads standard input.
func openImage(name string) (data []byte, err error) {
	var src io.Source
	if name == "-" {
		src = &io.Tape{Input: os.Stdin}
	} else {
		src = &io.DirSource{FS: os.DirFS(filepath.Dir(name)), Verbose: verbose}
		name = filepath.Base(name)
	}
	data, err = src.Open(name)
	return
}

// session holds the flags shared by run and step.
type session struct {
	codeSegment uint16
	pace        time.Duration
	regs        string
	until       string
	trace       bool
}

func (ss *session) flags(cmd *cobra.Command) {
	cmd.Flags().Uint16Var(&ss.codeSegment, "cs", 0, "Code segment to load the program at")
	cmd.Flags().StringVar(&ss.regs, "regs", "", "Starlark file setting the initial registers")
	cmd.Flags().BoolVar(&ss.trace, "trace", false, "Print each executed instruction")
}

// engine loads the named program into a new engine.
func (ss *session) engine(name string, watch *io.Watch) (eng *emulator.Engine, err error) {
	data, err := openImage(name)
	if err != nil {
		return
	}

	prog := emulator.NewProgram(name, data)
	if ss.regs != "" {
		var src []byte
		src, err = os.ReadFile(ss.regs)
		if err != nil {
			return
		}
		var regs cpu.Registers
		regs, err = script.LoadRegisters(ss.regs, src, cpu.Registers{})
		if err != nil {
			return
		}
		prog.Registers = &regs
	}

	config := emulator.Config{
		CodeSegment: ss.codeSegment,
		Pace:        ss.pace,
	}
	if watch != nil {
		config.Observer = watch
	}
	if ss.until != "" {
		var cond *script.Condition
		cond, err = script.NewCondition(ss.until)
		if err != nil {
			return
		}
		config.Until = cond.Done
	}

	eng = emulator.NewEngine(config)
	eng.Verbose = verbose
	err = eng.LoadProgram(prog)
	return
}

// memoryWatch returns a memory change recorder when verbose, or nil.
func memoryWatch() (watch *io.Watch) {
	if verbose {
		watch = &io.Watch{}
	}
	return
}

// report prints the final state of an engine.
func report(w stdio.Writer, eng *emulator.Engine, trace bool) {
	if trace {
		for _, ex := range eng.Trace() {
			fmt.Fprintln(w, ex)
		}
	}
	regs := eng.Registers()
	fmt.Fprintf(w, "\nFinal registers (%v):\n%v", eng.State(), regs.String())
	fmt.Fprintf(w, "Cycles: %d\n", eng.Cycles())
}

func main() {
	log.SetFlags(0)

	rootCmd := &cobra.Command{
		Use:           "sim8086",
		Short:         "8086 instruction decoder, disassembler and simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	disasmCmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "Disassemble a binary into NASM source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := openImage(args[0])
			if err != nil {
				return err
			}
			text, err := emulator.Disassemble(args[0], data)
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}

	run := &session{}
	runCmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Execute a binary until it finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watch := memoryWatch()
			eng, err := run.engine(args[0], watch)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			err = eng.Start(ctx)
			if err == nil {
				err = eng.Wait()
			}

			report(os.Stdout, eng, run.trace)
			if watch != nil {
				for _, change := range watch.Drain() {
					log.Printf("memory: %05x +%d", change.Offset, change.Length)
				}
			}
			return err
		},
	}
	run.flags(runCmd)
	runCmd.Flags().DurationVar(&run.pace, "pace", 0, "Delay per cycle")
	runCmd.Flags().StringVar(&run.until, "until", "", "Stop when this expression over the registers is true")

	step := &session{}
	stepCmd := &cobra.Command{
		Use:   "step FILE",
		Short: "Execute a binary one instruction at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := step.engine(args[0], nil)
			if err != nil {
				return err
			}
			return stepper(eng, step.trace)
		},
	}
	step.flags(stepCmd)

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "List the instruction definitions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for defn := range opcode.Definitions() {
				fmt.Println(defn)
			}
		},
	}

	rootCmd.AddCommand(disasmCmd, runCmd, stepCmd, tableCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("%v: %v", rootCmd.Name(), err)
	}
}
