package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/sim8086/emulator"
)

const stepHelp = `Commands:
  s, <enter>  step one instruction
  r           show registers
  c           continue to the end
  q           quit
`

// printLast prints the most recent trace entry, if there is one. A step
// that finishes the program without executing records nothing.
func printLast(w io.Writer, eng *emulator.Engine) {
	tr := eng.Trace()
	if len(tr) > 0 {
		fmt.Fprintln(w, tr[len(tr)-1])
	}
}

// stepAll steps a halted engine to its end, printing every instruction.
func stepAll(w io.Writer, eng *emulator.Engine) (err error) {
	for eng.State() == emulator.STATE_HALTED {
		err = eng.Step()
		if err != nil {
			break
		}
		printLast(w, eng)
	}
	report(w, eng, false)
	return
}

// stepper single steps an engine. On a terminal each step waits for a
// command; otherwise every instruction is printed as it executes.
func stepper(eng *emulator.Engine, trace bool) (err error) {
	err = eng.BeginStepping()
	if err != nil {
		return
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		err = stepAll(os.Stdout, eng)
		return
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, old)

	tty := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "step> ")

	last := func() {
		printLast(tty, eng)
	}

	for eng.State() == emulator.STATE_HALTED {
		regs := eng.Registers()
		tty.SetPrompt(fmt.Sprintf("%04x:%04x> ", regs.CS, regs.IP))

		var line string
		line, err = tty.ReadLine()
		if errors.Is(err, io.EOF) {
			err = nil
			eng.Stop()
			break
		}
		if err != nil {
			return
		}

		switch strings.TrimSpace(line) {
		case "", "s":
			err = eng.Step()
			last()
		case "r":
			fmt.Fprint(tty, regs.String())
		case "c":
			for err == nil && eng.State() == emulator.STATE_HALTED {
				err = eng.Step()
				if trace || err != nil {
					last()
				}
			}
		case "q":
			eng.Stop()
		default:
			fmt.Fprint(tty, stepHelp)
		}
		if err != nil {
			break
		}
	}

	report(tty, eng, false)
	return
}
