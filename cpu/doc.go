// Package cpu decodes 8086 machine code into instructions, and executes
// them against a register and memory state.
//
// Decoding is driven by the tables in the opcode package. Execution is
// dispatched by mnemonic; instructions without execution semantics decode
// normally but fail to execute with ErrMissingExecutionFunction.
package cpu
