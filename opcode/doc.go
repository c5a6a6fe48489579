// Package opcode holds the static lookup tables of the 8086 instruction set.
//
// The tables are built once at package initialization and are read-only
// afterwards:
//
//   - the opcode table, mapping each opcode byte to its candidate
//     instruction definitions (field layout and operand kinds),
//   - the register-field table, mapping a 3-bit register code and operand
//     width to a register,
//   - the effective address calculation (EAC) table, mapping the mod and r/m
//     fields to one of 24 addressing modes,
//   - the cycle cost table, mapping a mnemonic and its operand kinds to an
//     approximate clock count.
package opcode
