// Package cpu implements the µCORE 8-bit processor and its assembler.
//
// The processor has an accumulator (AC), three general registers
// (A, B, C), an 11-bit program counter, and a strictly sequential
// pipeline: fetch, decode, an optional immediate retrieve, execute, and
// the trailing print/wait/halt phases. Instructions are one byte, or
// two when the immediate bit is set; the low four selector bits pick
// the operand by fixed priority. The processor drives three memory-
// mapped peripherals: a 64-cell character display, a 6-bit LED
// register, and an input button.
//
// The assembler provides a small assembly language for the µCORE
// instruction set, supporting macros, labels, equates, and compile-time
// expression evaluation.
package cpu
