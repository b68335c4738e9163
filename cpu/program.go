package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location
// and emitted bytes.
type Opcode struct {
	LineNo    int
	Addr      int
	Words     []string
	Bytes     []uint8
	LinkLabel string
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= uint16(op.Addr) && addr < uint16(op.Addr)+uint16(len(op.Bytes)) {
			index := int(addr - uint16(op.Addr))
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  index,
			}
			break
		}
	}

	return
}

// Binary returns the flat program-store image.
func (prog *Program) Binary() (bins []byte) {
	for _, b := range prog.Bytes() {
		bins = append(bins, b)
	}

	return
}

// Bytes iterates the emitted bytes with their store addresses.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(addr uint16, b uint8) bool) {
		for _, op := range prog.Opcodes {
			addr := uint16(op.Addr)
			for n, b := range op.Bytes {
				if !yield(addr+uint16(n), b) {
					return
				}
			}
		}
	}
}
