package cpu

import (
	"fmt"
)

// Op is a 3-bit operation selector.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_CLR  = Op(0) // clr
	OP_ADD  = Op(1) // add
	OP_STA  = Op(2) // sta
	OP_INV  = Op(3) // inv
	OP_PRNT = Op(4) // prnt
	OP_JMPZ = Op(5) // jmpz
	OP_WAIT = Op(6) // wait
	OP_HLT  = Op(7) // hlt
)

// Operand is a resolved operand role.
type Operand int

//go:generate go tool stringer -linecomment -type=Operand
const (
	OPERAND_A   = Operand(0) // a
	OPERAND_B   = Operand(1) // b
	OPERAND_C   = Operand(2) // c
	OPERAND_AC  = Operand(3) // ac
	OPERAND_BTN = Operand(4) // btn
	OPERAND_LED = Operand(5) // led
	OPERAND_IMM = Operand(6) // imm
)

// Instruction byte layout.
const (
	INST_IMMEDIATE = uint8(0x80) // Bit 7: an immediate byte follows.
	INST_OP_SHIFT  = 4           // Bits 6-4: operation.
	INST_OP_MASK   = uint8(0x7)
	INST_SEL_MASK  = uint8(0xf) // Bits 3-0: one-hot operand selector.

	SEL_A = uint8(0b1000) // Bit 3: register A.
	SEL_B = uint8(0b0100) // Bit 2: register B.
	SEL_C = uint8(0b0010) // Bit 1: register C, or the button for clr.
	SEL_X = uint8(0b0001) // Bit 0: AC, the LED for sta, or a constant.
)

// Inst is a decoded instruction.
type Inst struct {
	Raw       uint8   // Raw instruction byte.
	Op        Op      // Operation.
	Immediate bool    // An immediate operand byte follows.
	Operand   Operand // Resolved operand role.
}

// Decode decodes a raw instruction byte.
//
// The operand selector is nominally one-hot, but nothing enforces that.
// Extra selector bits resolve by fixed priority: A, then B, then C (the
// button for clr), then the bit-0 role (AC, the LED for sta, or a
// constant for the opcodes that take one). The constant role requires
// the immediate bit; without it the fallback is AC.
func Decode(raw uint8) (inst Inst) {
	inst.Raw = raw
	inst.Op = Op((raw >> INST_OP_SHIFT) & INST_OP_MASK)
	inst.Immediate = (raw & INST_IMMEDIATE) != 0

	sel := raw & INST_SEL_MASK
	switch {
	case (sel & SEL_A) != 0:
		inst.Operand = OPERAND_A
	case (sel & SEL_B) != 0:
		inst.Operand = OPERAND_B
	case (sel & SEL_C) != 0:
		if inst.Op == OP_CLR {
			inst.Operand = OPERAND_BTN
		} else {
			inst.Operand = OPERAND_C
		}
	default:
		switch inst.Op {
		case OP_STA:
			inst.Operand = OPERAND_LED
		case OP_CLR, OP_INV:
			inst.Operand = OPERAND_AC
		default:
			if inst.Immediate {
				inst.Operand = OPERAND_IMM
			} else {
				inst.Operand = OPERAND_AC
			}
		}
	}

	return
}

// selBit maps an operand role to its selector bit.
var selBit = map[Operand]uint8{
	OPERAND_A:   SEL_A,
	OPERAND_B:   SEL_B,
	OPERAND_C:   SEL_C,
	OPERAND_BTN: SEL_C,
	OPERAND_AC:  SEL_X,
	OPERAND_LED: SEL_X,
	OPERAND_IMM: SEL_X,
}

// MakeInst creates a one-byte instruction for a register or peripheral
// operand.
func MakeInst(op Op, operand Operand) uint8 {
	return (uint8(op) << INST_OP_SHIFT) | selBit[operand]
}

// MakeInstImm creates the two bytes of an immediate-operand instruction.
func MakeInstImm(op Op, value uint8) (raw, imm uint8) {
	raw = INST_IMMEDIATE | (uint8(op) << INST_OP_SHIFT) | SEL_X
	imm = value
	return
}

// Size returns the instruction length in bytes.
func (inst Inst) Size() int {
	if inst.Immediate {
		return 2
	}
	return 1
}

// String returns the assembly language representation of this instruction.
func (inst Inst) String() (out string) {
	if inst.Op == OP_HLT {
		return inst.Op.String()
	}

	operand := inst.Operand.String()
	if inst.Operand == OPERAND_IMM {
		operand = "#"
	}

	out = fmt.Sprintf("%v.%v", inst.Op.String(), operand)

	return
}
