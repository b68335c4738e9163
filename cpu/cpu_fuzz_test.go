package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzDecode(f *testing.F) {
	for _, seed := range []uint8{0x00, 0x01, 0x02, 0x91, 0x70, 0xc1, 0xff} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw uint8) {
		assert := assert.New(t)

		inst := Decode(raw)

		assert.Equal(raw, inst.Raw)
		assert.Equal(Op((raw>>INST_OP_SHIFT)&INST_OP_MASK), inst.Op)
		assert.Equal((raw&INST_IMMEDIATE) != 0, inst.Immediate)

		// Fixed priority resolution, regardless of extra selector bits.
		switch {
		case (raw & SEL_A) != 0:
			assert.Equal(OPERAND_A, inst.Operand)
		case (raw & SEL_B) != 0:
			assert.Equal(OPERAND_B, inst.Operand)
		case (raw & SEL_C) != 0:
			if inst.Op == OP_CLR {
				assert.Equal(OPERAND_BTN, inst.Operand)
			} else {
				assert.Equal(OPERAND_C, inst.Operand)
			}
		case inst.Op == OP_STA:
			assert.Equal(OPERAND_LED, inst.Operand)
		case inst.Op == OP_CLR || inst.Op == OP_INV:
			assert.Equal(OPERAND_AC, inst.Operand)
		case inst.Immediate:
			assert.Equal(OPERAND_IMM, inst.Operand)
		default:
			assert.Equal(OPERAND_AC, inst.Operand)
		}

		// Exactly one or two bytes, never anything else.
		assert.Contains([]int{1, 2}, inst.Size())
	})
}

func FuzzStep(f *testing.F) {
	f.Add([]byte{0x01, 0x91, 0x05, 0x28, 0x70})
	f.Add([]byte{0xd1, 0x00})
	f.Add([]byte{0xff, 0xff, 0xff})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		assert := assert.New(t)

		if len(data) > int(PC_MASK)+1 {
			data = data[:int(PC_MASK)+1]
		}

		cp, _, btn := newTestCpu(data)
		btn.Down = len(data)%2 == 0

		// Arbitrary bytecode never faults; it only ever runs, waits,
		// or halts.
		for range 4096 {
			assert.NoError(cp.Step())

			assert.LessOrEqual(cp.Pc, PC_MASK)
			assert.LessOrEqual(cp.Led, LED_MASK)
			if cp.Halted() {
				break
			}
		}
	})
}
