package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ucore/io"
)

// Store is the program-memory interface.
type Store io.Store

// Display is the character sink interface.
type Display io.Display

// Button is the input button interface.
type Button io.Button

// Phase is a pipeline phase. The pipeline is strictly sequential: one
// instruction occupies it at a time, one phase advances per tick.
type Phase int

//go:generate go tool stringer -linecomment -type=Phase
const (
	PHASE_FETCH    = Phase(0) // fetch
	PHASE_DECODE   = Phase(1) // decode
	PHASE_RETRIEVE = Phase(2) // retrieve
	PHASE_EXECUTE  = Phase(3) // execute
	PHASE_PRINT    = Phase(4) // print
	PHASE_WAIT     = Phase(5) // wait
	PHASE_HALT     = Phase(6) // halt
)

const (
	PC_MASK    = uint16(0x7ff) // 11-bit program counter.
	LED_MASK   = uint8(0x3f)   // 6-bit LED level.
	INDEX_MASK = uint8(0x3f)   // 6-bit display cell index, taken from AC.

	// TICKS_PER_MS is the platform tick rate for the wait instruction:
	// this many pipeline ticks make up one millisecond of wait.
	TICKS_PER_MS = 8
)

var _cpu_defines = map[string]string{
	"TICKS_PER_MS": fmt.Sprintf("%v", TICKS_PER_MS),
	"PC_MASK":      fmt.Sprintf("%#v", PC_MASK),
	"LED_MASK":     fmt.Sprintf("%#v", LED_MASK),
}

// Predefined system equates for the assembler.
var sysEquate = map[string]string{
	"LINENO":       "0",
	"TICKS_PER_MS": fmt.Sprintf("%#v", TICKS_PER_MS),
	"STORE_SIZE":   fmt.Sprintf("%#v", io.STORE_SIZE),
	"DISPLAY_SIZE": fmt.Sprintf("%#v", io.DISPLAY_SIZE),
	"DISPLAY_COLS": fmt.Sprintf("%#v", io.DISPLAY_COLS),
}

// Cpu is the simulation context for the µCORE processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Store   Store   // Program store (fetch source).
	Display Display // Character sink for prnt.
	Button  Button  // Input button sampled by clr btn.

	Ac uint8 // Accumulator.
	A  uint8 // Register A.
	B  uint8 // Register B.
	C  uint8 // Register C.

	Pc  uint16 // Program counter, 11 bits.
	Led uint8  // LED level, 6 bits, driven by sta led.

	Phase Phase // Current pipeline phase.

	Ticks int // Pipeline ticks counter.

	inst      Inst  // Latched instruction.
	operand   uint8 // Resolved operand value.
	waitMs    uint8 // Remaining wait milliseconds.
	waitTicks int   // Ticks into the current wait millisecond.
}

// NewCpu creates a new CPU attached to a program store.
func NewCpu(store Store) (cpu *Cpu) {
	cpu = &Cpu{
		Store: store,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"phase",
		"pc",
		"ac", "a", "b", "c",
		"led",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "phase":
			strval = cpu.Phase.String()
		case "pc":
			strval = fmt.Sprintf("%03X", cpu.Pc&PC_MASK)
		case "ac":
			strval = fmt.Sprintf("%02X", cpu.Ac)
		case "a":
			strval = fmt.Sprintf("%02X", cpu.A)
		case "b":
			strval = fmt.Sprintf("%02X", cpu.B)
		case "c":
			strval = fmt.Sprintf("%02X", cpu.C)
		case "led":
			strval = fmt.Sprintf("%06b", cpu.Led&LED_MASK)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset reinitializes the CPU: registers, PC, and LED to zero, any
// in-flight instruction or wait abandoned, pipeline back to fetch.
// Reset takes priority over everything, including halt.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Ac = 0
	cpu.A = 0
	cpu.B = 0
	cpu.C = 0
	cpu.Pc = 0
	cpu.Led = 0

	cpu.inst = Inst{}
	cpu.operand = 0
	cpu.waitMs = 0
	cpu.waitTicks = 0
	cpu.Ticks = 0

	cpu.Phase = PHASE_FETCH
}

// Halted reports whether the CPU has reached the terminal halt phase.
func (cpu *Cpu) Halted() bool {
	return cpu.Phase == PHASE_HALT
}

// Inst returns the currently latched instruction.
func (cpu *Cpu) Inst() Inst {
	return cpu.inst
}

// Step advances the pipeline by a single tick.
//
// A fetch or retrieve against a busy store holds its phase for the
// tick; a store that never becomes ready holds the pipeline forever.
// Stepping a halted CPU does nothing.
func (cpu *Cpu) Step() (err error) {
	if cpu.Phase == PHASE_HALT {
		return
	}

	cpu.Ticks++

	switch cpu.Phase {
	case PHASE_FETCH:
		var raw uint8
		raw, err = cpu.Store.Fetch(cpu.Pc & PC_MASK)
		if errors.Is(err, io.ErrStoreBusy) {
			err = nil
			return
		}
		if err != nil {
			return
		}
		cpu.inst = Decode(raw)
		if cpu.Verbose {
			log.Printf("cpu: %03x: %v", cpu.Pc, cpu.inst)
		}
		cpu.Phase = PHASE_DECODE
	case PHASE_DECODE:
		cpu.Pc = (cpu.Pc + 1) & PC_MASK
		if cpu.inst.Immediate {
			cpu.Phase = PHASE_RETRIEVE
		} else {
			cpu.operand = cpu.sample(cpu.inst.Operand, 0)
			cpu.Phase = PHASE_EXECUTE
		}
	case PHASE_RETRIEVE:
		var imm uint8
		imm, err = cpu.Store.Fetch(cpu.Pc & PC_MASK)
		if errors.Is(err, io.ErrStoreBusy) {
			err = nil
			return
		}
		if err != nil {
			return
		}
		cpu.Pc = (cpu.Pc + 1) & PC_MASK
		cpu.operand = cpu.sample(cpu.inst.Operand, imm)
		cpu.Phase = PHASE_EXECUTE
	case PHASE_EXECUTE:
		err = cpu.execute()
	case PHASE_PRINT:
		// One tick for the external sink to commit.
		cpu.Phase = PHASE_FETCH
	case PHASE_WAIT:
		cpu.waitTicks++
		if cpu.waitTicks == TICKS_PER_MS {
			cpu.waitTicks = 0
			cpu.waitMs--
			if cpu.waitMs == 0 {
				cpu.Phase = PHASE_FETCH
			}
		}
	}

	return
}

// sample resolves the operand value for a role. Exactly one source is
// consulted; roles with no value (btn, led) read as zero.
func (cpu *Cpu) sample(role Operand, imm uint8) (value uint8) {
	switch role {
	case OPERAND_A:
		value = cpu.A
	case OPERAND_B:
		value = cpu.B
	case OPERAND_C:
		value = cpu.C
	case OPERAND_AC:
		value = cpu.Ac
	case OPERAND_IMM:
		value = imm
	}

	return
}

// execute performs the latched instruction's effect and selects the
// next pipeline phase.
func (cpu *Cpu) execute() (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInst(cpu.inst), err)
		}
	}()

	inst := cpu.inst
	next := PHASE_FETCH

	switch inst.Op {
	case OP_CLR:
		switch inst.Operand {
		case OPERAND_A:
			cpu.A = 0
		case OPERAND_B:
			cpu.B = 0
		case OPERAND_BTN:
			// Literal source behavior: without the button held, AC
			// collapses to 0 or 1 instead of clearing.
			if cpu.pressed() {
				cpu.Ac = 0
			} else if cpu.Ac != 0 {
				cpu.Ac = 1
			} else {
				cpu.Ac = 0
			}
		default:
			cpu.Ac = 0
		}
	case OP_ADD:
		// mod-256 wraparound, no overflow flag
		cpu.Ac += cpu.operand
	case OP_STA:
		switch inst.Operand {
		case OPERAND_A:
			cpu.A = cpu.Ac
		case OPERAND_B:
			cpu.B = cpu.Ac
		case OPERAND_C:
			cpu.C = cpu.Ac
		default:
			cpu.Led = ^cpu.Ac & LED_MASK
		}
	case OP_INV:
		switch inst.Operand {
		case OPERAND_A:
			cpu.A = ^cpu.A
		case OPERAND_B:
			cpu.B = ^cpu.B
		case OPERAND_C:
			cpu.C = ^cpu.C
		default:
			cpu.Ac = ^cpu.Ac
		}
	case OP_PRNT:
		if cpu.Display != nil {
			err = cpu.Display.Commit(cpu.Ac&INDEX_MASK, cpu.operand)
			if err != nil {
				return
			}
		}
		next = PHASE_PRINT
	case OP_JMPZ:
		// Jump targets are 8 bits wide; addresses past 255 are
		// unreachable by construction.
		if cpu.Ac == 0 {
			cpu.Pc = uint16(cpu.operand)
		}
	case OP_WAIT:
		if cpu.operand != 0 {
			cpu.waitMs = cpu.operand
			cpu.waitTicks = 0
			next = PHASE_WAIT
		}
	case OP_HLT:
		next = PHASE_HALT
	}

	cpu.Phase = next

	return
}

// pressed samples the button level.
func (cpu *Cpu) pressed() bool {
	return cpu.Button != nil && cpu.Button.Pressed()
}
