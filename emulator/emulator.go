// Package emulator wires the µCORE processor to its peripherals: the
// program store, the character screen, and the input button.
package emulator

import (
	"iter"

	"github.com/ezrec/ucore/cpu"
	"github.com/ezrec/ucore/internal"
	"github.com/ezrec/ucore/io"
)

// Emulator state. CPU + program store + display + button.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Rom    io.Rom    // Program store.
	Screen io.Screen // Character display buffer.
	Button io.Switch // Input button.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(&emu.Rom)
	emu.Cpu.Display = &emu.Screen
	emu.Cpu.Button = &emu.Button

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		emu.Rom.Defines(),
		emu.Screen.Defines(),
	)
}

// Reset loads the program image into the store and resets the CPU and
// peripherals. A store image loaded directly into the Rom is kept when
// no program listing is present.
func (emu *Emulator) Reset() (err error) {
	if len(emu.Program.Opcodes) != 0 {
		emu.Rom.Data = emu.Program.Binary()
	}
	emu.Screen.Clear()

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	return
}

// Ticks returns the total pipeline ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the current source line number for the executing
// instruction.
func (emu *Emulator) LineNo() int {
	for _, op := range emu.Program.Opcodes {
		if int(emu.Cpu.Pc) >= op.Addr && int(emu.Cpu.Pc) < op.Addr+len(op.Bytes) {
			return op.LineNo
		}
	}

	return 0
}

// Tick advances the pipeline until one instruction retires: the
// pipeline returns to fetch, or reaches the terminal halt phase.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	for {
		err = emu.Cpu.Step()
		if err != nil {
			return
		}
		if emu.Cpu.Halted() {
			done = true
			return
		}
		if emu.Cpu.Phase == cpu.PHASE_FETCH {
			return
		}
	}
}

// Run executes until the CPU halts. A positive maxTicks bounds the run,
// failing with ErrTickLimit when exceeded; zero runs unbounded.
func (emu *Emulator) Run(maxTicks int) (err error) {
	for !emu.Cpu.Halted() {
		if maxTicks > 0 && emu.Cpu.Ticks >= maxTicks {
			err = ErrTickLimit
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	return
}
