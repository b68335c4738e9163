package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/ucore/cpu"
	"github.com/ezrec/ucore/emulator"
	"github.com/ezrec/ucore/io"
)

func main() {
	var compile string
	var output string
	var save bool
	var ticks int
	var button bool
	var teletype bool
	var interactive bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".uc file to compile")
	flag.StringVar(&output, "o", "", "File for the raw program image")
	flag.BoolVar(&save, "s", false, "Save the program image, do not execute")
	flag.IntVar(&ticks, "t", 0, "Tick limit, 0 for unbounded")
	flag.BoolVar(&button, "b", false, "Hold the button down")
	flag.BoolVar(&teletype, "p", false, "Stream prnt output to stdout")
	flag.BoolVar(&interactive, "i", false, "Interactive run (space = button, q = quit)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Button.Down = button

	switch {
	case len(compile) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Program = prog
	case flag.NArg() == 1:
		image := flag.Arg(0)
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		err = emu.Rom.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	default:
		log.Fatalf("%v: nothing to assemble or run", os.Args[0])
	}

	if len(output) != 0 {
		err := os.WriteFile(output, emu.Program.Binary(), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if save {
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if teletype {
		emu.Cpu.Display = &io.Teletype{Output: os.Stdout}
	}

	if interactive {
		err = interactiveRun(emu)
	} else {
		err = emu.Run(ticks)
	}
	if err != nil && !errors.Is(err, emulator.ErrTickLimit) {
		log.Fatal(err)
	}

	if !teletype {
		fmt.Print(emu.Screen.String())
	}
	fmt.Printf("led: %06b\n", emu.Cpu.Led&cpu.LED_MASK)
	if errors.Is(err, emulator.ErrTickLimit) {
		fmt.Printf("stopped after %v ticks\n", emu.Ticks())
	}
}

// interactiveRun paces the pipeline against wall-clock milliseconds,
// with the terminal in raw mode: space toggles the button level, q (or
// Ctrl-C) stops the run.
func interactiveRun(emu *emulator.Emulator) (err error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, state)

	keys := make(chan byte, 8)
	go func() {
		var one [1]byte
		for {
			n, err := os.Stdin.Read(one[:])
			if err != nil {
				close(keys)
				return
			}
			if n == 1 {
				keys <- one[0]
			}
		}
	}()

	ms := time.NewTicker(time.Millisecond)
	defer ms.Stop()

	for !emu.Cpu.Halted() {
		select {
		case key, ok := <-keys:
			if !ok {
				return
			}
			switch key {
			case ' ':
				emu.Button.Down = !emu.Button.Down
			case 'q', 0x03:
				return
			}
		case <-ms.C:
			for range cpu.TICKS_PER_MS {
				err = emu.Cpu.Step()
				if err != nil {
					return
				}
			}
		}
	}

	return
}
