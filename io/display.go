package io

import (
	"io"
	"iter"
	"maps"
	"strings"
)

const (
	DISPLAY_SIZE = 64 // Character cells (6-bit index).
	DISPLAY_COLS = 16
	DISPLAY_ROWS = DISPLAY_SIZE / DISPLAY_COLS
)

// Display is the character sink interface presented to the CPU core.
// Each commit places one ASCII byte at one of the 64 cell indexes.
type Display interface {
	Commit(index uint8, char uint8) (err error)
}

// Screen is the 64-cell character display buffer, rendered as four rows
// of sixteen columns.
type Screen struct {
	Cells [DISPLAY_SIZE]uint8
}

var _ Display = (*Screen)(nil)

// Defines returns an iter of defines for the display.
func (scr *Screen) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"DISPLAY_SIZE": "64",
		"DISPLAY_COLS": "16",
	})
}

// Commit writes one character cell.
func (scr *Screen) Commit(index uint8, char uint8) (err error) {
	if int(index) >= DISPLAY_SIZE {
		err = ErrDisplayRange
		return
	}

	scr.Cells[index] = char

	return
}

// Clear blanks every cell.
func (scr *Screen) Clear() {
	clear(scr.Cells[:])
}

// Rune returns the printable rune at a cell, or a space for blank and
// non-ASCII contents.
func (scr *Screen) Rune(index uint8) rune {
	char := scr.Cells[index%DISPLAY_SIZE]
	if char < 0x20 || char > 0x7e {
		return ' '
	}
	return rune(char)
}

// String renders the screen contents row by row.
func (scr *Screen) String() string {
	var sb strings.Builder
	for row := range DISPLAY_ROWS {
		for col := range DISPLAY_COLS {
			sb.WriteRune(scr.Rune(uint8(row*DISPLAY_COLS + col)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Teletype streams committed characters to a writer in commit order,
// discarding the cell index. It makes display output pipe-friendly.
type Teletype struct {
	Output io.Writer
}

var _ Display = (*Teletype)(nil)

// Commit writes the character to the output stream.
func (tty *Teletype) Commit(index uint8, char uint8) (err error) {
	_, err = tty.Output.Write([]byte{char})
	return
}
