package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenCommit(t *testing.T) {
	assert := assert.New(t)

	scr := &Screen{}

	assert.NoError(scr.Commit(0, 'H'))
	assert.NoError(scr.Commit(1, 'i'))
	assert.NoError(scr.Commit(DISPLAY_SIZE-1, '!'))

	assert.Equal(uint8('H'), scr.Cells[0])
	assert.Equal(uint8('i'), scr.Cells[1])
	assert.Equal(uint8('!'), scr.Cells[DISPLAY_SIZE-1])

	assert.ErrorIs(scr.Commit(DISPLAY_SIZE, 'x'), ErrDisplayRange)
}

func TestScreenRune(t *testing.T) {
	assert := assert.New(t)

	scr := &Screen{}
	scr.Cells[0] = 'A'
	scr.Cells[1] = 0x00
	scr.Cells[2] = 0x1f
	scr.Cells[3] = 0x7f
	scr.Cells[4] = 0x20

	assert.Equal('A', scr.Rune(0))
	assert.Equal(' ', scr.Rune(1))
	assert.Equal(' ', scr.Rune(2))
	assert.Equal(' ', scr.Rune(3))
	assert.Equal(' ', scr.Rune(4))
}

func TestScreenString(t *testing.T) {
	assert := assert.New(t)

	scr := &Screen{}
	for n, char := range []uint8("hello") {
		assert.NoError(scr.Commit(uint8(n), char))
	}
	assert.NoError(scr.Commit(DISPLAY_COLS, '2'))

	lines := strings.Split(scr.String(), "\n")
	assert.Len(lines, DISPLAY_ROWS+1)
	assert.Equal("hello           ", lines[0])
	assert.Equal("2               ", lines[1])
	assert.Equal("", lines[DISPLAY_ROWS])
}

func TestScreenClear(t *testing.T) {
	assert := assert.New(t)

	scr := &Screen{}
	assert.NoError(scr.Commit(7, 'x'))
	scr.Clear()
	assert.Equal(Screen{}, *scr)
}

func TestScreenDefines(t *testing.T) {
	assert := assert.New(t)

	scr := &Screen{}
	defines := map[string]string{}
	for key, value := range scr.Defines() {
		defines[key] = value
	}
	assert.Equal("64", defines["DISPLAY_SIZE"])
	assert.Equal("16", defines["DISPLAY_COLS"])
}

func TestTeletype(t *testing.T) {
	assert := assert.New(t)

	var sb strings.Builder
	tty := &Teletype{Output: &sb}

	// The cell index is discarded; characters stream in commit order.
	assert.NoError(tty.Commit(5, 'o'))
	assert.NoError(tty.Commit(0, 'k'))

	assert.Equal("ok", sb.String())
}

func TestSwitch(t *testing.T) {
	assert := assert.New(t)

	sw := &Switch{}
	assert.False(sw.Pressed())

	sw.Press()
	assert.True(sw.Pressed())

	sw.Release()
	assert.False(sw.Pressed())
}
