package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRomFetch(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{0x01, 0x91, 0x05}}

	value, err := rom.Fetch(0)
	assert.NoError(err)
	assert.Equal(uint8(0x01), value)

	value, err = rom.Fetch(2)
	assert.NoError(err)
	assert.Equal(uint8(0x05), value)

	// Blank memory past the loaded image reads as zero.
	value, err = rom.Fetch(3)
	assert.NoError(err)
	assert.Equal(uint8(0), value)

	value, err = rom.Fetch(STORE_SIZE - 1)
	assert.NoError(err)
	assert.Equal(uint8(0), value)

	_, err = rom.Fetch(STORE_SIZE)
	assert.ErrorIs(err, ErrStoreRange)
}

func TestRomLoad(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	err := rom.Load(bytes.NewReader([]byte{0x10, 0x20, 0x30}))
	assert.NoError(err)
	assert.Equal([]byte{0x10, 0x20, 0x30}, rom.Data)

	// A full-capacity image loads exactly.
	err = rom.Load(bytes.NewReader(make([]byte, STORE_SIZE)))
	assert.NoError(err)
	assert.Len(rom.Data, STORE_SIZE)

	// Excess input is truncated to the store capacity.
	err = rom.Load(bytes.NewReader(make([]byte, STORE_SIZE+100)))
	assert.NoError(err)
	assert.Len(rom.Data, STORE_SIZE)

	err = rom.Load(strings.NewReader(""))
	assert.NoError(err)
	assert.Empty(rom.Data)
}

func TestRomDefines(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	defines := map[string]string{}
	for key, value := range rom.Defines() {
		defines[key] = value
	}
	assert.Equal("2048", defines["STORE_SIZE"])
}

func TestHandshake(t *testing.T) {
	assert := assert.New(t)

	hs := &Handshake{
		Store:   &Rom{Data: []byte{0xaa, 0xbb}},
		Latency: 2,
	}

	// The first Latency fetches of a new address are busy.
	_, err := hs.Fetch(0)
	assert.ErrorIs(err, ErrStoreBusy)
	_, err = hs.Fetch(0)
	assert.ErrorIs(err, ErrStoreBusy)

	value, err := hs.Fetch(0)
	assert.NoError(err)
	assert.Equal(uint8(0xaa), value)

	// A new address restarts the handshake.
	_, err = hs.Fetch(1)
	assert.ErrorIs(err, ErrStoreBusy)
	_, err = hs.Fetch(1)
	assert.ErrorIs(err, ErrStoreBusy)

	value, err = hs.Fetch(1)
	assert.NoError(err)
	assert.Equal(uint8(0xbb), value)
}

func TestHandshakeRestart(t *testing.T) {
	assert := assert.New(t)

	hs := &Handshake{
		Store:   &Rom{Data: []byte{0xaa, 0xbb}},
		Latency: 3,
	}

	// Abandoning a pending request mid-wait starts over at the new
	// address.
	_, err := hs.Fetch(0)
	assert.ErrorIs(err, ErrStoreBusy)

	_, err = hs.Fetch(1)
	assert.ErrorIs(err, ErrStoreBusy)
	_, err = hs.Fetch(1)
	assert.ErrorIs(err, ErrStoreBusy)
	_, err = hs.Fetch(1)
	assert.ErrorIs(err, ErrStoreBusy)

	value, err := hs.Fetch(1)
	assert.NoError(err)
	assert.Equal(uint8(0xbb), value)
}

func TestHandshakeZeroLatency(t *testing.T) {
	assert := assert.New(t)

	hs := &Handshake{
		Store: &Rom{Data: []byte{0x42}},
	}

	value, err := hs.Fetch(0)
	assert.NoError(err)
	assert.Equal(uint8(0x42), value)
}
