package io

import (
	"io"
	"iter"
	"maps"
)

const (
	STORE_SIZE = 2048 // Program store capacity in bytes (11-bit addresses).
)

// Store is the program-memory interface presented to the CPU core.
//
// This is the software rendering of the hardware request/ready
// handshake: a Fetch that cannot complete yet returns ErrStoreBusy, and
// the requester retries the same address until the store responds.
type Store interface {
	// Fetch reads one byte from the store.
	Fetch(addr uint16) (value uint8, err error)
}

// Rom is a byte-addressable program store backed by a slice.
// Addresses past the loaded data but within the store's range read as
// zero, as blank memory does.
type Rom struct {
	Data []byte
}

var _ Store = (*Rom)(nil)

// Defines returns an iter of defines for the store.
func (rom *Rom) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"STORE_SIZE": "2048",
	})
}

// Fetch reads one byte from the store. A Rom is always ready.
func (rom *Rom) Fetch(addr uint16) (value uint8, err error) {
	if int(addr) >= STORE_SIZE {
		err = ErrStoreRange
		return
	}

	if int(addr) < len(rom.Data) {
		value = rom.Data[addr]
	}

	return
}

// Load replaces the store contents from a reader, up to the store's
// capacity.
func (rom *Rom) Load(input io.Reader) (err error) {
	data := make([]byte, STORE_SIZE)
	n, err := io.ReadFull(input, data)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		return
	}

	rom.Data = data[:n]

	return
}

// Handshake wraps a Store with read latency, holding each new request
// busy for Latency fetches before responding. It models the multi-tick
// ready handshake of a slow backing store.
type Handshake struct {
	Store   Store
	Latency int

	pending uint16
	waiting int
	active  bool
}

var _ Store = (*Handshake)(nil)

// Fetch reads one byte, reporting ErrStoreBusy until the current
// request has aged past the configured latency.
func (hs *Handshake) Fetch(addr uint16) (value uint8, err error) {
	if !hs.active || hs.pending != addr {
		hs.active = true
		hs.pending = addr
		hs.waiting = hs.Latency
	}

	if hs.waiting > 0 {
		hs.waiting--
		err = ErrStoreBusy
		return
	}

	hs.active = false

	return hs.Store.Fetch(addr)
}
