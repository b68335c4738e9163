// Package io provides the peripheral models for the µCORE emulator:
// the byte-addressable program store (Rom), the memory-mapped character
// display (Screen, Teletype), and the input button (Switch).
package io
