package io

// Button is the input button interface presented to the CPU core.
// The level is sampled at the instant a clr btn instruction executes.
type Button interface {
	Pressed() bool
}

// Switch is a button holding a host-settable level.
type Switch struct {
	Down bool
}

var _ Button = (*Switch)(nil)

// Pressed samples the current level.
func (sw *Switch) Pressed() bool {
	return sw.Down
}

// Press sets the level high.
func (sw *Switch) Press() {
	sw.Down = true
}

// Release sets the level low.
func (sw *Switch) Release() {
	sw.Down = false
}
