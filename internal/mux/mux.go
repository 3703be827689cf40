// Package mux drives the shared channel multiplexer that routes power to
// one channel circuit at a time. The real implementation talks to an
// HC237-style 3-to-8 decoder through the Linux GPIO character device; the
// fake allows testing without hardware.
//
// All hardware address encoding lives here. The rest of the daemon deals
// in plain decoder output numbers.
package mux

// Address identifies one decoder output (0..7 on a 3-bit decoder).
type Address uint8

// Selector routes power and signal to one channel circuit at a time.
// The decoder can only drive a single output, so a Select replaces any
// previous selection.
type Selector interface {
	// Select powers the circuit behind addr.
	Select(addr Address) error

	// Deselect drops the enable line, powering down whatever circuit is
	// selected. Safe to call when nothing is selected.
	Deselect() error

	// Close deselects and releases the underlying lines.
	Close() error
}

// Default BCM line numbers for the decoder address and enable pins.
const (
	DefaultPinA0     = 2
	DefaultPinA1     = 3
	DefaultPinA2     = 4
	DefaultPinEnable = 17
)
