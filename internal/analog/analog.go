// Package analog reads raw ADC samples. The host has no on-board ADC, so
// the real implementation talks to a small serial-attached front-end board
// over a request/response line protocol; the fake returns scripted values.
package analog

// MaxReading is the largest value the 10-bit front-end ADC can return.
const MaxReading = 1023

// Sampler reads single raw samples from ADC inputs.
type Sampler interface {
	// Read returns one raw sample (0..MaxReading) from the given pin.
	Read(pin int) (uint16, error)

	// Close releases the underlying transport.
	Close() error
}

var _ Sampler = (*Serial)(nil)
var _ Sampler = (*Fake)(nil)
