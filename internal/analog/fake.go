package analog

import "fmt"

// Fake is a test double that returns scripted readings per pin.
type Fake struct {
	// Readings contains scripted values per pin, consumed in order.
	// When a pin's values are exhausted, the last one repeats.
	Readings map[int][]uint16

	// index tracks the current position per pin.
	index map[int]int

	// ReadError, if set, will be returned by Read.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFake creates a Fake sampler with the given per-pin readings.
func NewFake(readings map[int][]uint16) *Fake {
	return &Fake{
		Readings: readings,
		index:    make(map[int]int),
	}
}

// Read returns the next scripted reading for pin.
func (f *Fake) Read(pin int) (uint16, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	seq := f.Readings[pin]
	if len(seq) == 0 {
		return 0, fmt.Errorf("no readings configured for pin %d", pin)
	}

	i := f.index[pin]
	if i < len(seq)-1 {
		f.index[pin] = i + 1
	}
	return seq[i], nil
}

// Close marks the sampler as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

// Set replaces the scripted readings for pin and rewinds it.
func (f *Fake) Set(pin int, readings ...uint16) {
	f.Readings[pin] = readings
	f.index[pin] = 0
}
