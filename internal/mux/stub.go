//go:build !linux

package mux

import "errors"

// Decoder is not available on non-Linux platforms.
type Decoder struct{}

// NewDecoder returns an error on non-Linux platforms.
func NewDecoder(chipName string, pinA0, pinA1, pinA2, pinEnable int) (*Decoder, error) {
	return nil, errors.New("mux: not supported on this platform (requires Linux)")
}

// Select is not implemented on non-Linux platforms.
func (d *Decoder) Select(addr Address) error {
	return errors.New("mux: not supported")
}

// Deselect is not implemented on non-Linux platforms.
func (d *Decoder) Deselect() error {
	return errors.New("mux: not supported")
}

// Close is not implemented on non-Linux platforms.
func (d *Decoder) Close() error {
	return nil
}
