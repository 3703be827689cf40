//go:build linux

package mux

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Decoder drives the channel decoder on actual hardware using the Linux
// GPIO character device.
type Decoder struct {
	chip   *gpiocdev.Chip
	a0     *gpiocdev.Line
	a1     *gpiocdev.Line
	a2     *gpiocdev.Line
	enable *gpiocdev.Line
}

// NewDecoder requests the three address lines and the enable line as
// outputs, all low. The chip name is typically "gpiochip0".
func NewDecoder(chipName string, pinA0, pinA1, pinA2, pinEnable int) (*Decoder, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	d := &Decoder{chip: chip}
	pins := []struct {
		pin  int
		name string
		dst  **gpiocdev.Line
	}{
		{pinA0, "A0", &d.a0},
		{pinA1, "A1", &d.a1},
		{pinA2, "A2", &d.a2},
		{pinEnable, "enable", &d.enable},
	}
	for _, p := range pins {
		line, err := chip.RequestLine(p.pin, gpiocdev.AsOutput(0))
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", p.name, p.pin, err)
		}
		*p.dst = line
	}
	return d, nil
}

// Select sets the address bits with the decoder disabled, then raises the
// enable line. Address bit 0 maps to A0, bit 1 to A1, bit 2 to A2.
func (d *Decoder) Select(addr Address) error {
	if err := d.enable.SetValue(0); err != nil {
		return fmt.Errorf("drop enable: %w", err)
	}
	if err := d.a0.SetValue(int(addr) & 0x01); err != nil {
		return fmt.Errorf("set A0: %w", err)
	}
	if err := d.a1.SetValue(int(addr>>1) & 0x01); err != nil {
		return fmt.Errorf("set A1: %w", err)
	}
	if err := d.a2.SetValue(int(addr>>2) & 0x01); err != nil {
		return fmt.Errorf("set A2: %w", err)
	}
	if err := d.enable.SetValue(1); err != nil {
		return fmt.Errorf("raise enable: %w", err)
	}
	return nil
}

// Deselect drops the enable line, powering down the selected circuit.
func (d *Decoder) Deselect() error {
	if err := d.enable.SetValue(0); err != nil {
		return fmt.Errorf("drop enable: %w", err)
	}
	return nil
}

// Close deselects and releases all lines. Lines are left as outputs driven
// low so nothing stays powered across a daemon restart.
func (d *Decoder) Close() error {
	var errs []error

	if d.enable != nil {
		if err := d.enable.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("drop enable: %w", err))
		}
	}
	for _, line := range []*gpiocdev.Line{d.a0, d.a1, d.a2, d.enable} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if d.chip != nil {
		if err := d.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

var _ Selector = (*Decoder)(nil)
