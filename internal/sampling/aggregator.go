// Package sampling acquires averaged raw readings for one channel at a
// time through the shared multiplexer rail.
package sampling

import (
	"fmt"
	"time"

	"github.com/wunderabt/soil-moisture/internal/analog"
	"github.com/wunderabt/soil-moisture/internal/mux"
	"github.com/wunderabt/soil-moisture/internal/timer"
)

// Aggregator powers a channel's sensor path, waits for the sensor
// oscillator to settle, and averages a fixed number of samples of both the
// moisture sensor and the reference potentiometer.
type Aggregator struct {
	sampler      analog.Sampler
	mux          mux.Selector
	sleeper      timer.Sleeper
	settle       time.Duration
	count        int
	referencePin int
}

// New creates an Aggregator. count must already be validated by the
// configuration layer; values below 1 are clamped to 1.
func New(sampler analog.Sampler, m mux.Selector, sleeper timer.Sleeper, settle time.Duration, count, referencePin int) *Aggregator {
	if count < 1 {
		count = 1
	}
	return &Aggregator{
		sampler:      sampler,
		mux:          m,
		sleeper:      sleeper,
		settle:       settle,
		count:        count,
		referencePin: referencePin,
	}
}

// Read returns the averaged raw sensor and reference samples for the
// channel behind addr, with the sensor on the given ADC pin. The mux path
// is released on every exit, including errors; the shared rail must never
// stay powered past a failed read.
func (a *Aggregator) Read(addr mux.Address, pin int) (sensor, reference int, err error) {
	if err := a.mux.Select(addr); err != nil {
		return 0, 0, fmt.Errorf("select sensor path: %w", err)
	}
	defer a.mux.Deselect()

	a.sleeper.Sleep(a.settle)

	var sum, sumRef int
	for i := 0; i < a.count; i++ {
		v, err := a.sampler.Read(pin)
		if err != nil {
			return 0, 0, fmt.Errorf("read sensor pin %d: %w", pin, err)
		}
		r, err := a.sampler.Read(a.referencePin)
		if err != nil {
			return 0, 0, fmt.Errorf("read reference pin %d: %w", a.referencePin, err)
		}
		sum += int(v)
		sumRef += int(r)
	}

	// The potentiometer is not noisy, but averaging it costs nothing and
	// keeps both readings on the same footing.
	return sum / a.count, sumRef / a.count, nil
}
