// Package timer abstracts blocking waits so tests can run without real
// time. Every wait in the daemon goes through a Sleeper.
package timer

import "time"

// Sleeper blocks for a duration. There is no cancellation: once a wait
// begins it runs to completion.
type Sleeper interface {
	Sleep(d time.Duration)
}

// Real sleeps on the wall clock.
type Real struct{}

// Sleep blocks for d.
func (Real) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Fake records requested sleeps instead of waiting.
type Fake struct {
	// Slept contains every requested duration in order.
	Slept []time.Duration
}

// Sleep records d and returns immediately.
func (f *Fake) Sleep(d time.Duration) {
	f.Slept = append(f.Slept, d)
}

// Total returns the sum of all recorded sleeps.
func (f *Fake) Total() time.Duration {
	var total time.Duration
	for _, d := range f.Slept {
		total += d
	}
	return total
}

// Reset clears the recorded sleeps.
func (f *Fake) Reset() {
	f.Slept = nil
}

var _ Sleeper = Real{}
var _ Sleeper = (*Fake)(nil)
