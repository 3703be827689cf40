// Package pump actuates water pumps through the shared decoder rail.
package pump

import (
	"fmt"
	"time"

	"github.com/wunderabt/soil-moisture/internal/mux"
	"github.com/wunderabt/soil-moisture/internal/timer"
)

// Runner runs one pump at a time for a bounded duration.
type Runner interface {
	// Run powers the pump behind addr for d, blocking until done. There
	// is no success feedback: whether water actually moved only shows up
	// in the next cycle's sampling.
	Run(addr mux.Address, d time.Duration) error
}

// MuxRunner drives pumps through the channel multiplexer. The rail can
// power a single circuit, so runs are inherently sequential.
type MuxRunner struct {
	mux     mux.Selector
	sleeper timer.Sleeper
}

// NewMuxRunner creates a MuxRunner.
func NewMuxRunner(m mux.Selector, sleeper timer.Sleeper) *MuxRunner {
	return &MuxRunner{mux: m, sleeper: sleeper}
}

// Run selects the pump circuit, holds it powered for d, and releases the
// rail. The rail is released even when selection partially failed.
func (r *MuxRunner) Run(addr mux.Address, d time.Duration) error {
	if err := r.mux.Select(addr); err != nil {
		r.mux.Deselect()
		return fmt.Errorf("select pump %d: %w", addr, err)
	}
	r.sleeper.Sleep(d)

	if err := r.mux.Deselect(); err != nil {
		return fmt.Errorf("release pump %d: %w", addr, err)
	}
	return nil
}

// FakeRunner records pump runs for test assertions.
type FakeRunner struct {
	// Runs contains every pump run in order.
	Runs []Run

	// RunError, if set, will be returned by Run.
	RunError error
}

// Run is one recorded pump actuation.
type Run struct {
	Addr     mux.Address
	Duration time.Duration
}

// NewFakeRunner creates a FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// Run records the actuation.
func (f *FakeRunner) Run(addr mux.Address, d time.Duration) error {
	if f.RunError != nil {
		return f.RunError
	}
	f.Runs = append(f.Runs, Run{Addr: addr, Duration: d})
	return nil
}

var _ Runner = (*MuxRunner)(nil)
var _ Runner = (*FakeRunner)(nil)
