package internal

import (
	"testing"
	"time"

	"github.com/wunderabt/soil-moisture/internal/analog"
	"github.com/wunderabt/soil-moisture/internal/config"
	"github.com/wunderabt/soil-moisture/internal/display"
	"github.com/wunderabt/soil-moisture/internal/logger"
	"github.com/wunderabt/soil-moisture/internal/logic"
	"github.com/wunderabt/soil-moisture/internal/mux"
	"github.com/wunderabt/soil-moisture/internal/pump"
	"github.com/wunderabt/soil-moisture/internal/sampling"
	"github.com/wunderabt/soil-moisture/internal/scheduler"
	"github.com/wunderabt/soil-moisture/internal/timer"
)

// TestIntegrationDryRecovery walks a full dry spell through the real stack
// over fakes: channel 1 dries out under a 40% reference, burns its three
// pump attempts, sits exhausted, and recovers. Channel 2 stays saturated
// throughout. Pumps run through the real MuxRunner so the decoder rail
// traffic is part of the picture.
func TestIntegrationDryRecovery(t *testing.T) {
	cfg := &config.Config{
		Calibration: config.CalibrationConfig{Wet: 150, Dry: 660},
		Sampling: config.SamplingConfig{
			Count:               1,
			SettleDelay:         2 * time.Second,
			HysteresisTolerance: 2,
			ReferencePin:        4,
		},
		Cycle: config.CycleConfig{Interval: 10 * time.Minute, MaxSleep: 8 * time.Second},
		Channels: []config.Channel{
			{PumpDuration: 10 * time.Second, MaxPumpAttempts: 3, SensorPin: 0, SensorAddress: 4, PumpAddress: 0},
			{PumpDuration: 10 * time.Second, MaxPumpAttempts: 3, SensorPin: 1, SensorAddress: 5, PumpAddress: 1},
		},
	}

	// Channel 1's raw script: 430 reads as 45%, 507 as 30%, 405 as 50%.
	// The reference dial sits at 40% the whole time.
	sampler := analog.NewFake(map[int][]uint16{
		0: {430, 507, 507, 507, 507, 405},
		1: {150},
		4: {400},
	})
	selector := mux.NewFake()
	sleeper := &timer.Fake{}
	renderer := &display.FakeRenderer{}
	pumps := pump.NewMuxRunner(selector, sleeper)

	engine := logic.NewEngine(logic.Calibration{Wet: 150, Dry: 660}, 2, cfg.MaxAttempts())
	agg := sampling.New(sampler, selector, sleeper,
		cfg.Sampling.SettleDelay, cfg.Sampling.Count, cfg.Sampling.ReferencePin)
	sched := scheduler.New(cfg, engine, agg, renderer, pumps, sleeper, logger.Nop(), "v0.2")

	type cycleWant struct {
		moisture  int
		attempts  int
		status    logic.Status
		totalRuns int
	}
	wants := []cycleWant{
		// Cycle 1: first real sample, above reference, no pump.
		{moisture: 45, attempts: 0, status: logic.StatusOK, totalRuns: 0},
		// Cycles 2-4: dried out, one pump attempt per cycle.
		{moisture: 30, attempts: 1, status: logic.StatusDry, totalRuns: 1},
		{moisture: 30, attempts: 2, status: logic.StatusDry, totalRuns: 2},
		{moisture: 30, attempts: 3, status: logic.StatusExhausted, totalRuns: 3},
		// Cycle 5: still dry, gave up, no further pumping.
		{moisture: 30, attempts: 3, status: logic.StatusExhausted, totalRuns: 3},
		// Cycle 6: watered by hand, counter clears.
		{moisture: 50, attempts: 0, status: logic.StatusOK, totalRuns: 3},
	}

	for i, want := range wants {
		if !sched.RunCycle() {
			t.Fatalf("cycle %d: expected an update", i+1)
		}
		st := engine.Channel(0)
		if st.Moisture != want.moisture {
			t.Errorf("cycle %d: expected moisture %d, got %d", i+1, want.moisture, st.Moisture)
		}
		if st.Attempts != want.attempts {
			t.Errorf("cycle %d: expected %d attempts, got %d", i+1, want.attempts, st.Attempts)
		}
		if got := st.Status(); got != want.status {
			t.Errorf("cycle %d: expected status %s, got %s", i+1, want.status, got)
		}

		pumpRuns := 0
		for _, addr := range selector.Selections() {
			if addr == mux.Address(cfg.Channels[0].PumpAddress) {
				pumpRuns++
			}
		}
		if pumpRuns != want.totalRuns {
			t.Errorf("cycle %d: expected %d pump selections so far, got %d", i+1, want.totalRuns, pumpRuns)
		}

		// The rail must be released after every cycle.
		if selector.Selected != nil {
			t.Errorf("cycle %d: mux rail left powered on address %d", i+1, *selector.Selected)
		}
	}

	// Channel 2 never moved past its first sample.
	st := engine.Channel(1)
	if st.Moisture != 99 || st.Attempts != 0 || st.Status() != logic.StatusOK {
		t.Errorf("unexpected channel 2 end state: %+v", st)
	}

	// Every cycle produced a frame; the exhausted frame flags the counter.
	if len(renderer.Scenes) != len(wants) {
		t.Fatalf("expected %d display refreshes, got %d", len(wants), len(renderer.Scenes))
	}
	l := display.DefaultLayout()
	var exhausted *display.Text
	for _, txt := range renderer.Scenes[4].Texts {
		if txt.X == l.Width-l.AttemptsInset && txt.Y == 20 {
			c := txt
			exhausted = &c
		}
	}
	if exhausted == nil {
		t.Fatal("expected an attempt counter in the exhausted frame")
	}
	if exhausted.Value != "3" || exhausted.Color != display.ColorWarning {
		t.Errorf("expected a red max attempt counter, got %+v", exhausted)
	}
}
