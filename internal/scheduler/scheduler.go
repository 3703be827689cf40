// Package scheduler sequences sampling, rendering, and actuation into the
// device's endless measure/irrigate cycle.
package scheduler

import (
	"os"

	"github.com/wunderabt/soil-moisture/internal/config"
	"github.com/wunderabt/soil-moisture/internal/display"
	"github.com/wunderabt/soil-moisture/internal/logger"
	"github.com/wunderabt/soil-moisture/internal/logic"
	"github.com/wunderabt/soil-moisture/internal/mux"
	"github.com/wunderabt/soil-moisture/internal/pump"
	"github.com/wunderabt/soil-moisture/internal/sampling"
	"github.com/wunderabt/soil-moisture/internal/timer"
)

// Scheduler drives the cycle over all channels. Everything is synchronous
// and blocking on the single control goroutine: sampling for all channels
// completes before any render or actuation, and pumps run one at a time
// because they share the decoder rail.
type Scheduler struct {
	cfg      *config.Config
	engine   *logic.Engine
	agg      *sampling.Aggregator
	renderer display.Renderer
	pumps    pump.Runner
	sleeper  timer.Sleeper
	log      *logger.Logger
	layout   display.Layout
	version  string
}

// New creates a Scheduler.
func New(cfg *config.Config, engine *logic.Engine, agg *sampling.Aggregator, renderer display.Renderer, pumps pump.Runner, sleeper timer.Sleeper, log *logger.Logger, version string) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		engine:   engine,
		agg:      agg,
		renderer: renderer,
		pumps:    pumps,
		sleeper:  sleeper,
		log:      log,
		layout:   display.DefaultLayout(),
		version:  version,
	}
}

// RunCycle performs one full pass: sample every channel, and when anything
// changed, refresh the display and then water the dry channels. Reports
// whether the cycle produced an update.
//
// A channel whose sampling fails keeps its last-known state; the daemon
// must keep cycling and keep displaying rather than halt.
func (s *Scheduler) RunCycle() bool {
	anyUpdate := false
	for i, ch := range s.cfg.Channels {
		raw, rawRef, err := s.agg.Read(mux.Address(ch.SensorAddress), ch.SensorPin)
		if err != nil {
			s.log.Warnf("channel %d: sampling failed, keeping last state: %v", i+1, err)
			continue
		}
		if s.engine.Observe(i, logic.Reading{Sensor: raw, Reference: rawRef}) {
			anyUpdate = true
		}
		st := s.engine.Channel(i)
		s.log.Debugf("channel %d: raw=%d percent=%d reference=%d attempts=%d status=%s",
			i+1, raw, st.Moisture, st.Reference, st.Attempts, st.Status())
	}

	if !anyUpdate {
		return false
	}

	// Render before actuating. The attempts column shows the counts going
	// into this cycle's pump runs and catches up on the next refresh.
	scene := display.Build(s.engine.Channels(), s.layout, s.version)
	if err := s.renderer.Render(scene); err != nil {
		s.log.Warnf("display refresh failed: %v", err)
	}

	for _, i := range s.engine.PumpPlan() {
		ch := s.cfg.Channels[i]
		s.engine.RecordAttempt(i)
		st := s.engine.Channel(i)
		s.log.Infof("channel %d: running pump for %v (attempt %d of %d)",
			i+1, ch.PumpDuration, st.Attempts, st.MaxAttempts)
		if err := s.pumps.Run(mux.Address(ch.PumpAddress), ch.PumpDuration); err != nil {
			s.log.Warnf("channel %d: pump run failed: %v", i+1, err)
		}
	}
	return true
}

// Run cycles until a termination signal arrives. The inter-cycle sleep is
// chained from calls no longer than the platform's per-call maximum, with
// a shutdown check between chunks.
func (s *Scheduler) Run(sig <-chan os.Signal) {
	for {
		s.RunCycle()
		if !s.sleepInterval(sig) {
			return
		}
	}
}

// sleepInterval covers the configured cycle interval with bounded sleep
// calls. Returns false when a signal ended the wait.
func (s *Scheduler) sleepInterval(sig <-chan os.Signal) bool {
	remaining := s.cfg.Cycle.Interval
	for remaining > 0 {
		select {
		case v := <-sig:
			s.log.Infof("received %v, shutting down", v)
			return false
		default:
		}

		chunk := remaining
		if chunk > s.cfg.Cycle.MaxSleep {
			chunk = s.cfg.Cycle.MaxSleep
		}
		s.sleeper.Sleep(chunk)
		remaining -= chunk
	}
	return true
}
