package logic

// Initial channel state: treat the soil as satisfied until the first real
// sample so a fresh boot never waters blindly.
const (
	initialMoisture  = 99
	initialReference = 25
)

// Engine owns the channel state array and folds one cycle's readings into
// it. There is exactly one Engine per process and one goroutine driving it.
type Engine struct {
	cal       Calibration
	tolerance int
	channels  []ChannelState
}

// NewEngine creates the engine with one channel per entry of maxAttempts.
func NewEngine(cal Calibration, tolerance int, maxAttempts []int) *Engine {
	channels := make([]ChannelState, len(maxAttempts))
	for i, max := range maxAttempts {
		channels[i] = ChannelState{
			Moisture:    initialMoisture,
			Reference:   initialReference,
			MaxAttempts: max,
		}
	}
	return &Engine{
		cal:       cal,
		tolerance: tolerance,
		channels:  channels,
	}
}

// Observe folds one reading into channel i and reports whether the channel
// counts as changed this cycle. A channel below reference always counts as
// changed so its attempt bookkeeping runs every cycle, and an observed
// recovery always clears the attempt counter, even mid-retry.
func (e *Engine) Observe(i int, r Reading) bool {
	ch := &e.channels[i]
	changed := false

	percent := e.cal.Percent(r.Sensor)
	if Changed(ch.Moisture, percent, e.tolerance) {
		ch.Moisture = percent
		ch.MoistureRaw = r.Sensor
		changed = true
	}

	reference := ReferencePercent(r.Reference)
	if Changed(ch.Reference, reference, e.tolerance) {
		ch.Reference = reference
		changed = true
	}

	if ch.Moisture >= ch.Reference {
		ch.Attempts = 0
	} else {
		changed = true
	}
	return changed
}

// PumpPlan returns the channels due a pump run this cycle, in channel
// order. Exhausted channels are excluded until recovery is observed.
func (e *Engine) PumpPlan() []int {
	var plan []int
	for i := range e.channels {
		if e.channels[i].Status() == StatusDry {
			plan = append(plan, i)
		}
	}
	return plan
}

// RecordAttempt counts a pump run against channel i. Called as part of
// issuing the run; there is no feedback on whether it helped until the next
// cycle's sampling.
func (e *Engine) RecordAttempt(i int) {
	ch := &e.channels[i]
	if ch.Attempts < ch.MaxAttempts {
		ch.Attempts++
	}
}

// Channel returns a copy of channel i's state.
func (e *Engine) Channel(i int) ChannelState {
	return e.channels[i]
}

// Channels returns a copy of all channel states, in channel order.
func (e *Engine) Channels() []ChannelState {
	out := make([]ChannelState, len(e.channels))
	copy(out, e.channels)
	return out
}
