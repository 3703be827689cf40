// Package logic contains the pure decision engine for the moisture guard.
// This package has NO external dependencies (no GPIO, serial, OS, or
// time.Sleep). Callers feed it averaged raw samples once per cycle and act
// on the plan it returns.
package logic

// Status classifies a channel after a cycle's evaluation.
type Status string

const (
	// StatusOK means the moisture level meets the reference; the attempt
	// counter is cleared.
	StatusOK Status = "OK"
	// StatusDry means the level is below reference with retries left, so
	// the channel is eligible for a pump run.
	StatusDry Status = "DRY"
	// StatusExhausted means the level is below reference and all retries
	// are used up. Only an observed recovery re-arms the channel.
	StatusExhausted Status = "EXHAUSTED"
)

// Reading is one aggregated sample pair for a channel.
type Reading struct {
	// Sensor is the averaged raw moisture sample (10-bit ADC domain).
	Sensor int
	// Reference is the averaged raw potentiometer sample.
	Reference int
}

// ChannelState is the mutable per-channel state. It lives for the process
// lifetime and reinitializes on restart; nothing is persisted.
type ChannelState struct {
	// Moisture is the filtered percent level, 0..99.
	Moisture int
	// MoistureRaw is the raw sample behind the last accepted Moisture
	// change, kept for the diagnostic readout.
	MoistureRaw int
	// Reference is the filtered target percent from the channel's
	// potentiometer. Nominally 0..99 but unclamped on the input side.
	Reference int
	// Attempts counts pump runs since the last observed recovery.
	// Never exceeds MaxAttempts.
	Attempts int
	// MaxAttempts is fixed at startup.
	MaxAttempts int
}

// Status classifies the channel from its current state.
func (c ChannelState) Status() Status {
	if c.Moisture >= c.Reference {
		return StatusOK
	}
	if c.Attempts < c.MaxAttempts {
		return StatusDry
	}
	return StatusExhausted
}
