package logic

// Calibration holds the two raw reference points for the percent
// conversion.
type Calibration struct {
	// Wet is the raw reading at 100% saturation.
	Wet int
	// Dry is the raw reading at 0% saturation. Capacitive sensors read
	// higher as soil dries, so Wet < Dry.
	Dry int
}

// Percent maps a raw sensor sample onto 0..99. Inputs outside the
// calibration range saturate; there is no error condition.
func (c Calibration) Percent(raw int) int {
	a := 100.0 / float64(c.Wet-c.Dry)
	b := -float64(c.Dry) * a
	p := float64(raw)*a + b
	if p < 0 {
		return 0
	}
	if p > 99 {
		return 99
	}
	return int(p)
}

// ReferencePercent maps a raw potentiometer sample onto a target percent.
// A 10-bit reading spans 0..102; the top of the dial sits just above any
// reachable moisture level, which is the intended "always water" setting.
func ReferencePercent(raw int) int {
	return raw / 10
}

// Changed reports whether next differs from prev by more than tolerance
// percentage points. Symmetric in prev and next; single-point jitter on a
// noisy sensor must not trigger renders or pump bookkeeping.
func Changed(prev, next, tolerance int) bool {
	d := prev - next
	if d < 0 {
		d = -d
	}
	return d > tolerance
}
