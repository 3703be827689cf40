package logic

import "testing"

// Reference calibration: sensor submersed in water reads 150, in dry air 660.
var testCal = Calibration{Wet: 150, Dry: 660}

func TestPercentBoundaries(t *testing.T) {
	if got := testCal.Percent(150); got != 99 {
		t.Errorf("wet calibration point: expected 99, got %d", got)
	}
	if got := testCal.Percent(660); got != 0 {
		t.Errorf("dry calibration point: expected 0, got %d", got)
	}
}

func TestPercentSaturatesOutOfRange(t *testing.T) {
	// Below the wet point and above the dry point the conversion clamps
	// instead of failing.
	for _, raw := range []int{0, 50, 100, 149} {
		if got := testCal.Percent(raw); got != 99 {
			t.Errorf("raw %d: expected saturation at 99, got %d", raw, got)
		}
	}
	for _, raw := range []int{661, 700, 1023} {
		if got := testCal.Percent(raw); got != 0 {
			t.Errorf("raw %d: expected saturation at 0, got %d", raw, got)
		}
	}
}

func TestPercentKnownPoints(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{150, 99}, // 100% clamps to the display ceiling
		{405, 50}, // midpoint
		{500, 31},
		{300, 70},
		{640, 3},
		{655, 0}, // 0.98% truncates
		{160, 98},
	}
	for _, tt := range tests {
		if got := testCal.Percent(tt.raw); got != tt.want {
			t.Errorf("Percent(%d): expected %d, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestPercentMonotonicNonIncreasing(t *testing.T) {
	// Raw value rises as soil dries, so percent must never rise with raw.
	prev := testCal.Percent(0)
	for raw := 1; raw <= 1023; raw++ {
		got := testCal.Percent(raw)
		if got > prev {
			t.Fatalf("Percent(%d)=%d exceeds Percent(%d)=%d", raw, got, raw-1, prev)
		}
		prev = got
	}
}

func TestPercentIdempotent(t *testing.T) {
	for _, raw := range []int{0, 150, 405, 660, 1023} {
		first := testCal.Percent(raw)
		second := testCal.Percent(raw)
		if first != second {
			t.Errorf("Percent(%d): %d then %d", raw, first, second)
		}
	}
}

func TestReferencePercent(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{0, 0},
		{255, 25},
		{400, 40},
		{999, 99},
		{1023, 102}, // top of the dial sits above any reachable level
	}
	for _, tt := range tests {
		if got := ReferencePercent(tt.raw); got != tt.want {
			t.Errorf("ReferencePercent(%d): expected %d, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestChanged(t *testing.T) {
	tests := []struct {
		prev, next, tolerance int
		want                  bool
	}{
		{50, 50, 0, false},
		{50, 50, 2, false},
		{50, 51, 0, true},
		{50, 52, 2, false}, // at tolerance is not a change
		{50, 53, 2, true},
		{53, 50, 2, true}, // symmetric
		{52, 50, 2, false},
		{0, 99, 2, true},
	}
	for _, tt := range tests {
		if got := Changed(tt.prev, tt.next, tt.tolerance); got != tt.want {
			t.Errorf("Changed(%d, %d, %d): expected %v, got %v",
				tt.prev, tt.next, tt.tolerance, tt.want, got)
		}
	}
}

func TestChangedSymmetric(t *testing.T) {
	for prev := 0; prev <= 99; prev += 7 {
		for next := 0; next <= 99; next += 5 {
			for _, tol := range []int{0, 1, 2, 10} {
				a := Changed(prev, next, tol)
				b := Changed(next, prev, tol)
				if a != b {
					t.Fatalf("Changed(%d, %d, %d)=%v but Changed(%d, %d, %d)=%v",
						prev, next, tol, a, next, prev, tol, b)
				}
			}
		}
	}
}
