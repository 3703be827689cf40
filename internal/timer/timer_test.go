package timer

import (
	"testing"
	"time"
)

func TestFakeRecordsSleeps(t *testing.T) {
	f := &Fake{}

	f.Sleep(8 * time.Second)
	f.Sleep(2 * time.Second)

	if len(f.Slept) != 2 {
		t.Fatalf("expected 2 recorded sleeps, got %d", len(f.Slept))
	}
	if f.Slept[0] != 8*time.Second || f.Slept[1] != 2*time.Second {
		t.Errorf("unexpected sleeps: %v", f.Slept)
	}
	if f.Total() != 10*time.Second {
		t.Errorf("expected total 10s, got %v", f.Total())
	}
}

func TestFakeReset(t *testing.T) {
	f := &Fake{}
	f.Sleep(time.Second)
	f.Reset()

	if len(f.Slept) != 0 {
		t.Errorf("expected no sleeps after reset, got %v", f.Slept)
	}
	if f.Total() != 0 {
		t.Errorf("expected total 0 after reset, got %v", f.Total())
	}
}

func TestRealSleeps(t *testing.T) {
	start := time.Now()
	Real{}.Sleep(10 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("expected at least 10ms elapsed, got %v", elapsed)
	}
}
