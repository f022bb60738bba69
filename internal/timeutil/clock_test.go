package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	before := time.Now()
	got := RealClock{}.Now()
	if got.Before(before) || got.After(time.Now()) {
		t.Errorf("RealClock.Now() = %v, outside [%v, now]", got, before)
	}
}

func TestRealClock_Since(t *testing.T) {
	if d := (RealClock{}).Since(time.Now().Add(-time.Hour)); d < time.Hour {
		t.Errorf("RealClock.Since() = %v, want >= 1h", d)
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(start)

	if !c.Now().Equal(start) {
		t.Errorf("Now() = %v, want %v", c.Now(), start)
	}

	c.Advance(90 * time.Second)
	if d := c.Since(start); d != 90*time.Second {
		t.Errorf("Since() = %v, want 90s", d)
	}

	later := start.Add(24 * time.Hour)
	c.Set(later)
	if !c.Now().Equal(later) {
		t.Errorf("Now() after Set = %v, want %v", c.Now(), later)
	}
}
