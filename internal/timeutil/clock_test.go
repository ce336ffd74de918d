package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	d := clock.Since(past)

	if d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if !clock.Now().Equal(start) {
		t.Errorf("Now() = %v, want %v", clock.Now(), start)
	}

	clock.Advance(90 * time.Second)
	if got := clock.Since(start); got != 90*time.Second {
		t.Errorf("Since() = %v, want 90s", got)
	}

	later := start.Add(time.Hour)
	clock.Set(later)
	if !clock.Now().Equal(later) {
		t.Errorf("Now() after Set = %v, want %v", clock.Now(), later)
	}
}

func TestTimeOfWeekToUTC(t *testing.T) {
	tests := []struct {
		name string
		week int
		sow  float64
		leap int
		want time.Time
	}{
		{"epoch", 0, 0, 0, GPSEpoch},
		{"week 2000 start", 2000, 0, 0, time.Date(2018, time.May, 6, 0, 0, 0, 0, time.UTC)},
		{"with leap seconds", 2000, 18, 18, time.Date(2018, time.May, 6, 0, 0, 0, 0, time.UTC)},
		{"fractional", 2000, 3600.25, 0, time.Date(2018, time.May, 6, 1, 0, 0, 250000000, time.UTC)},
		{"roll into next week", 0, SecondsPerWeek + 1, 0, GPSEpoch.AddDate(0, 0, 7).Add(time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeOfWeekToUTC(tt.week, tt.sow, tt.leap)
			if !got.Equal(tt.want) {
				t.Errorf("TimeOfWeekToUTC(%d, %v, %d) = %v, want %v", tt.week, tt.sow, tt.leap, got, tt.want)
			}
		})
	}
}

func TestWeekOf(t *testing.T) {
	utc := time.Date(2018, time.May, 7, 0, 0, 0, 0, time.UTC)
	week, sow := WeekOf(utc, LeapSeconds)
	if week != 2000 {
		t.Errorf("week = %d, want 2000", week)
	}
	if sow != 86400+LeapSeconds {
		t.Errorf("sow = %v, want %d", sow, 86400+LeapSeconds)
	}

	back := TimeOfWeekToUTC(week, sow, LeapSeconds)
	if !back.Equal(utc) {
		t.Errorf("round trip = %v, want %v", back, utc)
	}
}
