package timeutil

import (
	"math"
	"time"
)

// GPSEpoch is the start of GPS week 0.
var GPSEpoch = time.Date(1980, time.January, 6, 0, 0, 0, 0, time.UTC)

// SecondsPerWeek is the length of a GPS week.
const SecondsPerWeek = 7 * 24 * 60 * 60

// LeapSeconds is GPS minus UTC since 2017-01-01.
const LeapSeconds = 18

// TimeOfWeekToUTC converts GPS week and seconds of week to UTC, subtracting
// leapSeconds. Seconds of week outside [0, SecondsPerWeek) roll into the
// neighbouring week.
func TimeOfWeekToUTC(week int, sow float64, leapSeconds int) time.Time {
	whole, frac := math.Modf(sow)
	t := GPSEpoch.AddDate(0, 0, 7*week)
	t = t.Add(time.Duration(whole) * time.Second)
	t = t.Add(time.Duration(math.Round(frac*1e9)) * time.Nanosecond)
	return t.Add(-time.Duration(leapSeconds) * time.Second)
}

// WeekOf returns the GPS week and seconds of week for a UTC instant.
func WeekOf(utc time.Time, leapSeconds int) (week int, sow float64) {
	gps := utc.Add(time.Duration(leapSeconds) * time.Second).Sub(GPSEpoch)
	week = int(gps / (SecondsPerWeek * time.Second))
	rem := gps - time.Duration(week)*SecondsPerWeek*time.Second
	return week, rem.Seconds()
}
