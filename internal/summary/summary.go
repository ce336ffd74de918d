// Package summary computes descriptive statistics over a trajectory.
package summary

import (
	"errors"
	"math"
	"sort"

	"github.com/banshee-data/sbet/sbet"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// gapFactor is the multiple of the median sample interval above which an
// interval is counted as a gap.
const gapFactor = 2.0

// Range holds the extent and spread of one quantity.
type Range struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Summary describes a trajectory. Angles are radians and speeds m/s.
type Summary struct {
	Records   int     `json:"records"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration_s"`

	// MedianInterval is the median spacing between consecutive epochs.
	MedianInterval float64 `json:"median_interval_s"`
	RateHz         float64 `json:"rate_hz"`
	Gaps           int     `json:"gaps"`
	LargestGap     float64 `json:"largest_gap_s"`
	// Backwards counts epochs whose time is not after the previous one.
	Backwards int `json:"backwards"`

	Latitude    Range `json:"latitude"`
	Longitude   Range `json:"longitude"`
	Altitude    Range `json:"altitude"`
	GroundSpeed Range `json:"ground_speed"`

	// TrailingBytes is the size of an incomplete final record, if any.
	TrailingBytes int `json:"trailing_bytes"`
}

// GroundSpeed returns the horizontal speed of rec in m/s.
func GroundSpeed(rec sbet.Record) float64 {
	return math.Hypot(rec.XVelocity, rec.YVelocity)
}

// Compute summarises records, which are expected in time order.
func Compute(records []sbet.Record) Summary {
	s := Summary{Records: len(records)}
	if len(records) == 0 {
		return s
	}

	n := len(records)
	lat := make([]float64, n)
	lon := make([]float64, n)
	alt := make([]float64, n)
	speed := make([]float64, n)
	for i, r := range records {
		lat[i] = r.Latitude
		lon[i] = r.Longitude
		alt[i] = r.Altitude
		speed[i] = GroundSpeed(r)
	}
	s.Latitude = rangeOf(lat)
	s.Longitude = rangeOf(lon)
	s.Altitude = rangeOf(alt)
	s.GroundSpeed = rangeOf(speed)

	s.StartTime = records[0].Time
	s.EndTime = records[n-1].Time
	s.Duration = s.EndTime - s.StartTime

	if n < 2 {
		return s
	}
	intervals := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		dt := records[i].Time - records[i-1].Time
		if dt <= 0 {
			s.Backwards++
			continue
		}
		intervals = append(intervals, dt)
	}
	if len(intervals) == 0 {
		return s
	}

	sorted := append([]float64(nil), intervals...)
	sort.Float64s(sorted)
	s.MedianInterval = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if s.MedianInterval > 0 {
		s.RateHz = 1 / s.MedianInterval
	}
	for _, dt := range intervals {
		if dt > gapFactor*s.MedianInterval {
			s.Gaps++
			s.LargestGap = math.Max(s.LargestGap, dt)
		}
	}
	return s
}

// FromReader drains r and summarises what it read. A truncated final record
// is reported in TrailingBytes rather than as an error; source failures are
// returned.
func FromReader(r *sbet.Reader) (Summary, error) {
	records, err := r.ReadAll()
	s := Compute(records)
	if err != nil {
		var serr *sbet.Error
		if errors.As(err, &serr) && serr.Kind == sbet.KindMalformed {
			s.TrailingBytes = serr.Got
			return s, nil
		}
		return s, err
	}
	return s, nil
}

func rangeOf(v []float64) Range {
	mean, std := stat.MeanStdDev(v, nil)
	if len(v) < 2 {
		std = 0
	}
	return Range{
		Min:    floats.Min(v),
		Max:    floats.Max(v),
		Mean:   mean,
		StdDev: std,
	}
}
