package sbet

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrNoRecords is returned when interpolating over an empty slice.
	ErrNoRecords = errors.New("sbet: no records")
	// ErrSingleRecord is returned when a slice has only one record.
	ErrSingleRecord = errors.New("sbet: only one record")
	// ErrNaNTime is returned when the requested time is NaN.
	ErrNaNTime = errors.New("sbet: interpolation time is NaN")
)

// ExtrapolationError reports a requested time outside the covered span.
type ExtrapolationError struct {
	Time  float64
	First float64
	Last  float64
}

func (e *ExtrapolationError) Error() string {
	if e.Time < e.First {
		return fmt.Sprintf("sbet: extrapolation: %g is before first record time of %g", e.Time, e.First)
	}
	return fmt.Sprintf("sbet: extrapolation: %g is after last record time of %g", e.Time, e.Last)
}

// Interpolate linearly interpolates every field between the two records that
// bracket t. records must be sorted by Time. The result's Time is exactly t.
// Angles are interpolated component-wise with no wrap handling.
func Interpolate(records []Record, t float64) (Record, error) {
	switch len(records) {
	case 0:
		return Record{}, ErrNoRecords
	case 1:
		return Record{}, ErrSingleRecord
	}

	if math.IsNaN(t) {
		return Record{}, ErrNaNTime
	}

	first, last := records[0].Time, records[len(records)-1].Time
	if t < first || t > last {
		return Record{}, &ExtrapolationError{Time: t, First: first, Last: last}
	}

	// Index of the first record at or after t; at least 1 unless t == first.
	i := sort.Search(len(records), func(i int) bool { return records[i].Time >= t })
	switch {
	case i == 0:
		i = 1
	case i == len(records):
		// Only reachable when records are not sorted by Time.
		i = len(records) - 1
	}
	before, after := records[i-1], records[i]

	var factor float64
	if span := after.Time - before.Time; span != 0 {
		factor = (t - before.Time) / span
	}

	a, b := before.Fields(), after.Fields()
	var out [FieldCount]float64
	for k := range out {
		out[k] = a[k] + factor*(b[k]-a[k])
	}
	out[0] = t
	return RecordFromFields(out), nil
}
