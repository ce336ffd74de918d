package sbet

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// TimeRange selects records by their Time field. Both bounds are inclusive;
// use math.Inf for an open end.
type TimeRange struct {
	Start float64
	End   float64
}

// AllTime returns a range that matches every finite time.
func AllTime() TimeRange {
	return TimeRange{Start: math.Inf(-1), End: math.Inf(1)}
}

// Contains reports whether t lies within [Start, End].
func (tr TimeRange) Contains(t float64) bool {
	return t >= tr.Start && t <= tr.End
}

// Validate rejects NaN bounds and inverted ranges.
func (tr TimeRange) Validate() error {
	if math.IsNaN(tr.Start) || math.IsNaN(tr.End) {
		return errors.New("time range bounds must not be NaN")
	}
	if tr.Start > tr.End {
		return fmt.Errorf("start time %g is after end time %g", tr.Start, tr.End)
	}
	return nil
}

// FilterRecords copies records whose time falls within tr from r to w,
// preserving their order. It returns how many records were kept and how many
// were read. The Writer is not flushed.
func FilterRecords(r *Reader, w *Writer, tr TimeRange) (kept, seen int, err error) {
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return kept, seen, nil
		}
		if err != nil {
			return kept, seen, err
		}
		seen++
		if !tr.Contains(rec.Time) {
			continue
		}
		if err := w.Write(rec); err != nil {
			return kept, seen, err
		}
		kept++
	}
}
