// Package csvexport renders SBET records as CSV text.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/banshee-data/sbet/internal/units"
	"github.com/banshee-data/sbet/sbet"
)

// angular marks fields stored in radians or radians per second.
var angular = [sbet.FieldCount]bool{
	1: true, 2: true, // latitude, longitude
	7: true, 8: true, 9: true, 10: true, // roll, pitch, heading, wander
	14: true, 15: true, 16: true, // angular rates
}

// Options controls how records are rendered.
type Options struct {
	// AngleUnit is units.Radians (default) or units.Degrees. It applies to
	// positions, attitude and angular rates.
	AngleUnit string
	// Precision is the number of digits after the decimal point, or -1 for
	// the shortest representation that round-trips.
	Precision int
	// Decimate keeps every Nth record, starting with the first. Values
	// below 1 keep every record.
	Decimate int
}

// DefaultOptions returns lossless radian output of every record.
func DefaultOptions() Options {
	return Options{AngleUnit: units.Radians, Precision: -1, Decimate: 1}
}

// Writer writes one CSV row per record after a header row of field names.
type Writer struct {
	csv  *csv.Writer
	opts Options

	seen    int
	written int
	header  bool
	row     []string
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer, opts Options) *Writer {
	if opts.Decimate < 1 {
		opts.Decimate = 1
	}
	return &Writer{
		csv:  csv.NewWriter(w),
		opts: opts,
		row:  make([]string, sbet.FieldCount),
	}
}

// Header returns a fresh copy of the CSV header columns in record field order.
func Header() []string {
	return slices.Clone(sbet.FieldNames[:])
}

// WriteHeader writes the header row. Write calls it automatically if it has
// not been written yet.
func (w *Writer) WriteHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	if err := w.csv.Write(Header()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	return nil
}

// Write renders rec unless decimation skips it.
func (w *Writer) Write(rec sbet.Record) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	skip := w.seen%w.opts.Decimate != 0
	w.seen++
	if skip {
		return nil
	}

	for i, v := range rec.Fields() {
		if angular[i] {
			v = units.ConvertAngle(v, w.opts.AngleUnit)
		}
		w.row[i] = strconv.FormatFloat(v, 'f', w.opts.Precision, 64)
	}
	if err := w.csv.Write(w.row); err != nil {
		return fmt.Errorf("failed to write csv row %d: %w", w.written, err)
	}
	w.written++
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// Written returns the number of data rows written.
func (w *Writer) Written() int {
	return w.written
}

// Export drains r into w as CSV and flushes. It returns the number of data
// rows written. The header is written even when r is empty.
func Export(r *sbet.Reader, w io.Writer, opts Options) (int, error) {
	cw := NewWriter(w, opts)
	if err := cw.WriteHeader(); err != nil {
		return 0, err
	}
	for rec, err := range r.All() {
		if err != nil {
			cw.Flush()
			return cw.Written(), err
		}
		if err := cw.Write(rec); err != nil {
			return cw.Written(), err
		}
	}
	return cw.Written(), cw.Flush()
}
