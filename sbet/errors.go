package sbet

import (
	"errors"
	"fmt"
)

// Kind categorises codec failures so callers can branch on them.
type Kind string

const (
	// KindIO means the underlying byte source or sink failed.
	KindIO Kind = "io"
	// KindMalformed means the stream ended partway through a record.
	KindMalformed Kind = "malformed"
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrIO        = errors.New("sbet: i/o error")
	ErrMalformed = errors.New("sbet: malformed record")
)

// Error is returned by Reader and Writer for every failure other than the
// clean end of a stream.
type Error struct {
	Kind Kind
	// Op is "read" or "write".
	Op string
	// Record is the zero-based index of the record being processed.
	Record int
	// Got is the number of bytes of the record that were transferred
	// before the failure. Zero for write errors.
	Got int
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMalformed:
		return fmt.Sprintf("sbet: %s record %d: truncated after %d of %d bytes: %v",
			e.Op, e.Record, e.Got, RecordSize, e.Err)
	default:
		return fmt.Sprintf("sbet: %s record %d: %v", e.Op, e.Record, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrMalformed:
		return e.Kind == KindMalformed
	}
	return false
}

// IsMalformed reports whether err is a truncated-record error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}
