package sbet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
)

// Reader yields Records from a byte stream, one at a time, in stream order.
// It is forward-only; re-reading requires a new Reader over a fresh source.
// A Reader is not safe for concurrent use.
type Reader struct {
	src    io.Reader
	closer io.Closer
	hint   int64

	buf   [RecordSize]byte
	count int
	err   error
}

// NewReader returns a Reader over src. No buffering is added; wrap src in a
// bufio.Reader when it is an unbuffered file or socket.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src, hint: sizeHint(src)}
}

// NewBufferedReader returns a Reader over src with a read buffer of 64
// records. The size of src, when known, is still used by ReadAll.
func NewBufferedReader(src io.Reader) *Reader {
	return &Reader{src: bufio.NewReaderSize(src, 64*RecordSize), hint: sizeHint(src)}
}

// Open opens the named SBET file for buffered reading. The caller must Close
// the returned Reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sbet file: %w", err)
	}
	r := NewBufferedReader(f)
	r.closer = f
	return r, nil
}

// Next returns the next record. It returns io.EOF, unwrapped, when the stream
// ends on a record boundary, and an *Error for a truncated record or a source
// failure. Once Next has returned an error it keeps returning it.
func (r *Reader) Next() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}

	n, err := io.ReadFull(r.src, r.buf[:])
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && n == 0:
		r.err = io.EOF
		return Record{}, r.err
	case errors.Is(err, io.ErrUnexpectedEOF):
		r.err = &Error{Kind: KindMalformed, Op: "read", Record: r.count, Got: n, Err: io.ErrUnexpectedEOF}
		return Record{}, r.err
	default:
		r.err = &Error{Kind: KindIO, Op: "read", Record: r.count, Got: n, Err: err}
		return Record{}, r.err
	}

	r.count++
	return decode(r.buf[:]), nil
}

// ReadAll reads until the end of the stream. On failure it returns the
// records decoded before the failing one together with the error.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	if r.hint > 0 {
		records = make([]Record, 0, r.hint/RecordSize)
	}
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// All returns an iterator over the remaining records. Iteration stops after
// the first error, which is yielded with a zero Record.
func (r *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Count returns the number of records decoded so far.
func (r *Reader) Count() int {
	return r.count
}

// Close releases the file opened by Open. It is a no-op for Readers built
// with NewReader; the caller keeps ownership of that source.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// sizeHint returns the byte length of src when it is cheaply known.
func sizeHint(src io.Reader) int64 {
	switch s := src.(type) {
	case interface{ Len() int }:
		return int64(s.Len())
	case interface{ Stat() (fs.FileInfo, error) }:
		fi, err := s.Stat()
		if err != nil || !fi.Mode().IsRegular() {
			return 0
		}
		return fi.Size()
	}
	return 0
}
