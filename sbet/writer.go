package sbet

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Writer serialises Records to a byte sink through a buffer. Buffered bytes
// reach the sink only on Flush or Close, so callers must check the error
// returned by one of them. A Writer is not safe for concurrent use.
type Writer struct {
	bw     *bufio.Writer
	closer io.Closer

	count  int
	err    error
	closed bool
}

// NewWriter returns a Writer over dst. Close flushes but does not close dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(dst, 64*RecordSize)}
}

// Create creates or truncates the named file and returns a Writer that owns
// it. Close flushes and closes the file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create sbet file: %w", err)
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

// Write encodes rec and appends it to the stream. After any failure the
// Writer stops accepting records and returns the first error again.
func (w *Writer) Write(rec Record) error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		// Not sticky, so Close keeps reporting its own result.
		return &Error{Kind: KindIO, Op: "write", Record: w.count, Err: os.ErrClosed}
	}

	b := EncodeRecord(rec)
	if _, err := w.bw.Write(b[:]); err != nil {
		return w.fail(err)
	}
	w.count++
	return nil
}

// WriteAll writes every record in order, stopping at the first failure.
func (w *Writer) WriteAll(records []Record) error {
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush pushes buffered records to the sink.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Close flushes the buffer and, for Writers from Create, closes the file.
// The file is closed even when the flush fails. Calling Close again returns
// the same result.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true

	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = w.fail(cerr)
		}
		w.closer = nil
	}
	return err
}

// Count returns the number of records accepted by Write. Records still in the
// buffer are included.
func (w *Writer) Count() int {
	return w.count
}

func (w *Writer) fail(err error) error {
	w.err = &Error{Kind: KindIO, Op: "write", Record: w.count, Err: err}
	return w.err
}
