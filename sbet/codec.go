package sbet

import (
	"encoding/binary"
	"io"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the record count above which ParseAll splits the
// buffer across goroutines.
const parallelThreshold = 1 << 14

// PutRecord encodes r into the first RecordSize bytes of b.
// It panics if b is shorter than RecordSize.
func PutRecord(b []byte, r Record) {
	_ = b[RecordSize-1]
	for i, v := range r.Fields() {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
}

// EncodeRecord returns the on-disk form of r.
func EncodeRecord(r Record) [RecordSize]byte {
	var b [RecordSize]byte
	PutRecord(b[:], r)
	return b
}

// AppendRecord appends the on-disk form of r to b.
func AppendRecord(b []byte, r Record) []byte {
	for _, v := range r.Fields() {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	return b
}

// DecodeRecord decodes the first RecordSize bytes of b. A shorter slice
// yields a KindMalformed error.
func DecodeRecord(b []byte) (Record, error) {
	if len(b) < RecordSize {
		return Record{}, &Error{Kind: KindMalformed, Op: "read", Got: len(b), Err: io.ErrUnexpectedEOF}
	}
	return decode(b), nil
}

func decode(b []byte) Record {
	var f [FieldCount]float64
	for i := range f {
		f[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return RecordFromFields(f)
}

// ParseAll decodes an in-memory SBET image. Complete records are returned in
// order; a trailing fragment produces a KindMalformed error after them.
// Large buffers are decoded in parallel since every record sits at a fixed
// offset.
func ParseAll(data []byte) ([]Record, error) {
	n := len(data) / RecordSize
	records := make([]Record, n)

	if n < parallelThreshold {
		for i := range records {
			records[i] = decode(data[i*RecordSize:])
		}
	} else {
		workers := runtime.GOMAXPROCS(0)
		chunk := (n + workers - 1) / workers
		var g errgroup.Group
		for start := 0; start < n; start += chunk {
			end := min(start+chunk, n)
			g.Go(func() error {
				for i := start; i < end; i++ {
					records[i] = decode(data[i*RecordSize:])
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if rem := len(data) % RecordSize; rem != 0 {
		return records, &Error{Kind: KindMalformed, Op: "read", Record: n, Got: rem, Err: io.ErrUnexpectedEOF}
	}
	return records, nil
}
