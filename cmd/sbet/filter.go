package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"github.com/banshee-data/sbet/internal/monitoring"
	"github.com/banshee-data/sbet/sbet"
)

// optionalFloat is a flag.Value that records whether it was given.
type optionalFloat struct {
	value float64
	set   bool
}

func (f *optionalFloat) String() string {
	if !f.set {
		return ""
	}
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return fmt.Errorf("invalid number %q", s)
	}
	f.value, f.set = v, true
	return nil
}

func runFilter(e *env, args []string) error {
	fs := newFlagSet(e, "filter", "[--start-time T] [--end-time T] <infile> <outfile>")
	var start, end optionalFloat
	fs.Var(&start, "start-time", "Keep records at or after this GPS time (s)")
	fs.Var(&end, "end-time", "Keep records at or before this GPS time (s)")
	fs.Var(&end, "stop-time", "Alias of --end-time")

	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(fs, pos, "infile", "outfile"); err != nil {
		return err
	}
	inPath, outPath := pos[0], pos[1]
	if filepath.Clean(inPath) == filepath.Clean(outPath) {
		return usagef("input and output must be different files")
	}

	tr := sbet.AllTime()
	if start.set {
		tr.Start = start.value
	}
	if end.set {
		tr.End = end.value
	}
	if err := tr.Validate(); err != nil {
		return usagef("%v", err)
	}

	r, c, err := openInput(e, inPath)
	if err != nil {
		return err
	}
	defer c.Close()

	f, err := e.fsys.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	w := sbet.NewWriter(f)
	kept, seen, err := sbet.FilterRecords(r, w, tr)
	if err == nil {
		err = w.Close()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := e.fsys.Remove(outPath); rerr != nil {
			monitoring.Logf("failed to remove partial output %s: %v", outPath, rerr)
		}
		return err
	}

	monitoring.Debugf("filter %s -> %s: kept %d of %d records", inPath, outPath, kept, seen)
	fmt.Fprintf(e.stdout, "Kept %d of %d records\n", kept, seen)
	return nil
}
