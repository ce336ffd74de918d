package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/sbet/internal/monitoring"
	"github.com/banshee-data/sbet/internal/plot"
)

func runPlot(e *env, args []string) error {
	fs := newFlagSet(e, "plot", "[--out F] [--title S] <infile>")
	out := fs.String("out", "", "Output file; .png/.svg/.pdf/.jpg draw the ground track, .html the altitude profile (default <infile>.png)")
	title := fs.String("title", "", "Chart title (default: input file name)")
	configFile := fs.String("config", "", "Path to JSON config file")

	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(fs, pos, "infile"); err != nil {
		return err
	}
	inPath := pos[0]

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".png"
	}
	if filepath.Clean(outPath) == filepath.Clean(inPath) {
		return usagef("output %s would overwrite the input; use --out", outPath)
	}
	format, err := plot.Format(outPath)
	if err != nil {
		return usagef("%v", err)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	opts := plot.Options{
		Title:     *title,
		Width:     cfg.GetPlotWidth(),
		Height:    cfg.GetPlotHeight(),
		MaxPoints: cfg.GetPlotMaxPoints(),
	}
	if opts.Title == "" {
		opts.Title = filepath.Base(inPath)
	}

	records, err := readInput(e, inPath)
	if err != nil {
		return err
	}

	f, err := e.fsys.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	err = plot.Render(f, format, records, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := e.fsys.Remove(outPath); rerr != nil {
			monitoring.Logf("failed to remove partial output %s: %v", outPath, rerr)
		}
		return err
	}
	fmt.Fprintf(e.stdout, "Wrote %s (%d records)\n", outPath, len(records))
	return nil
}
