package main

import (
	"github.com/banshee-data/sbet/internal/csvexport"
	"github.com/banshee-data/sbet/internal/units"
	"github.com/banshee-data/sbet/sbet"
)

func runInterpolate(e *env, args []string) error {
	fs := newFlagSet(e, "interpolate", "--time T [--degrees] <infile>")
	var at optionalFloat
	fs.Var(&at, "time", "GPS time of week (s) to interpolate at")
	degrees := fs.Bool("degrees", false, "Write angles in degrees instead of radians")
	configFile := fs.String("config", "", "Path to JSON config file")

	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(fs, pos, "infile"); err != nil {
		return err
	}
	if !at.set {
		fs.Usage()
		return usagef("--time is required")
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	opts := csvexport.Options{AngleUnit: cfg.GetAngleUnit(), Precision: cfg.GetCSVPrecision()}
	if setFlags(fs)["degrees"] {
		opts.AngleUnit = units.Radians
		if *degrees {
			opts.AngleUnit = units.Degrees
		}
	}

	records, err := readInput(e, pos[0])
	if err != nil {
		return err
	}
	rec, err := sbet.Interpolate(records, at.value)
	if err != nil {
		return err
	}

	cw := csvexport.NewWriter(e.stdout, opts)
	if err := cw.Write(rec); err != nil {
		return err
	}
	return cw.Flush()
}
