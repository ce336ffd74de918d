package main

import (
	"github.com/banshee-data/sbet/internal/csvexport"
	"github.com/banshee-data/sbet/internal/monitoring"
	"github.com/banshee-data/sbet/internal/units"
)

func runToCSV(e *env, args []string) error {
	fs := newFlagSet(e, "to-csv", "[options] <infile>")
	degrees := fs.Bool("degrees", false, "Write angles in degrees instead of radians")
	decimate := fs.Int("decimate", 1, "Write every Nth record")
	precision := fs.Int("precision", -1, "Digits after the decimal point (-1 for shortest round-trip)")
	configFile := fs.String("config", "", "Path to JSON config file")

	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(fs, pos, "infile"); err != nil {
		return err
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	opts := csvexport.Options{
		AngleUnit: cfg.GetAngleUnit(),
		Precision: cfg.GetCSVPrecision(),
		Decimate:  cfg.GetDecimate(),
	}
	set := setFlags(fs)
	if set["degrees"] {
		opts.AngleUnit = units.Radians
		if *degrees {
			opts.AngleUnit = units.Degrees
		}
	}
	if set["decimate"] {
		if *decimate < 1 {
			return usagef("--decimate must be at least 1, got %d", *decimate)
		}
		opts.Decimate = *decimate
	}
	if set["precision"] {
		if *precision < -1 || *precision > 17 {
			return usagef("--precision must be between -1 and 17, got %d", *precision)
		}
		opts.Precision = *precision
	}

	r, c, err := openInput(e, pos[0])
	if err != nil {
		return err
	}
	defer c.Close()

	out := bufferedStdout(e)
	n, err := csvexport.Export(r, out, opts)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}
	monitoring.Debugf("wrote %d of %d records as CSV", n, r.Count())
	return nil
}
