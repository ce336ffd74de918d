package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/sbet/internal/summary"
	"github.com/banshee-data/sbet/internal/timeutil"
	"github.com/banshee-data/sbet/internal/units"
)

func runInfo(e *env, args []string) error {
	fs := newFlagSet(e, "info", "[--json] <infile>")
	asJSON := fs.Bool("json", false, "Print the summary as JSON")
	speedUnit := fs.String("speed-unit", "", "Ground speed units ("+units.ValidSpeedUnitsString()+")")
	gpsWeek := fs.Int("gps-week", -1, "GPS week of the data, to print UTC start and end times")
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
	set := setFlags(fs)
	unit := cfg.GetSpeedUnit()
	if set["speed-unit"] {
		if !units.IsValidSpeed(*speedUnit) {
			return usagef("invalid --speed-unit %q (want one of %s)", *speedUnit, units.ValidSpeedUnitsString())
		}
		unit = *speedUnit
	}
	week := cfg.GetGPSWeek()
	if set["gps-week"] {
		week = *gpsWeek
	}

	r, c, err := openInput(e, pos[0])
	if err != nil {
		return err
	}
	defer c.Close()

	s, err := summary.FromReader(r)
	if err != nil {
		return fmt.Errorf("%s: %w", pos[0], err)
	}

	if *asJSON {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	printSummary(e.stdout, pos[0], s, unit, week, cfg.GetLeapSeconds())
	return nil
}

func printSummary(w io.Writer, name string, s summary.Summary, speedUnit string, week, leap int) {
	fmt.Fprintf(w, "File:        %s\n", name)
	fmt.Fprintf(w, "Records:     %d\n", s.Records)
	if s.TrailingBytes > 0 {
		fmt.Fprintf(w, "Warning:     %d trailing bytes do not form a complete record\n", s.TrailingBytes)
	}
	if s.Records == 0 {
		return
	}

	fmt.Fprintf(w, "Time:        %.3f .. %.3f s (%s)\n", s.StartTime, s.EndTime,
		time.Duration(s.Duration*float64(time.Second)).Round(time.Millisecond))
	if week >= 0 {
		layout := "2006-01-02 15:04:05.000 MST"
		fmt.Fprintf(w, "UTC:         %s .. %s\n",
			timeutil.TimeOfWeekToUTC(week, s.StartTime, leap).Format(layout),
			timeutil.TimeOfWeekToUTC(week, s.EndTime, leap).Format(layout))
	}
	if s.RateHz > 0 {
		fmt.Fprintf(w, "Rate:        %.2f Hz (median interval %.6f s)\n", s.RateHz, s.MedianInterval)
	}
	if s.Gaps > 0 {
		fmt.Fprintf(w, "Gaps:        %d (largest %.3f s)\n", s.Gaps, s.LargestGap)
	}
	if s.Backwards > 0 {
		fmt.Fprintf(w, "Backwards:   %d epochs not after their predecessor\n", s.Backwards)
	}

	deg := func(rad float64) float64 { return units.ConvertAngle(rad, units.Degrees) }
	fmt.Fprintf(w, "Latitude:    %.8f .. %.8f deg\n", deg(s.Latitude.Min), deg(s.Latitude.Max))
	fmt.Fprintf(w, "Longitude:   %.8f .. %.8f deg\n", deg(s.Longitude.Min), deg(s.Longitude.Max))
	fmt.Fprintf(w, "Altitude:    %.3f .. %.3f m (mean %.3f, sd %.3f)\n",
		s.Altitude.Min, s.Altitude.Max, s.Altitude.Mean, s.Altitude.StdDev)

	spd := func(mps float64) float64 { return units.ConvertSpeed(mps, speedUnit) }
	fmt.Fprintf(w, "Speed:       %.2f .. %.2f %s (mean %.2f)\n",
		spd(s.GroundSpeed.Min), spd(s.GroundSpeed.Max), speedUnit, spd(s.GroundSpeed.Mean))
}
