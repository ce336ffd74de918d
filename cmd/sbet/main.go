// Command sbet inspects, converts and trims SBET trajectory files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/sbet/internal/fsutil"
	"github.com/banshee-data/sbet/internal/monitoring"
	"github.com/banshee-data/sbet/internal/version"
)

// env carries the process streams and file system a command runs against.
type env struct {
	stdout io.Writer
	stderr io.Writer
	fsys   fsutil.FileSystem
}

// usageError marks bad invocations, which exit with status 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

type command struct {
	name    string
	summary string
	run     func(e *env, args []string) error
}

var commands = []command{
	{"to-csv", "Write records as CSV to standard output", runToCSV},
	{"filter", "Copy records within a time range to a new file", runFilter},
	{"info", "Summarise a trajectory", runInfo},
	{"interpolate", "Print the trajectory state at a given time", runInterpolate},
	{"plot", "Draw a ground track (.png/.svg/.pdf) or altitude profile (.html)", runPlot},
	{"to-sqlite", "Import records into a SQLite database", runToSQLite},
	{"version", "Show version information", runVersion},
}

func main() {
	os.Exit(run(os.Args[1:], &env{stdout: os.Stdout, stderr: os.Stderr, fsys: fsutil.OSFileSystem{}}))
}

// run executes one CLI invocation and returns the process exit status.
func run(args []string, e *env) int {
	global := flag.NewFlagSet("sbet", flag.ContinueOnError)
	global.SetOutput(e.stderr)
	verbose := global.Bool("v", false, "Verbose logging")
	global.Usage = func() { printUsage(e.stderr) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	restore := monitoring.Install(monitoring.NewZapLogger(e.stderr, *verbose))
	defer restore()

	if global.NArg() < 1 {
		printUsage(e.stderr)
		return 2
	}

	name, rest := global.Arg(0), global.Args()[1:]
	if name == "help" {
		printUsage(e.stdout)
		return 0
	}
	for _, c := range commands {
		if c.name != name {
			continue
		}
		monitoring.Debugf("running %s %v", name, rest)
		err := c.run(e, rest)
		var uerr *usageError
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.As(err, &uerr):
			fmt.Fprintf(e.stderr, "sbet %s: %v\n", name, err)
			return 2
		default:
			fmt.Fprintf(e.stderr, "sbet %s: %v\n", name, err)
			return 1
		}
	}

	fmt.Fprintf(e.stderr, "Unknown command: %s\n\n", name)
	printUsage(e.stderr)
	return 2
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `sbet - Smoothed Best Estimate of Trajectory file tool

Usage: sbet [-v] <command> [options] <args>

Commands:`)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w, `
Options common to most commands:
  --config <file>   JSON defaults file (also read from $SBET_CONFIG)

Examples:
  sbet to-csv --degrees flight.sbet > flight.csv
  sbet filter flight.sbet line7.sbet --start-time 385200 --end-time 385900
  sbet info --json flight.sbet
  sbet plot --out track.png flight.sbet

Run 'sbet <command> -h' for command options.`)
}

func runVersion(e *env, args []string) error {
	if len(args) > 0 {
		return usagef("version takes no arguments")
	}
	fmt.Fprintln(e.stdout, version.String())
	return nil
}
