package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"github.com/banshee-data/sbet/internal/config"
	"github.com/banshee-data/sbet/sbet"
)

// newFlagSet returns a FlagSet that reports errors instead of exiting.
func newFlagSet(e *env, name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: sbet %s %s\n\nOptions:\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses flags that may appear before, between or after
// positional arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				return nil, err
			}
			return nil, usagef("%v", err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// expectArgs checks the positional argument count.
func expectArgs(fs *flag.FlagSet, got []string, names ...string) error {
	if len(got) != len(names) {
		fs.Usage()
		return usagef("expected %d argument(s) %v, got %d", len(names), names, len(got))
	}
	return nil
}

// setFlags returns the names of flags given on the command line, so config
// values are only overridden by explicit flags.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// loadConfig resolves the --config flag value.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// openInput opens an SBET file through the env's file system.
func openInput(e *env, path string) (*sbet.Reader, io.Closer, error) {
	f, err := e.fsys.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return sbet.NewBufferedReader(f), f, nil
}

// readInput reads every record of an SBET file.
func readInput(e *env, path string) ([]sbet.Record, error) {
	r, c, err := openInput(e, path)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// bufferedStdout wraps stdout for line-heavy output. The caller must Flush.
func bufferedStdout(e *env) *bufio.Writer {
	return bufio.NewWriterSize(e.stdout, 64*1024)
}
