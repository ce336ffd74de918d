package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/banshee-data/sbet/internal/monitoring"
	"github.com/banshee-data/sbet/internal/trajdb"
)

func runToSQLite(e *env, args []string) error {
	fs := newFlagSet(e, "to-sqlite", "[--db F] [--label S] <infile>")
	dbPath := fs.String("db", "", "SQLite database file (default from config, else trajectories.db)")
	label := fs.String("label", "", "Label for this import (default: input file name)")
	configFile := fs.String("config", "", "Path to JSON config file")

	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(fs, pos, "infile"); err != nil {
		return err
	}
	inPath := pos[0]

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	path := cfg.GetDatabasePath()
	if *dbPath != "" {
		path = *dbPath
	}
	name := *label
	if name == "" {
		name = filepath.Base(inPath)
	}

	r, c, err := openInput(e, inPath)
	if err != nil {
		return err
	}
	defer c.Close()

	db, err := trajdb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	imp, err := db.ImportRecords(ctx, name, inPath, r)
	if err != nil {
		return err
	}
	monitoring.Debugf("import %s: %d records into %s", imp.ID, imp.RecordCount, path)
	fmt.Fprintf(e.stdout, "Imported %d records from %s into %s (import %s)\n", imp.RecordCount, inPath, path, imp.ID)
	return nil
}
