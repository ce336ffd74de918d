// Package trajdb stores SBET trajectories in a SQLite database so they can
// be queried with SQL alongside other survey data.
package trajdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/banshee-data/sbet/internal/monitoring"
	"github.com/banshee-data/sbet/internal/timeutil"
	"github.com/banshee-data/sbet/sbet"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrImportNotFound is returned when an import ID does not exist.
var ErrImportNotFound = errors.New("import not found")

// DB wraps a SQLite connection holding imported trajectories.
type DB struct {
	*sql.DB
	clock timeutil.Clock
}

// Import describes one file loaded into the database.
type Import struct {
	ID          string
	Label       string
	SourcePath  string
	RecordCount int
	StartTime   float64
	EndTime     float64
	ImportedAt  time.Time
}

// Open opens or creates the database at path and applies pending schema
// migrations.
func Open(path string) (*DB, error) {
	return OpenWithClock(path, timeutil.RealClock{})
}

// OpenWithClock is Open with an injectable clock for import timestamps.
func OpenWithClock(path string, clock timeutil.Clock) (*DB, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db := &DB{DB: sqlDB, clock: clock}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// epochColumns lists the epochs columns in insert order.
var epochColumns = append([]string{"import_id", "seq"}, sbet.FieldNames[:]...)

var insertEpochSQL = fmt.Sprintf("INSERT INTO epochs (%s) VALUES (%s)",
	strings.Join(epochColumns, ", "),
	strings.TrimSuffix(strings.Repeat("?, ", len(epochColumns)), ", "))

var selectEpochSQL = fmt.Sprintf(
	"SELECT %s FROM epochs WHERE import_id = ? AND time >= ? AND time <= ? ORDER BY seq",
	strings.Join(sbet.FieldNames[:], ", "))

// ImportRecords reads every record from r and stores it under a new import.
// The import is atomic: on any read or write failure nothing is stored.
func (db *DB) ImportRecords(ctx context.Context, label, sourcePath string, r *sbet.Reader) (Import, error) {
	imp := Import{
		ID:         uuid.NewString(),
		Label:      label,
		SourcePath: sourcePath,
		ImportedAt: db.clock.Now().UTC(),
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Import{}, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO imports (import_id, label, source_path, imported_at) VALUES (?, ?, ?, ?)`,
		imp.ID, imp.Label, imp.SourcePath, imp.ImportedAt)
	if err != nil {
		return Import{}, fmt.Errorf("failed to insert import: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertEpochSQL)
	if err != nil {
		return Import{}, fmt.Errorf("failed to prepare epoch insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(epochColumns))
	args[0] = imp.ID
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Import{}, err
		}

		args[1] = imp.RecordCount
		for i, v := range rec.Fields() {
			args[i+2] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return Import{}, fmt.Errorf("failed to insert epoch %d: %w", imp.RecordCount, err)
		}

		if imp.RecordCount == 0 {
			imp.StartTime = rec.Time
		}
		imp.EndTime = rec.Time
		imp.RecordCount++
		if imp.RecordCount%100000 == 0 {
			monitoring.Debugf("imported %d epochs", imp.RecordCount)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE imports SET record_count = ?, start_time = ?, end_time = ? WHERE import_id = ?`,
		imp.RecordCount, imp.StartTime, imp.EndTime, imp.ID)
	if err != nil {
		return Import{}, fmt.Errorf("failed to update import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Import{}, fmt.Errorf("failed to commit import: %w", err)
	}

	monitoring.Logf("imported %d epochs from %s as %s", imp.RecordCount, sourcePath, imp.ID)
	return imp, nil
}

// Imports lists all imports, oldest first.
func (db *DB) Imports(ctx context.Context) ([]Import, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT import_id, label, source_path, record_count,
		       COALESCE(start_time, 0), COALESCE(end_time, 0), imported_at
		FROM imports
		ORDER BY imported_at, import_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var imp Import
		if err := rows.Scan(&imp.ID, &imp.Label, &imp.SourcePath, &imp.RecordCount,
			&imp.StartTime, &imp.EndTime, &imp.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}

// Epochs returns the records of an import whose time falls within tr, in
// their original order.
func (db *DB) Epochs(ctx context.Context, importID string, tr sbet.TimeRange) ([]sbet.Record, error) {
	rows, err := db.QueryContext(ctx, selectEpochSQL, importID, tr.Start, tr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query epochs: %w", err)
	}
	defer rows.Close()

	var out []sbet.Record
	var f [sbet.FieldCount]float64
	dest := make([]any, sbet.FieldCount)
	for i := range f {
		dest[i] = &f[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan epoch: %w", err)
		}
		out = append(out, sbet.RecordFromFields(f))
	}
	return out, rows.Err()
}

// DeleteImport removes an import and its epochs.
func (db *DB) DeleteImport(ctx context.Context, importID string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM imports WHERE import_id = ?`, importID)
	if err != nil {
		return fmt.Errorf("failed to delete import: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrImportNotFound
	}
	return nil
}
