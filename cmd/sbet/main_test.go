package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/banshee-data/sbet/internal/fsutil"
	"github.com/banshee-data/sbet/internal/summary"
	"github.com/banshee-data/sbet/internal/testutil"
	"github.com/banshee-data/sbet/internal/trajdb"
	"github.com/banshee-data/sbet/sbet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	fs     *fsutil.MemoryFileSystem
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("SBET_CONFIG", "")
	return &harness{fs: fsutil.NewMemoryFileSystem()}
}

func (h *harness) run(args ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()
	return run(args, &env{stdout: &h.stdout, stderr: &h.stderr, fsys: h.fs})
}

func (h *harness) csvRows(t *testing.T) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(h.stdout.String())).ReadAll()
	require.NoError(t, err)
	return rows
}

func cell(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return v
}

func threeRecords() []sbet.Record {
	return []sbet.Record{testutil.RecordAt(100), testutil.RecordAt(200), testutil.RecordAt(300)}
}

func TestUsage(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 2, h.run())
	assert.Contains(t, h.stderr.String(), "Usage: sbet")

	assert.Equal(t, 2, h.run("frobnicate"))
	assert.Contains(t, h.stderr.String(), "Unknown command: frobnicate")

	assert.Equal(t, 0, h.run("help"))
	for _, c := range commands {
		assert.Contains(t, h.stdout.String(), c.name)
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 0, h.run("version"))
	assert.Contains(t, h.stdout.String(), "sbet version dev")
	assert.Equal(t, 2, h.run("version", "extra"))
}

func TestToCSV(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("in.sbet", testutil.EncodeRecords(threeRecords()))

	require.Equal(t, 0, h.run("to-csv", "in.sbet"), h.stderr.String())
	rows := h.csvRows(t)
	require.Len(t, rows, 4)
	assert.Equal(t, sbet.FieldNames[:], rows[0])
	assert.Equal(t, "100", rows[1][0])
	assert.InDelta(t, 100.01, cell(t, rows[1][1]), 1e-12)
	assert.Equal(t, "300", rows[3][0])
}

func TestToCSVOptions(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("in.sbet", testutil.EncodeRecords(threeRecords()))

	require.Equal(t, 0, h.run("to-csv", "in.sbet", "--decimate", "2", "--precision", "1", "--degrees"), h.stderr.String())
	rows := h.csvRows(t)
	require.Len(t, rows, 3)
	assert.Equal(t, "100.0", rows[1][0])
	assert.Equal(t, "300.0", rows[2][0])
	// Latitude of 100.01 rad in degrees.
	assert.Equal(t, "5730.2", rows[1][1])

	assert.Equal(t, 2, h.run("to-csv", "--decimate", "0", "in.sbet"))
	assert.Equal(t, 2, h.run("to-csv", "--precision", "40", "in.sbet"))
	assert.Equal(t, 2, h.run("to-csv"))
}

func TestToCSVMalformedInput(t *testing.T) {
	h := newHarness(t)
	data := append(testutil.EncodeRecords(threeRecords()), make([]byte, 10)...)
	h.fs.WriteFile("bad.sbet", data)

	assert.Equal(t, 1, h.run("to-csv", "bad.sbet"))
	assert.Contains(t, h.stderr.String(), "sbet to-csv:")
	assert.Contains(t, h.stderr.String(), "truncated")
}

func TestToCSVMissingFile(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 1, h.run("to-csv", "nope.sbet"))
	assert.Contains(t, h.stderr.String(), "failed to open input")
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []float64
	}{
		{"flags first", []string{"--start-time", "150", "--end-time", "250", "in.sbet", "out.sbet"}, []float64{200}},
		{"flags after positionals", []string{"in.sbet", "out.sbet", "--start-time", "150", "--end-time", "250"}, []float64{200}},
		{"inclusive bounds", []string{"--start-time", "100", "--end-time", "200", "in.sbet", "out.sbet"}, []float64{100, 200}},
		{"stop-time alias", []string{"in.sbet", "out.sbet", "--stop-time", "150"}, []float64{100}},
		{"open range", []string{"in.sbet", "out.sbet"}, []float64{100, 200, 300}},
		{"nothing kept", []string{"--start-time", "400", "in.sbet", "out.sbet"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.fs.WriteFile("in.sbet", testutil.EncodeRecords(threeRecords()))

			require.Equal(t, 0, h.run(append([]string{"filter"}, tt.args...)...), h.stderr.String())

			data, err := h.fs.ReadFile("out.sbet")
			require.NoError(t, err)
			records, err := sbet.ParseAll(data)
			require.NoError(t, err)

			var got []float64
			for _, r := range records {
				got = append(got, r.Time)
			}
			assert.Equal(t, tt.want, got)
			assert.Contains(t, h.stdout.String(), "of 3 records")
		})
	}
}

func TestFilterUsageErrors(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("in.sbet", testutil.EncodeRecords(threeRecords()))

	assert.Equal(t, 2, h.run("filter", "in.sbet"))
	assert.Equal(t, 2, h.run("filter", "in.sbet", "in.sbet"))
	assert.Equal(t, 2, h.run("filter", "in.sbet", "./in.sbet"))
	assert.Equal(t, 2, h.run("filter", "--start-time", "abc", "in.sbet", "out.sbet"))
	assert.Equal(t, 2, h.run("filter", "--start-time", "300", "--end-time", "100", "in.sbet", "out.sbet"))
	assert.False(t, h.fs.Exists("out.sbet"))
}

func TestFilterRemovesPartialOutput(t *testing.T) {
	h := newHarness(t)
	data := append(testutil.EncodeRecords(threeRecords()), 1, 2, 3)
	h.fs.WriteFile("in.sbet", data)

	assert.Equal(t, 1, h.run("filter", "in.sbet", "out.sbet"))
	assert.False(t, h.fs.Exists("out.sbet"))
}

func TestFilterCreateFailure(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("in.sbet", testutil.EncodeRecords(threeRecords()))
	h.fs.FailCreate = errors.New("read-only")

	assert.Equal(t, 1, h.run("filter", "in.sbet", "out.sbet"))
	assert.Contains(t, h.stderr.String(), "read-only")
}

func TestInfo(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("in.sbet", testutil.EncodeRecords(testutil.SyntheticTrajectory(400, 1000)))

	require.Equal(t, 0, h.run("info", "in.sbet"), h.stderr.String())
	out := h.stdout.String()
	assert.Contains(t, out, "Records:     400")
	assert.Contains(t, out, "Rate:        200.00 Hz")
	assert.Contains(t, out, "60.00 .. 60.00 mps")
	assert.NotContains(t, out, "UTC:")

	require.Equal(t, 0, h.run("info", "--speed-unit", "kmph", "--gps-week", "2300", "in.sbet"), h.stderr.String())
	assert.Contains(t, h.stdout.String(), "216.00 .. 216.00 kmph")
	assert.Contains(t, h.stdout.String(), "UTC:")

	assert.Equal(t, 2, h.run("info", "--speed-unit", "furlongs", "in.sbet"))
}

func TestInfoJSON(t *testing.T) {
	h := newHarness(t)
	data := append(testutil.EncodeRecords(threeRecords()), make([]byte, 7)...)
	h.fs.WriteFile("in.sbet", data)

	require.Equal(t, 0, h.run("info", "--json", "in.sbet"), h.stderr.String())
	var s summary.Summary
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &s))
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, 7, s.TrailingBytes)
	assert.Equal(t, 100.0, s.StartTime)
	assert.Equal(t, 300.0, s.EndTime)
}

func TestInfoEmptyFile(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("empty.sbet", nil)

	require.Equal(t, 0, h.run("info", "empty.sbet"))
	assert.Contains(t, h.stdout.String(), "Records:     0")
}

func TestInterpolate(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("in.sbet", testutil.EncodeRecords(threeRecords()))

	require.Equal(t, 0, h.run("interpolate", "in.sbet", "--time", "150"), h.stderr.String())
	rows := h.csvRows(t)
	require.Len(t, rows, 2)
	assert.Equal(t, sbet.FieldNames[:], rows[0])
	assert.Equal(t, "150", rows[1][0])

	assert.Equal(t, 1, h.run("interpolate", "--time", "50", "in.sbet"))
	assert.Contains(t, h.stderr.String(), "extrapolat")

	assert.Equal(t, 2, h.run("interpolate", "in.sbet"))
}

func TestPlot(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("flight.sbet", testutil.EncodeRecords(testutil.SyntheticTrajectory(200, 0)))

	require.Equal(t, 0, h.run("plot", "--out", "track.svg", "flight.sbet"), h.stderr.String())
	svg, err := h.fs.ReadFile("track.svg")
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	require.Equal(t, 0, h.run("plot", "--out", "alt.html", "--title", "Line 7", "flight.sbet"), h.stderr.String())
	html, err := h.fs.ReadFile("alt.html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "Line 7")

	require.Equal(t, 0, h.run("plot", "flight.sbet"), h.stderr.String())
	assert.True(t, h.fs.Exists("flight.png"))

	assert.Equal(t, 2, h.run("plot", "--out", "track.bmp", "flight.sbet"))
}

func TestPlotRefusesToOverwriteInput(t *testing.T) {
	h := newHarness(t)
	data := testutil.EncodeRecords(testutil.SyntheticTrajectory(20, 0))
	h.fs.WriteFile("track.png", data)

	assert.Equal(t, 2, h.run("plot", "track.png"))
	assert.Contains(t, h.stderr.String(), "overwrite the input")
	assert.Equal(t, 2, h.run("plot", "--out", "./track.png", "track.png"))

	got, err := h.fs.ReadFile("track.png")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestPlotEmptyInput(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("empty.sbet", nil)

	assert.Equal(t, 1, h.run("plot", "--out", "x.png", "empty.sbet"))
	assert.False(t, h.fs.Exists("x.png"))
}

func TestToSQLite(t *testing.T) {
	h := newHarness(t)
	records := testutil.SyntheticTrajectory(50, 10)
	h.fs.WriteFile("flight.sbet", testutil.EncodeRecords(records))
	dbPath := filepath.Join(t.TempDir(), "traj.db")

	require.Equal(t, 0, h.run("to-sqlite", "--db", dbPath, "--label", "run-1", "flight.sbet"), h.stderr.String())
	assert.Contains(t, h.stdout.String(), "Imported 50 records")

	db, err := trajdb.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	imports, err := db.Imports(context.Background())
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "run-1", imports[0].Label)
	assert.Equal(t, 50, imports[0].RecordCount)

	got, err := db.Epochs(context.Background(), imports[0].ID, sbet.AllTime())
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestConfigFile(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("in.sbet", testutil.EncodeRecords(threeRecords()))

	cfgPath := filepath.Join(t.TempDir(), "sbet.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"angle_unit": "deg", "csv_precision": 2}`), 0644))

	require.Equal(t, 0, h.run("to-csv", "--config", cfgPath, "in.sbet"), h.stderr.String())
	rows := h.csvRows(t)
	assert.Equal(t, "100.00", rows[1][0])
	assert.Equal(t, "5730.15", rows[1][1])

	// Explicit flags win over the file.
	require.Equal(t, 0, h.run("to-csv", "--config", cfgPath, "--degrees=false", "in.sbet"))
	assert.InDelta(t, 100.01, cell(t, h.csvRows(t)[1][1]), 1e-12)

	t.Setenv("SBET_CONFIG", cfgPath)
	require.Equal(t, 0, h.run("to-csv", "in.sbet"))
	assert.Equal(t, "100.00", h.csvRows(t)[1][0])

	t.Setenv("SBET_CONFIG", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 1, h.run("to-csv", "in.sbet"))
}

func TestVerboseLogging(t *testing.T) {
	h := newHarness(t)
	h.fs.WriteFile("in.sbet", testutil.EncodeRecords(threeRecords()))

	require.Equal(t, 0, h.run("-v", "to-csv", "in.sbet"))
	assert.Contains(t, h.stderr.String(), "wrote 3 of 3 records as CSV")

	require.Equal(t, 0, h.run("to-csv", "in.sbet"))
	assert.NotContains(t, h.stderr.String(), "wrote 3")
}
