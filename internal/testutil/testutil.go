// Package testutil provides shared test utilities and fixtures.
//
// This package centralises synthetic trajectories and SBET byte builders so
// codec, export and CLI tests all exercise the same data.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/sbet/sbet"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// SyntheticTrajectory returns n epochs of a platform flying a slow circle
// at 200 Hz, starting at GPS second start. Every field varies so that field
// order mistakes show up in comparisons.
func SyntheticTrajectory(n int, start float64) []sbet.Record {
	const (
		rate      = 200.0
		lat0      = 0.8203047484373349 // 47 degrees
		lon0      = -2.1293016874330817
		radiusRad = 1e-5
	)
	records := make([]sbet.Record, n)
	for i := range records {
		t := start + float64(i)/rate
		phase := float64(i) / rate * 0.1
		records[i] = sbet.Record{
			Time:            t,
			Latitude:        lat0 + radiusRad*math.Sin(phase),
			Longitude:       lon0 + radiusRad*math.Cos(phase),
			Altitude:        1500 + 10*math.Sin(phase/2),
			XVelocity:       60 * math.Cos(phase),
			YVelocity:       -60 * math.Sin(phase),
			ZVelocity:       0.5,
			Roll:            0.05,
			Pitch:           0.01,
			PlatformHeading: math.Mod(phase, 2*math.Pi),
			WanderAngle:     0.002,
			XAcceleration:   0.1,
			YAcceleration:   -0.2,
			ZAcceleration:   9.81,
			XAngularRate:    0.001,
			YAngularRate:    0.002,
			ZAngularRate:    0.1,
		}
	}
	return records
}

// RecordAt returns a record with every field derived from t, which keeps
// table tests short.
func RecordAt(t float64) sbet.Record {
	var f [sbet.FieldCount]float64
	for i := range f {
		f[i] = t + float64(i)/100
	}
	return sbet.RecordFromFields(f)
}

// EncodeRecords returns the on-disk image of records.
func EncodeRecords(records []sbet.Record) []byte {
	buf := make([]byte, 0, len(records)*sbet.RecordSize)
	for _, r := range records {
		buf = sbet.AppendRecord(buf, r)
	}
	return buf
}

// WriteSBETFile writes records to name inside a fresh temporary directory
// and returns the full path.
func WriteSBETFile(t testing.TB, name string, records []sbet.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, EncodeRecords(records), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
