// Package config loads optional CLI defaults from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/sbet/internal/units"
)

// EnvConfigPath names the environment variable consulted when no --config
// flag is given.
const EnvConfigPath = "SBET_CONFIG"

// maxFileSize bounds the config file size (1MB).
const maxFileSize = 1 * 1024 * 1024

// Config holds CLI defaults. Every field is optional: fields omitted from
// the JSON file fall back to the defaults returned by the Get* methods, so
// partial configs are safe. Command-line flags override these values.
type Config struct {
	// CSV output
	AngleUnit    *string `json:"angle_unit,omitempty"` // "rad" or "deg"
	CSVPrecision *int    `json:"csv_precision,omitempty"`
	Decimate     *int    `json:"decimate,omitempty"`

	// Summary output
	SpeedUnit   *string `json:"speed_unit,omitempty"`
	GPSWeek     *int    `json:"gps_week,omitempty"`
	LeapSeconds *int    `json:"leap_seconds,omitempty"`

	// Plot output
	PlotWidth     *float64 `json:"plot_width_in,omitempty"`
	PlotHeight    *float64 `json:"plot_height_in,omitempty"`
	PlotMaxPoints *int     `json:"plot_max_points,omitempty"`

	// Database export
	DatabasePath *string `json:"database_path,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// Empty returns a Config with all fields set to nil.
func Empty() *Config {
	return &Config{}
}

// Defaults returns a Config with every field populated with its default.
func Defaults() *Config {
	c := Empty()
	return &Config{
		AngleUnit:     ptrString(c.GetAngleUnit()),
		CSVPrecision:  ptrInt(c.GetCSVPrecision()),
		Decimate:      ptrInt(c.GetDecimate()),
		SpeedUnit:     ptrString(c.GetSpeedUnit()),
		GPSWeek:       ptrInt(c.GetGPSWeek()),
		LeapSeconds:   ptrInt(c.GetLeapSeconds()),
		PlotWidth:     ptrFloat64(c.GetPlotWidth()),
		PlotHeight:    ptrFloat64(c.GetPlotHeight()),
		PlotMaxPoints: ptrInt(c.GetPlotMaxPoints()),
		DatabasePath:  ptrString(c.GetDatabasePath()),
	}
}

// Load loads a Config from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Resolve loads the config named by path, or by $SBET_CONFIG when path is
// empty. With neither set it returns an empty Config.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Empty(), nil
	}
	return Load(path)
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.AngleUnit != nil && !units.IsValidAngle(*c.AngleUnit) {
		return fmt.Errorf("angle_unit must be %q or %q, got %q", units.Radians, units.Degrees, *c.AngleUnit)
	}
	if c.CSVPrecision != nil && (*c.CSVPrecision < -1 || *c.CSVPrecision > 17) {
		return fmt.Errorf("csv_precision must be between -1 and 17, got %d", *c.CSVPrecision)
	}
	if c.Decimate != nil && *c.Decimate < 1 {
		return fmt.Errorf("decimate must be at least 1, got %d", *c.Decimate)
	}
	if c.SpeedUnit != nil && !units.IsValidSpeed(*c.SpeedUnit) {
		return fmt.Errorf("speed_unit must be one of %s, got %q", units.ValidSpeedUnitsString(), *c.SpeedUnit)
	}
	if c.GPSWeek != nil && *c.GPSWeek < -1 {
		return fmt.Errorf("gps_week must be non-negative, or -1 for unknown, got %d", *c.GPSWeek)
	}
	if c.LeapSeconds != nil && *c.LeapSeconds < 0 {
		return fmt.Errorf("leap_seconds must be non-negative, got %d", *c.LeapSeconds)
	}
	if c.PlotWidth != nil && *c.PlotWidth <= 0 {
		return fmt.Errorf("plot_width_in must be positive, got %f", *c.PlotWidth)
	}
	if c.PlotHeight != nil && *c.PlotHeight <= 0 {
		return fmt.Errorf("plot_height_in must be positive, got %f", *c.PlotHeight)
	}
	if c.PlotMaxPoints != nil && *c.PlotMaxPoints < 0 {
		return fmt.Errorf("plot_max_points must be non-negative, got %d", *c.PlotMaxPoints)
	}
	if c.DatabasePath != nil && *c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	return nil
}

// GetAngleUnit returns the angle_unit value or the default.
func (c *Config) GetAngleUnit() string {
	if c.AngleUnit == nil {
		return units.Radians
	}
	return *c.AngleUnit
}

// GetCSVPrecision returns the csv_precision value or the default.
func (c *Config) GetCSVPrecision() int {
	if c.CSVPrecision == nil {
		return -1 // shortest round-trip formatting
	}
	return *c.CSVPrecision
}

// GetDecimate returns the decimate value or the default.
func (c *Config) GetDecimate() int {
	if c.Decimate == nil {
		return 1
	}
	return *c.Decimate
}

// GetSpeedUnit returns the speed_unit value or the default.
func (c *Config) GetSpeedUnit() string {
	if c.SpeedUnit == nil {
		return units.MPS
	}
	return *c.SpeedUnit
}

// GetGPSWeek returns the gps_week value or -1 when the week is unknown.
func (c *Config) GetGPSWeek() int {
	if c.GPSWeek == nil {
		return -1
	}
	return *c.GPSWeek
}

// GetLeapSeconds returns the leap_seconds value or the default.
func (c *Config) GetLeapSeconds() int {
	if c.LeapSeconds == nil {
		return 18
	}
	return *c.LeapSeconds
}

// GetPlotWidth returns the plot_width_in value or the default.
func (c *Config) GetPlotWidth() float64 {
	if c.PlotWidth == nil {
		return 8
	}
	return *c.PlotWidth
}

// GetPlotHeight returns the plot_height_in value or the default.
func (c *Config) GetPlotHeight() float64 {
	if c.PlotHeight == nil {
		return 8
	}
	return *c.PlotHeight
}

// GetPlotMaxPoints returns the plot_max_points value or the default.
func (c *Config) GetPlotMaxPoints() int {
	if c.PlotMaxPoints == nil {
		return 20000
	}
	return *c.PlotMaxPoints
}

// GetDatabasePath returns the database_path value or the default.
func (c *Config) GetDatabasePath() string {
	if c.DatabasePath == nil {
		return "trajectories.db"
	}
	return *c.DatabasePath
}
