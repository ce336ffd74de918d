// Package units provides shared constants, validation and conversion for the
// speed and angle units used in trajectory text output.
package units

import "strings"

// Speed unit constants
const (
	MPS   = "mps"
	KMPH  = "kmph"
	KNOTS = "knots"
	MPH   = "mph"
)

// ValidSpeedUnits contains all valid speed unit values
var ValidSpeedUnits = []string{MPS, KMPH, KNOTS, MPH}

// IsValidSpeed checks if the given unit is in the list of valid speed units
func IsValidSpeed(unit string) bool {
	for _, validUnit := range ValidSpeedUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ValidSpeedUnitsString returns a comma-separated list of speed units for error messages
func ValidSpeedUnitsString() string {
	return strings.Join(ValidSpeedUnits, ", ")
}

// ConvertSpeed converts a speed from metres per second to the target units.
// SBET velocities are stored in m/s.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case KMPH:
		return speedMPS * 3.6
	case KNOTS:
		return speedMPS * 1.9438444924406
	case MPH:
		return speedMPS * 2.2369362920544
	default:
		return speedMPS
	}
}
