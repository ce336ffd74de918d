package units

import "math"

// Angle unit constants
const (
	Radians = "rad"
	Degrees = "deg"
)

// IsValidAngle reports whether unit is Radians or Degrees.
func IsValidAngle(unit string) bool {
	return unit == Radians || unit == Degrees
}

// ConvertAngle converts an angle or angular rate from radians to the target
// units. Unknown units leave the value in radians.
func ConvertAngle(rad float64, targetUnits string) float64 {
	if targetUnits == Degrees {
		return rad * 180 / math.Pi
	}
	return rad
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
