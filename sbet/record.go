package sbet

// RecordSize is the encoded size of one Record in bytes.
const RecordSize = FieldCount * 8

// FieldCount is the number of float64 fields in a Record.
const FieldCount = 17

// FieldNames lists the record fields in on-disk order. The names are used as
// CSV headers and database column names.
var FieldNames = [FieldCount]string{
	"time",
	"latitude",
	"longitude",
	"altitude",
	"x_velocity",
	"y_velocity",
	"z_velocity",
	"roll",
	"pitch",
	"platform_heading",
	"wander_angle",
	"x_acceleration",
	"y_acceleration",
	"z_acceleration",
	"x_angular_rate",
	"y_angular_rate",
	"z_angular_rate",
}

// Record is one trajectory epoch. Angles are radians, distances metres and
// time is GPS seconds of week. No range checks are applied to any field.
type Record struct {
	Time            float64
	Latitude        float64
	Longitude       float64
	Altitude        float64
	XVelocity       float64
	YVelocity       float64
	ZVelocity       float64
	Roll            float64
	Pitch           float64
	PlatformHeading float64
	WanderAngle     float64
	XAcceleration   float64
	YAcceleration   float64
	ZAcceleration   float64
	XAngularRate    float64
	YAngularRate    float64
	ZAngularRate    float64
}

// Fields returns the record's values in on-disk order.
func (r Record) Fields() [FieldCount]float64 {
	return [FieldCount]float64{
		r.Time,
		r.Latitude,
		r.Longitude,
		r.Altitude,
		r.XVelocity,
		r.YVelocity,
		r.ZVelocity,
		r.Roll,
		r.Pitch,
		r.PlatformHeading,
		r.WanderAngle,
		r.XAcceleration,
		r.YAcceleration,
		r.ZAcceleration,
		r.XAngularRate,
		r.YAngularRate,
		r.ZAngularRate,
	}
}

// RecordFromFields builds a Record from values in on-disk order.
func RecordFromFields(f [FieldCount]float64) Record {
	return Record{
		Time:            f[0],
		Latitude:        f[1],
		Longitude:       f[2],
		Altitude:        f[3],
		XVelocity:       f[4],
		YVelocity:       f[5],
		ZVelocity:       f[6],
		Roll:            f[7],
		Pitch:           f[8],
		PlatformHeading: f[9],
		WanderAngle:     f[10],
		XAcceleration:   f[11],
		YAcceleration:   f[12],
		ZAcceleration:   f[13],
		XAngularRate:    f[14],
		YAngularRate:    f[15],
		ZAngularRate:    f[16],
	}
}
