// Package sbet reads and writes Smoothed Best Estimate of Trajectory files.
//
// An SBET file is a headerless sequence of 136-byte records, each holding 17
// little-endian float64 values: GPS time of week, geodetic position,
// velocity, attitude, acceleration and angular rate. The file length must be
// a multiple of RecordSize; a trailing fragment is reported as a malformed
// record.
//
// Reading:
//
//	r, err := sbet.Open("flight.sbet")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	for rec, err := range r.All() {
//		if err != nil {
//			return err
//		}
//		fmt.Println(rec.Time, rec.Altitude)
//	}
//
// Writing:
//
//	w, err := sbet.Create("out.sbet")
//	if err != nil {
//		return err
//	}
//	if err := w.WriteAll(records); err != nil {
//		w.Close()
//		return err
//	}
//	return w.Close()
package sbet
