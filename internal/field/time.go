package field

import (
	"math"
	"time"
)

// oaEpochUnix is 1899-12-30T00:00:00Z, day zero of an OLE automation date.
const oaEpochUnix = -2209161600

const secondsPerDay = 86400

// OADate converts t to an OLE automation date: whole days since 1899-12-30,
// with the time of day as the fractional part. t is taken in UTC.
//
// Dates before the epoch are not supported; the format encodes them with a
// negative day and a positive fraction, which nothing here produces.
func OADate(t time.Time) float64 {
	t = t.UTC()
	secs := float64(t.Unix()-oaEpochUnix) + float64(t.Nanosecond())/1e9
	return secs / secondsPerDay
}

// FromOADate is the inverse of OADate, rounded to the millisecond.
func FromOADate(days float64) time.Time {
	secs := days * secondsPerDay
	whole := math.Floor(secs)
	nanos := int64((secs - whole) * 1e9)
	return time.Unix(oaEpochUnix+int64(whole), nanos).UTC().Round(time.Millisecond)
}
