package challenge

import "time"

// day is the length of a whole challenge day.
const day = 24 * time.Hour

const secondsPerDay = int64(day / time.Second)

// TotalDaysBetween returns the number of days from b to a, rounding any
// partial day up. Negative spans round toward zero, which is the ceiling
// for negative values.
//
// The span is taken from whole seconds plus a nanosecond remainder, so it
// does not saturate the way time.Duration does past about 292 years.
func TotalDaysBetween(a, b time.Time) int {
	secs := a.Unix() - b.Unix()
	nanos := int64(a.Nanosecond() - b.Nanosecond())

	days := secs / secondsPerDay
	// Remainder in nanoseconds; its magnitude stays below one day.
	rem := (secs%secondsPerDay)*int64(time.Second) + nanos
	if rem > 0 {
		days++
	}
	return int(days)
}

// ceilDiv divides two non-negative integers rounding up.
func ceilDiv(numerator, denominator int) int {
	if numerator <= 0 {
		return 0
	}
	return (numerator + denominator - 1) / denominator
}
