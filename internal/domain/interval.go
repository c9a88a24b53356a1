package domain

import "time"

// Overlaps reports whether the time intervals [aStart, aEnd] and
// [bStart, bEnd] share at least one instant.
//
// Touching endpoints count as an overlap: a booking ending at 10:00 conflicts
// with one starting at 10:00. That closed-interval tie-break is inherited
// behavior; back-to-back bookings on one terminal are rejected on purpose.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(aEnd.Before(bStart) || aStart.After(bEnd))
}
