package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2025, 6, 1, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint before", at(0), at(2), at(3), at(5), false},
		{"disjoint after", at(6), at(8), at(3), at(5), false},
		{"touching end-to-start conflicts", at(0), at(10), at(10), at(20), true},
		{"touching start-to-end conflicts", at(10), at(20), at(0), at(10), true},
		{"partial overlap", at(0), at(4), at(3), at(5), true},
		{"b inside a", at(0), at(10), at(2), at(3), true},
		{"a inside b", at(2), at(3), at(0), at(10), true},
		{"identical", at(1), at(2), at(1), at(2), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}

// Overlaps must be symmetric in its two intervals.
func TestOverlaps_Symmetry(t *testing.T) {
	intervals := [][2]time.Time{
		{at(0), at(2)},
		{at(1), at(3)},
		{at(2), at(4)},
		{at(5), at(9)},
	}

	for _, a := range intervals {
		for _, b := range intervals {
			assert.Equal(t,
				Overlaps(a[0], a[1], b[0], b[1]),
				Overlaps(b[0], b[1], a[0], a[1]),
				"a=%v b=%v", a, b)
		}
	}
}

func TestOverlaps_ExcludedByOneNanosecond(t *testing.T) {
	gap := at(10).Add(time.Nanosecond)
	assert.False(t, Overlaps(at(0), at(10), gap, at(20)))
}

func TestBookingCovers(t *testing.T) {
	b := &Booking{StartingDate: at(8), EndingDate: at(9)}

	assert.True(t, b.Covers(at(8)))
	assert.True(t, b.Covers(at(9)))
	assert.True(t, b.Covers(at(8).Add(30*time.Minute)))
	assert.False(t, b.Covers(at(7)))
	assert.False(t, b.Covers(at(9).Add(time.Nanosecond)))
}

func TestTerminalStatusOccupied(t *testing.T) {
	assert.True(t, TerminalStatusOccupied.Occupied())
	for _, s := range []TerminalStatus{
		TerminalStatusAvailable,
		TerminalStatusUnderRepair,
		TerminalStatusOutOfService,
		TerminalStatusFaulted,
	} {
		assert.False(t, s.Occupied(), "status %s", s)
	}
}
