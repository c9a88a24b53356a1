package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking. Legacy French wire
// values, same rule as TerminalStatus.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "EN_ATTENTE"
	BookingStatusAccepted BookingStatus = "ACCEPTEE"
	BookingStatusRefused  BookingStatus = "REFUSEE"
)

// IsValid returns true if the status is one of the known booking states.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRefused:
		return true
	}
	return false
}

// Booking represents a reservation of one terminal by one user for the
// interval [StartingDate, EndingDate). StartingDate < EndingDate is enforced
// at the validation boundary.
type Booking struct {
	ID         int64
	PublicID   uuid.UUID
	TerminalID int64
	UserID     int64

	StartingDate time.Time
	EndingDate   time.Time
	Status       BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true while the terminal owner has not decided yet.
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsRefused returns true if the owner declined the booking.
func (b *Booking) IsRefused() bool {
	return b.Status == BookingStatusRefused
}

// CanBeDecided returns true if the booking still awaits an accept/refuse
// decision.
func (b *Booking) CanBeDecided() bool {
	return b.Status == BookingStatusPending
}

// CanBeUpdated returns true if the booking period may still be edited.
func (b *Booking) CanBeUpdated() bool {
	return b.Status != BookingStatusRefused
}

// ConflictsWith reports whether the booking interval overlaps the given
// window. Booking status is deliberately not consulted: the legacy system
// treats every recorded booking, refused ones included, as blocking.
func (b *Booking) ConflictsWith(windowStart, windowEnd time.Time) bool {
	return Overlaps(b.StartingDate, b.EndingDate, windowStart, windowEnd)
}

// Covers reports whether the instant falls inside the booking interval,
// endpoints included.
func (b *Booking) Covers(t time.Time) bool {
	return Overlaps(b.StartingDate, b.EndingDate, t, t)
}
