package domain

import (
	"time"

	"github.com/google/uuid"
)

// TerminalStatus represents the operational state of a charging terminal.
// The values are the legacy French wire/database representation and must not
// be renamed: other services and the existing data depend on them.
type TerminalStatus string

const (
	TerminalStatusAvailable    TerminalStatus = "LIBRE"
	TerminalStatusOccupied     TerminalStatus = "OCCUPEE"
	TerminalStatusUnderRepair  TerminalStatus = "EN_REPARATION"
	TerminalStatusOutOfService TerminalStatus = "HORS_SERVICE"
	TerminalStatusFaulted      TerminalStatus = "EN_PANNE"
)

// IsValid returns true if the status is one of the known terminal states.
func (s TerminalStatus) IsValid() bool {
	switch s {
	case TerminalStatusAvailable, TerminalStatusOccupied, TerminalStatusUnderRepair,
		TerminalStatusOutOfService, TerminalStatusFaulted:
		return true
	}
	return false
}

// Occupied returns the boolean the persistence layer stores alongside the
// status. Keeping it derived means status and occupied can never disagree
// in memory; the pair is written together at the storage boundary.
func (s TerminalStatus) Occupied() bool {
	return s == TerminalStatusOccupied
}

// Terminal represents a physical EV charging point.
type Terminal struct {
	ID        int64
	PublicID  uuid.UUID
	OwnerID   int64
	Latitude  float64
	Longitude float64
	Status    TerminalStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occupied reports whether the terminal is currently held by a booking.
func (t *Terminal) Occupied() bool {
	return t.Status.Occupied()
}

// Bookable returns true if the terminal can accept new bookings at all
// (repair and out-of-service states never can).
func (t *Terminal) Bookable() bool {
	return t.Status == TerminalStatusAvailable || t.Status == TerminalStatusOccupied
}
