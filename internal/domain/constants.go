package domain

// Time format constants
const (
	DateTimeFormat = "2006-01-02T15:04:05Z07:00" // RFC 3339
	DateFormat     = "2006-01-02"                // YYYY-MM-DD
)

// Business validation constants
const (
	// MinLatitude/MaxLatitude and the longitude pair bound search centers
	// and terminal coordinates.
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// MaxSearchRadiusKm caps the radius accepted by the search endpoint.
	MaxSearchRadiusKm = 1000.0
)

// TerminalStatuses lists every known terminal state, used for validation at
// the API boundary.
var TerminalStatuses = []TerminalStatus{
	TerminalStatusAvailable,
	TerminalStatusOccupied,
	TerminalStatusUnderRepair,
	TerminalStatusOutOfService,
	TerminalStatusFaulted,
}

// BookingStatuses lists every known booking state.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusAccepted,
	BookingStatusRefused,
}
