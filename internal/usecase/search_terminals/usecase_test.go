package search_terminals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	"github.com/m04kA/SMC-TerminalService/pkg/geodist"
	"github.com/m04kA/SMC-TerminalService/pkg/ptr"
)

type fakeTerminalRepo struct {
	terminals []*domain.Terminal
}

func (r *fakeTerminalRepo) ListAll(_ context.Context) ([]*domain.Terminal, error) {
	return r.terminals, nil
}

type fakeBookingRepo struct {
	byTerminal map[int64][]*domain.Booking
}

func (r *fakeBookingRepo) GetByTerminalID(_ context.Context, terminalID int64) ([]*domain.Booking, error) {
	return r.byTerminal[terminalID], nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newUseCase(terminals []*domain.Terminal, bookings map[int64][]*domain.Booking, now time.Time) *UseCase {
	uc := NewUseCase(
		&fakeTerminalRepo{terminals: terminals},
		&fakeBookingRepo{byTerminal: bookings},
		nopLogger{},
	)
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func terminalAt(id int64, lat, lon float64, status domain.TerminalStatus) *domain.Terminal {
	return &domain.Terminal{
		ID:        id,
		PublicID:  uuid.New(),
		OwnerID:   1,
		Latitude:  lat,
		Longitude: lon,
		Status:    status,
	}
}

func bookingOn(terminalID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:           terminalID * 100,
		PublicID:     uuid.New(),
		TerminalID:   terminalID,
		UserID:       7,
		StartingDate: start,
		EndingDate:   end,
		Status:       domain.BookingStatusAccepted,
	}
}

func publicIDs(resp *Response) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(resp.Terminals))
	for _, t := range resp.Terminals {
		ids = append(ids, t.PublicID)
	}
	return ids
}

func TestExecute_NoFiltersReturnsAllInRepositoryOrder(t *testing.T) {
	terminals := []*domain.Terminal{
		terminalAt(1, 48.85, 2.35, domain.TerminalStatusAvailable),
		terminalAt(2, 45.76, 4.83, domain.TerminalStatusOccupied),
		terminalAt(3, 43.30, 5.37, domain.TerminalStatusUnderRepair),
	}
	uc := newUseCase(terminals, nil, day)

	resp, err := uc.Execute(context.Background(), &Request{Longitude: 2.35, Latitude: 48.85})
	require.NoError(t, err)
	require.Len(t, resp.Terminals, 3)
	assert.Equal(t, []uuid.UUID{terminals[0].PublicID, terminals[1].PublicID, terminals[2].PublicID}, publicIDs(resp))
}

func TestExecute_EmptyRepositoryYieldsEmptyResult(t *testing.T) {
	uc := newUseCase(nil, nil, day)

	resp, err := uc.Execute(context.Background(), &Request{Longitude: 2.35, Latitude: 48.85})
	require.NoError(t, err)
	assert.Empty(t, resp.Terminals)
}

func TestExecute_RadiusBoundary(t *testing.T) {
	// Чистый сдвиг по широте: расстояние не зависит от косинуса
	terminal := terminalAt(1, 1.0, 0.0, domain.TerminalStatusAvailable)
	uc := newUseCase([]*domain.Terminal{terminal}, nil, day)

	exact := geodist.Estimate(0, 0, terminal.Longitude, terminal.Latitude)

	// Терминал ровно на границе радиуса включается
	resp, err := uc.Execute(context.Background(), &Request{Longitude: 0, Latitude: 0, RadiusKm: ptr.Ptr(exact)})
	require.NoError(t, err)
	assert.Len(t, resp.Terminals, 1)

	// Чуть ближе границы - исключается
	resp, err = uc.Execute(context.Background(), &Request{Longitude: 0, Latitude: 0, RadiusKm: ptr.Ptr(exact * 0.999)})
	require.NoError(t, err)
	assert.Empty(t, resp.Terminals)
}

func TestExecute_OccupiedFlagWithoutWindowIsStatic(t *testing.T) {
	terminals := []*domain.Terminal{
		terminalAt(1, 48.85, 2.35, domain.TerminalStatusAvailable),
		terminalAt(2, 48.86, 2.36, domain.TerminalStatusOccupied),
	}
	uc := newUseCase(terminals, nil, day)

	resp, err := uc.Execute(context.Background(), &Request{
		Longitude: 2.35,
		Latitude:  48.85,
		Occupied:  ptr.Ptr(false),
	})
	require.NoError(t, err)
	require.Len(t, resp.Terminals, 1)
	assert.Equal(t, terminals[0].PublicID, resp.Terminals[0].PublicID)

	resp, err = uc.Execute(context.Background(), &Request{
		Longitude: 2.35,
		Latitude:  48.85,
		Occupied:  ptr.Ptr(true),
	})
	require.NoError(t, err)
	require.Len(t, resp.Terminals, 1)
	assert.Equal(t, terminals[1].PublicID, resp.Terminals[0].PublicID)
}

func TestExecute_WindowWithoutConflictKeepsTerminal(t *testing.T) {
	terminal := terminalAt(1, 48.8566, 2.3522, domain.TerminalStatusAvailable)
	bookings := map[int64][]*domain.Booking{
		1: {bookingOn(1, day.AddDate(0, 0, 8), day.AddDate(0, 0, 9))},
	}
	uc := newUseCase([]*domain.Terminal{terminal}, bookings, day)

	resp, err := uc.Execute(context.Background(), &Request{
		Longitude:   2.35,
		Latitude:    48.85,
		RadiusKm:    ptr.Ptr(5.0),
		Occupied:    ptr.Ptr(false),
		WindowStart: ptr.Ptr(day.AddDate(0, 0, 10)),
		WindowEnd:   ptr.Ptr(day.AddDate(0, 0, 12)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Terminals, 1)
	assert.Equal(t, terminal.PublicID, resp.Terminals[0].PublicID)
	assert.InDelta(t, 0.75, resp.Terminals[0].DistanceKm, 0.05)
}

func TestExecute_WindowConflictExcludesTerminal(t *testing.T) {
	terminal := terminalAt(1, 48.8566, 2.3522, domain.TerminalStatusAvailable)
	// Бронирование целиком накрывает запрошенное окно
	bookings := map[int64][]*domain.Booking{
		1: {bookingOn(1, day.AddDate(0, 0, 9), day.AddDate(0, 0, 13))},
	}
	uc := newUseCase([]*domain.Terminal{terminal}, bookings, day)

	resp, err := uc.Execute(context.Background(), &Request{
		Longitude:   2.35,
		Latitude:    48.85,
		RadiusKm:    ptr.Ptr(5.0),
		Occupied:    ptr.Ptr(false),
		WindowStart: ptr.Ptr(day.AddDate(0, 0, 10)),
		WindowEnd:   ptr.Ptr(day.AddDate(0, 0, 12)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Terminals)
}

func TestExecute_TouchingEndpointCountsAsConflict(t *testing.T) {
	terminal := terminalAt(1, 48.8566, 2.3522, domain.TerminalStatusAvailable)
	// Бронирование заканчивается ровно в начале окна - это конфликт
	bookings := map[int64][]*domain.Booking{
		1: {bookingOn(1, day.AddDate(0, 0, 8), day.AddDate(0, 0, 10))},
	}
	uc := newUseCase([]*domain.Terminal{terminal}, bookings, day)

	resp, err := uc.Execute(context.Background(), &Request{
		Longitude:   2.35,
		Latitude:    48.85,
		Occupied:    ptr.Ptr(false),
		WindowStart: ptr.Ptr(day.AddDate(0, 0, 10)),
		WindowEnd:   ptr.Ptr(day.AddDate(0, 0, 12)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Terminals)
}

func TestExecute_RefusedBookingStillBlocks(t *testing.T) {
	terminal := terminalAt(1, 48.8566, 2.3522, domain.TerminalStatusAvailable)
	refused := bookingOn(1, day.AddDate(0, 0, 10), day.AddDate(0, 0, 11))
	refused.Status = domain.BookingStatusRefused
	bookings := map[int64][]*domain.Booking{1: {refused}}
	uc := newUseCase([]*domain.Terminal{terminal}, bookings, day)

	resp, err := uc.Execute(context.Background(), &Request{
		Longitude:   2.35,
		Latitude:    48.85,
		Occupied:    ptr.Ptr(false),
		WindowStart: ptr.Ptr(day.AddDate(0, 0, 10)),
		WindowEnd:   ptr.Ptr(day.AddDate(0, 0, 12)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Terminals)
}

func TestExecute_OccupiedTrueWithWindowKeepsOnlyConflicting(t *testing.T) {
	busy := terminalAt(1, 48.8566, 2.3522, domain.TerminalStatusOccupied)
	idle := terminalAt(2, 48.8570, 2.3530, domain.TerminalStatusOccupied)
	bookings := map[int64][]*domain.Booking{
		1: {bookingOn(1, day.AddDate(0, 0, 10), day.AddDate(0, 0, 11))},
	}
	uc := newUseCase([]*domain.Terminal{busy, idle}, bookings, day)

	resp, err := uc.Execute(context.Background(), &Request{
		Longitude:   2.35,
		Latitude:    48.85,
		Occupied:    ptr.Ptr(true),
		WindowStart: ptr.Ptr(day.AddDate(0, 0, 10)),
		WindowEnd:   ptr.Ptr(day.AddDate(0, 0, 12)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Terminals, 1)
	assert.Equal(t, busy.PublicID, resp.Terminals[0].PublicID)
}

// Окно без флага занятости: наследуемый откат к проверке "занят прямо
// сейчас" вместо занятости в запрошенном окне.
func TestExecute_WindowWithoutOccupiedFallsBackToNow(t *testing.T) {
	now := day.Add(12 * time.Hour)
	current := terminalAt(1, 48.8566, 2.3522, domain.TerminalStatusAvailable)
	future := terminalAt(2, 48.8570, 2.3530, domain.TerminalStatusAvailable)
	bookings := map[int64][]*domain.Booking{
		// Бронирование идёт прямо сейчас
		1: {bookingOn(1, now.Add(-time.Hour), now.Add(time.Hour))},
		// Бронирование конфликтует с окном, но не с текущим моментом
		2: {bookingOn(2, day.AddDate(0, 0, 10), day.AddDate(0, 0, 12))},
	}
	uc := newUseCase([]*domain.Terminal{current, future}, bookings, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Longitude:   2.35,
		Latitude:    48.85,
		WindowStart: ptr.Ptr(day.AddDate(0, 0, 10)),
		WindowEnd:   ptr.Ptr(day.AddDate(0, 0, 12)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Terminals, 1)
	assert.Equal(t, future.PublicID, resp.Terminals[0].PublicID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newUseCase(nil, nil, day)

	cases := []struct {
		name string
		req  *Request
	}{
		{"latitude out of range", &Request{Longitude: 0, Latitude: 91}},
		{"longitude out of range", &Request{Longitude: -181, Latitude: 0}},
		{"negative radius", &Request{Longitude: 0, Latitude: 0, RadiusKm: ptr.Ptr(-1.0)}},
		{"half-open window", &Request{Longitude: 0, Latitude: 0, WindowStart: ptr.Ptr(day)}},
		{"inverted window", &Request{
			Longitude: 0, Latitude: 0,
			WindowStart: ptr.Ptr(day.AddDate(0, 0, 2)),
			WindowEnd:   ptr.Ptr(day),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
