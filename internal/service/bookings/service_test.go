package bookings

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TerminalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TerminalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TerminalService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking

	statusUpdates map[int64]domain.BookingStatus
	periodUpdates map[int64][2]sql.NullTime
	deleted       []int64
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{
		bookings:      make(map[uuid.UUID]*domain.Booking),
		statusUpdates: make(map[int64]domain.BookingStatus),
		periodUpdates: make(map[int64][2]sql.NullTime),
	}
	for _, b := range bookings {
		r.bookings[b.PublicID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByPublicID(_ context.Context, publicID uuid.UUID) (*domain.Booking, error) {
	b, ok := r.bookings[publicID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByTerminalID(_ context.Context, terminalID int64) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.TerminalID == terminalID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdatePeriod(_ context.Context, id int64, startingDate, endingDate sql.NullTime) error {
	r.periodUpdates[id] = [2]sql.NullTime{startingDate, endingDate}
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.statusUpdates[id] = status
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeTerminalRepo struct {
	terminals map[int64]*domain.Terminal
}

func (r *fakeTerminalRepo) GetByID(_ context.Context, id int64) (*domain.Terminal, error) {
	t, ok := r.terminals[id]
	if !ok {
		return nil, assert.AnError
	}
	return t, nil
}

type fakeScheduler struct {
	scheduled []int64
	cancelled []int64
}

func (s *fakeScheduler) Schedule(bookingID, terminalID int64, startingDate, endingDate time.Time) {
	s.scheduled = append(s.scheduled, bookingID)
}

func (s *fakeScheduler) Cancel(bookingID int64) {
	s.cancelled = append(s.cancelled, bookingID)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const (
	renterID = int64(7)
	ownerID  = int64(3)
)

type fixture struct {
	svc       *Service
	repo      *fakeBookingRepo
	scheduler *fakeScheduler
	terminal  *domain.Terminal
	booking   *domain.Booking
}

func newFixture(status domain.BookingStatus) *fixture {
	terminal := &domain.Terminal{
		ID:       42,
		PublicID: uuid.New(),
		OwnerID:  ownerID,
		Status:   domain.TerminalStatusAvailable,
	}
	booking := &domain.Booking{
		ID:           100,
		PublicID:     uuid.New(),
		TerminalID:   terminal.ID,
		UserID:       renterID,
		StartingDate: now.Add(24 * time.Hour),
		EndingDate:   now.Add(26 * time.Hour),
		Status:       status,
	}
	repo := newFakeBookingRepo(booking)
	scheduler := &fakeScheduler{}
	svc := NewService(
		repo,
		&fakeTerminalRepo{terminals: map[int64]*domain.Terminal{terminal.ID: terminal}},
		scheduler,
		fakeTxManager{},
		nopLogger{},
	)
	svc.timeProvider = fixedClock{now: now}
	return &fixture{svc: svc, repo: repo, scheduler: scheduler, terminal: terminal, booking: booking}
}

func TestGetByPublicID_Access(t *testing.T) {
	f := newFixture(domain.BookingStatusPending)

	resp, err := f.svc.GetByPublicID(context.Background(), f.booking.PublicID, renterID)
	require.NoError(t, err)
	assert.Equal(t, f.booking.PublicID, resp.PublicID)
	assert.Equal(t, f.terminal.PublicID, resp.TerminalPublicID)

	// Владелец терминала тоже видит бронирование
	_, err = f.svc.GetByPublicID(context.Background(), f.booking.PublicID, ownerID)
	assert.NoError(t, err)

	// Посторонний пользователь - нет
	_, err = f.svc.GetByPublicID(context.Background(), f.booking.PublicID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByPublicID_NotFound(t *testing.T) {
	f := newFixture(domain.BookingStatusPending)

	_, err := f.svc.GetByPublicID(context.Background(), uuid.New(), renterID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_FiltersByStatus(t *testing.T) {
	f := newFixture(domain.BookingStatusPending)

	resp, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: renterID,
		Status: ptr.Ptr(string(domain.BookingStatusPending)),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: renterID,
		Status: ptr.Ptr(string(domain.BookingStatusAccepted)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)

	_, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: renterID,
		Status: ptr.Ptr("CONFIRMEE"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_AcceptByOwner(t *testing.T) {
	f := newFixture(domain.BookingStatusPending)

	err := f.svc.UpdateStatus(context.Background(), f.booking.PublicID, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: string(domain.BookingStatusAccepted),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusAccepted, f.repo.statusUpdates[f.booking.ID])
	// Принятие не трогает запланированные переходы
	assert.Empty(t, f.scheduler.cancelled)
}

func TestUpdateStatus_RefuseCancelsTransitions(t *testing.T) {
	f := newFixture(domain.BookingStatusPending)

	err := f.svc.UpdateStatus(context.Background(), f.booking.PublicID, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: string(domain.BookingStatusRefused),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusRefused, f.repo.statusUpdates[f.booking.ID])
	assert.Equal(t, []int64{f.booking.ID}, f.scheduler.cancelled)
}

func TestUpdateStatus_OnlyTerminalOwnerDecides(t *testing.T) {
	f := newFixture(domain.BookingStatusPending)

	err := f.svc.UpdateStatus(context.Background(), f.booking.PublicID, &models.UpdateStatusRequest{
		UserID: renterID,
		Status: string(domain.BookingStatusAccepted),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_RejectsPendingAsDecision(t *testing.T) {
	f := newFixture(domain.BookingStatusPending)

	err := f.svc.UpdateStatus(context.Background(), f.booking.PublicID, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: string(domain.BookingStatusPending),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_AlreadyDecided(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	err := f.svc.UpdateStatus(context.Background(), f.booking.PublicID, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: string(domain.BookingStatusRefused),
	})
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestUpdatePeriod_ReschedulesTransitions(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	newStart := now.Add(48 * time.Hour)
	newEnd := now.Add(50 * time.Hour)

	resp, err := f.svc.UpdatePeriod(context.Background(), f.booking.PublicID, &models.UpdatePeriodRequest{
		UserID:       renterID,
		StartingDate: &newStart,
		EndingDate:   &newEnd,
	})
	require.NoError(t, err)
	assert.True(t, resp.StartingDate.Equal(newStart))
	assert.True(t, resp.EndingDate.Equal(newEnd))

	update, ok := f.repo.periodUpdates[f.booking.ID]
	require.True(t, ok)
	assert.True(t, update[0].Time.Equal(newStart))
	assert.True(t, update[1].Time.Equal(newEnd))

	assert.Equal(t, []int64{f.booking.ID}, f.scheduler.scheduled)
}

func TestUpdatePeriod_PartialUpdateKeepsOtherBound(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	newEnd := now.Add(30 * time.Hour)
	resp, err := f.svc.UpdatePeriod(context.Background(), f.booking.PublicID, &models.UpdatePeriodRequest{
		UserID:     renterID,
		EndingDate: &newEnd,
	})
	require.NoError(t, err)
	assert.True(t, resp.StartingDate.Equal(f.booking.StartingDate))
	assert.True(t, resp.EndingDate.Equal(newEnd))
}

func TestUpdatePeriod_ConflictWithOtherBooking(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	other := &domain.Booking{
		ID:           101,
		PublicID:     uuid.New(),
		TerminalID:   f.terminal.ID,
		UserID:       8,
		StartingDate: now.Add(48 * time.Hour),
		EndingDate:   now.Add(52 * time.Hour),
		Status:       domain.BookingStatusRefused, // Отклонённые тоже блокируют
	}
	f.repo.bookings[other.PublicID] = other

	newStart := now.Add(50 * time.Hour)
	newEnd := now.Add(54 * time.Hour)
	_, err := f.svc.UpdatePeriod(context.Background(), f.booking.PublicID, &models.UpdatePeriodRequest{
		UserID:       renterID,
		StartingDate: &newStart,
		EndingDate:   &newEnd,
	})
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
	assert.Empty(t, f.scheduler.scheduled)
}

func TestUpdatePeriod_OwnIntervalDoesNotConflict(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	// Новый интервал пересекается только с прежним интервалом самого бронирования
	newStart := now.Add(25 * time.Hour)
	newEnd := now.Add(27 * time.Hour)
	_, err := f.svc.UpdatePeriod(context.Background(), f.booking.PublicID, &models.UpdatePeriodRequest{
		UserID:       renterID,
		StartingDate: &newStart,
		EndingDate:   &newEnd,
	})
	assert.NoError(t, err)
}

func TestUpdatePeriod_RefusedCannotBeUpdated(t *testing.T) {
	f := newFixture(domain.BookingStatusRefused)

	newEnd := now.Add(30 * time.Hour)
	_, err := f.svc.UpdatePeriod(context.Background(), f.booking.PublicID, &models.UpdatePeriodRequest{
		UserID:     renterID,
		EndingDate: &newEnd,
	})
	assert.ErrorIs(t, err, ErrCannotUpdate)
}

func TestUpdatePeriod_OnlyBookingOwner(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	newEnd := now.Add(30 * time.Hour)
	_, err := f.svc.UpdatePeriod(context.Background(), f.booking.PublicID, &models.UpdatePeriodRequest{
		UserID:     ownerID,
		EndingDate: &newEnd,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdatePeriod_Validation(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	// Пустой запрос
	_, err := f.svc.UpdatePeriod(context.Background(), f.booking.PublicID, &models.UpdatePeriodRequest{
		UserID: renterID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Начало в прошлом
	pastStart := now.Add(-time.Hour)
	_, err = f.svc.UpdatePeriod(context.Background(), f.booking.PublicID, &models.UpdatePeriodRequest{
		UserID:       renterID,
		StartingDate: &pastStart,
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	// Конец раньше начала
	badEnd := now.Add(23 * time.Hour)
	_, err = f.svc.UpdatePeriod(context.Background(), f.booking.PublicID, &models.UpdatePeriodRequest{
		UserID:     renterID,
		EndingDate: &badEnd,
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestDelete_ByRenterCancelsTransitions(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	err := f.svc.Delete(context.Background(), f.booking.PublicID, renterID)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.booking.ID}, f.repo.deleted)
	assert.Equal(t, []int64{f.booking.ID}, f.scheduler.cancelled)
}

func TestDelete_ByTerminalOwner(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	err := f.svc.Delete(context.Background(), f.booking.PublicID, ownerID)
	assert.NoError(t, err)
}

func TestDelete_AccessDenied(t *testing.T) {
	f := newFixture(domain.BookingStatusAccepted)

	err := f.svc.Delete(context.Background(), f.booking.PublicID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.repo.deleted)
	assert.Empty(t, f.scheduler.cancelled)
}
