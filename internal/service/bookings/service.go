package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TerminalService/internal/infra/storage/booking"
	terminalRepo "github.com/m04kA/SMC-TerminalService/internal/infra/storage/terminal"
	"github.com/m04kA/SMC-TerminalService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	terminalRepo TerminalRepository
	scheduler    OccupancyScheduler
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	terminalRepo TerminalRepository,
	scheduler OccupancyScheduler,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		terminalRepo: terminalRepo,
		scheduler:    scheduler,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByPublicID получает бронирование по публичному идентификатору
// Доступно владельцу бронирования и владельцу терминала
func (s *Service) GetByPublicID(ctx context.Context, publicID uuid.UUID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByPublicID: fetching booking %s for user=%d", publicID, userID)

	booking, terminal, err := s.getBookingWithTerminal(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID && terminal.OwnerID != userID {
		s.logger.Warn("GetByPublicID: access denied for user=%d to booking %s", userID, publicID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking, terminal.PublicID), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	list, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	// Бронирование хранит внутренний ID терминала, наружу отдаётся публичный.
	// Кэшируем подъём терминалов, в списке пользователя они часто повторяются
	terminalIDs := make(map[int64]uuid.UUID)
	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(list))}

	for _, b := range list {
		publicID, ok := terminalIDs[b.TerminalID]
		if !ok {
			terminal, err := s.terminalRepo.GetByID(ctx, b.TerminalID)
			if err != nil {
				s.logger.Error("GetUserBookings: failed to resolve terminal id=%d: %v", b.TerminalID, err)
				return nil, fmt.Errorf("%w: GetUserBookings - failed to resolve terminal: %v", ErrInternal, err)
			}
			publicID = terminal.PublicID
			terminalIDs[b.TerminalID] = publicID
		}
		resp.Bookings = append(resp.Bookings, *models.FromDomainBooking(b, publicID))
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(resp.Bookings), req.UserID)
	return resp, nil
}

// UpdateStatus фиксирует решение владельца терминала по бронированию
// Принять или отклонить можно только бронирование в ожидании решения.
// Отклонение снимает запланированные переходы занятости терминала
func (s *Service) UpdateStatus(ctx context.Context, publicID uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking %s to status=%s by user=%d", publicID, req.Status, req.UserID)

	booking, terminal, err := s.getBookingWithTerminal(ctx, publicID)
	if err != nil {
		return err
	}

	// Решение принимает только владелец терминала
	if terminal.OwnerID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%d is not the owner of terminal id=%d", req.UserID, terminal.ID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil || newStatus == domain.BookingStatusPending {
		s.logger.Warn("UpdateStatus: invalid decision status=%s for booking %s", req.Status, publicID)
		return fmt.Errorf("%w: decision must accept or refuse", ErrInvalidStatus)
	}

	if !booking.CanBeDecided() {
		s.logger.Warn("UpdateStatus: booking %s already decided, status=%s", publicID, booking.Status)
		return ErrAlreadyDecided
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking %s: %v", publicID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if newStatus == domain.BookingStatusRefused {
		s.scheduler.Cancel(booking.ID)
	}

	s.logger.Info("UpdateStatus: successfully updated booking %s to status=%s", publicID, newStatus)
	return nil
}

// UpdatePeriod изменяет интервал бронирования
// Доступно только владельцу бронирования, пока оно не отклонено.
// Конфликт с другими бронированиями терминала проверяется в сериализуемой
// транзакции, после успеха переходы занятости перепланируются
func (s *Service) UpdatePeriod(ctx context.Context, publicID uuid.UUID, req *models.UpdatePeriodRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePeriod: updating booking %s by user=%d", publicID, req.UserID)

	if req.StartingDate == nil && req.EndingDate == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	booking, terminal, err := s.getBookingWithTerminal(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != req.UserID {
		s.logger.Warn("UpdatePeriod: access denied for user=%d to booking %s", req.UserID, publicID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeUpdated() {
		s.logger.Warn("UpdatePeriod: booking %s cannot be updated, status=%s", publicID, booking.Status)
		return nil, ErrCannotUpdate
	}

	// Итоговый интервал: незаданная граница остаётся прежней
	newStart := booking.StartingDate
	if req.StartingDate != nil {
		newStart = *req.StartingDate
	}
	newEnd := booking.EndingDate
	if req.EndingDate != nil {
		newEnd = *req.EndingDate
	}

	if !newStart.Before(newEnd) {
		return nil, fmt.Errorf("%w: starting date must precede ending date", ErrInvalidPeriod)
	}
	if newStart.Before(s.timeProvider.Now()) {
		return nil, fmt.Errorf("%w: starting date must not be in the past", ErrInvalidPeriod)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Бронирования терминала с блокировкой (FOR UPDATE)
		others, err := s.bookingRepo.GetByTerminalID(txCtx, booking.TerminalID)
		if err != nil {
			s.logger.Error("UpdatePeriod: failed to get bookings for terminal id=%d: %v", booking.TerminalID, err)
			return fmt.Errorf("%w: UpdatePeriod - failed to get bookings: %v", ErrInternal, err)
		}

		for _, other := range others {
			if other.ID == booking.ID {
				continue
			}
			if other.ConflictsWith(newStart, newEnd) {
				s.logger.Warn("UpdatePeriod: conflict with booking id=%d on terminal id=%d", other.ID, booking.TerminalID)
				return ErrTimeSlotConflict
			}
		}

		err = s.bookingRepo.UpdatePeriod(txCtx, booking.ID,
			sql.NullTime{Time: newStart, Valid: true},
			sql.NullTime{Time: newEnd, Valid: true},
		)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdatePeriod: repository error for booking %s: %v", publicID, err)
			return fmt.Errorf("%w: UpdatePeriod - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Перепланируем переходы занятости на новые границы интервала
	s.scheduler.Schedule(booking.ID, booking.TerminalID, newStart, newEnd)

	booking.StartingDate = newStart
	booking.EndingDate = newEnd

	s.logger.Info("UpdatePeriod: successfully updated booking %s", publicID)
	return models.FromDomainBooking(booking, terminal.PublicID), nil
}

// Delete удаляет бронирование и снимает запланированные переходы занятости
// Доступно владельцу бронирования и владельцу терминала
func (s *Service) Delete(ctx context.Context, publicID uuid.UUID, userID int64) error {
	s.logger.Info("Delete: deleting booking %s by user=%d", publicID, userID)

	booking, terminal, err := s.getBookingWithTerminal(ctx, publicID)
	if err != nil {
		return err
	}

	if booking.UserID != userID && terminal.OwnerID != userID {
		s.logger.Warn("Delete: access denied for user=%d to booking %s", userID, publicID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, booking.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking %s: %v", publicID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.scheduler.Cancel(booking.ID)

	s.logger.Info("Delete: successfully deleted booking %s", publicID)
	return nil
}

// Вспомогательные методы

// getBookingWithTerminal поднимает бронирование и его терминал
func (s *Service) getBookingWithTerminal(ctx context.Context, publicID uuid.UUID) (*domain.Booking, *domain.Terminal, error) {
	booking, err := s.bookingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBookingWithTerminal: booking %s not found", publicID)
			return nil, nil, ErrBookingNotFound
		}
		s.logger.Error("getBookingWithTerminal: repository error for booking %s: %v", publicID, err)
		return nil, nil, fmt.Errorf("%w: getBookingWithTerminal - repository error: %v", ErrInternal, err)
	}

	terminal, err := s.terminalRepo.GetByID(ctx, booking.TerminalID)
	if err != nil {
		if errors.Is(err, terminalRepo.ErrTerminalNotFound) {
			s.logger.Error("getBookingWithTerminal: terminal id=%d missing for booking %s", booking.TerminalID, publicID)
		}
		return nil, nil, fmt.Errorf("%w: getBookingWithTerminal - failed to resolve terminal: %v", ErrInternal, err)
	}

	return booking, terminal, nil
}
