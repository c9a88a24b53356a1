package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	terminalRepo "github.com/m04kA/SMC-TerminalService/internal/infra/storage/terminal"
)

// UseCase use case для создания бронирования
type UseCase struct {
	terminalRepo TerminalRepository
	bookingRepo  BookingRepository
	scheduler    OccupancyScheduler
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	terminalRepo TerminalRepository,
	bookingRepo BookingRepository,
	scheduler OccupancyScheduler,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		terminalRepo: terminalRepo,
		bookingRepo:  bookingRepo,
		scheduler:    scheduler,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции,
// чтобы два конкурентных запроса не забронировали один интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, terminal=%s, period=%s..%s",
		req.UserID, req.TerminalPublicID,
		req.StartingDate.Format(domain.DateTimeFormat), req.EndingDate.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация интервала
	if err := validatePeriod(req.StartingDate, req.EndingDate, now); err != nil {
		uc.logger.Warn("CreateBooking: period validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем терминал по публичному идентификатору
	terminal, err := uc.terminalRepo.GetByPublicID(ctx, req.TerminalPublicID)
	if err != nil {
		if errors.Is(err, terminalRepo.ErrTerminalNotFound) {
			uc.logger.Warn("CreateBooking: terminal %s not found", req.TerminalPublicID)
			return nil, ErrTerminalNotFound
		}
		uc.logger.Error("CreateBooking: failed to get terminal %s: %v", req.TerminalPublicID, err)
		return nil, fmt.Errorf("%w: failed to get terminal: %v", ErrInternal, err)
	}

	// 5. Терминал в ремонте или выведенный из эксплуатации не бронируется
	if !terminal.Bookable() {
		uc.logger.Warn("CreateBooking: terminal id=%d is not bookable, status=%s", terminal.ID, terminal.Status)
		return nil, ErrTerminalNotBookable
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Проверка конфликтов и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем бронирования терминала с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByTerminalID(txCtx, terminal.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for terminal id=%d: %v", terminal.ID, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.2. Проверяем пересечение с существующими бронированиями
		// Отклонённые бронирования тоже блокируют интервал
		for _, b := range bookings {
			if b.ConflictsWith(req.StartingDate, req.EndingDate) {
				uc.logger.Warn("CreateBooking: conflict with booking id=%d on terminal id=%d", b.ID, terminal.ID)
				return ErrTimeSlotConflict
			}
		}

		// 6.3. Создаем бронирование в статусе ожидания решения владельца
		booking := &domain.Booking{
			PublicID:     uuid.New(),
			TerminalID:   terminal.ID,
			UserID:       req.UserID,
			StartingDate: req.StartingDate,
			EndingDate:   req.EndingDate,
			Status:       domain.BookingStatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 7. Планируем переходы занятости терминала на границах интервала
	uc.scheduler.Schedule(result.ID, terminal.ID, result.StartingDate, result.EndingDate)

	uc.logger.Info("CreateBooking: successfully created booking id=%d public_id=%s", result.ID, result.PublicID)

	return &Response{
		ID:               result.ID,
		PublicID:         result.PublicID,
		TerminalPublicID: terminal.PublicID,
		UserID:           result.UserID,
		StartingDate:     result.StartingDate,
		EndingDate:       result.EndingDate,
		Status:           string(result.Status),
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}
