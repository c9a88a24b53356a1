package search_terminals

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TerminalService/pkg/geodist"
)

// UseCase use case поиска доступных терминалов
type UseCase struct {
	terminalRepo TerminalRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	terminalRepo TerminalRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		terminalRepo: terminalRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет поиск терминалов
//
// Фильтры применяются последовательно: радиус, затем персистентный флаг
// занятости, затем пересечение бронирований с окном. Отсутствующий фильтр
// пропускается целиком. Порядок результата - порядок выдачи репозитория,
// сортировка не гарантируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchTerminals: lon=%f, lat=%f, radius=%v, occupied=%v, window=%v..%v",
		req.Longitude, req.Latitude, req.RadiusKm, req.Occupied, req.WindowStart, req.WindowEnd)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchTerminals: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем все терминалы
	terminals, err := uc.terminalRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("SearchTerminals: failed to list terminals: %v", err)
		return nil, fmt.Errorf("%w: failed to list terminals: %v", ErrInternal, err)
	}

	results := make([]TerminalResult, 0, len(terminals))

	for _, t := range terminals {
		// 4. Фильтр по радиусу: терминал ровно на границе включается
		distance := geodist.Estimate(req.Longitude, req.Latitude, t.Longitude, t.Latitude)
		if req.RadiusKm != nil && distance > *req.RadiusKm {
			continue
		}

		// 5. Статический фильтр по персистентному флагу занятости
		// Применяется независимо от окна
		if req.Occupied != nil && t.Occupied() != *req.Occupied {
			continue
		}

		// 6. Фильтр по окну: пересечение с бронированиями терминала
		if req.HasWindow() {
			bookings, err := uc.bookingRepo.GetByTerminalID(ctx, t.ID)
			if err != nil {
				uc.logger.Error("SearchTerminals: failed to get bookings for terminal id=%d: %v", t.ID, err)
				return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			switch {
			case req.Occupied != nil && !*req.Occupied:
				// Нужны свободные: исключаем терминалы с конфликтующим бронированием
				if anyConflict(bookings, *req.WindowStart, *req.WindowEnd) {
					continue
				}
			case req.Occupied != nil && *req.Occupied:
				// Нужны занятые: оставляем только терминалы с конфликтом в окне
				if !anyConflict(bookings, *req.WindowStart, *req.WindowEnd) {
					continue
				}
			default:
				// Окно без флага занятости: наследуемое поведение - проверка
				// "занят прямо сейчас", а не занятость в запрошенном окне
				if occupiedNow(bookings, now) {
					continue
				}
			}
		}

		results = append(results, TerminalResult{
			PublicID:   t.PublicID,
			Latitude:   t.Latitude,
			Longitude:  t.Longitude,
			Status:     string(t.Status),
			Occupied:   t.Occupied(),
			DistanceKm: distance,
		})
	}

	uc.logger.Info("SearchTerminals: %d of %d terminals matched", len(results), len(terminals))

	return &Response{Terminals: results}, nil
}
