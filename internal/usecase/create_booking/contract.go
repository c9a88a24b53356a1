package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

// TerminalRepository интерфейс репозитория терминалов
type TerminalRepository interface {
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Terminal, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByTerminalID(ctx context.Context, terminalID int64) ([]*domain.Booking, error)
}

// OccupancyScheduler интерфейс планировщика переходов занятости терминала
type OccupancyScheduler interface {
	Schedule(bookingID, terminalID int64, startingDate, endingDate time.Time)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
