package bookings

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByTerminalID(ctx context.Context, terminalID int64) ([]*domain.Booking, error)
	UpdatePeriod(ctx context.Context, id int64, startingDate, endingDate sql.NullTime) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
}

// TerminalRepository интерфейс репозитория терминалов
type TerminalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Terminal, error)
}

// OccupancyScheduler интерфейс планировщика переходов занятости терминала
type OccupancyScheduler interface {
	Schedule(bookingID, terminalID int64, startingDate, endingDate time.Time)
	Cancel(bookingID int64)
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
