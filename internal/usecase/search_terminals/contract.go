package search_terminals

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

// TerminalRepository интерфейс репозитория терминалов
type TerminalRepository interface {
	// ListAll получает все терминалы; порядок выдачи наследуется поиском
	ListAll(ctx context.Context) ([]*domain.Terminal, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByTerminalID получает все бронирования терминала без фильтра по статусу
	GetByTerminalID(ctx context.Context, terminalID int64) ([]*domain.Booking, error)
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
