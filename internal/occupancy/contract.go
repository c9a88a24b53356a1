package occupancy

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

// TerminalStore интерфейс хранилища терминалов
// SetOccupancy записывает статус и производный флаг occupied атомарно
type TerminalStore interface {
	SetOccupancy(ctx context.Context, terminalID int64, status domain.TerminalStatus) error
}

// TimerHandle отменяемый дескриптор отложенного вызова
// Stop возвращает false, если колбэк уже сработал или был отменён
type TimerHandle interface {
	Stop() bool
}

// TimerFacility порт отложенного исполнения
// В production используется реализация на time.AfterFunc, в тестах -
// детерминированная подмена с ручным продвижением времени
type TimerFacility interface {
	Schedule(at time.Time, fn func()) TimerHandle
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

// Metrics счётчик исходов переходов занятости
// kind: "occupy" | "free", result: "fired" | "failed" | "cancelled"
type Metrics interface {
	IncOccupancyTransition(kind, result string)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NopMetrics заглушка метрик, когда prometheus выключен конфигом
type NopMetrics struct{}

// IncOccupancyTransition ничего не делает
func (NopMetrics) IncOccupancyTransition(kind, result string) {}
