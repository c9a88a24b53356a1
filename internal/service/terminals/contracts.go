package terminals

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

// TerminalRepository интерфейс репозитория терминалов
type TerminalRepository interface {
	Create(ctx context.Context, terminal *domain.Terminal) (*domain.Terminal, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Terminal, error)
	ListAll(ctx context.Context) ([]*domain.Terminal, error)
	SetOccupancy(ctx context.Context, id int64, status domain.TerminalStatus) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
