package get_terminal

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/service/terminals/models"
)

type TerminalService interface {
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*models.TerminalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
