package create_terminal

import (
	"context"

	"github.com/m04kA/SMC-TerminalService/internal/service/terminals/models"
)

type TerminalService interface {
	Create(ctx context.Context, req *models.CreateTerminalRequest) (*models.TerminalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
