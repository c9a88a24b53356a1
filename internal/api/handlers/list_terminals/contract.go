package list_terminals

import (
	"context"

	"github.com/m04kA/SMC-TerminalService/internal/service/terminals/models"
)

type TerminalService interface {
	List(ctx context.Context) (*models.TerminalListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
