package delete_terminal

import (
	"context"

	"github.com/google/uuid"
)

type TerminalService interface {
	Delete(ctx context.Context, publicID uuid.UUID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
