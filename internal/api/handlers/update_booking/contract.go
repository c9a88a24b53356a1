package update_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/service/bookings/models"
)

type BookingService interface {
	UpdatePeriod(ctx context.Context, publicID uuid.UUID, req *models.UpdatePeriodRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
