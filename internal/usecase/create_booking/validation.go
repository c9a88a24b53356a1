package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TerminalPublicID == uuid.Nil {
		return fmt.Errorf("%w: terminal public id is required", ErrInvalidInput)
	}

	if req.StartingDate.IsZero() || req.EndingDate.IsZero() {
		return fmt.Errorf("%w: starting and ending dates are required", ErrInvalidInput)
	}

	return nil
}

// validatePeriod проверяет интервал бронирования относительно текущего момента
func validatePeriod(startingDate, endingDate, now time.Time) error {
	if !startingDate.Before(endingDate) {
		return fmt.Errorf("%w: starting date must precede ending date", ErrInvalidPeriod)
	}

	if startingDate.Before(now) {
		return fmt.Errorf("%w: starting date must not be in the past", ErrInvalidPeriod)
	}

	return nil
}
