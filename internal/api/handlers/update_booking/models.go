package update_booking

import (
	"time"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	"github.com/m04kA/SMC-TerminalService/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model
// Незаданная граница интервала остаётся прежней
type UpdateBookingRequest struct {
	StartingDate *string `json:"startingDate,omitempty"` // RFC 3339
	EndingDate   *string `json:"endingDate,omitempty"`   // RFC 3339
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest(userID int64) (*models.UpdatePeriodRequest, error) {
	req := &models.UpdatePeriodRequest{UserID: userID}

	if r.StartingDate != nil {
		start, err := time.Parse(domain.DateTimeFormat, *r.StartingDate)
		if err != nil {
			return nil, err
		}
		req.StartingDate = &start
	}

	if r.EndingDate != nil {
		end, err := time.Parse(domain.DateTimeFormat, *r.EndingDate)
		if err != nil {
			return nil, err
		}
		req.EndingDate = &end
	}

	return req, nil
}
