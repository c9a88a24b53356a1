package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	createBooking "github.com/m04kA/SMC-TerminalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TerminalID   string `json:"terminalId"`   // Публичный идентификатор терминала
	StartingDate string `json:"startingDate"` // RFC 3339
	EndingDate   string `json:"endingDate"`   // RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           string `json:"id"`
	TerminalID   string `json:"terminalId"`
	UserID       int64  `json:"userId"`
	StartingDate string `json:"startingDate"`
	EndingDate   string `json:"endingDate"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	terminalID, err := uuid.Parse(r.TerminalID)
	if err != nil {
		return nil, err
	}

	startingDate, err := time.Parse(domain.DateTimeFormat, r.StartingDate)
	if err != nil {
		return nil, err
	}

	endingDate, err := time.Parse(domain.DateTimeFormat, r.EndingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:           userID,
		TerminalPublicID: terminalID,
		StartingDate:     startingDate,
		EndingDate:       endingDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.PublicID.String(),
		TerminalID:   resp.TerminalPublicID.String(),
		UserID:       resp.UserID,
		StartingDate: resp.StartingDate.Format(domain.DateTimeFormat),
		EndingDate:   resp.EndingDate.Format(domain.DateTimeFormat),
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
