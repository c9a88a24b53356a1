package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на решение по бронированию (принять/отклонить)
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// UpdatePeriodRequest запрос на изменение интервала бронирования
type UpdatePeriodRequest struct {
	UserID       int64      `json:"userId"`
	StartingDate *time.Time `json:"startingDate,omitempty"` // Новое начало (опционально)
	EndingDate   *time.Time `json:"endingDate,omitempty"`   // Новый конец (опционально)
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
// Наружу отдаются только публичные идентификаторы
type BookingResponse struct {
	PublicID         uuid.UUID `json:"id"`
	TerminalPublicID uuid.UUID `json:"terminalId"`
	UserID           int64     `json:"userId"`
	StartingDate     time.Time `json:"startingDate"`
	EndingDate       time.Time `json:"endingDate"`
	Status           string    `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Публичный идентификатор терминала приходит отдельно: бронирование хранит
// только внутренний ID терминала
func FromDomainBooking(b *domain.Booking, terminalPublicID uuid.UUID) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		PublicID:         b.PublicID,
		TerminalPublicID: terminalPublicID,
		UserID:           b.UserID,
		StartingDate:     b.StartingDate,
		EndingDate:       b.EndingDate,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
