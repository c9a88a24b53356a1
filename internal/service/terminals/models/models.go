package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе терминала
	ErrInvalidStatus = errors.New("invalid terminal status")
)

// Request модели

// CreateTerminalRequest запрос на регистрацию терминала
type CreateTerminalRequest struct {
	OwnerID   int64   `json:"ownerId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    *string `json:"status,omitempty"` // По умолчанию LIBRE
}

// UpdateStatusRequest запрос на ручную смену статуса терминала
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// ToDomainTerminalStatus конвертирует строку в domain статус
func ToDomainTerminalStatus(s string) (domain.TerminalStatus, error) {
	status := domain.TerminalStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Response модели

// TerminalResponse ответ с данными терминала
type TerminalResponse struct {
	PublicID  uuid.UUID `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Status    string    `json:"status"`
	Occupied  bool      `json:"occupied"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TerminalListResponse ответ со списком терминалов
type TerminalListResponse struct {
	Terminals []TerminalResponse `json:"terminals"`
}

// FromDomainTerminal конвертирует domain модель в DTO
func FromDomainTerminal(t *domain.Terminal) *TerminalResponse {
	if t == nil {
		return nil
	}

	return &TerminalResponse{
		PublicID:  t.PublicID,
		OwnerID:   t.OwnerID,
		Latitude:  t.Latitude,
		Longitude: t.Longitude,
		Status:    string(t.Status),
		Occupied:  t.Occupied(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromDomainTerminalList конвертирует список domain моделей в DTO
func FromDomainTerminalList(terminals []*domain.Terminal) *TerminalListResponse {
	resp := &TerminalListResponse{Terminals: make([]TerminalResponse, 0, len(terminals))}
	for _, t := range terminals {
		resp.Terminals = append(resp.Terminals, *FromDomainTerminal(t))
	}
	return resp
}
