package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID           int64     // ID пользователя
	TerminalPublicID uuid.UUID // Публичный идентификатор терминала
	StartingDate     time.Time // Начало интервала бронирования
	EndingDate       time.Time // Конец интервала бронирования
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64     // Внутренний ID созданного бронирования
	PublicID         uuid.UUID // Публичный идентификатор бронирования
	TerminalPublicID uuid.UUID // Публичный идентификатор терминала
	UserID           int64     // ID пользователя
	StartingDate     time.Time // Начало интервала
	EndingDate       time.Time // Конец интервала
	Status           string    // Статус бронирования

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
