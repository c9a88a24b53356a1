package search_terminals

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса поиска терминалов
// Все фильтры опциональны: отсутствующий параметр расширяет выборку
type Request struct {
	Longitude   float64    // Долгота центра поиска
	Latitude    float64    // Широта центра поиска
	RadiusKm    *float64   // Радиус поиска в километрах (опционально)
	Occupied    *bool      // Фильтр по признаку занятости (опционально)
	WindowStart *time.Time // Начало интересующего окна (опционально, только вместе с WindowEnd)
	WindowEnd   *time.Time // Конец интересующего окна (опционально, только вместе с WindowStart)
}

// HasWindow возвращает true, если заданы обе границы окна
func (r *Request) HasWindow() bool {
	return r.WindowStart != nil && r.WindowEnd != nil
}

// Response модель ответа со списком подходящих терминалов
type Response struct {
	Terminals []TerminalResult
}

// TerminalResult найденный терминал
type TerminalResult struct {
	PublicID   uuid.UUID
	Latitude   float64
	Longitude  float64
	Status     string
	Occupied   bool
	DistanceKm float64 // Приблизительное расстояние от центра поиска
}
