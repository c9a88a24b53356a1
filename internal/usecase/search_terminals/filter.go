package search_terminals

import (
	"time"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

// anyConflict проверяет, пересекается ли хоть одно бронирование с окном
// Статус бронирования намеренно не учитывается: отклонённые бронирования
// тоже блокируют доступность, пока продукт не решит иначе
func anyConflict(bookings []*domain.Booking, windowStart, windowEnd time.Time) bool {
	for _, b := range bookings {
		if b.ConflictsWith(windowStart, windowEnd) {
			return true
		}
	}
	return false
}

// occupiedNow проверяет, накрывает ли текущий момент хоть одно бронирование
func occupiedNow(bookings []*domain.Booking, now time.Time) bool {
	for _, b := range bookings {
		if b.Covers(now) {
			return true
		}
	}
	return false
}
