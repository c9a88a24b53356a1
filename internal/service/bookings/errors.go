package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyDecided возвращается, когда решение по бронированию уже принято
	ErrAlreadyDecided = errors.New("booking has already been decided")

	// ErrCannotUpdate возвращается, когда интервал бронирования нельзя изменить
	ErrCannotUpdate = errors.New("booking cannot be updated")

	// ErrTimeSlotConflict возвращается, когда новый интервал пересекается с другим бронированием
	ErrTimeSlotConflict = errors.New("time slot conflicts with an existing booking")

	// ErrInvalidPeriod возвращается при некорректном интервале бронирования
	ErrInvalidPeriod = errors.New("invalid booking period")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
