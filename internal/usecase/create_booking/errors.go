package create_booking

import "errors"

var (
	// ErrTerminalNotFound возвращается, когда терминал не найден
	ErrTerminalNotFound = errors.New("create_booking: terminal not found")

	// ErrTerminalNotBookable возвращается, когда терминал в ремонте или выведен из эксплуатации
	ErrTerminalNotBookable = errors.New("create_booking: terminal cannot accept bookings")

	// ErrTimeSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrTimeSlotConflict = errors.New("create_booking: time slot conflicts with an existing booking")

	// ErrInvalidPeriod возвращается при некорректном интервале бронирования
	ErrInvalidPeriod = errors.New("create_booking: invalid booking period")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
